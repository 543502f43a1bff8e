package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Verification states for a provider's license review.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

type ClinicAddress struct {
	Street string `gorm:"size:200" json:"street"`
	City   string `gorm:"size:100" json:"city"`
	State  string `gorm:"size:50" json:"state"`
	Zip    string `gorm:"size:10" json:"zip"`
}

type Provider struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	FirstName string `gorm:"size:50;not null" json:"first_name"`
	LastName  string `gorm:"size:50;not null" json:"last_name"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PhoneNumber  string `gorm:"size:20;uniqueIndex;not null" json:"phone_number"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Specialization    string `gorm:"size:100;not null" json:"specialization"`
	LicenseNumber     string `gorm:"size:50;uniqueIndex;not null" json:"license_number"`
	YearsOfExperience int    `json:"years_of_experience"`

	ClinicAddress ClinicAddress `gorm:"embedded;embeddedPrefix:clinic_" json:"clinic_address"`

	VerificationStatus string `gorm:"size:20;default:'pending'" json:"verification_status"`
	IsActive           bool   `gorm:"default:true" json:"is_active"`

	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	AccountLockedUntil  *time.Time `json:"-"`
	LastSuccessfulLogin *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Provider) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Provider) FullName() string {
	return p.FirstName + " " + p.LastName
}

func (p *Provider) IsAccountLocked(now time.Time) bool {
	return p.AccountLockedUntil != nil && now.Before(*p.AccountLockedUntil)
}
