package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientAddress struct {
	Street string `gorm:"size:200" json:"street"`
	City   string `gorm:"size:100" json:"city"`
	State  string `gorm:"size:50" json:"state"`
	Zip    string `gorm:"size:10" json:"zip"`
}

type EmergencyContact struct {
	Name         string `gorm:"size:100" json:"name"`
	Phone        string `gorm:"size:20" json:"phone"`
	Relationship string `gorm:"size:50" json:"relationship"`
}

type InsuranceInfo struct {
	Provider     string `gorm:"size:100" json:"provider"`
	PolicyNumber string `gorm:"size:50" json:"policy_number"`
}

type Patient struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	FirstName string `gorm:"size:50;not null" json:"first_name"`
	LastName  string `gorm:"size:50;not null" json:"last_name"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PhoneNumber  string `gorm:"size:20;uniqueIndex;not null" json:"phone_number"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	// "2006-01-02"
	DateOfBirth string `gorm:"size:10;not null" json:"date_of_birth"`
	Gender      string `gorm:"size:30;not null" json:"gender"`

	Address          PatientAddress   `gorm:"embedded;embeddedPrefix:addr_" json:"address"`
	EmergencyContact EmergencyContact `gorm:"embedded;embeddedPrefix:emergency_" json:"emergency_contact"`
	Insurance        InsuranceInfo    `gorm:"embedded;embeddedPrefix:insurance_" json:"insurance"`

	// Newline-separated list of conditions supplied at registration.
	MedicalHistory string `gorm:"type:text" json:"medical_history,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	AccountLockedUntil  *time.Time `json:"-"`
	LastSuccessfulLogin *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

func (p *Patient) IsAccountLocked(now time.Time) bool {
	return p.AccountLockedUntil != nil && now.Before(*p.AccountLockedUntil)
}
