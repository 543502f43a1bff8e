package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentSlot is a discrete bookable unit generated from an
// AvailabilityRecord. StartAt/EndAt are UTC instants.
type AppointmentSlot struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	AvailabilityID uuid.UUID          `gorm:"type:uuid;not null;index" json:"availability_id"`
	Availability   AvailabilityRecord `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ProviderID uuid.UUID `gorm:"type:uuid;not null;index:idx_provider_start" json:"provider_id"`
	Provider   Provider  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PatientID *uuid.UUID `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	Patient   *Patient   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	StartAt time.Time `gorm:"not null;index:idx_provider_start" json:"start_at"`
	EndAt   time.Time `gorm:"not null" json:"end_at"`

	AppointmentType string `gorm:"size:50;not null" json:"appointment_type"`

	IsBooked bool `gorm:"default:false" json:"is_booked"`
	IsActive bool `gorm:"default:true" json:"is_active"`

	Price    *float64 `json:"price,omitempty"`
	Location string   `gorm:"size:200" json:"location,omitempty"`

	BookingReason    string `gorm:"size:500" json:"booking_reason,omitempty"`
	PatientNotes     string `gorm:"size:500" json:"patient_notes,omitempty"`
	ProviderNotes    string `gorm:"size:500" json:"provider_notes,omitempty"`
	BookingConfirmed bool   `gorm:"default:false" json:"booking_confirmed"`

	BookedAt           *time.Time `json:"booked_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `gorm:"size:500" json:"cancellation_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *AppointmentSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsAvailable reports whether the slot can still be booked.
func (s *AppointmentSlot) IsAvailable(now time.Time) bool {
	return s.IsActive && !s.IsBooked && s.StartAt.After(now)
}

func (s *AppointmentSlot) Book(patientID uuid.UUID, reason string, now time.Time) {
	s.PatientID = &patientID
	s.IsBooked = true
	s.BookingReason = reason
	s.BookedAt = &now
}

func (s *AppointmentSlot) CancelBooking(reason string, now time.Time) {
	s.IsBooked = false
	s.PatientID = nil
	s.Patient = nil
	s.BookingConfirmed = false
	s.CancellationReason = reason
	s.CancelledAt = &now
}
