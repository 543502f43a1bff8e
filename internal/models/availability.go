package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilityRecord is one calendar date's bookable window for a
// provider. A recurring request is expanded into one row per matching
// date before persistence; each row owns the slots generated from it.
//
// AvailabilityDate is "2006-01-02", StartTime/EndTime are "15:04" in
// the record's Timezone. Zero-padded strings keep SQL range predicates
// valid lexicographically.
// SchedulingPreferences are provider-facing booking settings surfaced
// to patients. None of them participate in slot generation.
type SchedulingPreferences struct {
	ConsultationType        string `gorm:"size:50" json:"consultation_type,omitempty"`
	AllowWalkIns            bool   `gorm:"default:false" json:"allow_walk_ins"`
	AdvanceBookingDays      int    `gorm:"default:30" json:"advance_booking_days"`
	SameDayBooking          bool   `gorm:"default:false" json:"same_day_booking"`
	MaxAppointmentsPerDay   int    `gorm:"default:20" json:"max_appointments_per_day"`
	EmergencyAvailable      bool   `gorm:"default:false" json:"emergency_available"`
	NotesForPatients        string `gorm:"size:1000" json:"notes_for_patients,omitempty"`
	RequiresConfirmation    bool   `gorm:"default:false" json:"requires_confirmation"`
	SendReminders           bool   `gorm:"default:true" json:"send_reminders"`
	ReminderTimeHours       int    `gorm:"default:24" json:"reminder_time_hours"`
	AllowCancellation       bool   `gorm:"default:true" json:"allow_cancellation"`
	CancellationHoursBefore int    `gorm:"default:24" json:"cancellation_hours_before"`
}

type AvailabilityRecord struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ProviderID uuid.UUID `gorm:"type:uuid;not null;index:idx_provider_date" json:"provider_id"`
	Provider   Provider  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AvailabilityDate string `gorm:"size:10;not null;index:idx_provider_date" json:"availability_date"`
	StartTime        string `gorm:"size:5;not null" json:"start_time"`
	EndTime          string `gorm:"size:5;not null" json:"end_time"`

	SlotDurationMinutes int    `gorm:"default:30" json:"slot_duration_minutes"`
	AppointmentType     string `gorm:"size:50;not null" json:"appointment_type"`
	Timezone            string `gorm:"size:50;default:'UTC'" json:"timezone"`

	Price       *float64 `json:"price,omitempty"`
	Location    string   `gorm:"size:200" json:"location,omitempty"`
	Description string   `gorm:"size:500" json:"description,omitempty"`

	RecurrencePattern string `gorm:"size:20;default:'NONE'" json:"recurrence_pattern"`
	RecurrenceEndDate string `gorm:"size:10" json:"recurrence_end_date,omitempty"`
	// Comma-separated ISO weekday numbers, e.g. "1,2,3,4,5".
	RecurrenceDaysOfWeek string `gorm:"size:20" json:"recurrence_days_of_week,omitempty"`

	IsActive            bool `gorm:"default:true" json:"is_active"`
	MaxConsecutiveSlots int  `json:"max_consecutive_slots,omitempty"`
	BufferTimeMinutes   int  `gorm:"default:0" json:"buffer_time_minutes"`

	SchedulingPreferences `gorm:"embedded"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Slots []AppointmentSlot `gorm:"foreignKey:AvailabilityID" json:"slots,omitempty"`
}

func (a *AvailabilityRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *AvailabilityRecord) IsRecurring() bool {
	return a.RecurrencePattern != "" && a.RecurrencePattern != "NONE"
}
