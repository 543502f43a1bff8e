package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Book claims the slot for a patient. expectProvider, when set, must
// match the slot's provider (the caller asked for a specific doctor).
// The slot's Availability must be preloaded so confirmation policy can
// be applied.
func Book(slot *models.AppointmentSlot, patientID uuid.UUID, expectProvider *uuid.UUID, reason string, now time.Time) error {
	if expectProvider != nil && slot.ProviderID != *expectProvider {
		return httperr.ErrBusiness(httperr.CodeSlotNotAvailable)
	}
	if !slot.IsAvailable(now) {
		return httperr.ErrBusiness(httperr.CodeSlotNotAvailable)
	}

	slot.Book(patientID, reason, now)
	slot.BookingConfirmed = !slot.Availability.RequiresConfirmation
	return nil
}

// CancelBooking releases a booked slot. Only the booking patient may
// cancel, and only before the slot starts.
func CancelBooking(slot *models.AppointmentSlot, patientID uuid.UUID, reason string, now time.Time) error {
	if !slot.IsBooked || slot.PatientID == nil || *slot.PatientID != patientID {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	if !slot.StartAt.After(now) {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}

	slot.CancelBooking(reason, now)
	return nil
}
