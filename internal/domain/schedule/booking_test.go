package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/models"
)

func freeSlot(start time.Time) *models.AppointmentSlot {
	return &models.AppointmentSlot{
		ID:              uuid.New(),
		ProviderID:      uuid.New(),
		StartAt:         start,
		EndAt:           start.Add(30 * time.Minute),
		AppointmentType: string(TypeConsultation),
		IsActive:        true,
	}
}

func TestBook(t *testing.T) {
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
	slot := freeSlot(now.Add(time.Hour))
	patient := uuid.New()

	if err := Book(slot, patient, nil, "checkup", now); err != nil {
		t.Fatalf("Book: %v", err)
	}
	if !slot.IsBooked || slot.PatientID == nil || *slot.PatientID != patient {
		t.Fatal("slot not claimed for patient")
	}
	if !slot.BookingConfirmed {
		t.Fatal("booking should auto-confirm when availability does not require confirmation")
	}
	if slot.BookedAt == nil || !slot.BookedAt.Equal(now) {
		t.Fatal("BookedAt not set")
	}
}

func TestBookRequiresConfirmation(t *testing.T) {
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
	slot := freeSlot(now.Add(time.Hour))
	slot.Availability.RequiresConfirmation = true

	if err := Book(slot, uuid.New(), nil, "", now); err != nil {
		t.Fatalf("Book: %v", err)
	}
	if slot.BookingConfirmed {
		t.Fatal("booking must stay pending when confirmation is required")
	}
}

func TestBookRejectsTakenSlot(t *testing.T) {
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
	slot := freeSlot(now.Add(time.Hour))
	slot.IsBooked = true

	if err := Book(slot, uuid.New(), nil, "", now); !httperr.IsBusiness(err, httperr.CodeSlotNotAvailable) {
		t.Fatalf("expected SLOT_NOT_AVAILABLE, got %v", err)
	}
}

func TestBookRejectsPastSlot(t *testing.T) {
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
	slot := freeSlot(now.Add(-time.Hour))

	if err := Book(slot, uuid.New(), nil, "", now); !httperr.IsBusiness(err, httperr.CodeSlotNotAvailable) {
		t.Fatalf("expected SLOT_NOT_AVAILABLE, got %v", err)
	}
}

func TestBookRejectsProviderMismatch(t *testing.T) {
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
	slot := freeSlot(now.Add(time.Hour))
	other := uuid.New()

	if err := Book(slot, uuid.New(), &other, "", now); !httperr.IsBusiness(err, httperr.CodeSlotNotAvailable) {
		t.Fatalf("expected SLOT_NOT_AVAILABLE, got %v", err)
	}
}

func TestCancelBooking(t *testing.T) {
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
	slot := freeSlot(now.Add(time.Hour))
	patient := uuid.New()
	if err := Book(slot, patient, nil, "", now); err != nil {
		t.Fatalf("Book: %v", err)
	}

	if err := CancelBooking(slot, patient, "conflict", now); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if slot.IsBooked || slot.PatientID != nil {
		t.Fatal("slot must be released")
	}
	if slot.CancelledAt == nil || slot.CancellationReason != "conflict" {
		t.Fatal("cancellation metadata not recorded")
	}
}

func TestCancelBookingWrongPatient(t *testing.T) {
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
	slot := freeSlot(now.Add(time.Hour))
	if err := Book(slot, uuid.New(), nil, "", now); err != nil {
		t.Fatalf("Book: %v", err)
	}

	if err := CancelBooking(slot, uuid.New(), "", now); !httperr.IsBusiness(err, httperr.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestCancelBookingAfterStart(t *testing.T) {
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
	slot := freeSlot(now.Add(time.Hour))
	patient := uuid.New()
	if err := Book(slot, patient, nil, "", now); err != nil {
		t.Fatalf("Book: %v", err)
	}

	late := slot.StartAt.Add(time.Minute)
	if err := CancelBooking(slot, patient, "", late); !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}
