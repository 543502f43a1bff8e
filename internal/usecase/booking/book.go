package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/health-first/health-first-server/internal/audit"
	domain "github.com/health-first/health-first-server/internal/domain/schedule"
	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/models"
	"github.com/health-first/health-first-server/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	SlotID    uuid.UUID
	PatientID uuid.UUID

	// Optional: the patient asked for this specific provider; the slot
	// must belong to them.
	ProviderID *uuid.UUID

	Reason string
}

// ======================================================
// USE CASE
// ======================================================

type Book struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewBook(repo domain.Repository, audit *audit.Dispatcher) *Book {
	return &Book{repo: repo, audit: audit}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Book) Execute(ctx context.Context, in BookInput) (*models.AppointmentSlot, error) {

	// --------------------------------------------------
	// 1. Patient must exist and be active
	// --------------------------------------------------
	patient, err := uc.repo.GetPatientByID(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	if !patient.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	// --------------------------------------------------
	// 2. Claim the slot (locked, conflict-checked)
	// --------------------------------------------------
	slot, err := uc.repo.BookSlot(
		ctx,
		in.SlotID,
		in.PatientID,
		in.ProviderID,
		in.Reason,
		timezone.Now(),
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ActorType: audit.ActorPatient,
		ActorID:   &in.PatientID,
		Action:    "appointment_booked",
		Entity:    "appointment_slot",
		EntityID:  &slot.ID,
		Metadata: map[string]any{
			"provider_id": slot.ProviderID,
			"start_at":    slot.StartAt,
			"confirmed":   slot.BookingConfirmed,
		},
	})

	return slot, nil
}
