package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/health-first/health-first-server/internal/audit"
	domain "github.com/health-first/health-first-server/internal/domain/schedule"
	"github.com/health-first/health-first-server/internal/models"
	"github.com/health-first/health-first-server/internal/timezone"
)

type Cancel struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancel(repo domain.Repository, audit *audit.Dispatcher) *Cancel {
	return &Cancel{repo: repo, audit: audit}
}

func (uc *Cancel) Execute(
	ctx context.Context,
	slotID uuid.UUID,
	patientID uuid.UUID,
	reason string,
) (*models.AppointmentSlot, error) {

	slot, err := uc.repo.CancelSlotBooking(ctx, slotID, patientID, reason, timezone.Now())
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorType: audit.ActorPatient,
		ActorID:   &patientID,
		Action:    "appointment_cancelled",
		Entity:    "appointment_slot",
		EntityID:  &slot.ID,
		Metadata: map[string]any{
			"reason": reason,
		},
	})

	return slot, nil
}
