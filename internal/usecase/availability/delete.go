package availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/health-first/health-first-server/internal/audit"
	domain "github.com/health-first/health-first-server/internal/domain/schedule"
	"github.com/health-first/health-first-server/internal/httperr"
)

type Delete struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDelete(repo domain.Repository, audit *audit.Dispatcher) *Delete {
	return &Delete{repo: repo, audit: audit}
}

// Execute removes an availability record and its unbooked slots.
// Records with booked slots cannot be deleted.
//
// TODO: deleteRecurring currently removes only the addressed instance;
// removing the whole series needs a recurrence-group key on the record
// so siblings can be found.
func (uc *Delete) Execute(
	ctx context.Context,
	providerID uuid.UUID,
	availabilityID uuid.UUID,
	deleteRecurring bool,
	reason string,
) error {

	rec, err := uc.repo.GetAvailability(ctx, availabilityID)
	if err != nil {
		return err
	}
	if rec.ProviderID != providerID {
		return httperr.ErrBusiness(httperr.CodeOwnership)
	}

	hasBooked, err := uc.repo.HasBookedSlots(ctx, availabilityID)
	if err != nil {
		return err
	}
	if hasBooked {
		return httperr.ErrBusiness(httperr.CodeBookedSlots)
	}

	if err := uc.repo.DeleteAvailability(ctx, rec); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorType: audit.ActorProvider,
		ActorID:   &providerID,
		Action:    "availability_deleted",
		Entity:    "availability",
		EntityID:  &availabilityID,
		Metadata: map[string]any{
			"delete_recurring": deleteRecurring,
			"reason":           reason,
		},
	})

	return nil
}
