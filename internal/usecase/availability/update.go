package availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/health-first/health-first-server/internal/audit"
	domain "github.com/health-first/health-first-server/internal/domain/schedule"
	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// UpdateInput carries a partial edit; nil fields are left untouched.
type UpdateInput struct {
	ProviderID     uuid.UUID
	AvailabilityID uuid.UUID

	StartTime           *string
	EndTime             *string
	SlotDurationMinutes *int
	BufferTimeMinutes   *int

	AppointmentType *string
	Price           *float64
	Location        *string
	Description     *string
	IsActive        *bool

	Preferences *models.SchedulingPreferences

	RegenerateSlots bool
}

func (in UpdateInput) touchesSlotTiming() bool {
	return in.StartTime != nil ||
		in.EndTime != nil ||
		in.SlotDurationMinutes != nil ||
		in.BufferTimeMinutes != nil
}

// ======================================================
// USE CASE
// ======================================================

type Update struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdate(repo domain.Repository, audit *audit.Dispatcher) *Update {
	return &Update{repo: repo, audit: audit}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Update) Execute(ctx context.Context, in UpdateInput) (*models.AvailabilityRecord, error) {

	// --------------------------------------------------
	// 1. Ownership
	// --------------------------------------------------
	rec, err := uc.repo.GetAvailability(ctx, in.AvailabilityID)
	if err != nil {
		return nil, err
	}
	if rec.ProviderID != in.ProviderID {
		return nil, httperr.ErrBusiness(httperr.CodeOwnership)
	}

	// --------------------------------------------------
	// 2. Timing edits are blocked once patients hold slots
	// --------------------------------------------------
	hasBooked, err := uc.repo.HasBookedSlots(ctx, in.AvailabilityID)
	if err != nil {
		return nil, err
	}
	if hasBooked && in.touchesSlotTiming() {
		return nil, httperr.ErrBusiness(httperr.CodeBookedSlots)
	}

	// --------------------------------------------------
	// 3. Apply partial changes
	// --------------------------------------------------
	if in.StartTime != nil {
		if _, err := domain.ParseClock(*in.StartTime); err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
		rec.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		if _, err := domain.ParseClock(*in.EndTime); err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
		rec.EndTime = *in.EndTime
	}
	if rec.EndTime <= rec.StartTime {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if in.SlotDurationMinutes != nil {
		if *in.SlotDurationMinutes <= 0 {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
		rec.SlotDurationMinutes = *in.SlotDurationMinutes
	}
	if in.BufferTimeMinutes != nil {
		if *in.BufferTimeMinutes < 0 {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
		rec.BufferTimeMinutes = *in.BufferTimeMinutes
	}
	if in.AppointmentType != nil {
		t, err := domain.ParseAppointmentType(*in.AppointmentType)
		if err != nil {
			return nil, err
		}
		rec.AppointmentType = string(t)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
		rec.Price = in.Price
	}
	if in.Location != nil {
		rec.Location = *in.Location
	}
	if in.Description != nil {
		rec.Description = *in.Description
	}
	if in.IsActive != nil {
		rec.IsActive = *in.IsActive
	}
	if in.Preferences != nil {
		rec.SchedulingPreferences = *in.Preferences
	}

	// --------------------------------------------------
	// 4. Window changes must not collide with siblings
	// --------------------------------------------------
	if in.touchesSlotTiming() {
		if err := uc.repo.AssertNoAvailabilityOverlap(
			ctx,
			rec.ProviderID,
			rec.AvailabilityDate,
			rec.StartTime,
			rec.EndTime,
			&rec.ID,
		); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.UpdateAvailability(ctx, rec); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Optional slot regeneration
	// --------------------------------------------------
	if in.RegenerateSlots && !hasBooked {
		slots, err := domain.GenerateSlots(rec)
		if err != nil {
			return nil, err
		}
		if err := uc.repo.ReplaceSlots(ctx, rec.ID, slots); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		ActorType: audit.ActorProvider,
		ActorID:   &in.ProviderID,
		Action:    "availability_updated",
		Entity:    "availability",
		EntityID:  &rec.ID,
	})

	return rec, nil
}
