package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/health-first/health-first-server/internal/domain/schedule"
	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/models"
	"github.com/health-first/health-first-server/internal/timezone"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	StatusAll      = "all"
	StatusUpcoming = "upcoming"
	StatusPast     = "past"
)

type ListInput struct {
	Page int
	Size int

	// all | upcoming | past; empty means all. Cancelled bookings are
	// never listed: cancellation releases the slot and clears the
	// patient link.
	Status string

	// Optional explicit window; combined with Status bounds.
	StartDate *time.Time
	EndDate   *time.Time
}

type ListOutput struct {
	Appointments []models.AppointmentSlot
	Total        int64
	Page         int
	Size         int
}

type List struct {
	repo domain.Repository
}

func NewList(repo domain.Repository) *List {
	return &List{repo: repo}
}

// normalize clamps paging and turns the status keyword into time
// bounds relative to now.
func (in *ListInput) normalize() error {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Size <= 0 {
		in.Size = defaultPageSize
	}
	if in.Size > maxPageSize {
		in.Size = maxPageSize
	}

	now := timezone.Now()
	switch in.Status {
	case "", StatusAll:
	case StatusUpcoming:
		if in.StartDate == nil || in.StartDate.Before(now) {
			in.StartDate = &now
		}
	case StatusPast:
		if in.EndDate == nil || in.EndDate.After(now) {
			in.EndDate = &now
		}
	default:
		return httperr.ErrBusiness(httperr.CodeValidation)
	}

	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	return nil
}

// ForPatient lists a patient's booked appointments, soonest first.
func (uc *List) ForPatient(ctx context.Context, patientID uuid.UUID, in ListInput) (*ListOutput, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	slots, total, err := uc.repo.ListPatientAppointments(ctx, patientID, in.StartDate, in.EndDate, in.Page, in.Size)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Appointments: slots, Total: total, Page: in.Page, Size: in.Size}, nil
}

// ForProvider lists a provider's booked appointments with an optional
// date window.
func (uc *List) ForProvider(ctx context.Context, providerID uuid.UUID, in ListInput) (*ListOutput, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	slots, total, err := uc.repo.ListProviderAppointments(ctx, providerID, in.StartDate, in.EndDate, in.Page, in.Size)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Appointments: slots, Total: total, Page: in.Page, Size: in.Size}, nil
}
