package availability

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

type CreateInput struct {
	ProviderID uuid.UUID

	Date      string // "2006-01-02" in Timezone
	StartTime string // "15:04"
	EndTime   string // "15:04"

	SlotDurationMinutes int
	BufferTimeMinutes   int
	AppointmentType     string
	Timezone            string

	Price       *float64
	Location    string
	Description string

	RecurrencePattern    string
	RecurrenceEndDate    string
	RecurrenceDaysOfWeek []int

	MaxConsecutiveSlots int

	Preferences models.SchedulingPreferences
}

type CreateOutput struct {
	Records      []models.AvailabilityRecord
	SlotsCreated int
}

// ======================================================
// USE CASE
// ======================================================

type Create struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreate(repo domain.Repository, audit *audit.Dispatcher) *Create {
	return &Create{repo: repo, audit: audit}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Create) Execute(ctx context.Context, in CreateInput) (*CreateOutput, error) {

	// --------------------------------------------------
	// 1. Provider must exist and be active
	// --------------------------------------------------
	provider, err := uc.repo.GetProviderByID(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}
	if !provider.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeOwnership)
	}

	// --------------------------------------------------
	// 2. Field validation
	// --------------------------------------------------
	if err := validateWindow(in.Date, in.StartTime, in.EndTime, in.Timezone); err != nil {
		return nil, err
	}
	if in.SlotDurationMinutes <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if in.BufferTimeMinutes < 0 {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	apptType, err := domain.ParseAppointmentType(in.AppointmentType)
	if err != nil {
		return nil, err
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	// --------------------------------------------------
	// 3. Recurrence expansion
	// --------------------------------------------------
	pattern, err := domain.ParseRecurrencePattern(in.RecurrencePattern)
	if err != nil {
		return nil, err
	}

	startDate, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	var endDate = startDate
	if in.RecurrenceEndDate != "" {
		endDate, err = domain.ParseDate(in.RecurrenceEndDate)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeValidation)
		}
	} else if pattern != domain.RecurrenceNone {
		endDate = domain.DefaultRecurrenceEnd(startDate)
	}

	dates, err := domain.ExpandDates(pattern, startDate, endDate, in.RecurrenceDaysOfWeek)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Overlap check on the requested date
	// --------------------------------------------------
	if err := uc.repo.AssertNoAvailabilityOverlap(
		ctx,
		in.ProviderID,
		in.Date,
		in.StartTime,
		in.EndTime,
		nil,
	); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Build records + slots for every matching date
	// --------------------------------------------------
	tz := in.Timezone
	if tz == "" {
		tz = timezone.DefaultTimezone
	}

	records := make([]models.AvailabilityRecord, 0, len(dates))
	var slots []models.AppointmentSlot

	for _, d := range dates {
		rec := models.AvailabilityRecord{
			ID:                    uuid.New(),
			ProviderID:            in.ProviderID,
			AvailabilityDate:      d.Format(domain.DateLayout),
			StartTime:             in.StartTime,
			EndTime:               in.EndTime,
			SlotDurationMinutes:   in.SlotDurationMinutes,
			BufferTimeMinutes:     in.BufferTimeMinutes,
			AppointmentType:       string(apptType),
			Timezone:              tz,
			Price:                 in.Price,
			Location:              in.Location,
			Description:           in.Description,
			RecurrencePattern:     string(pattern),
			RecurrenceDaysOfWeek:  domain.FormatWeekdays(in.RecurrenceDaysOfWeek),
			IsActive:              true,
			MaxConsecutiveSlots:   in.MaxConsecutiveSlots,
			SchedulingPreferences: in.Preferences,
		}
		if pattern != domain.RecurrenceNone {
			rec.RecurrenceEndDate = endDate.Format(domain.DateLayout)
		}

		recSlots, err := domain.GenerateSlots(&rec)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
		slots = append(slots, recSlots...)
	}

	// --------------------------------------------------
	// 6. Persist batch atomically
	// --------------------------------------------------
	if err := uc.repo.SaveAvailabilityBatch(ctx, records, slots); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ActorType: audit.ActorProvider,
		ActorID:   &in.ProviderID,
		Action:    "availability_created",
		Entity:    "availability",
		EntityID:  &records[0].ID,
		Metadata: map[string]any{
			"dates": len(records),
			"slots": len(slots),
		},
	})

	return &CreateOutput{
		Records:      records,
		SlotsCreated: len(slots),
	}, nil
}

// validateWindow rejects malformed date/clock strings, inverted
// windows, unknown timezones and dates in the past.
func validateWindow(date, startTime, endTime, tz string) error {
	if _, err := domain.ParseDate(date); err != nil {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	if _, err := domain.ParseClock(startTime); err != nil {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	if _, err := domain.ParseClock(endTime); err != nil {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	if endTime <= startTime {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	if tz != "" && !timezone.IsValid(tz) {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}

	today := timezone.NowIn(tz).Format(domain.DateLayout)
	if date < today {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	return nil
}
