package search

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/health-first/health-first-server/internal/domain/schedule"
	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/models"
)

const (
	DefaultMaxResults = 50
	HardResultCap     = 100

	SortByStartTime = "startTime"
	SortByPrice     = "price"
)

// ======================================================
// INPUT
// ======================================================

type Input struct {
	StartDate string // "2006-01-02", required
	EndDate   string // "2006-01-02", required

	// Optional "15:04" window applied to each slot's UTC start time.
	PreferredStartTime string
	PreferredEndTime   string

	ProviderIDs     []uuid.UUID
	Specialization  string
	Location        string
	AppointmentType string

	MinSlotDurationMinutes int
	MaxSlotDurationMinutes int

	MinPrice *float64
	MaxPrice *float64

	SortBy     string
	Ascending  *bool
	MaxResults int
}

type Output struct {
	Slots   []models.AppointmentSlot
	Total   int
	HasMore bool
}

// ======================================================
// USE CASE
// ======================================================

type Search struct {
	repo domain.Repository
}

func NewSearch(repo domain.Repository) *Search {
	return &Search{repo: repo}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute retrieves candidate slots by the narrowest criterion the
// request carries (specific providers, then appointment type, then
// price range, then everything in range), applies the remaining
// filters in memory, and returns a sorted, capped page.
func (uc *Search) Execute(ctx context.Context, in Input) (*Output, error) {

	// --------------------------------------------------
	// 1. Date range
	// --------------------------------------------------
	startDate, err := domain.ParseDate(in.StartDate)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	endDate, err := domain.ParseDate(in.EndDate)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}
	if endDate.Before(startDate) {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	start := startDate
	end := endDate.AddDate(0, 0, 1) // whole last day, half-open

	// --------------------------------------------------
	// 2. Candidate retrieval
	// --------------------------------------------------
	var apptType string
	if in.AppointmentType != "" {
		t, err := domain.ParseAppointmentType(in.AppointmentType)
		if err != nil {
			return nil, err
		}
		apptType = string(t)
	}

	var slots []models.AppointmentSlot
	switch {
	case len(in.ProviderIDs) > 0:
		slots, err = uc.repo.ListAvailableSlotsByProviders(ctx, in.ProviderIDs, start, end)
	case apptType != "":
		slots, err = uc.repo.ListAvailableSlotsByType(ctx, apptType, start, end)
	case in.MinPrice != nil || in.MaxPrice != nil:
		slots, err = uc.repo.ListAvailableSlotsByPrice(ctx, in.MinPrice, in.MaxPrice, start, end)
	default:
		slots, err = uc.repo.ListAvailableSlots(ctx, start, end)
	}
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Remaining filters, all AND'd
	// --------------------------------------------------
	filtered := slots[:0]
	for _, s := range slots {
		if matches(&s, in, apptType) {
			filtered = append(filtered, s)
		}
	}

	// --------------------------------------------------
	// 4. Sort + cap
	// --------------------------------------------------
	asc := in.Ascending == nil || *in.Ascending
	sortSlots(filtered, in.SortBy, asc)

	limit := in.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	if limit > HardResultCap {
		limit = HardResultCap
	}

	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	// A full page means more results are likely.
	return &Output{
		Slots:   filtered,
		Total:   len(filtered),
		HasMore: len(filtered) == limit,
	}, nil
}

func matches(s *models.AppointmentSlot, in Input, apptType string) bool {
	if apptType != "" && s.AppointmentType != apptType {
		return false
	}

	if len(in.ProviderIDs) > 0 {
		found := false
		for _, id := range in.ProviderIDs {
			if s.ProviderID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if in.PreferredStartTime != "" && in.PreferredEndTime != "" {
		clock := s.StartAt.UTC().Format(domain.TimeLayout)
		if clock < in.PreferredStartTime || clock > in.PreferredEndTime {
			return false
		}
	}

	if in.Specialization != "" {
		if !strings.EqualFold(s.Provider.Specialization, in.Specialization) {
			return false
		}
	}

	if in.Location != "" && s.Location != "" {
		if !strings.Contains(strings.ToLower(s.Location), strings.ToLower(in.Location)) {
			return false
		}
	}

	if in.MinSlotDurationMinutes > 0 || in.MaxSlotDurationMinutes > 0 {
		mins := int(s.EndAt.Sub(s.StartAt) / time.Minute)
		if in.MinSlotDurationMinutes > 0 && mins < in.MinSlotDurationMinutes {
			return false
		}
		if in.MaxSlotDurationMinutes > 0 && mins > in.MaxSlotDurationMinutes {
			return false
		}
	}

	if in.MinPrice != nil && (s.Price == nil || *s.Price < *in.MinPrice) {
		return false
	}
	if in.MaxPrice != nil && (s.Price == nil || *s.Price > *in.MaxPrice) {
		return false
	}

	return true
}

// sortSlots orders stably so equal keys keep retrieval order. Slots
// without a price sort last under price ordering.
func sortSlots(slots []models.AppointmentSlot, sortBy string, asc bool) {
	less := func(i, j int) bool {
		return slots[i].StartAt.Before(slots[j].StartAt)
	}

	if sortBy == SortByPrice {
		less = func(i, j int) bool {
			pi, pj := slots[i].Price, slots[j].Price
			switch {
			case pi == nil && pj == nil:
				return false
			case pi == nil:
				return false
			case pj == nil:
				return true
			default:
				return *pi < *pj
			}
		}
	}

	if asc {
		sort.SliceStable(slots, less)
		return
	}
	sort.SliceStable(slots, func(i, j int) bool { return less(j, i) })
}
