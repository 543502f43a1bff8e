package schedule

import (
	"time"

	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/models"
	"github.com/health-first/health-first-server/internal/timezone"
)

// Window converts a record's local date and clock strings into the UTC
// instants bounding its bookable window.
func Window(rec *models.AvailabilityRecord) (start, end time.Time, err error) {
	date, err := ParseDate(rec.AvailabilityDate)
	if err != nil {
		return time.Time{}, time.Time{}, httperr.ErrBusiness(httperr.CodeValidation)
	}
	from, err := ParseClock(rec.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, httperr.ErrBusiness(httperr.CodeValidation)
	}
	to, err := ParseClock(rec.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, httperr.ErrBusiness(httperr.CodeValidation)
	}

	loc := timezone.Location(rec.Timezone)
	start = time.Date(date.Year(), date.Month(), date.Day(),
		from.Hour(), from.Minute(), 0, 0, loc).UTC()
	end = time.Date(date.Year(), date.Month(), date.Day(),
		to.Hour(), to.Minute(), 0, 0, loc).UTC()
	return start, end, nil
}

// GenerateSlots cuts the record's window into bookable slots of
// SlotDurationMinutes each, advancing by duration plus buffer. A slot
// is emitted only when it fits entirely inside the window, boundary
// included.
func GenerateSlots(rec *models.AvailabilityRecord) ([]models.AppointmentSlot, error) {
	start, end, err := Window(rec)
	if err != nil {
		return nil, err
	}

	dur := time.Duration(rec.SlotDurationMinutes) * time.Minute
	buffer := time.Duration(rec.BufferTimeMinutes) * time.Minute
	if dur <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	var slots []models.AppointmentSlot
	for cur := start; cur.Add(dur).Before(end) || cur.Add(dur).Equal(end); cur = cur.Add(dur + buffer) {
		slots = append(slots, models.AppointmentSlot{
			AvailabilityID:  rec.ID,
			ProviderID:      rec.ProviderID,
			StartAt:         cur,
			EndAt:           cur.Add(dur),
			AppointmentType: rec.AppointmentType,
			IsActive:        true,
			Price:           rec.Price,
			Location:        rec.Location,
		})
	}
	return slots, nil
}
