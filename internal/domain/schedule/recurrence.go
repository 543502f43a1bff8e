package schedule

import (
	"time"

	"github.com/health-first/health-first-server/internal/httperr"
)

// DefaultRecurrenceMonths bounds open-ended recurring availability.
const DefaultRecurrenceMonths = 6

// DefaultRecurrenceEnd is the implicit end date for a recurring record
// created without one.
func DefaultRecurrenceEnd(start time.Time) time.Time {
	return plusMonths(start, DefaultRecurrenceMonths)
}

// ExpandDates produces the ordered set of calendar dates on which an
// availability record repeats, inclusive of both start and end. end may
// be zero for recurring patterns, in which case it defaults to start
// plus DefaultRecurrenceMonths.
//
// WEEKLY currently behaves like DAILY (every date in range). Product
// has not confirmed whether it should step by 7 days instead, so the
// established behavior is kept.
//
// custom holds ISO weekday numbers (1=Monday..7=Sunday) and is required
// for CUSTOM, ignored otherwise.
func ExpandDates(pattern RecurrencePattern, start, end time.Time, custom []int) ([]time.Time, error) {
	if pattern == RecurrenceNone || pattern == "" {
		return []time.Time{start}, nil
	}

	if pattern == RecurrenceCustom && len(custom) == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	if end.IsZero() {
		end = DefaultRecurrenceEnd(start)
	}
	if end.Before(start) {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	customSet := make(map[int]bool, len(custom))
	for _, d := range custom {
		customSet[d] = true
	}

	var dates []time.Time
	for cur := start; !cur.After(end); cur = nextDate(cur, pattern) {
		if matchesPattern(cur, pattern, customSet) {
			dates = append(dates, cur)
		}
	}
	return dates, nil
}

func matchesPattern(date time.Time, pattern RecurrencePattern, custom map[int]bool) bool {
	switch pattern {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	case RecurrenceWeekdays:
		return ISOWeekday(date) <= 5
	case RecurrenceWeekends:
		return ISOWeekday(date) > 5
	case RecurrenceCustom:
		return custom[ISOWeekday(date)]
	}
	return false
}

func nextDate(cur time.Time, pattern RecurrencePattern) time.Time {
	if pattern == RecurrenceMonthly {
		return plusMonths(cur, 1)
	}
	return cur.AddDate(0, 0, 1)
}

// plusMonths adds calendar months, clamping to the last day of the
// target month rather than letting Go's AddDate roll over (Jan 31 + 1
// month is Feb 28/29, not Mar 2/3).
func plusMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}
