package schedule

import (
	"testing"
	"time"

	"github.com/health-first/health-first-server/internal/httperr"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestExpandDatesNone(t *testing.T) {
	start := mustDate(t, "2026-03-02")

	dates, err := ExpandDates(RecurrenceNone, start, time.Time{}, nil)
	if err != nil {
		t.Fatalf("ExpandDates: %v", err)
	}
	if len(dates) != 1 || !dates[0].Equal(start) {
		t.Fatalf("expected single start date, got %v", dates)
	}
}

func TestExpandDatesDaily(t *testing.T) {
	start := mustDate(t, "2026-03-02")
	end := mustDate(t, "2026-03-08")

	dates, err := ExpandDates(RecurrenceDaily, start, end, nil)
	if err != nil {
		t.Fatalf("ExpandDates: %v", err)
	}
	if len(dates) != 7 {
		t.Fatalf("expected 7 dates inclusive of both ends, got %d", len(dates))
	}
	if !dates[0].Equal(start) || !dates[6].Equal(end) {
		t.Fatalf("range ends wrong: first=%v last=%v", dates[0], dates[6])
	}
}

func TestExpandDatesWeeklyMatchesDaily(t *testing.T) {
	start := mustDate(t, "2026-03-02")
	end := mustDate(t, "2026-03-08")

	daily, err := ExpandDates(RecurrenceDaily, start, end, nil)
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	weekly, err := ExpandDates(RecurrenceWeekly, start, end, nil)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if len(weekly) != len(daily) {
		t.Fatalf("weekly produced %d dates, daily %d", len(weekly), len(daily))
	}
}

func TestExpandDatesWeekdays(t *testing.T) {
	// 2026-03-02 is a Monday.
	start := mustDate(t, "2026-03-02")
	end := mustDate(t, "2026-03-08")

	dates, err := ExpandDates(RecurrenceWeekdays, start, end, nil)
	if err != nil {
		t.Fatalf("ExpandDates: %v", err)
	}
	if len(dates) != 5 {
		t.Fatalf("expected Mon-Fri, got %d dates", len(dates))
	}
	for _, d := range dates {
		if ISOWeekday(d) > 5 {
			t.Fatalf("weekend date %v in WEEKDAYS expansion", d)
		}
	}
}

func TestExpandDatesWeekends(t *testing.T) {
	start := mustDate(t, "2026-03-02")
	end := mustDate(t, "2026-03-15")

	dates, err := ExpandDates(RecurrenceWeekends, start, end, nil)
	if err != nil {
		t.Fatalf("ExpandDates: %v", err)
	}
	if len(dates) != 4 {
		t.Fatalf("expected 2 weekends = 4 dates, got %d", len(dates))
	}
	for _, d := range dates {
		if ISOWeekday(d) <= 5 {
			t.Fatalf("weekday date %v in WEEKENDS expansion", d)
		}
	}
}

func TestExpandDatesCustom(t *testing.T) {
	start := mustDate(t, "2026-03-02")
	end := mustDate(t, "2026-03-08")

	dates, err := ExpandDates(RecurrenceCustom, start, end, []int{1, 3})
	if err != nil {
		t.Fatalf("ExpandDates: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("expected Monday and Wednesday only, got %d dates", len(dates))
	}
	if ISOWeekday(dates[0]) != 1 || ISOWeekday(dates[1]) != 3 {
		t.Fatalf("wrong weekdays: %v", dates)
	}
}

func TestExpandDatesCustomEmptySet(t *testing.T) {
	start := mustDate(t, "2026-03-02")
	end := mustDate(t, "2026-03-08")

	if _, err := ExpandDates(RecurrenceCustom, start, end, nil); !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("expected validation error for empty weekday set, got %v", err)
	}
}

func TestExpandDatesEndBeforeStart(t *testing.T) {
	start := mustDate(t, "2026-03-08")
	end := mustDate(t, "2026-03-02")

	if _, err := ExpandDates(RecurrenceDaily, start, end, nil); !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestExpandDatesDefaultEnd(t *testing.T) {
	start := mustDate(t, "2026-01-15")

	dates, err := ExpandDates(RecurrenceDaily, start, time.Time{}, nil)
	if err != nil {
		t.Fatalf("ExpandDates: %v", err)
	}

	want := mustDate(t, "2026-07-15")
	last := dates[len(dates)-1]
	if !last.Equal(want) {
		t.Fatalf("default end should be start+6 months: got %v, want %v", last, want)
	}
}

func TestExpandDatesMonthly(t *testing.T) {
	start := mustDate(t, "2026-01-31")
	end := mustDate(t, "2026-04-30")

	dates, err := ExpandDates(RecurrenceMonthly, start, end, nil)
	if err != nil {
		t.Fatalf("ExpandDates: %v", err)
	}
	// Jan 31 -> Feb 28 (clamped) -> Mar 28 -> Apr 28.
	if len(dates) != 4 {
		t.Fatalf("expected 4 monthly dates, got %d: %v", len(dates), dates)
	}
	if !dates[1].Equal(mustDate(t, "2026-02-28")) {
		t.Fatalf("expected clamp to Feb 28, got %v", dates[1])
	}
}

func TestISOWeekdaySunday(t *testing.T) {
	sunday := mustDate(t, "2026-03-08")
	if got := ISOWeekday(sunday); got != 7 {
		t.Fatalf("Sunday should map to 7, got %d", got)
	}
}

func TestParseWeekdays(t *testing.T) {
	days, err := ParseWeekdays("1,3,5")
	if err != nil {
		t.Fatalf("ParseWeekdays: %v", err)
	}
	if len(days) != 3 || days[0] != 1 || days[1] != 3 || days[2] != 5 {
		t.Fatalf("unexpected days: %v", days)
	}

	if _, err := ParseWeekdays("0,8"); err == nil {
		t.Fatal("expected error for out-of-range weekday")
	}

	if got := FormatWeekdays(days); got != "1,3,5" {
		t.Fatalf("FormatWeekdays = %q", got)
	}
}
