package schedule

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)
	at := func(m int) time.Time { return base.Add(time.Duration(m) * time.Minute) }

	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     int
		want                           bool
	}{
		{"disjoint", 0, 30, 60, 90, false},
		{"touching boundaries do not conflict", 0, 30, 30, 60, false},
		{"partial overlap", 0, 45, 30, 90, true},
		{"containment", 0, 120, 30, 60, true},
		{"identical", 0, 30, 0, 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(at(tt.aStart), at(tt.aEnd), at(tt.bStart), at(tt.bEnd))
			if got != tt.want {
				t.Fatalf("Overlaps = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric.
			if rev := Overlaps(at(tt.bStart), at(tt.bEnd), at(tt.aStart), at(tt.aEnd)); rev != got {
				t.Fatalf("Overlaps not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestOverlapsClock(t *testing.T) {
	if OverlapsClock("09:00", "12:00", "12:00", "14:00") {
		t.Fatal("back-to-back windows must not overlap")
	}
	if !OverlapsClock("09:00", "12:00", "11:00", "14:00") {
		t.Fatal("expected overlap")
	}
	if !OverlapsClock("09:00", "17:00", "10:00", "11:00") {
		t.Fatal("contained window must overlap")
	}
}
