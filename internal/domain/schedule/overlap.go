package schedule

import "time"

// Overlaps reports whether [aStart, aEnd) intersects [bStart, bEnd).
// Half-open intervals: a window ending exactly when another begins does
// not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OverlapsClock is Overlaps for zero-padded "15:04" strings on the
// same calendar date. Lexicographic comparison is ordering-correct for
// this layout.
func OverlapsClock(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}
