// Package timecalc holds the calendar arithmetic the attendance core relies
// on. All day bucketing uses the organization's fixed local timezone,
// regardless of the timezone timestamps are stored in.
package timecalc

import (
	"math"
	"time"
)

// DateOnly truncates t to midnight of its calendar day in loc, returned in loc.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DayBounds returns the [start, end) instants of the calendar day t falls on
// in loc. Using AddDate keeps the bounds correct across DST transitions.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := DateOnly(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// MonthBounds returns the [start, end) instants of the given calendar month in loc.
func MonthBounds(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// SameDate reports whether a and b fall on the same calendar day in loc.
func SameDate(a, b time.Time, loc *time.Location) bool {
	return DateOnly(a, loc).Equal(DateOnly(b, loc))
}

// RemainingBreakMinutes returns how many whole minutes are still missing from
// a minimum break of minBreakMinutes when elapsed has already passed, rounding
// any fraction up. Returns 0 when the break requirement is met.
func RemainingBreakMinutes(elapsed time.Duration, minBreakMinutes int) int {
	remaining := float64(minBreakMinutes) - elapsed.Minutes()
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining))
}
