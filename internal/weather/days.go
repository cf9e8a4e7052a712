package weather

import (
	"iter"
	"time"
)

// ResolveYear returns the year of the most recent occurrence of month that has
// started by now. A month later in the calendar than now's month resolves to last year.
func ResolveYear(month time.Month, now time.Time) int {
	if now.Month() < month {
		return now.Year() - 1
	}
	return now.Year()
}

// DaysOfMonth yields the start of each day of the resolved month, in now's location.
//
// The walk stops before the start of the month's final day, so the last calendar
// day is never produced. Callers rely on that range; do not widen it here.
// The current month is produced in full even though later days have not happened yet.
func DaysOfMonth(month time.Month, now time.Time) iter.Seq[time.Time] {
	loc := now.Location()
	startOfMonth := time.Date(ResolveYear(month, now), month, 1, 0, 0, 0, 0, loc)
	lastDay := startOfMonth.AddDate(0, 1, -1)

	return func(yield func(time.Time) bool) {
		for day := startOfMonth; day.Before(lastDay); day = day.AddDate(0, 0, 1) {
			if !yield(day) {
				return
			}
		}
	}
}
