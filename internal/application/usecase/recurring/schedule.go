// Package recurring contains fixed recurring entry use cases: template
// management, occurrence synchronization, and the apply/cancel workflow.
package recurring

import "time"

// MonthStart returns the first day of the month containing the given date,
// at midnight UTC. Period months are always stored in this form.
func MonthStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// ResolveOccursOn maps a template's day-of-month rule onto a concrete month.
// With useEndOfMonth the day is clamped to the month's last day, so rules for
// days 29-31 land on Feb 28 (or 29 in leap years), Apr 30, and so on. Without
// clamping the day is used as-is; template validation keeps it within 1-28.
func ResolveOccursOn(year int, month time.Month, dayOfMonth int, useEndOfMonth bool) time.Time {
	day := dayOfMonth
	if useEndOfMonth {
		if last := daysInMonth(year, month); day > last {
			day = last
		}
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	// Day 0 of the following month normalizes to this month's last day.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// monthsThrough returns every month start from first through last inclusive.
// It returns nil when last precedes first.
func monthsThrough(first, last time.Time) []time.Time {
	first = MonthStart(first)
	last = MonthStart(last)

	var months []time.Time
	for current := first; !current.After(last); current = current.AddDate(0, 1, 0) {
		months = append(months, current)
	}
	return months
}
