package schedule

import (
	"time"

	"gebedsrooster/models"
)

// Normalize widens [start, end] to whole weeks: start moves back to the
// previous (or same) first day of the week and end moves forward to the next
// (or same) last day. The time of day of both inputs is kept.
func Normalize(start, end time.Time, weekStart WeekStartDay) (models.NormalizedRange, error) {
	if start.After(end) {
		return models.NormalizedRange{}, &InvalidRangeError{Start: start, End: end}
	}

	back := (int(start.Weekday()) - int(weekStart.first()) + 7) % 7
	forward := (int(weekStart.last()) - int(end.Weekday()) + 7) % 7

	return models.NormalizedRange{
		WeekStart: start.AddDate(0, 0, -back),
		WeekEnd:   end.AddDate(0, 0, forward),
	}, nil
}

// EnumerateWeeks splits a normalized range into consecutive seven-day weeks,
// numbered from 1. Weeks are counted in calendar days, so a DST change inside
// the range does not add or drop a week. Every call builds a fresh slice.
func EnumerateWeeks(r models.NormalizedRange) []models.WeekSlot {
	last := civilDate(r.WeekEnd)
	if civilDate(r.WeekStart).After(last) {
		return nil
	}

	var weeks []models.WeekSlot
	for start := r.WeekStart; !civilDate(start).After(last); start = start.AddDate(0, 0, 7) {
		weeks = append(weeks, models.WeekSlot{
			WeekStartDate: start,
			WeekEndDate:   start.AddDate(0, 0, 6),
			WeekNumber:    len(weeks) + 1,
		})
	}
	return weeks
}

// civilDate projects the wall-clock date of t onto UTC midnight.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
