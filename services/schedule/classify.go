package schedule

import (
	"time"

	"gebedsrooster/models"
)

// Classify derives the state of the hour slot starting at datetime. It is
// pure: callers re-run it whenever now or the registration snapshot changes.
func Classify(datetime time.Time, rng models.CampaignRange, registrations []models.Registration, now time.Time, hours HourWindow) models.HourSlot {
	end := datetime.Add(time.Hour)
	return models.HourSlot{
		Datetime: datetime,
		IsDisabled: datetime.Before(rng.Start) ||
			datetime.After(rng.End) ||
			!hours.Allows(datetime.Hour()),
		IsHistory:     now.After(end),
		IsActive:      !now.Before(datetime) && now.Before(end),
		Registrations: RegistrationsAt(datetime, registrations),
	}
}

// RegistrationsAt returns the registrations whose hour-truncated date equals
// datetime to the millisecond, in snapshot order.
func RegistrationsAt(datetime time.Time, registrations []models.Registration) []models.Registration {
	var matched []models.Registration
	want := datetime.UnixMilli()
	for _, r := range registrations {
		if TruncateToHour(r.Date.In(datetime.Location())).UnixMilli() == want {
			matched = append(matched, r)
		}
	}
	return matched
}

// TruncateToHour zeroes minutes, seconds and sub-second parts of the wall
// clock in t's own location.
func TruncateToHour(t time.Time) time.Time {
	return t.Add(-(time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())))
}
