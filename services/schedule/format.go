package schedule

import (
	"fmt"
	"time"
)

var dutchWeekdays = [...]string{"zondag", "maandag", "dinsdag", "woensdag", "donderdag", "vrijdag", "zaterdag"}

var dutchMonths = [...]string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

// DayLabel formats a date the way the sign-up page does, e.g. "zondag 1 maart".
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%s %d %s", dutchWeekdays[t.Weekday()], t.Day(), dutchMonths[t.Month()-1])
}

// HourLabel formats the hour slot starting at hour, e.g. "11.00 - 12.00".
func HourLabel(hour int) string {
	return fmt.Sprintf("%d.00 - %d.00", hour, hour+1)
}
