package schedule

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"gebedsrooster/models"
)

// WeekStartDay selects the first column of every week.
type WeekStartDay string

const (
	WeekStartMonday WeekStartDay = "monday"
	WeekStartSunday WeekStartDay = "sunday"
)

// ParseWeekStartDay accepts "monday" or "sunday", case-insensitively.
func ParseWeekStartDay(s string) (WeekStartDay, error) {
	switch d := WeekStartDay(strings.ToLower(strings.TrimSpace(s))); d {
	case WeekStartMonday, WeekStartSunday:
		return d, nil
	case "":
		return WeekStartMonday, nil
	default:
		return "", fmt.Errorf("unknown week start day %q", s)
	}
}

func (d WeekStartDay) first() time.Weekday {
	if d == WeekStartSunday {
		return time.Sunday
	}
	return time.Monday
}

func (d WeekStartDay) last() time.Weekday {
	return (d.first() + 6) % 7
}

// RoundingMode selects how the occupancy percentage is rounded.
type RoundingMode string

const (
	RoundCeil  RoundingMode = "ceil"
	RoundFloor RoundingMode = "floor"
)

// ParseRoundingMode accepts "ceil" or "floor", case-insensitively.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch m := RoundingMode(strings.ToLower(strings.TrimSpace(s))); m {
	case RoundCeil, RoundFloor:
		return m, nil
	case "":
		return RoundCeil, nil
	default:
		return "", fmt.Errorf("unknown rounding mode %q", s)
	}
}

// HourWindow restricts which hours of a day accept sign-ups.
type HourWindow struct {
	DailyStartHour int
	DailyEndHour   int
	BlockedHours   []int
}

// FullDay allows every hour.
func FullDay() HourWindow {
	return HourWindow{DailyStartHour: 0, DailyEndHour: 23}
}

// Allows reports whether hour lies inside the window and is not blocked.
func (w HourWindow) Allows(hour int) bool {
	if hour < w.DailyStartHour || hour > w.DailyEndHour {
		return false
	}
	return !slices.Contains(w.BlockedHours, hour)
}

func (w HourWindow) validate() error {
	if w.DailyStartHour < 0 || w.DailyEndHour > 23 || w.DailyStartHour > w.DailyEndHour {
		return fmt.Errorf("invalid daily hour window %d-%d", w.DailyStartHour, w.DailyEndHour)
	}
	for _, h := range w.BlockedHours {
		if h < 0 || h > 23 {
			return fmt.Errorf("invalid blocked hour %d", h)
		}
	}
	return nil
}

// Options configures a Grid.
type Options struct {
	Range        models.CampaignRange
	WeekStartDay WeekStartDay
	Rounding     RoundingMode
	// Hours restricts the daily sign-up window. Nil means FullDay.
	Hours *HourWindow
	// Location is the campaign's time zone. Defaults to the location of Range.Start.
	Location *time.Location
}
