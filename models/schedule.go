package models

import "time"

// CampaignRange is the configured start and end of the event.
type CampaignRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NormalizedRange is a CampaignRange widened to whole weeks.
type NormalizedRange struct {
	WeekStart time.Time `json:"weekStart"`
	WeekEnd   time.Time `json:"weekEnd"`
}

// WeekSlot is one calendar week inside a NormalizedRange.
type WeekSlot struct {
	WeekStartDate time.Time `json:"weekStartDate"`
	WeekEndDate   time.Time `json:"weekEndDate"`
	WeekNumber    int       `json:"weekNumber"`
}

// SlotState is the rendering state of an hour slot.
type SlotState string

const (
	SlotUnavailable SlotState = "unavailable"
	SlotHistory     SlotState = "history"
	SlotRegistered  SlotState = "registered"
	SlotActive      SlotState = "active"
	SlotAvailable   SlotState = "available"
)

// SlotAction is what a click on a slot opens.
type SlotAction string

const (
	ActionNone          SlotAction = ""
	ActionSignUp        SlotAction = "signup"
	ActionRegistrations SlotAction = "registrations"
)

// HourSlot is one clock hour on one day.
type HourSlot struct {
	Datetime      time.Time      `json:"datetime"`
	IsDisabled    bool           `json:"isDisabled"`
	IsHistory     bool           `json:"isHistory"`
	IsActive      bool           `json:"isActive"`
	Registrations []Registration `json:"-"`
}

// State applies the precedence disabled > history > registered > active > available.
func (h HourSlot) State() SlotState {
	switch {
	case h.IsDisabled:
		return SlotUnavailable
	case h.IsHistory:
		return SlotHistory
	case len(h.Registrations) > 0:
		return SlotRegistered
	case h.IsActive:
		return SlotActive
	default:
		return SlotAvailable
	}
}

// Action reports which dialog a click opens. Disabled and past slots do not
// accept clicks.
func (h HourSlot) Action() SlotAction {
	if h.IsDisabled || h.IsHistory {
		return ActionNone
	}
	if len(h.Registrations) > 0 {
		return ActionRegistrations
	}
	return ActionSignUp
}

// Registrant returns the name shown in the cell: the earliest registration.
func (h HourSlot) Registrant() string {
	if len(h.Registrations) == 0 {
		return ""
	}
	return h.Registrations[0].Name
}

// Occupancy summarises how many hours have at least one registration.
type Occupancy struct {
	HoursBusy  int `json:"hoursBusy"`
	HoursTotal int `json:"hoursTotal"`
	Percentage int `json:"percentage"`
}

// HourCell is the JSON shape of a classified HourSlot.
type HourCell struct {
	Datetime           time.Time  `json:"datetime"`
	State              SlotState  `json:"state"`
	Action             SlotAction `json:"action,omitempty"`
	IsActive           bool       `json:"isActive"`
	Registrant         string     `json:"registrant,omitempty"`
	RegistrationsCount int        `json:"registrationsCount"`
}

// HourRow is one hour-of-day across the seven days of a week.
type HourRow struct {
	Hour  int        `json:"hour"`
	Label string     `json:"label"`
	Cells []HourCell `json:"cells"`
}

// DayHeader is one column title of a week table.
type DayHeader struct {
	Date    time.Time `json:"date"`
	InRange bool      `json:"inRange"`
}

// WeekView is a rendered WeekSlot.
type WeekView struct {
	WeekSlot
	Hidden bool        `json:"hidden"`
	Days   []DayHeader `json:"days"`
	Rows   []HourRow   `json:"rows"`
}

// ScheduleView is everything the sign-up page needs in one response.
type ScheduleView struct {
	Campaign    CampaignRange `json:"campaign"`
	HasEnded    bool          `json:"hasEnded"`
	Occupancy   Occupancy     `json:"occupancy"`
	Weeks       []WeekView    `json:"weeks"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// DateOption is one selectable day of the quick sign-up form with its open hours.
type DateOption struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
	Hours []int     `json:"hours"`
}

// SlotDetail is one slot with the registrations behind it, for the
// registrations dialog.
type SlotDetail struct {
	Cell          HourCell             `json:"cell"`
	Registrations []PublicRegistration `json:"registrations"`
}
