package schedule

import (
	"time"

	"gebedsrooster/models"
)

// Grid computes the sign-up calendar for one campaign. It holds configuration
// only; registrations and the current time are passed to every call.
type Grid struct {
	rng      models.CampaignRange
	norm     models.NormalizedRange
	weekDay  WeekStartDay
	rounding RoundingMode
	hours    HourWindow
	loc      *time.Location
}

// NewGrid validates opts and normalizes the campaign range.
func NewGrid(opts Options) (*Grid, error) {
	loc := opts.Location
	if loc == nil {
		loc = opts.Range.Start.Location()
	}
	hours := FullDay()
	if opts.Hours != nil {
		hours = *opts.Hours
	}
	if err := hours.validate(); err != nil {
		return nil, err
	}
	weekDay := opts.WeekStartDay
	if weekDay == "" {
		weekDay = WeekStartMonday
	}
	rounding := opts.Rounding
	if rounding == "" {
		rounding = RoundCeil
	}

	rng := models.CampaignRange{
		Start: opts.Range.Start.In(loc),
		End:   opts.Range.End.In(loc),
	}
	norm, err := Normalize(rng.Start, rng.End, weekDay)
	if err != nil {
		return nil, err
	}

	return &Grid{
		rng:      rng,
		norm:     norm,
		weekDay:  weekDay,
		rounding: rounding,
		hours:    hours,
		loc:      loc,
	}, nil
}

func (g *Grid) Range() models.CampaignRange        { return g.rng }
func (g *Grid) Normalized() models.NormalizedRange { return g.norm }
func (g *Grid) Location() *time.Location           { return g.loc }

// Weeks enumerates the weeks of the normalized range.
func (g *Grid) Weeks() []models.WeekSlot {
	return EnumerateWeeks(g.norm)
}

// HasEnded reports whether the campaign is over at now.
func (g *Grid) HasEnded(now time.Time) bool {
	return !g.rng.End.After(now)
}

// Classify classifies the slot containing datetime.
func (g *Grid) Classify(datetime time.Time, registrations []models.Registration, now time.Time) models.HourSlot {
	return Classify(TruncateToHour(datetime.In(g.loc)), g.rng, registrations, now, g.hours)
}

// Occupancy aggregates the campaign occupancy.
func (g *Grid) Occupancy(registrations []models.Registration) models.Occupancy {
	return ComputeOccupancy(g.rng, registrations, g.rounding)
}

// Build renders every week of the campaign. Weeks whose last day is over,
// and all weeks once the campaign has ended, are marked hidden and left out
// unless includeHidden is set.
func (g *Grid) Build(registrations []models.Registration, now time.Time, includeHidden bool) models.ScheduleView {
	ended := g.HasEnded(now)
	view := models.ScheduleView{
		Campaign:    g.rng,
		HasEnded:    ended,
		Occupancy:   g.Occupancy(registrations),
		GeneratedAt: now,
	}

	for _, week := range g.Weeks() {
		first := g.midnight(week.WeekStartDate)
		hidden := ended || !first.AddDate(0, 0, 7).After(now)
		if hidden && !includeHidden {
			continue
		}
		view.Weeks = append(view.Weeks, g.buildWeek(week, first, hidden, registrations, now))
	}
	return view
}

func (g *Grid) buildWeek(week models.WeekSlot, first time.Time, hidden bool, registrations []models.Registration, now time.Time) models.WeekView {
	wv := models.WeekView{
		WeekSlot: week,
		Hidden:   hidden,
		Days:     make([]models.DayHeader, 7),
	}
	for x := range 7 {
		day := first.AddDate(0, 0, x)
		wv.Days[x] = models.DayHeader{Date: day, InRange: day.Before(g.rng.End)}
	}

	for h := g.hours.DailyStartHour; h <= g.hours.DailyEndHour; h++ {
		row := models.HourRow{Hour: h, Label: HourLabel(h), Cells: make([]models.HourCell, 7)}
		for x := range 7 {
			datetime := time.Date(first.Year(), first.Month(), first.Day()+x, h, 0, 0, 0, g.loc)
			slot := Classify(datetime, g.rng, registrations, now, g.hours)
			row.Cells[x] = Cell(slot)
		}
		wv.Rows = append(wv.Rows, row)
	}
	return wv
}

// SlotOptions lists, for every day from max(start, now) up to the campaign
// end, the hours that still accept a sign-up.
func (g *Grid) SlotOptions(now time.Time) []models.DateOption {
	from := g.rng.Start
	if now.After(from) {
		from = now.In(g.loc)
	}
	last := g.midnight(g.rng.End)

	var options []models.DateOption
	for day := g.midnight(from); !day.After(last); day = day.AddDate(0, 0, 1) {
		opt := models.DateOption{Date: day, Label: DayLabel(day)}
		for h := range 24 {
			slot := Classify(time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, g.loc), g.rng, nil, now, g.hours)
			if !slot.IsDisabled && !slot.IsHistory {
				opt.Hours = append(opt.Hours, h)
			}
		}
		if len(opt.Hours) > 0 {
			options = append(options, opt)
		}
	}
	return options
}

// SlotTime returns the start of hour on the given calendar day in the
// campaign's location.
func (g *Grid) SlotTime(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, g.loc)
}

func (g *Grid) midnight(t time.Time) time.Time {
	t = t.In(g.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, g.loc)
}

// Cell is the JSON shape of a classified slot.
func Cell(slot models.HourSlot) models.HourCell {
	return models.HourCell{
		Datetime:           slot.Datetime,
		State:              slot.State(),
		Action:             slot.Action(),
		IsActive:           slot.IsActive,
		Registrant:         slot.Registrant(),
		RegistrationsCount: len(slot.Registrations),
	}
}
