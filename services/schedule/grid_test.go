package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"gebedsrooster/models"
)

type GridSuite struct {
	suite.Suite
	grid *Grid
}

func TestGridSuite(t *testing.T) {
	suite.Run(t, new(GridSuite))
}

func (s *GridSuite) SetupTest() {
	g, err := NewGrid(Options{Range: campaign, Location: time.UTC})
	s.Require().NoError(err)
	s.grid = g
}

func (s *GridSuite) TestBuildBeforeCampaign() {
	now := date(2020, time.February, 1, 0)
	regs := []models.Registration{reg("a", date(2020, time.March, 1, 11)), reg("b", date(2020, time.March, 1, 11))}

	view := s.grid.Build(regs, now, false)
	s.False(view.HasEnded)
	s.Require().Len(view.Weeks, 4)
	for i, w := range view.Weeks {
		s.Equal(i+1, w.WeekNumber)
		s.False(w.Hidden)
	}
	s.Equal(models.Occupancy{HoursBusy: 1, HoursTotal: 503, Percentage: 1}, view.Occupancy)

	first := view.Weeks[0]
	s.Require().Len(first.Rows, 24)
	s.Require().Len(first.Days, 7)
	s.Equal(date(2020, time.February, 24, 0), first.Days[0].Date)
	s.Equal("11.00 - 12.00", first.Rows[11].Label)

	// Monday 24 Feb lies before the campaign.
	s.Equal(models.SlotUnavailable, first.Rows[11].Cells[0].State)
	s.Equal(models.ActionNone, first.Rows[11].Cells[0].Action)
	// Sunday 1 March 10:00 is just before the start, 11:00 is the first slot.
	s.Equal(models.SlotUnavailable, first.Rows[10].Cells[6].State)

	opening := first.Rows[11].Cells[6]
	s.Equal(date(2020, time.March, 1, 11), opening.Datetime)
	s.Equal(models.SlotRegistered, opening.State)
	s.Equal(models.ActionRegistrations, opening.Action)
	s.Equal("Name a", opening.Registrant)
	s.Equal(2, opening.RegistrationsCount)

	s.Equal(models.SlotAvailable, first.Rows[12].Cells[6].State)
	s.Equal(models.ActionSignUp, first.Rows[12].Cells[6].Action)

	last := view.Weeks[3]
	s.True(last.Days[6].InRange, "22 March starts before the 10:00 end")
	s.Equal(models.SlotAvailable, last.Rows[10].Cells[6].State)
	s.Equal(models.SlotUnavailable, last.Rows[11].Cells[6].State)
}

func (s *GridSuite) TestBuildHidesPastWeeks() {
	now := date(2020, time.March, 10, 14)

	view := s.grid.Build(nil, now, false)
	s.Require().Len(view.Weeks, 2)
	s.Equal(3, view.Weeks[0].WeekNumber)

	active := view.Weeks[0].Rows[14].Cells[1]
	s.Equal(date(2020, time.March, 10, 14), active.Datetime)
	s.Equal(models.SlotActive, active.State)
	s.Equal(models.SlotHistory, view.Weeks[0].Rows[12].Cells[1].State)

	all := s.grid.Build(nil, now, true)
	s.Require().Len(all.Weeks, 4)
	s.True(all.Weeks[0].Hidden)
	s.True(all.Weeks[1].Hidden)
	s.False(all.Weeks[2].Hidden)
}

func (s *GridSuite) TestBuildAfterCampaign() {
	view := s.grid.Build(nil, date(2020, time.March, 22, 10), false)
	s.True(view.HasEnded)
	s.Empty(view.Weeks)
}

func (s *GridSuite) TestSlotOptions() {
	opts := s.grid.SlotOptions(date(2020, time.March, 21, 22).Add(30 * time.Minute))
	s.Require().Len(opts, 2)
	s.Equal([]int{22, 23}, opts[0].Hours)
	s.Equal("zaterdag 21 maart", opts[0].Label)
	s.Equal([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, opts[1].Hours)

	before := s.grid.SlotOptions(date(2020, time.January, 1, 0))
	s.Require().Len(before, 22)
	s.Equal(date(2020, time.March, 1, 0), before[0].Date)
	s.Equal(11, before[0].Hours[0])

	s.Empty(s.grid.SlotOptions(date(2020, time.April, 1, 0)))
}

func (s *GridSuite) TestClassifyTruncatesInput() {
	slot := s.grid.Classify(date(2020, time.March, 5, 12).Add(25*time.Minute), nil, date(2020, time.February, 1, 0))
	s.Equal(date(2020, time.March, 5, 12), slot.Datetime)
}

func TestNewGridWithHourWindow(t *testing.T) {
	g, err := NewGrid(Options{
		Range:        campaign,
		WeekStartDay: WeekStartSunday,
		Rounding:     RoundFloor,
		Hours:        &HourWindow{DailyStartHour: 6, DailyEndHour: 22, BlockedHours: []int{17, 18}},
	})
	require.NoError(t, err)

	view := g.Build(nil, date(2020, time.February, 1, 0), false)
	require.Len(t, view.Weeks, 4)
	week := view.Weeks[0]
	assert.Equal(t, time.Sunday, week.Days[0].Date.Weekday())
	require.Len(t, week.Rows, 17)
	assert.Equal(t, 6, week.Rows[0].Hour)
	assert.Equal(t, models.SlotUnavailable, week.Rows[11].Cells[0].State, "17.00 is blocked")
	assert.Equal(t, models.SlotAvailable, week.Rows[10].Cells[0].State)
	assert.False(t, view.Weeks[3].Days[1].InRange)
}

func TestNewGridHourWindowDefaults(t *testing.T) {
	g, err := NewGrid(Options{Range: campaign})
	require.NoError(t, err)
	view := g.Build(nil, date(2020, time.February, 1, 0), false)
	require.Len(t, view.Weeks[0].Rows, 24, "no window means the whole day")

	g, err = NewGrid(Options{Range: campaign, Hours: &HourWindow{}})
	require.NoError(t, err)
	view = g.Build(nil, date(2020, time.February, 1, 0), false)
	require.Len(t, view.Weeks[1].Rows, 1, "a zero window is midnight only")
	assert.Equal(t, 0, view.Weeks[1].Rows[0].Hour)

	// Grid and the bare classifier agree on the zero window.
	at := date(2020, time.March, 5, 1)
	assert.True(t, g.Classify(at, nil, date(2020, time.February, 1, 0)).IsDisabled)
	assert.True(t, Classify(at, campaign, nil, date(2020, time.February, 1, 0), HourWindow{}).IsDisabled)
	midnight := date(2020, time.March, 5, 0)
	assert.False(t, g.Classify(midnight, nil, date(2020, time.February, 1, 0)).IsDisabled)
	assert.False(t, Classify(midnight, campaign, nil, date(2020, time.February, 1, 0), HourWindow{}).IsDisabled)
}

func TestNewGridRejectsInvalidConfiguration(t *testing.T) {
	_, err := NewGrid(Options{Range: models.CampaignRange{Start: campaign.End, End: campaign.Start}})
	assert.True(t, errors.Is(err, ErrInvalidRange))

	_, err = NewGrid(Options{Range: campaign, Hours: &HourWindow{DailyStartHour: 20, DailyEndHour: 8}})
	assert.Error(t, err)

	_, err = NewGrid(Options{Range: campaign, Hours: &HourWindow{DailyStartHour: 1, DailyEndHour: 23, BlockedHours: []int{24}}})
	assert.Error(t, err)
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "zondag 1 maart", DayLabel(date(2020, time.March, 1, 0)))
	assert.Equal(t, "woensdag 30 december", DayLabel(date(2020, time.December, 30, 0)))
}
