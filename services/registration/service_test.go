package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	registrationRepo "gebedsrooster/database/repository/registration"
	"gebedsrooster/metrics"
	"gebedsrooster/models"
	"gebedsrooster/services/schedule"
	"gebedsrooster/utils"
)

type mockReminders struct {
	mock.Mock
}

func (m *mockReminders) ScheduleReminder(ctx context.Context, reg models.Registration) error {
	return m.Called(reg).Error(0)
}

type RegistrationServiceSuite struct {
	suite.Suite
	ams       *time.Location
	now       time.Time
	repo      *registrationRepo.MemoryRegistrationRepo
	reminders *mockReminders
	svc       *DefaultRegistrationService
	ctx       context.Context
}

func TestRegistrationServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistrationServiceSuite))
}

func (s *RegistrationServiceSuite) SetupTest() {
	utils.SetLogger(zaptest.NewLogger(s.T()))
	ams, err := time.LoadLocation("Europe/Amsterdam")
	s.Require().NoError(err)
	s.ams = ams
	s.now = time.Date(2020, 3, 5, 12, 30, 0, 0, ams)

	grid, err := schedule.NewGrid(schedule.Options{
		Range: models.CampaignRange{
			Start: time.Date(2020, 3, 1, 11, 0, 0, 0, ams),
			End:   time.Date(2020, 3, 22, 10, 0, 0, 0, ams),
		},
		Hours: &schedule.HourWindow{DailyStartHour: 0, DailyEndHour: 23, BlockedHours: []int{17, 18}},
	})
	s.Require().NoError(err)

	s.repo = registrationRepo.NewMemoryRegistrationRepo()
	s.reminders = new(mockReminders)
	s.svc = NewDefaultRegistrationService(s.repo, grid, s.reminders, metrics.New(), 24*time.Hour)
	s.svc.Now = func() time.Time { return s.now }
	s.ctx = context.Background()
}

func (s *RegistrationServiceSuite) names(n ...string) []models.RegistrantName {
	out := make([]models.RegistrantName, len(n))
	for i, first := range n {
		out[i] = models.RegistrantName{FirstName: first, LastName: "de Vries"}
	}
	return out
}

func (s *RegistrationServiceSuite) TestSignUpBatch() {
	s.reminders.On("ScheduleReminder", mock.Anything).Return(nil).Once()

	slot := time.Date(2020, 3, 10, 14, 25, 0, 0, s.ams)
	out, err := s.svc.SignUp(s.ctx, models.SignUpRequest{
		Date:    slot,
		Names:   s.names("Jan", "Piet", "Klaas"),
		Email:   " jan@example.nl ",
		OwnerID: "uid-1",
	})
	s.Require().NoError(err)
	s.Require().Len(out, 3)

	truncated := time.Date(2020, 3, 10, 14, 0, 0, 0, s.ams)
	for i, reg := range out {
		s.True(reg.Date.Equal(truncated))
		s.Equal("jan@example.nl", reg.Email)
		s.Equal("uid-1", reg.OwnerID)
		s.Equal(s.now.Add(time.Duration(i)*time.Millisecond), reg.CreatedAt)
		s.Equal(i == 0, reg.NeedsReminder)
	}
	s.Equal("Jan de Vries", out[0].Name)

	listed, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Equal("Jan de Vries", listed[0].Name)
	s.Equal("Klaas de Vries", listed[2].Name)
	s.reminders.AssertExpectations(s.T())
}

func (s *RegistrationServiceSuite) TestSignUpWithin24HoursGetsNoReminder() {
	out, err := s.svc.SignUp(s.ctx, models.SignUpRequest{
		Date:  time.Date(2020, 3, 6, 9, 0, 0, 0, s.ams),
		Names: s.names("Jan"),
		Email: "jan@example.nl",
	})
	s.Require().NoError(err)
	s.False(out[0].NeedsReminder)
	s.reminders.AssertNotCalled(s.T(), "ScheduleReminder", mock.Anything)
}

func (s *RegistrationServiceSuite) TestSignUpRejectsClosedSlots() {
	cases := map[string]time.Time{
		"before campaign": time.Date(2020, 3, 1, 10, 0, 0, 0, s.ams),
		"after campaign":  time.Date(2020, 3, 22, 11, 0, 0, 0, s.ams),
		"blocked hour":    time.Date(2020, 3, 10, 17, 0, 0, 0, s.ams),
		"past hour":       time.Date(2020, 3, 5, 10, 0, 0, 0, s.ams),
	}
	for name, date := range cases {
		s.Run(name, func() {
			_, err := s.svc.SignUp(s.ctx, models.SignUpRequest{Date: date, Names: s.names("Jan"), Email: "jan@example.nl"})
			s.ErrorIs(err, ErrSlotUnavailable)
		})
	}

	// The slot in progress is still open.
	_, err := s.svc.SignUp(s.ctx, models.SignUpRequest{Date: time.Date(2020, 3, 5, 12, 0, 0, 0, s.ams), Names: s.names("Jan"), Email: "jan@example.nl"})
	s.NoError(err)
}

func (s *RegistrationServiceSuite) TestSignUpValidation() {
	_, err := s.svc.SignUp(s.ctx, models.SignUpRequest{
		Date:  time.Date(2020, 3, 10, 14, 0, 0, 0, s.ams),
		Names: []models.RegistrantName{{FirstName: "Jan"}},
		Email: "not-an-email",
	})
	var verr *ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Len(verr.Fields, 2)

	_, err = s.svc.SignUp(s.ctx, models.SignUpRequest{Date: time.Date(2020, 3, 10, 14, 0, 0, 0, s.ams), Email: "jan@example.nl"})
	s.ErrorAs(err, &verr)
}

func (s *RegistrationServiceSuite) TestSignUpStoreFailureWritesNothing() {
	s.repo.FailNextBatch = errors.New("unavailable")
	_, err := s.svc.SignUp(s.ctx, models.SignUpRequest{
		Date:  time.Date(2020, 3, 10, 14, 0, 0, 0, s.ams),
		Names: s.names("Jan", "Piet"),
		Email: "jan@example.nl",
	})
	s.Require().Error(err)
	regs, _ := s.repo.List(s.ctx)
	s.Empty(regs)
}

func (s *RegistrationServiceSuite) TestReminderFailureDoesNotFailSignUp() {
	s.reminders.On("ScheduleReminder", mock.Anything).Return(errors.New("queue down")).Once()
	out, err := s.svc.SignUp(s.ctx, models.SignUpRequest{
		Date:  time.Date(2020, 3, 10, 14, 0, 0, 0, s.ams),
		Names: s.names("Jan"),
		Email: "jan@example.nl",
	})
	s.Require().NoError(err)
	s.Len(out, 1)
}

func (s *RegistrationServiceSuite) TestQuickSignUp() {
	s.reminders.On("ScheduleReminder", mock.Anything).Return(nil).Once()

	reg, err := s.svc.QuickSignUp(s.ctx, models.QuickSignUpRequest{
		Day: "2020-03-12", Hour: 3, FirstName: "Anna", LastName: "Bakker", Email: "anna@example.nl",
	})
	s.Require().NoError(err)
	s.True(reg.Date.Equal(time.Date(2020, 3, 12, 3, 0, 0, 0, s.ams)))
	s.Equal("Anna Bakker", reg.Name)
	s.True(reg.NeedsReminder)

	_, err = s.svc.QuickSignUp(s.ctx, models.QuickSignUpRequest{
		Day: "2020-03-12", Hour: 24, FirstName: "Anna", LastName: "Bakker", Email: "anna@example.nl",
	})
	var verr *ValidationError
	s.ErrorAs(err, &verr)

	_, err = s.svc.QuickSignUp(s.ctx, models.QuickSignUpRequest{
		Day: "2020-03-30", Hour: 3, FirstName: "Anna", LastName: "Bakker", Email: "anna@example.nl",
	})
	s.ErrorIs(err, ErrSlotUnavailable)
}

func (s *RegistrationServiceSuite) TestDelete() {
	reg, err := s.repo.Add(s.ctx, models.Registration{Name: "Jan", Email: "Jan@Example.nl", OwnerID: "uid-1", Date: s.now})
	s.Require().NoError(err)

	s.ErrorIs(s.svc.Delete(s.ctx, reg.ID, models.DeleteRegistrationRequest{Email: "other@example.nl"}), ErrEmailMismatch)
	s.ErrorIs(s.svc.Delete(s.ctx, reg.ID, models.DeleteRegistrationRequest{}), ErrEmailMismatch)
	s.ErrorIs(s.svc.Delete(s.ctx, reg.ID, models.DeleteRegistrationRequest{RequesterUID: "uid-2"}), ErrEmailMismatch)

	s.NoError(s.svc.Delete(s.ctx, reg.ID, models.DeleteRegistrationRequest{Email: " jan@example.NL"}))
	s.ErrorIs(s.svc.Delete(s.ctx, reg.ID, models.DeleteRegistrationRequest{Email: "jan@example.nl"}), ErrNotFound)

	owned, err := s.repo.Add(s.ctx, models.Registration{Name: "Jan", Email: "jan@example.nl", OwnerID: "uid-1", Date: s.now})
	s.Require().NoError(err)
	s.NoError(s.svc.Delete(s.ctx, owned.ID, models.DeleteRegistrationRequest{RequesterUID: "uid-1"}))
}

func (s *RegistrationServiceSuite) TestListForSlot() {
	slot := time.Date(2020, 3, 10, 14, 0, 0, 0, s.ams)
	_, err := s.repo.BatchAdd(s.ctx, []models.Registration{
		{Name: "b", Date: slot, CreatedAt: s.now.Add(time.Millisecond)},
		{Name: "a", Date: slot, CreatedAt: s.now},
		{Name: "other", Date: slot.Add(time.Hour), CreatedAt: s.now},
	})
	s.Require().NoError(err)

	regs, err := s.svc.ListForSlot(s.ctx, slot.Add(20*time.Minute).UTC())
	s.Require().NoError(err)
	s.Require().Len(regs, 2)
	s.Equal("a", regs[0].Name)
	s.Equal("b", regs[1].Name)
}
