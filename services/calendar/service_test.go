package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	registrationRepo "gebedsrooster/database/repository/registration"
	"gebedsrooster/metrics"
	"gebedsrooster/models"
	"gebedsrooster/services/schedule"
	"gebedsrooster/utils"
)

func newCalendar(t *testing.T, now time.Time, seed ...models.Registration) (*DefaultCalendarService, *registrationRepo.MemoryRegistrationRepo) {
	t.Helper()
	utils.SetLogger(zaptest.NewLogger(t))
	grid, err := schedule.NewGrid(schedule.Options{
		Range: models.CampaignRange{
			Start: time.Date(2020, 3, 1, 11, 0, 0, 0, time.UTC),
			End:   time.Date(2020, 3, 22, 10, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)
	repo := registrationRepo.NewMemoryRegistrationRepo(seed...)
	svc := NewDefaultCalendarService(repo, grid, metrics.New())
	svc.Now = func() time.Time { return now }
	return svc, repo
}

func TestViewStatsAndSlot(t *testing.T) {
	now := time.Date(2020, 3, 9, 12, 30, 0, 0, time.UTC)
	slot := time.Date(2020, 3, 10, 14, 0, 0, 0, time.UTC)
	svc, _ := newCalendar(t, now,
		models.Registration{Name: "Jan", Email: "jan@example.nl", Date: slot, CreatedAt: now},
		models.Registration{Name: "Piet", Email: "piet@example.nl", Date: slot, CreatedAt: now.Add(time.Millisecond)},
	)
	ctx := context.Background()

	view, err := svc.View(ctx, false)
	require.NoError(t, err)
	// The grid starts on Monday February 24; by March 9 weeks 1 and 2 are over.
	require.Len(t, view.Weeks, 2)
	assert.Equal(t, 3, view.Weeks[0].WeekNumber)
	assert.Equal(t, 1, view.Occupancy.HoursBusy)

	all, err := svc.View(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all.Weeks, 4)

	occ, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 503, occ.HoursTotal)
	assert.Equal(t, 1, occ.Percentage)

	detail, err := svc.Slot(ctx, slot.Add(15*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, models.SlotRegistered, detail.Cell.State)
	assert.Equal(t, "Jan", detail.Cell.Registrant)
	require.Len(t, detail.Registrations, 2)
	assert.Equal(t, "Piet", detail.Registrations[1].Name)

	opts, err := svc.Options(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, opts)
	assert.Equal(t, 9, opts[0].Date.Day())
	assert.Equal(t, 12, opts[0].Hours[0])
}

func TestStreamFollowsSnapshots(t *testing.T) {
	now := time.Date(2020, 3, 9, 12, 30, 0, 0, time.UTC)
	svc, repo := newCalendar(t, now)
	svc.Tick = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	views, err := svc.Stream(ctx, false)
	require.NoError(t, err)

	first := <-views
	assert.Equal(t, 0, first.Occupancy.HoursBusy)

	_, err = repo.Add(context.Background(), models.Registration{Name: "Jan", Date: time.Date(2020, 3, 10, 14, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	select {
	case v := <-views:
		assert.Equal(t, 1, v.Occupancy.HoursBusy)
	case <-time.After(time.Second):
		t.Fatal("no view after write")
	}

	cancel()
	assert.Eventually(t, func() bool {
		_, open := <-views
		return !open
	}, time.Second, 10*time.Millisecond)
}

func TestStreamTicksReRender(t *testing.T) {
	now := time.Date(2020, 3, 9, 12, 30, 0, 0, time.UTC)
	svc, _ := newCalendar(t, now)
	svc.Tick = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	views, err := svc.Stream(ctx, false)
	require.NoError(t, err)

	<-views
	select {
	case <-views:
	case <-time.After(time.Second):
		t.Fatal("no view after tick")
	}
}
