package calendar

import (
	"context"
	"time"

	"go.uber.org/zap"

	registrationRepo "gebedsrooster/database/repository/registration"
	"gebedsrooster/metrics"
	"gebedsrooster/models"
	"gebedsrooster/services/schedule"
	"gebedsrooster/utils"
)

// CalendarService renders the schedule from the current registration snapshot.
type CalendarService interface {
	View(ctx context.Context, includePast bool) (*models.ScheduleView, error)
	Stats(ctx context.Context) (models.Occupancy, error)
	Options(ctx context.Context) ([]models.DateOption, error)
	Slot(ctx context.Context, datetime time.Time) (*models.SlotDetail, error)
	Stream(ctx context.Context, includePast bool) (<-chan models.ScheduleView, error)
}

// DefaultCalendarService is the production implementation.
type DefaultCalendarService struct {
	Repo    registrationRepo.RegistrationRepository
	Grid    *schedule.Grid
	Metrics *metrics.Metrics
	Now     func() time.Time
	// Tick re-renders open streams so slots move to history as time passes.
	Tick time.Duration
}

func NewDefaultCalendarService(repo registrationRepo.RegistrationRepository, grid *schedule.Grid, m *metrics.Metrics) *DefaultCalendarService {
	return &DefaultCalendarService{
		Repo:    repo,
		Grid:    grid,
		Metrics: m,
		Now:     time.Now,
		Tick:    time.Minute,
	}
}

func (s *DefaultCalendarService) View(ctx context.Context, includePast bool) (*models.ScheduleView, error) {
	regs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	view := s.render(regs, includePast)
	return &view, nil
}

func (s *DefaultCalendarService) Stats(ctx context.Context) (models.Occupancy, error) {
	regs, err := s.Repo.List(ctx)
	if err != nil {
		return models.Occupancy{}, err
	}
	occ := s.Grid.Occupancy(regs)
	s.Metrics.SetOccupancy(occ.Percentage)
	return occ, nil
}

// Options needs no registrations: double booking is allowed, so only time
// and the hour window close a slot.
func (s *DefaultCalendarService) Options(ctx context.Context) ([]models.DateOption, error) {
	return s.Grid.SlotOptions(s.Now()), nil
}

func (s *DefaultCalendarService) Slot(ctx context.Context, datetime time.Time) (*models.SlotDetail, error) {
	regs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	slot := s.Grid.Classify(datetime, regs, s.Now())
	detail := &models.SlotDetail{
		Cell:          schedule.Cell(slot),
		Registrations: make([]models.PublicRegistration, 0, len(slot.Registrations)),
	}
	for _, reg := range slot.Registrations {
		detail.Registrations = append(detail.Registrations, reg.Public())
	}
	return detail, nil
}

// Stream emits a fresh view for every registration snapshot and every Tick.
// The channel closes when ctx is done or the snapshot source stops.
func (s *DefaultCalendarService) Stream(ctx context.Context, includePast bool) (<-chan models.ScheduleView, error) {
	snapshots, err := s.Repo.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan models.ScheduleView, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(s.Tick)
		defer ticker.Stop()

		var latest []models.Registration
		have := false
		for {
			select {
			case <-ctx.Done():
				return
			case regs, ok := <-snapshots:
				if !ok {
					utils.GetLogger().Debug("registration snapshots closed, ending stream")
					return
				}
				latest, have = regs, true
			case <-ticker.C:
			}
			if !have {
				continue
			}
			if !send(ctx, out, s.render(latest, includePast)) {
				return
			}
		}
	}()
	return out, nil
}

func (s *DefaultCalendarService) render(regs []models.Registration, includePast bool) models.ScheduleView {
	view := s.Grid.Build(regs, s.Now(), includePast)
	s.Metrics.SetOccupancy(view.Occupancy.Percentage)
	return view
}

// send replaces an unread view with the newer one.
func send(ctx context.Context, out chan models.ScheduleView, view models.ScheduleView) bool {
	select {
	case <-out:
	default:
	}
	select {
	case out <- view:
		return true
	case <-ctx.Done():
		utils.GetLogger().Debug("stream consumer gone", zap.Error(ctx.Err()))
		return false
	}
}
