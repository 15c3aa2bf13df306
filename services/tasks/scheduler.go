package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	registrationRepo "gebedsrooster/database/repository/registration"
	"gebedsrooster/models"
	"gebedsrooster/utils"
)

// Enqueuer is the part of *asynq.Client the scheduler needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderScheduler plans the day-before reminder of a registration.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, reg models.Registration) error
}

// AsynqReminderScheduler enqueues reminder tasks Lead before the slot starts.
type AsynqReminderScheduler struct {
	Client Enqueuer
	Lead   time.Duration
	Now    func() time.Time
}

func NewAsynqReminderScheduler(client Enqueuer, lead time.Duration) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: client, Lead: lead, Now: time.Now}
}

// ScheduleReminder ignores registrations without the reminder flag and slots
// that already started. A reminder whose fire time has passed runs at once.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, reg models.Registration) error {
	now := s.Now()
	if !reg.NeedsReminder || !reg.Date.After(now) {
		return nil
	}
	fireAt := reg.Date.Add(-s.Lead)
	if fireAt.Before(now) {
		fireAt = now
	}

	task, opts, err := NewReminderTask(models.ReminderPayload{
		RegistrationID: reg.ID,
		FireDate:       fireAt.Format(time.RFC3339),
	}, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task for %s: %w", reg.ID, err)
	}

	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue reminder for %s: %w", reg.ID, err)
	}
	utils.GetLogger().Debug("reminder scheduled",
		zap.String("registrationID", reg.ID),
		zap.Time("fireAt", fireAt))
	return nil
}

// Sweep schedules every flagged registration in the store. It picks up
// registrations written by other clients and tasks lost with a queue flush.
func Sweep(ctx context.Context, repo registrationRepo.RegistrationRepository, scheduler ReminderScheduler) (int, error) {
	regs, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}
	var scheduled int
	var errs []error
	for _, reg := range regs {
		if !reg.NeedsReminder {
			continue
		}
		if err := scheduler.ScheduleReminder(ctx, reg); err != nil {
			errs = append(errs, err)
			continue
		}
		scheduled++
	}
	return scheduled, errors.Join(errs...)
}
