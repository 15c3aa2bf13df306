package cron

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"gebedsrooster/config"
	registrationRepo "gebedsrooster/database/repository/registration"
	"gebedsrooster/services/tasks"
	"gebedsrooster/utils"
)

// SweepInterval is how often registrations still flagged for a reminder are
// re-enqueued. Task ids make repeated enqueues no-ops.
const SweepInterval = 10 * time.Minute

// RedisOpt is the asynq connection for the reminder queue.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// NewReminderMux routes reminder tasks to handler.
func NewReminderMux(handler *tasks.ReminderHandler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeSendReminder, handler)
	return mux
}

// InitReminderWorker runs the async worker and the reminder sweep in the
// background. The returned function stops the worker.
func InitReminderWorker(
	ctx context.Context,
	handler *tasks.ReminderHandler,
	repo registrationRepo.RegistrationRepository,
	scheduler tasks.ReminderScheduler,
) func() {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)
	mux := NewReminderMux(handler)

	// Start async worker with retry logic
	go func() {
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("reminder worker gave up, reminders will not be sent")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()

	go RunSweep(ctx, SweepInterval, repo, scheduler)

	return srv.Shutdown
}

// RunSweep enqueues outstanding reminders at once and then every interval
// until ctx is done.
func RunSweep(ctx context.Context, interval time.Duration, repo registrationRepo.RegistrationRepository, scheduler tasks.ReminderScheduler) {
	logger := utils.GetLogger()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		n, err := tasks.Sweep(ctx, repo, scheduler)
		if err != nil {
			logger.Warn("reminder sweep incomplete", zap.Int("scheduled", n), zap.Error(err))
		} else if n > 0 {
			logger.Debug("reminder sweep", zap.Int("scheduled", n))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
