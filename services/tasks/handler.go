package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	registrationRepo "gebedsrooster/database/repository/registration"
	"gebedsrooster/metrics"
	"gebedsrooster/models"
	"gebedsrooster/services/notification"
	"gebedsrooster/utils"
)

// ReminderHandler processes reminder tasks.
type ReminderHandler struct {
	Repo     registrationRepo.RegistrationRepository
	Notifier notification.NotificationService
	Metrics  *metrics.Metrics
	Now      func() time.Time
}

func NewReminderHandler(
	repo registrationRepo.RegistrationRepository,
	notifier notification.NotificationService,
	m *metrics.Metrics,
) *ReminderHandler {
	return &ReminderHandler{Repo: repo, Notifier: notifier, Metrics: m, Now: time.Now}
}

// ProcessTask re-reads the registration so deletions and reminders sent by
// another worker are respected, queues the mail and clears the flag.
func (h *ReminderHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Error("invalid reminder payload", zap.Error(err))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	reg, err := h.Repo.GetByID(ctx, p.RegistrationID)
	if errors.Is(err, registrationRepo.ErrNotFound) {
		logger.Info("reminder skipped, registration deleted", zap.String("registrationID", p.RegistrationID))
		return nil
	}
	if err != nil {
		return err
	}
	if !reg.NeedsReminder {
		return nil
	}

	if reg.Date.After(h.Now()) {
		if err := h.Notifier.SendRegistrationReminder(ctx, *reg); err != nil {
			logger.Error("failed to queue reminder mail",
				zap.String("registrationID", reg.ID), zap.Error(err))
			return err
		}
		h.Metrics.IncrementReminders()
	} else {
		logger.Info("reminder skipped, slot already started", zap.String("registrationID", reg.ID))
	}

	if err := h.Repo.MarkReminded(ctx, reg.ID); err != nil && !errors.Is(err, registrationRepo.ErrNotFound) {
		return err
	}
	return nil
}
