package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gebedsrooster/models"
	"gebedsrooster/utils"
)

// SendRegistrationReminder queues the day-before reminder for reg.
func (s *DefaultNotificationService) SendRegistrationReminder(ctx context.Context, reg models.Registration) error {
	if reg.Email == "" {
		return fmt.Errorf("SendRegistrationReminder: registration %s has no email", reg.ID)
	}
	return s.queue(ctx, reg.Email, reminderMessage(reg, s.Location))
}

func (s *DefaultNotificationService) SendAccountCreated(ctx context.Context, user models.User) error {
	return s.queue(ctx, user.Email, accountCreatedMessage(user))
}

func (s *DefaultNotificationService) SendPasswordReset(ctx context.Context, email, link string) error {
	return s.queue(ctx, email, passwordResetMessage(link))
}

func (s *DefaultNotificationService) queue(ctx context.Context, to string, msg models.MailMessage) error {
	id, err := s.Mail.Add(ctx, models.MailRequest{
		From:      s.From,
		To:        []string{to},
		Message:   msg,
		CreatedAt: s.Now(),
	})
	if err != nil {
		return err
	}
	s.Metrics.IncrementMail(msg.MessageID)
	utils.GetLogger().Debug("mail queued",
		zap.String("mailID", id),
		zap.String("template", msg.MessageID))
	return nil
}
