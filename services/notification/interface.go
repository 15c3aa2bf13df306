package notification

import (
	"context"
	"fmt"
	"time"

	mailRepo "gebedsrooster/database/repository/mail"
	"gebedsrooster/metrics"
	"gebedsrooster/models"
)

// Template ids, stored as message.messageId on the mail document.
const (
	TemplateRegistrationReminder = "registration-reminder"
	TemplateAccountCreated       = "account-created"
	TemplatePasswordReset        = "password-reset"
)

// NotificationService queues the mails the sign-up flow sends.
type NotificationService interface {
	SendRegistrationReminder(ctx context.Context, reg models.Registration) error
	SendAccountCreated(ctx context.Context, user models.User) error
	SendPasswordReset(ctx context.Context, email, link string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Mail     mailRepo.MailRepository
	From     string
	Location *time.Location
	Metrics  *metrics.Metrics
	Now      func() time.Time
}

func NewDefaultNotificationService(
	mail mailRepo.MailRepository,
	from string,
	loc *time.Location,
	m *metrics.Metrics,
) (*DefaultNotificationService, error) {
	if mail == nil {
		return nil, fmt.Errorf("notification service initialization error: mail repository is nil")
	}
	if loc == nil {
		loc = time.Local
	}
	return &DefaultNotificationService{
		Mail:     mail,
		From:     from,
		Location: loc,
		Metrics:  m,
		Now:      time.Now,
	}, nil
}
