package registration

import (
	"context"
	"time"

	registrationRepo "gebedsrooster/database/repository/registration"
	"gebedsrooster/metrics"
	"gebedsrooster/models"
	"gebedsrooster/services/schedule"
	"gebedsrooster/services/tasks"
)

// RegistrationService writes and removes registrations on behalf of visitors.
type RegistrationService interface {
	SignUp(ctx context.Context, req models.SignUpRequest) ([]models.Registration, error)
	QuickSignUp(ctx context.Context, req models.QuickSignUpRequest) (*models.Registration, error)
	Delete(ctx context.Context, id string, req models.DeleteRegistrationRequest) error
	ListForSlot(ctx context.Context, datetime time.Time) ([]models.Registration, error)
}

// DefaultRegistrationService is the production implementation.
type DefaultRegistrationService struct {
	Repo      registrationRepo.RegistrationRepository
	Grid      *schedule.Grid
	Reminders tasks.ReminderScheduler
	Metrics   *metrics.Metrics
	// ReminderLead is how far ahead of a slot the reminder goes out. Sign-ups
	// closer than this to their slot do not get one.
	ReminderLead time.Duration
	Now          func() time.Time
}

func NewDefaultRegistrationService(
	repo registrationRepo.RegistrationRepository,
	grid *schedule.Grid,
	reminders tasks.ReminderScheduler,
	m *metrics.Metrics,
	lead time.Duration,
) *DefaultRegistrationService {
	if lead <= 0 {
		lead = 24 * time.Hour
	}
	return &DefaultRegistrationService{
		Repo:         repo,
		Grid:         grid,
		Reminders:    reminders,
		Metrics:      m,
		ReminderLead: lead,
		Now:          time.Now,
	}
}
