package registration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"gebedsrooster/models"
	"gebedsrooster/services/schedule"
	"gebedsrooster/utils"
)

// SignUp registers every name in req for one slot. The first name is the
// primary registrant: it is created first and is the only one reminded.
func (s *DefaultRegistrationService) SignUp(ctx context.Context, req models.SignUpRequest) ([]models.Registration, error) {
	if err := validate.Struct(req); err != nil {
		return nil, newValidationError(err)
	}

	now := s.Now()
	date, err := s.openSlot(req.Date, now)
	if err != nil {
		return nil, err
	}
	remind := date.Sub(now) >= s.ReminderLead

	regs := make([]models.Registration, len(req.Names))
	for i, name := range req.Names {
		regs[i] = models.Registration{
			Name:          strings.TrimSpace(name.FullName()),
			Email:         strings.TrimSpace(req.Email),
			OwnerID:       req.OwnerID,
			Date:          date,
			CreatedAt:     now.Add(time.Duration(i) * time.Millisecond),
			NeedsReminder: i == 0 && remind,
		}
	}

	out, err := s.Repo.BatchAdd(ctx, regs)
	if err != nil {
		return nil, fmt.Errorf("failed to save sign-up: %w", err)
	}
	s.Metrics.IncrementRegistrations("signup", len(out))
	s.scheduleReminders(ctx, out)
	return out, nil
}

// QuickSignUp registers a single person from a day and an hour picker.
func (s *DefaultRegistrationService) QuickSignUp(ctx context.Context, req models.QuickSignUpRequest) (*models.Registration, error) {
	if err := validate.Struct(req); err != nil {
		return nil, newValidationError(err)
	}
	day, err := time.ParseInLocation("2006-01-02", req.Day, s.Grid.Location())
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"day": "datetime"}}
	}

	now := s.Now()
	date, err := s.openSlot(s.Grid.SlotTime(day, req.Hour), now)
	if err != nil {
		return nil, err
	}

	reg, err := s.Repo.Add(ctx, models.Registration{
		Name:          strings.TrimSpace(req.FirstName + " " + req.LastName),
		Email:         strings.TrimSpace(req.Email),
		OwnerID:       req.OwnerID,
		Date:          date,
		CreatedAt:     now,
		NeedsReminder: date.Sub(now) >= s.ReminderLead,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save quick sign-up: %w", err)
	}
	s.Metrics.IncrementRegistrations("quick", 1)
	s.scheduleReminders(ctx, []models.Registration{reg})
	return &reg, nil
}

// openSlot truncates datetime to its hour and checks that the slot still
// accepts sign-ups.
func (s *DefaultRegistrationService) openSlot(datetime, now time.Time) (time.Time, error) {
	date := schedule.TruncateToHour(datetime.In(s.Grid.Location()))
	slot := s.Grid.Classify(date, nil, now)
	if slot.IsDisabled || slot.IsHistory {
		return time.Time{}, ErrSlotUnavailable
	}
	return date, nil
}

// scheduleReminders never fails the sign-up; the periodic sweep retries.
func (s *DefaultRegistrationService) scheduleReminders(ctx context.Context, regs []models.Registration) {
	if s.Reminders == nil {
		return
	}
	for _, reg := range regs {
		if !reg.NeedsReminder {
			continue
		}
		if err := s.Reminders.ScheduleReminder(ctx, reg); err != nil {
			utils.GetLogger().Warn("failed to schedule reminder",
				zap.String("registrationID", reg.ID), zap.Error(err))
		}
	}
}
