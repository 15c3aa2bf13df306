package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	registrationRepo "gebedsrooster/database/repository/registration"
	"gebedsrooster/models"
	"gebedsrooster/services/schedule"
)

// Delete removes a registration when the requester owns it or knows the
// email address it was made with.
func (s *DefaultRegistrationService) Delete(ctx context.Context, id string, req models.DeleteRegistrationRequest) error {
	reg, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, registrationRepo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	owner := req.RequesterUID != "" && req.RequesterUID == reg.OwnerID
	emailMatch := req.Email != "" && strings.EqualFold(strings.TrimSpace(req.Email), strings.TrimSpace(reg.Email))
	if !owner && !emailMatch {
		return ErrEmailMismatch
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, registrationRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	s.Metrics.IncrementDeleted()
	return nil
}

// ListForSlot returns the registrations of the slot containing datetime,
// oldest first.
func (s *DefaultRegistrationService) ListForSlot(ctx context.Context, datetime time.Time) ([]models.Registration, error) {
	regs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	slot := schedule.TruncateToHour(datetime.In(s.Grid.Location()))
	return schedule.RegistrationsAt(slot, regs), nil
}
