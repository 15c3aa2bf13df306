// File: database/repository/registration/interface.go
package registrationRepo

import (
	"context"
	"errors"
	"time"

	"gebedsrooster/models"
)

// ErrNotFound is returned when a registration id does not exist.
var ErrNotFound = errors.New("registration not found")

// opTimeout bounds every single store call.
const opTimeout = 5 * time.Second

// RegistrationRepository is the registrations collection of the hosted store.
type RegistrationRepository interface {
	// List returns all registrations ordered by creation time, oldest first.
	List(ctx context.Context) ([]models.Registration, error)
	GetByID(ctx context.Context, id string) (*models.Registration, error)
	Add(ctx context.Context, reg models.Registration) (models.Registration, error)
	// BatchAdd writes all registrations or none of them.
	BatchAdd(ctx context.Context, regs []models.Registration) ([]models.Registration, error)
	Delete(ctx context.Context, id string) error
	MarkReminded(ctx context.Context, id string) error
	// Watch pushes a full snapshot immediately and after every change until
	// ctx is done, then closes the channel. Slow readers only see the latest
	// snapshot.
	Watch(ctx context.Context) (<-chan []models.Registration, error)
}

// pushLatest replaces any unread snapshot in ch with snap.
func pushLatest(ctx context.Context, ch chan []models.Registration, snap []models.Registration) bool {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
		return true
	case <-ctx.Done():
		return false
	}
}
