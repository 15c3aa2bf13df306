package mailRepo

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"gebedsrooster/models"
)

// MemoryMailRepo records queued mail in process.
type MemoryMailRepo struct {
	mu   sync.Mutex
	sent []models.MailRequest
}

func NewMemoryMailRepo() *MemoryMailRepo {
	return &MemoryMailRepo{}
}

func (r *MemoryMailRepo) Add(ctx context.Context, mail models.MailRequest) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if mail.ID == "" {
		mail.ID = uuid.New().String()
	}
	r.sent = append(r.sent, mail)
	return mail.ID, nil
}

// Sent returns a copy of everything queued so far.
func (r *MemoryMailRepo) Sent() []models.MailRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.sent)
}
