package registrationRepo

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"gebedsrooster/models"
)

// MemoryRegistrationRepo keeps registrations in process. It backs local
// development and tests.
type MemoryRegistrationRepo struct {
	mu   sync.Mutex
	regs []models.Registration
	subs map[chan []models.Registration]struct{}

	// FailNextBatch, when set, is returned by the next write and then cleared.
	FailNextBatch error
}

func NewMemoryRegistrationRepo(seed ...models.Registration) *MemoryRegistrationRepo {
	r := &MemoryRegistrationRepo{subs: make(map[chan []models.Registration]struct{})}
	for _, reg := range seed {
		if reg.ID == "" {
			reg.ID = uuid.New().String()
		}
		r.regs = append(r.regs, reg)
	}
	return r
}

func (r *MemoryRegistrationRepo) List(ctx context.Context) ([]models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked(), nil
}

func (r *MemoryRegistrationRepo) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexLocked(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	reg := r.regs[i]
	return &reg, nil
}

func (r *MemoryRegistrationRepo) Add(ctx context.Context, reg models.Registration) (models.Registration, error) {
	out, err := r.BatchAdd(ctx, []models.Registration{reg})
	if err != nil {
		return models.Registration{}, err
	}
	return out[0], nil
}

func (r *MemoryRegistrationRepo) BatchAdd(ctx context.Context, regs []models.Registration) ([]models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.FailNextBatch; err != nil {
		r.FailNextBatch = nil
		return nil, err
	}
	out := make([]models.Registration, len(regs))
	for i, reg := range regs {
		if reg.ID == "" {
			reg.ID = uuid.New().String()
		}
		out[i] = reg
	}
	r.regs = append(r.regs, out...)
	r.notifyLocked()
	return out, nil
}

func (r *MemoryRegistrationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	r.regs = slices.Delete(r.regs, i, i+1)
	r.notifyLocked()
	return nil
}

func (r *MemoryRegistrationRepo) MarkReminded(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	r.regs[i].NeedsReminder = false
	r.notifyLocked()
	return nil
}

func (r *MemoryRegistrationRepo) Watch(ctx context.Context) (<-chan []models.Registration, error) {
	ch := make(chan []models.Registration, 1)

	r.mu.Lock()
	r.subs[ch] = struct{}{}
	ch <- r.snapshotLocked()
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		delete(r.subs, ch)
		close(ch)
		r.mu.Unlock()
	}()
	return ch, nil
}

// notifyLocked must be called with mu held; subscribers are only written to
// and closed under mu, so the drain-then-send never blocks.
func (r *MemoryRegistrationRepo) notifyLocked() {
	for ch := range r.subs {
		snap := r.snapshotLocked()
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (r *MemoryRegistrationRepo) snapshotLocked() []models.Registration {
	out := slices.Clone(r.regs)
	if out == nil {
		out = []models.Registration{}
	}
	slices.SortStableFunc(out, func(a, b models.Registration) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out
}

func (r *MemoryRegistrationRepo) indexLocked(id string) int {
	return slices.IndexFunc(r.regs, func(reg models.Registration) bool { return reg.ID == id })
}

var _ RegistrationRepository = (*MemoryRegistrationRepo)(nil)
