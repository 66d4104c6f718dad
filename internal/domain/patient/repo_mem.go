package patient

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Ftk-keit/medi-application/pkg/pagination"
)

// memRepo keeps patient files in memory. Every read hands out a deep copy so
// callers can never mutate stored state; every write replaces the stored
// snapshot wholesale.
type memRepo struct {
	mu       sync.RWMutex
	patients map[uuid.UUID]*Patient
	byQR     map[string]uuid.UUID
}

func NewMemRepo() Repository {
	return &memRepo{
		patients: make(map[uuid.UUID]*Patient),
		byQR:     make(map[string]uuid.UUID),
	}
}

func (r *memRepo) Create(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients[p.ID] = p.Clone()
	if p.QRCode != "" {
		r.byQR[p.QRCode] = p.ID
	}
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (r *memRepo) GetByQRCode(_ context.Context, code string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byQR[code]
	if !ok {
		return nil, ErrNotFound
	}
	return r.patients[id].Clone(), nil
}

func (r *memRepo) Update(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.patients[p.ID]
	if !ok {
		return ErrNotFound
	}
	if old.QRCode != p.QRCode {
		delete(r.byQR, old.QRCode)
		if p.QRCode != "" {
			r.byQR[p.QRCode] = p.ID
		}
	}
	r.patients[p.ID] = p.Clone()
	return nil
}

// sorted returns snapshots ordered by registration date, newest first, with
// the id as tiebreaker so listings are deterministic.
func (r *memRepo) sorted() []*Patient {
	out := make([]*Patient, 0, len(r.patients))
	for _, p := range r.patients {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RegistrationDate.Equal(out[j].RegistrationDate) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].RegistrationDate.After(out[j].RegistrationDate)
	})
	return out
}

func (r *memRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.sorted()
	total := len(all)
	start, end := pagination.Params{Limit: limit, Offset: offset}.Slice(total)
	return all[start:end], total, nil
}

func (r *memRepo) ListAll(_ context.Context) ([]*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(), nil
}

func (r *memRepo) ListByStatus(_ context.Context, status Status) ([]*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Patient
	for _, p := range r.sorted() {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}
