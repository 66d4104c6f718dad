package billing

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Ftk-keit/medi-application/pkg/pagination"
)

// memRepo is the in-memory ledger used by the memory store and tests. Writes
// are serialized by the service layer; the mutex covers concurrent readers.
type memRepo struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]*Payment
}

func NewMemRepo() Repository {
	return &memRepo{payments: make(map[uuid.UUID]*Payment)}
}

func (r *memRepo) Create(_ context.Context, p *Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memRepo) all() []*Payment {
	out := make([]*Payment, 0, len(r.payments))
	for _, p := range r.payments {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func (r *memRepo) List(_ context.Context, limit, offset int) ([]*Payment, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.all()
	total := len(all)
	start, end := pagination.Params{Limit: limit, Offset: offset}.Slice(total)
	return all[start:end], total, nil
}

func (r *memRepo) ListAll(_ context.Context) ([]*Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.all(), nil
}

func (r *memRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Payment
	for _, p := range r.all() {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memRepo) ListByDate(_ context.Context, date string) ([]*Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Payment
	for _, p := range r.all() {
		if p.Date.Format("2006-01-02") == date {
			out = append(out, p)
		}
	}
	return out, nil
}
