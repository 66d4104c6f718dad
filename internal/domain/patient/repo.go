package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository stores patient files. Update replaces the whole record; the
// service layer serializes workflow writes so the replacement is the only
// write for that event.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByQRCode(ctx context.Context, code string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	ListAll(ctx context.Context) ([]*Patient, error)
	ListByStatus(ctx context.Context, status Status) ([]*Patient, error)
}
