package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a payment does not exist.
var ErrNotFound = errors.New("payment not found")

// Repository is the payment ledger store.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	List(ctx context.Context, limit, offset int) ([]*Payment, int, error)
	ListAll(ctx context.Context) ([]*Payment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Payment, error)
	ListByDate(ctx context.Context, date string) ([]*Payment, error)
}
