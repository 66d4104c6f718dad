package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var validTypes = map[PaymentType]bool{
	PaymentConsultation: true, PaymentProcedure: true,
	PaymentMedication: true, PaymentHospitalization: true,
}

var validMethods = map[PaymentMethod]bool{
	MethodCash: true, MethodCard: true, MethodInsurance: true,
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SetClock overrides the service clock, for tests.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Record appends a payment to the ledger.
func (s *Service) Record(ctx context.Context, p *Payment) error {
	if p.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if p.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if p.Type == "" {
		p.Type = PaymentConsultation
	}
	if !validTypes[p.Type] {
		return fmt.Errorf("invalid payment type: %s", p.Type)
	}
	if !validMethods[p.Method] {
		return fmt.Errorf("invalid payment method: %s", p.Method)
	}

	now := s.now()
	p.ID = uuid.New()
	if p.Date.IsZero() {
		p.Date = now
	}
	if p.Status == "" {
		p.Status = "paid"
	}
	p.CreatedAt = now

	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Payment, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Payment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByDate(ctx context.Context, date string) ([]*Payment, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return s.repo.ListByDate(ctx, date)
}

// Summary builds the end-of-day totals for a date.
func (s *Service) Summary(ctx context.Context, date string) (*DailySummary, error) {
	payments, err := s.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{
		Date:         date,
		ByDepartment: make(map[string]float64),
	}
	for _, p := range payments {
		summary.Count++
		summary.Total += p.Amount
		switch p.Method {
		case MethodCash:
			summary.ByMethod.Cash += p.Amount
		case MethodCard:
			summary.ByMethod.Card += p.Amount
		case MethodInsurance:
			summary.ByMethod.Insurance += p.Amount
		}
		if p.Department != "" {
			summary.ByDepartment[p.Department] += p.Amount
		}
	}
	return summary, nil
}
