// Package reporting builds the hospital dashboard figures: patient totals,
// revenue, per-department activity, and the live queue snapshot.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/Ftk-keit/medi-application/internal/domain/billing"
	"github.com/Ftk-keit/medi-application/internal/domain/department"
	"github.com/Ftk-keit/medi-application/internal/domain/patient"
)

// Period filters the dashboard to a trailing window.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// DepartmentStats aggregates one department's activity.
type DepartmentStats struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Patients int     `json:"patients"`
	Waiting  int     `json:"waiting"`
	Revenue  float64 `json:"revenue"`
}

// QueueSnapshot counts patients at each workflow stage right now. The
// snapshot ignores the period filter: a queue is a live figure.
type QueueSnapshot struct {
	WaitingPayment      int `json:"waiting_payment"`
	WaitingConsultation int `json:"waiting_consultation"`
	InConsultation      int `json:"in_consultation"`
}

// Stats is the full dashboard payload.
type Stats struct {
	Period                 Period            `json:"period"`
	TotalPatients          int               `json:"total_patients"`
	CompletedConsultations int               `json:"completed_consultations"`
	Hospitalized           int               `json:"hospitalized"`
	Revenue                float64           `json:"revenue"`
	Departments            []DepartmentStats `json:"departments"`
	Queues                 QueueSnapshot     `json:"queues"`
}

type Service struct {
	patients patient.Repository
	payments billing.Repository
	now      func() time.Time
}

func NewService(patients patient.Repository, payments billing.Repository) *Service {
	return &Service{patients: patients, payments: payments, now: time.Now}
}

// SetClock overrides the service clock, for tests.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// cutoff returns the window start for a period, or the zero time for "all".
func (s *Service) cutoff(period Period) (time.Time, error) {
	now := s.now()
	switch period {
	case PeriodDay:
		return now.Add(-24 * time.Hour), nil
	case PeriodWeek:
		return now.Add(-7 * 24 * time.Hour), nil
	case PeriodMonth:
		return now.AddDate(0, -1, 0), nil
	case PeriodAll, "":
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("unknown period %q", period)
	}
}

// Stats assembles the dashboard for the given period.
func (s *Service) Stats(ctx context.Context, period Period) (*Stats, error) {
	if period == "" {
		period = PeriodAll
	}
	cutoff, err := s.cutoff(period)
	if err != nil {
		return nil, err
	}

	patients, err := s.patients.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Period: period}
	perDept := make(map[string]*DepartmentStats)
	for _, d := range department.List() {
		perDept[d.ID] = &DepartmentStats{ID: d.ID, Name: d.Name}
	}

	for _, p := range patients {
		if dept, ok := perDept[p.Department]; ok {
			if p.Status == patient.StatusWaitingConsultation {
				dept.Waiting++
			}
		}

		switch p.Status {
		case patient.StatusWaitingPayment:
			stats.Queues.WaitingPayment++
		case patient.StatusWaitingConsultation:
			stats.Queues.WaitingConsultation++
		case patient.StatusInConsultation:
			stats.Queues.InConsultation++
		}

		if !cutoff.IsZero() && p.RegistrationDate.Before(cutoff) {
			continue
		}

		stats.TotalPatients++
		if p.Status == patient.StatusCompleted {
			stats.CompletedConsultations++
		}
		if p.Status == patient.StatusHospitalized {
			stats.Hospitalized++
		}
		if dept, ok := perDept[p.Department]; ok {
			dept.Patients++
		}
	}

	for _, pay := range payments {
		if !cutoff.IsZero() && pay.Date.Before(cutoff) {
			continue
		}
		stats.Revenue += pay.Amount
		if dept, ok := perDept[pay.Department]; ok {
			dept.Revenue += pay.Amount
		}
	}

	for _, d := range department.List() {
		stats.Departments = append(stats.Departments, *perDept[d.ID])
	}
	return stats, nil
}
