package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Ftk-keit/medi-application/internal/domain/billing"
	"github.com/Ftk-keit/medi-application/internal/domain/patient"
)

var statsNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func seedPatient(t *testing.T, repo patient.Repository, dept string, status patient.Status, registered time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), &patient.Patient{
		ID:               uuid.New(),
		QRCode:           "PAT" + uuid.NewString()[:6],
		FirstName:        "p",
		LastName:         "t",
		Status:           status,
		Department:       dept,
		Priority:         patient.PriorityNormal,
		RegistrationDate: registered,
	})
	if err != nil {
		t.Fatalf("seed patient: %v", err)
	}
}

func seedPayment(t *testing.T, repo billing.Repository, dept string, amount float64, at time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), &billing.Payment{
		ID:         uuid.New(),
		PatientID:  uuid.New(),
		Amount:     amount,
		Date:       at,
		Type:       billing.PaymentConsultation,
		Status:     "paid",
		Method:     billing.MethodCash,
		Department: dept,
		CreatedAt:  at,
	})
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}
}

func newStatsService(t *testing.T) (*Service, patient.Repository, billing.Repository) {
	t.Helper()
	patients := patient.NewMemRepo()
	payments := billing.NewMemRepo()
	svc := NewService(patients, payments)
	svc.SetClock(func() time.Time { return statsNow })
	return svc, patients, payments
}

func TestStats_All(t *testing.T) {
	svc, patients, payments := newStatsService(t)

	seedPatient(t, patients, "cardiology", patient.StatusWaitingPayment, statsNow.Add(-time.Hour))
	seedPatient(t, patients, "cardiology", patient.StatusWaitingConsultation, statsNow.Add(-2*time.Hour))
	seedPatient(t, patients, "neurology", patient.StatusInConsultation, statsNow.Add(-3*time.Hour))
	seedPatient(t, patients, "neurology", patient.StatusCompleted, statsNow.Add(-4*time.Hour))
	seedPatient(t, patients, "emergency", patient.StatusHospitalized, statsNow.Add(-5*time.Hour))

	seedPayment(t, payments, "cardiology", 80, statsNow.Add(-time.Hour))
	seedPayment(t, payments, "neurology", 90, statsNow.Add(-2*time.Hour))

	stats, err := svc.Stats(context.Background(), PeriodAll)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TotalPatients != 5 {
		t.Errorf("expected 5 patients, got %d", stats.TotalPatients)
	}
	if stats.CompletedConsultations != 1 || stats.Hospitalized != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.Revenue != 170 {
		t.Errorf("expected revenue 170, got %v", stats.Revenue)
	}
	if stats.Queues.WaitingPayment != 1 || stats.Queues.WaitingConsultation != 1 || stats.Queues.InConsultation != 1 {
		t.Errorf("unexpected queue snapshot: %+v", stats.Queues)
	}

	var cardio *DepartmentStats
	for i := range stats.Departments {
		if stats.Departments[i].ID == "cardiology" {
			cardio = &stats.Departments[i]
		}
	}
	if cardio == nil {
		t.Fatal("missing cardiology department stats")
	}
	if cardio.Patients != 2 || cardio.Revenue != 80 || cardio.Waiting != 1 {
		t.Errorf("unexpected cardiology stats: %+v", cardio)
	}
}

func TestStats_PeriodFilter(t *testing.T) {
	svc, patients, payments := newStatsService(t)

	seedPatient(t, patients, "cardiology", patient.StatusCompleted, statsNow.Add(-2*time.Hour))
	seedPatient(t, patients, "cardiology", patient.StatusCompleted, statsNow.Add(-10*24*time.Hour))
	seedPayment(t, payments, "cardiology", 80, statsNow.Add(-2*time.Hour))
	seedPayment(t, payments, "cardiology", 80, statsNow.Add(-10*24*time.Hour))

	day, err := svc.Stats(context.Background(), PeriodDay)
	if err != nil {
		t.Fatalf("stats day: %v", err)
	}
	if day.TotalPatients != 1 || day.Revenue != 80 {
		t.Errorf("expected day window to keep 1 patient / 80 revenue, got %d / %v", day.TotalPatients, day.Revenue)
	}

	month, err := svc.Stats(context.Background(), PeriodMonth)
	if err != nil {
		t.Fatalf("stats month: %v", err)
	}
	if month.TotalPatients != 2 || month.Revenue != 160 {
		t.Errorf("expected month window to keep both, got %d / %v", month.TotalPatients, month.Revenue)
	}
}

func TestStats_DefaultsToAllAndRejectsUnknown(t *testing.T) {
	svc, _, _ := newStatsService(t)

	stats, err := svc.Stats(context.Background(), "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Period != PeriodAll {
		t.Errorf("expected default period all, got %s", stats.Period)
	}

	if _, err := svc.Stats(context.Background(), "year"); err == nil {
		t.Error("expected error for unknown period")
	}
}
