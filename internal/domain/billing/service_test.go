package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testService() *Service {
	svc := NewService(NewMemRepo())
	svc.SetClock(func() time.Time {
		return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	})
	return svc
}

func record(t *testing.T, svc *Service, p *Payment) *Payment {
	t.Helper()
	if err := svc.Record(context.Background(), p); err != nil {
		t.Fatalf("record payment: %v", err)
	}
	return p
}

func TestRecord_DefaultsAndStamps(t *testing.T) {
	svc := testService()
	p := record(t, svc, &Payment{
		PatientID:  uuid.New(),
		Amount:     80,
		Method:     MethodCash,
		Department: "cardiology",
	})

	if p.ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if p.Type != PaymentConsultation {
		t.Errorf("expected default consultation type, got %s", p.Type)
	}
	if p.Status != "paid" {
		t.Errorf("expected default paid status, got %s", p.Status)
	}
	if p.Date.IsZero() {
		t.Error("expected stamped date")
	}
}

func TestRecord_Validation(t *testing.T) {
	svc := testService()
	cases := []struct {
		name    string
		payment Payment
	}{
		{"missing patient", Payment{Amount: 80, Method: MethodCash}},
		{"zero amount", Payment{PatientID: uuid.New(), Method: MethodCash}},
		{"negative amount", Payment{PatientID: uuid.New(), Amount: -5, Method: MethodCash}},
		{"invalid method", Payment{PatientID: uuid.New(), Amount: 80, Method: "cheque"}},
		{"invalid type", Payment{PatientID: uuid.New(), Amount: 80, Method: MethodCash, Type: "donation"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.payment
			if err := svc.Record(context.Background(), &p); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSummary(t *testing.T) {
	svc := testService()
	pid := uuid.New()

	record(t, svc, &Payment{PatientID: pid, Amount: 80, Method: MethodCash, Department: "cardiology"})
	record(t, svc, &Payment{PatientID: uuid.New(), Amount: 120, Method: MethodCard, Department: "emergency"})
	record(t, svc, &Payment{PatientID: uuid.New(), Amount: 60, Method: MethodInsurance, Department: "pediatrics"})
	record(t, svc, &Payment{
		PatientID: uuid.New(), Amount: 90, Method: MethodCash, Department: "neurology",
		Date: time.Date(2024, 3, 14, 16, 0, 0, 0, time.UTC),
	})

	summary, err := svc.Summary(context.Background(), "2024-03-15")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if summary.Count != 3 {
		t.Errorf("expected 3 payments on the 15th, got %d", summary.Count)
	}
	if summary.Total != 260 {
		t.Errorf("expected total 260, got %v", summary.Total)
	}
	if summary.ByMethod.Cash != 80 || summary.ByMethod.Card != 120 || summary.ByMethod.Insurance != 60 {
		t.Errorf("unexpected method breakdown: %+v", summary.ByMethod)
	}
	if summary.ByDepartment["cardiology"] != 80 {
		t.Errorf("expected cardiology revenue 80, got %v", summary.ByDepartment["cardiology"])
	}
}

func TestSummary_InvalidDate(t *testing.T) {
	svc := testService()
	if _, err := svc.Summary(context.Background(), "15/03/2024"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestListByPatient(t *testing.T) {
	svc := testService()
	pid := uuid.New()
	record(t, svc, &Payment{PatientID: pid, Amount: 80, Method: MethodCash})
	record(t, svc, &Payment{PatientID: pid, Amount: 40, Method: MethodCard, Type: PaymentMedication})
	record(t, svc, &Payment{PatientID: uuid.New(), Amount: 70, Method: MethodCash})

	payments, err := svc.ListByPatient(context.Background(), pid)
	if err != nil {
		t.Fatalf("list by patient: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(payments))
	}
}

func TestList_Pagination(t *testing.T) {
	svc := testService()
	for i := 0; i < 5; i++ {
		record(t, svc, &Payment{PatientID: uuid.New(), Amount: 10, Method: MethodCash})
	}

	payments, total, err := svc.List(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(payments) != 2 {
		t.Errorf("expected page of 2, got %d", len(payments))
	}
}
