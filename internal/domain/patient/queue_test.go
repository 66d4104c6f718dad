package patient

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func queuedPatient(name string, priority Priority, status Status, dept string, registered time.Time) *Patient {
	return &Patient{
		ID:               uuid.New(),
		FirstName:        name,
		Status:           status,
		Department:       dept,
		Priority:         priority,
		RegistrationDate: registered,
	}
}

func names(queue []*Patient) []string {
	out := make([]string, len(queue))
	for i, p := range queue {
		out[i] = p.FirstName
	}
	return out
}

func assertOrder(t *testing.T, queue []*Patient, want ...string) {
	t.Helper()
	got := names(queue)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestOrderedQueue_PriorityBeforeArrival(t *testing.T) {
	base := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	patients := []*Patient{
		queuedPatient("first-normal", PriorityNormal, StatusWaitingPayment, "cardiology", base),
		queuedPatient("late-emergency", PriorityEmergency, StatusWaitingPayment, "cardiology", base.Add(2*time.Hour)),
		queuedPatient("mid-urgent", PriorityUrgent, StatusWaitingPayment, "cardiology", base.Add(time.Hour)),
	}

	queue := OrderedQueue(patients, nil)
	assertOrder(t, queue, "late-emergency", "mid-urgent", "first-normal")
}

func TestOrderedQueue_ArrivalOrderWithinPriority(t *testing.T) {
	base := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	patients := []*Patient{
		queuedPatient("second", PriorityNormal, StatusWaitingPayment, "cardiology", base.Add(time.Minute)),
		queuedPatient("first", PriorityNormal, StatusWaitingPayment, "cardiology", base),
		queuedPatient("third", PriorityNormal, StatusWaitingPayment, "cardiology", base.Add(2*time.Minute)),
	}

	queue := OrderedQueue(patients, nil)
	assertOrder(t, queue, "first", "second", "third")
}

func TestOrderedQueue_StableOnTies(t *testing.T) {
	at := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	patients := []*Patient{
		queuedPatient("a", PriorityUrgent, StatusWaitingPayment, "cardiology", at),
		queuedPatient("b", PriorityUrgent, StatusWaitingPayment, "cardiology", at),
		queuedPatient("c", PriorityUrgent, StatusWaitingPayment, "cardiology", at),
	}

	queue := OrderedQueue(patients, nil)
	assertOrder(t, queue, "a", "b", "c")
}

func TestOrderedQueue_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	patients := []*Patient{
		queuedPatient("normal", PriorityNormal, StatusWaitingPayment, "cardiology", base),
		queuedPatient("emergency", PriorityEmergency, StatusWaitingPayment, "cardiology", base.Add(time.Hour)),
	}

	OrderedQueue(patients, nil)
	if patients[0].FirstName != "normal" {
		t.Error("input slice order must be preserved")
	}
}

func TestPaymentQueue_FiltersStatus(t *testing.T) {
	base := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	patients := []*Patient{
		queuedPatient("waiting", PriorityNormal, StatusWaitingPayment, "cardiology", base),
		queuedPatient("paid", PriorityEmergency, StatusWaitingConsultation, "cardiology", base),
		queuedPatient("done", PriorityEmergency, StatusCompleted, "cardiology", base),
	}

	queue := PaymentQueue(patients)
	assertOrder(t, queue, "waiting")
}

func TestConsultationQueue_FiltersStatusAndDepartment(t *testing.T) {
	base := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	patients := []*Patient{
		queuedPatient("cardio-normal", PriorityNormal, StatusWaitingConsultation, "cardiology", base),
		queuedPatient("cardio-urgent", PriorityUrgent, StatusWaitingConsultation, "cardiology", base.Add(time.Hour)),
		queuedPatient("neuro", PriorityEmergency, StatusWaitingConsultation, "neurology", base),
		queuedPatient("cardio-unpaid", PriorityEmergency, StatusWaitingPayment, "cardiology", base),
	}

	queue := ConsultationQueue(patients, "cardiology")
	assertOrder(t, queue, "cardio-urgent", "cardio-normal")
}

func TestOrderedQueue_Empty(t *testing.T) {
	if queue := OrderedQueue(nil, nil); len(queue) != 0 {
		t.Errorf("expected empty queue, got %d entries", len(queue))
	}
}
