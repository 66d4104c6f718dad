package records

import (
	"testing"
)

func pendingResult(t *testing.T) LabResult {
	t.Helper()
	r, err := NewLabResult(testNow, "Numération formule sanguine", "dr.sow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func TestNewLabResult(t *testing.T) {
	r := pendingResult(t)
	if r.Status != LabPending {
		t.Errorf("expected pending status, got %s", r.Status)
	}
	if r.ID == "" {
		t.Error("expected generated id")
	}

	if _, err := NewLabResult(testNow, "", "dr.sow"); err == nil {
		t.Error("expected error for missing test name")
	}
	if _, err := NewLabResult(testNow, "NFS", ""); err == nil {
		t.Error("expected error for missing requester")
	}
}

func TestLabResult_Lifecycle(t *testing.T) {
	r := pendingResult(t)

	values := []LabValue{
		{Name: "Hémoglobine", Value: "14.2", Unit: "g/dL", NormalRange: "12-16"},
		{Name: "Leucocytes", Value: "11.5", Unit: "10^9/L", NormalRange: "4-10", Abnormal: true},
	}
	completed, err := r.Complete(values)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != LabCompleted {
		t.Errorf("expected completed, got %s", completed.Status)
	}
	if !completed.HasAbnormalValues() {
		t.Error("expected abnormal flag to surface")
	}

	reviewed, err := completed.Review("dr.sow")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if reviewed.Status != LabReviewed || reviewed.ReviewedBy != "dr.sow" {
		t.Errorf("unexpected reviewed result: %+v", reviewed)
	}
}

func TestLabResult_GuardedTransitions(t *testing.T) {
	r := pendingResult(t)

	if _, err := r.Review("dr.sow"); err == nil {
		t.Error("expected error reviewing a pending result")
	}
	if _, err := r.Complete(nil); err == nil {
		t.Error("expected error completing without values")
	}

	completed, err := r.Complete([]LabValue{{Name: "Glycémie", Value: "0.95", Unit: "g/L"}})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := completed.Complete([]LabValue{{Name: "x", Value: "1"}}); err == nil {
		t.Error("expected error completing twice")
	}
	if _, err := completed.Review(""); err == nil {
		t.Error("expected error reviewing without a doctor")
	}

	reviewed, err := completed.Review("dr.sow")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if _, err := reviewed.Review("dr.sow"); err == nil {
		t.Error("expected error reviewing twice")
	}
}
