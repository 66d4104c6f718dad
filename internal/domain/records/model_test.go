package records

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func TestNewMedicalRecord(t *testing.T) {
	rec, err := NewMedicalRecord(testNow, RecordConsultation, "dr.sow", "Dr. Sow", "cardiology", "Hypertension")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID == "" {
		t.Error("expected generated id")
	}
	if !rec.Date.Equal(testNow) {
		t.Errorf("expected date %v, got %v", testNow, rec.Date)
	}
	if rec.Type != RecordConsultation {
		t.Errorf("expected consultation type, got %s", rec.Type)
	}
}

func TestNewMedicalRecord_Validation(t *testing.T) {
	cases := []struct {
		name       string
		recordType RecordType
		doctorID   string
		diagnosis  string
	}{
		{"invalid type", RecordType("surgery"), "dr.sow", "Fracture"},
		{"missing doctor", RecordConsultation, "", "Fracture"},
		{"missing diagnosis", RecordConsultation, "dr.sow", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewMedicalRecord(testNow, tc.recordType, tc.doctorID, "Dr. Sow", "orthopedics", tc.diagnosis); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNewPrescription_ValidityWindow(t *testing.T) {
	meds := []Medication{{Name: "Amoxicilline", Dosage: "500mg", Frequency: "3x/jour", Duration: "7 jours"}}
	p, err := NewPrescription(testNow, meds, "Prendre pendant les repas")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantUntil := testNow.Add(30 * 24 * time.Hour)
	if !p.ValidUntil.Equal(wantUntil) {
		t.Errorf("expected valid until %v, got %v", wantUntil, p.ValidUntil)
	}
	if !p.Valid(testNow) {
		t.Error("expected prescription valid at issue time")
	}
	if !p.Valid(wantUntil) {
		t.Error("expected prescription valid at the window boundary")
	}
	if p.Valid(wantUntil.Add(time.Second)) {
		t.Error("expected prescription expired past the window")
	}
	if p.Printed || p.Dispensed {
		t.Error("new prescription must start unprinted and undispensed")
	}
}

func TestNewPrescription_Validation(t *testing.T) {
	if _, err := NewPrescription(testNow, nil, ""); err == nil {
		t.Error("expected error for empty medication list")
	}
	if _, err := NewPrescription(testNow, []Medication{{Dosage: "500mg"}}, ""); err == nil {
		t.Error("expected error for medication without a name")
	}
	if _, err := NewPrescription(testNow, []Medication{{Name: "Doliprane"}}, ""); err == nil {
		t.Error("expected error for medication without a dosage")
	}
}
