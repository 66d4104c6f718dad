// Package records defines the clinical documents attached to a patient file:
// consultation records, prescriptions, and laboratory results. Records are
// immutable once written; only lab result status advances.
package records

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecordType classifies a medical record entry.
type RecordType string

const (
	RecordConsultation    RecordType = "consultation"
	RecordEmergency       RecordType = "emergency"
	RecordFollowUp        RecordType = "follow-up"
	RecordHospitalization RecordType = "hospitalization"
	RecordLabTest         RecordType = "lab_test"
)

// PrescriptionValidity is how long a prescription stays valid after issue.
const PrescriptionValidity = 30 * 24 * time.Hour

// VitalSigns captures the measurements taken during a consultation.
type VitalSigns struct {
	BloodPressure    string  `json:"blood_pressure,omitempty"`
	HeartRate        int     `json:"heart_rate,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
	OxygenSaturation int     `json:"oxygen_saturation,omitempty"`
	Weight           float64 `json:"weight,omitempty"`
	Height           float64 `json:"height,omitempty"`
}

// Medication is one line of a prescription.
type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions,omitempty"`
	Category     string `json:"category,omitempty"`
}

// Prescription is the ordered list of medications issued with a record.
type Prescription struct {
	ID           string       `json:"id"`
	Medications  []Medication `json:"medications"`
	Instructions string       `json:"instructions,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	ValidUntil   time.Time    `json:"valid_until"`
	Printed      bool         `json:"printed"`
	Dispensed    bool         `json:"dispensed"`
}

// MedicalRecord is a single entry in a patient's medical history.
type MedicalRecord struct {
	ID           string        `json:"id"`
	Date         time.Time     `json:"date"`
	Type         RecordType    `json:"type"`
	DoctorID     string        `json:"doctor_id"`
	DoctorName   string        `json:"doctor_name"`
	Department   string        `json:"department"`
	Diagnosis    string        `json:"diagnosis"`
	Symptoms     []string      `json:"symptoms,omitempty"`
	Treatment    string        `json:"treatment,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	VitalSigns   *VitalSigns   `json:"vital_signs,omitempty"`
	Prescription *Prescription `json:"prescription,omitempty"`
	FollowUpDate *time.Time    `json:"follow_up_date,omitempty"`
}

// NewMedicalRecord validates the required fields and stamps id and date.
func NewMedicalRecord(now time.Time, recordType RecordType, doctorID, doctorName, dept, diagnosis string) (MedicalRecord, error) {
	switch recordType {
	case RecordConsultation, RecordEmergency, RecordFollowUp, RecordHospitalization, RecordLabTest:
	default:
		return MedicalRecord{}, fmt.Errorf("invalid record type: %s", recordType)
	}
	if doctorID == "" {
		return MedicalRecord{}, fmt.Errorf("doctor id is required")
	}
	if diagnosis == "" {
		return MedicalRecord{}, fmt.Errorf("diagnosis is required")
	}

	return MedicalRecord{
		ID:         uuid.New().String(),
		Date:       now,
		Type:       recordType,
		DoctorID:   doctorID,
		DoctorName: doctorName,
		Department: dept,
		Diagnosis:  diagnosis,
	}, nil
}

// NewPrescription validates the medication list and stamps the validity
// window from the issue time.
func NewPrescription(now time.Time, medications []Medication, instructions string) (Prescription, error) {
	if len(medications) == 0 {
		return Prescription{}, fmt.Errorf("prescription requires at least one medication")
	}
	for i, m := range medications {
		if m.Name == "" {
			return Prescription{}, fmt.Errorf("medication %d: name is required", i)
		}
		if m.Dosage == "" {
			return Prescription{}, fmt.Errorf("medication %d (%s): dosage is required", i, m.Name)
		}
	}

	return Prescription{
		ID:           uuid.New().String(),
		Medications:  medications,
		Instructions: instructions,
		CreatedAt:    now,
		ValidUntil:   now.Add(PrescriptionValidity),
	}, nil
}

// Valid reports whether the prescription is still inside its validity window.
func (p Prescription) Valid(now time.Time) bool {
	return !now.After(p.ValidUntil)
}
