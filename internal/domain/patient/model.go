// Package patient implements the patient workflow core: the registration
// record, the status state machine, and the waiting queues.
package patient

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ftk-keit/medi-application/internal/domain/billing"
	"github.com/Ftk-keit/medi-application/internal/domain/records"
)

// Status is the patient's position in the care workflow.
type Status string

const (
	// StatusRegistered is a legacy pre-payment placeholder still seen in
	// imported records; registration writes waiting_payment directly.
	StatusRegistered          Status = "registered"
	StatusWaitingPayment      Status = "waiting_payment"
	StatusWaitingConsultation Status = "waiting_consultation"
	StatusInConsultation      Status = "in_consultation"
	StatusCompleted           Status = "completed"
	StatusHospitalized        Status = "hospitalized"
)

// Priority decides queue placement ahead of arrival order.
type Priority string

const (
	PriorityNormal    Priority = "normal"
	PriorityUrgent    Priority = "urgent"
	PriorityEmergency Priority = "emergency"
)

// rank orders priorities for queueing: lower sorts first.
func (p Priority) rank() int {
	switch p {
	case PriorityEmergency:
		return 0
	case PriorityUrgent:
		return 1
	default:
		return 2
	}
}

func (p Priority) valid() bool {
	switch p {
	case PriorityNormal, PriorityUrgent, PriorityEmergency:
		return true
	}
	return false
}

// EmergencyContact is a person to notify about the patient.
type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone"`
}

// Empty reports whether the contact carries no information at all.
func (c EmergencyContact) Empty() bool {
	return c.Name == "" && c.Relationship == "" && c.Phone == ""
}

// Patient is the full patient file. The embedded record and lab lists are
// append-only; workflow fields change only through the transitions in
// workflow.go.
type Patient struct {
	ID     uuid.UUID `json:"id"`
	QRCode string    `json:"qr_code"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`

	EmergencyContacts  []EmergencyContact `json:"emergency_contacts,omitempty"`
	Allergies          []string           `json:"allergies,omitempty"`
	ChronicConditions  []string           `json:"chronic_conditions,omitempty"`
	CurrentMedications []string           `json:"current_medications,omitempty"`

	MedicalHistory []records.MedicalRecord `json:"medical_history,omitempty"`
	LabResults     []records.LabResult     `json:"lab_results,omitempty"`

	Status           Status    `json:"status"`
	Department       string    `json:"department"`
	ConsultationType string    `json:"consultation_type"`
	Priority         Priority  `json:"priority"`
	RegistrationDate time.Time `json:"registration_date"`

	PaymentStatus string                `json:"payment_status"`
	PaymentAmount float64               `json:"payment_amount"`
	PaymentMethod billing.PaymentMethod `json:"payment_method,omitempty"`
	PaymentDate   *time.Time            `json:"payment_date,omitempty"`

	IsHospitalized bool       `json:"is_hospitalized"`
	HospitalRoom   string     `json:"hospital_room,omitempty"`
	AdmissionDate  *time.Time `json:"admission_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns the patient's display name.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Clone deep-copies the patient so callers can hand out snapshots.
func (p *Patient) Clone() *Patient {
	cp := *p
	cp.EmergencyContacts = append([]EmergencyContact(nil), p.EmergencyContacts...)
	cp.Allergies = append([]string(nil), p.Allergies...)
	cp.ChronicConditions = append([]string(nil), p.ChronicConditions...)
	cp.CurrentMedications = append([]string(nil), p.CurrentMedications...)
	cp.MedicalHistory = append([]records.MedicalRecord(nil), p.MedicalHistory...)
	cp.LabResults = append([]records.LabResult(nil), p.LabResults...)
	if p.PaymentDate != nil {
		d := *p.PaymentDate
		cp.PaymentDate = &d
	}
	if p.AdmissionDate != nil {
		d := *p.AdmissionDate
		cp.AdmissionDate = &d
	}
	return &cp
}
