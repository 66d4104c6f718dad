package patient

import (
	"time"

	"github.com/Ftk-keit/medi-application/internal/domain/billing"
	"github.com/Ftk-keit/medi-application/internal/domain/records"
)

// The workflow functions are pure: each takes a patient value and returns the
// transitioned copy, or an IllegalTransitionError if the current status does
// not allow the event. Persistence and ledger side effects live in the
// service layer.

// Pay settles the consultation fee and moves the patient into the
// consultation queue.
func Pay(p Patient, amount float64, method billing.PaymentMethod, now time.Time) (Patient, error) {
	if p.Status != StatusWaitingPayment {
		return Patient{}, &IllegalTransitionError{From: p.Status, Event: "pay"}
	}
	if amount <= 0 {
		return Patient{}, &ValidationError{Field: "amount", Message: "must be positive"}
	}

	p.PaymentStatus = "paid"
	p.PaymentAmount = amount
	p.PaymentMethod = method
	p.PaymentDate = &now
	p.Status = StatusWaitingConsultation
	p.UpdatedAt = now
	return p, nil
}

// StartConsultation pulls the patient out of the waiting queue. Payment must
// already be settled.
func StartConsultation(p Patient, now time.Time) (Patient, error) {
	if p.Status != StatusWaitingConsultation {
		return Patient{}, &IllegalTransitionError{From: p.Status, Event: "start consultation"}
	}
	if p.PaymentStatus != "paid" {
		return Patient{}, &IllegalTransitionError{From: p.Status, Event: "start consultation without payment"}
	}

	p.Status = StatusInConsultation
	p.UpdatedAt = now
	return p, nil
}

// CompleteConsultation closes the consultation, appends the medical record,
// and either discharges the patient or admits them to the given room.
func CompleteConsultation(p Patient, record records.MedicalRecord, hospitalize bool, room string, now time.Time) (Patient, error) {
	if p.Status != StatusInConsultation {
		return Patient{}, &IllegalTransitionError{From: p.Status, Event: "complete consultation"}
	}

	p.MedicalHistory = append(append([]records.MedicalRecord(nil), p.MedicalHistory...), record)

	if hospitalize {
		if room == "" {
			return Patient{}, &ValidationError{Field: "hospital_room", Message: "required for hospitalization"}
		}
		p.Status = StatusHospitalized
		p.IsHospitalized = true
		p.HospitalRoom = room
		p.AdmissionDate = &now
	} else {
		p.Status = StatusCompleted
		p.IsHospitalized = false
		p.HospitalRoom = ""
		p.AdmissionDate = nil
	}

	p.UpdatedAt = now
	return p, nil
}

// Discharge releases a hospitalized patient and closes their file.
func Discharge(p Patient, now time.Time) (Patient, error) {
	if p.Status != StatusHospitalized {
		return Patient{}, &IllegalTransitionError{From: p.Status, Event: "discharge"}
	}

	p.Status = StatusCompleted
	p.IsHospitalized = false
	p.HospitalRoom = ""
	p.AdmissionDate = nil
	p.UpdatedAt = now
	return p, nil
}
