// Package demo seeds the store with the demonstration data set: five
// patients spread across the workflow stages and the matching ledger
// entries. Used by the seed command and by the memory store at startup.
package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ftk-keit/medi-application/internal/domain/billing"
	"github.com/Ftk-keit/medi-application/internal/domain/patient"
	"github.com/Ftk-keit/medi-application/internal/domain/records"
)

func ptr(t time.Time) *time.Time { return &t }

// Seed writes the demo data set relative to now. Patients are written
// straight through the repositories because they enter mid-workflow.
func Seed(ctx context.Context, patients patient.Repository, payments billing.Repository, now time.Time) error {
	awaID := uuid.New()
	mariamID := uuid.New()

	awaHistory := []records.MedicalRecord{
		{
			ID:         uuid.New().String(),
			Date:       now.Add(-7 * 24 * time.Hour),
			Type:       records.RecordConsultation,
			DoctorID:   "dr.sow",
			DoctorName: "Dr. Amadou Sow",
			Department: "cardiology",
			Diagnosis:  "Hypertension artérielle",
			Symptoms:   []string{"Maux de tête", "Fatigue"},
			Treatment:  "Modification du régime alimentaire, médicaments antihypertenseurs",
			Notes:      "Patiente répondant bien au traitement",
			VitalSigns: &records.VitalSigns{
				Temperature:      36.8,
				BloodPressure:    "140/90",
				HeartRate:        78,
				OxygenSaturation: 98,
				Weight:           68.5,
				Height:           165,
			},
		},
	}

	awaLabs := []records.LabResult{
		{
			ID:       uuid.New().String(),
			TestName: "Électrophorèse des protéines sériques",
			Date:     now.Add(-3 * 24 * time.Hour),
			Status:   records.LabReviewed,
			Values: []records.LabValue{
				{Name: "Albumine", Value: "42", Unit: "g/L", NormalRange: "35-50"},
				{Name: "Alpha-1", Value: "3.2", Unit: "g/L", NormalRange: "2-4"},
				{Name: "Gamma", Value: "18.2", Unit: "g/L", NormalRange: "7-16", Abnormal: true},
			},
			RequestedBy: "dr.sow",
			ReviewedBy:  "dr.sow",
			Notes:       "Légère augmentation des gamma-globulines, à surveiller",
		},
		{
			ID:       uuid.New().String(),
			TestName: "Bilan sanguin complet",
			Date:     now.Add(-24 * time.Hour),
			Status:   records.LabCompleted,
			Values: []records.LabValue{
				{Name: "Hémoglobine", Value: "13.5", Unit: "g/dL", NormalRange: "12-16"},
				{Name: "Glycémie", Value: "6.8", Unit: "mmol/L", NormalRange: "3.9-5.8", Abnormal: true},
			},
			RequestedBy: "dr.sow",
			Notes:       "Glycémie légèrement élevée, ajustement du traitement diabétique recommandé",
		},
	}

	mariamHistory := []records.MedicalRecord{
		{
			ID:         uuid.New().String(),
			Date:       now.Add(-2 * 24 * time.Hour),
			Type:       records.RecordConsultation,
			DoctorID:   "dr.sow",
			DoctorName: "Dr. Amadou Sow",
			Department: "cardiology",
			Diagnosis:  "Pneumonie",
			Symptoms:   []string{"Fièvre", "Toux", "Difficultés respiratoires"},
			Treatment:  "Antibiotiques, repos, hydratation",
			Notes:      "Patiente nécessitant une hospitalisation pour surveillance",
		},
	}

	seedPatients := []*patient.Patient{
		{
			ID:          awaID,
			QRCode:      "PAT000001",
			FirstName:   "Awa",
			LastName:    "Gueye",
			DateOfBirth: "1985-03-15",
			Gender:      "F",
			Phone:       "77 123 45 67",
			Email:       "awa.gueye@email.com",
			Address:     "123 Rue de la Santé, Dakar",
			EmergencyContacts: []patient.EmergencyContact{
				{Name: "Ibrahima Gueye", Phone: "77 234 56 78", Relationship: "Mari"},
				{Name: "Miriam Sow", Phone: "77 111 22 33", Relationship: "Sœur"},
			},
			Allergies:          []string{"Pénicilline", "Fruits de mer"},
			ChronicConditions:  []string{"Hypertension", "Diabète type 2"},
			CurrentMedications: []string{"Lisinopril 10mg", "Metformine 500mg"},
			MedicalHistory:     awaHistory,
			LabResults:         awaLabs,
			Status:             patient.StatusWaitingConsultation,
			Department:         "cardiology",
			ConsultationType:   "follow-up",
			Priority:           patient.PriorityNormal,
			RegistrationDate:   now.Add(-2 * time.Hour),
			PaymentStatus:      "paid",
			PaymentAmount:      80,
			PaymentMethod:      billing.MethodCard,
			PaymentDate:        ptr(now.Add(-90 * time.Minute)),
		},
		{
			ID:          uuid.New(),
			QRCode:      "PAT000002",
			FirstName:   "Moussa",
			LastName:    "Diallo",
			DateOfBirth: "1978-07-22",
			Gender:      "M",
			Phone:       "77 234 56 78",
			Email:       "moussa.diallo@email.com",
			Address:     "456 Avenue de la République, Dakar",
			EmergencyContacts: []patient.EmergencyContact{
				{Name: "Hawa Diallo", Phone: "77 111 22 33", Relationship: "Épouse"},
			},
			Status:           patient.StatusWaitingPayment,
			Department:       "neurology",
			ConsultationType: "first-visit",
			Priority:         patient.PriorityNormal,
			RegistrationDate: now.Add(-30 * time.Minute),
			PaymentStatus:    "pending",
			PaymentAmount:    90,
		},
		{
			ID:          mariamID,
			QRCode:      "PAT000003",
			FirstName:   "Mariam",
			LastName:    "Ndiaye",
			DateOfBirth: "1992-11-08",
			Gender:      "F",
			Phone:       "77 345 67 89",
			Email:       "mariam.ndiaye@email.com",
			Address:     "789 Boulevard de l'Indépendance, Dakar",
			EmergencyContacts: []patient.EmergencyContact{
				{Name: "Omar Ndiaye", Phone: "77 456 78 90", Relationship: "Père"},
			},
			Allergies:          []string{"Aspirine"},
			ChronicConditions:  []string{"Asthme"},
			CurrentMedications: []string{"Ventoline"},
			MedicalHistory:     mariamHistory,
			Status:             patient.StatusHospitalized,
			Department:         "cardiology",
			ConsultationType:   "emergency",
			Priority:           patient.PriorityUrgent,
			RegistrationDate:   now.Add(-3 * 24 * time.Hour),
			PaymentStatus:      "paid",
			PaymentAmount:      120,
			PaymentMethod:      billing.MethodInsurance,
			PaymentDate:        ptr(now.Add(-3 * 24 * time.Hour)),
			IsHospitalized:     true,
			HospitalRoom:       "205B",
			AdmissionDate:      ptr(now.Add(-2 * 24 * time.Hour)),
		},
		{
			ID:          uuid.New(),
			QRCode:      "PAT000004",
			FirstName:   "Khady",
			LastName:    "Fall",
			DateOfBirth: "2018-05-12",
			Gender:      "F",
			Phone:       "77 111 22 33",
			Email:       "khady.fall@email.com",
			Address:     "456 Rue de l'Enfance, Dakar",
			EmergencyContacts: []patient.EmergencyContact{
				{Name: "Aïssatou Fall", Phone: "77 555 66 77", Relationship: "Mère"},
			},
			Status:           patient.StatusWaitingConsultation,
			Department:       "pediatrics",
			ConsultationType: "first-visit",
			Priority:         patient.PriorityNormal,
			RegistrationDate: now.Add(-time.Hour),
			PaymentStatus:    "paid",
			PaymentAmount:    60,
			PaymentMethod:    billing.MethodCash,
			PaymentDate:      ptr(now.Add(-50 * time.Minute)),
		},
		{
			ID:          uuid.New(),
			QRCode:      "PAT000005",
			FirstName:   "Oumou",
			LastName:    "Sane",
			DateOfBirth: "1990-08-20",
			Gender:      "F",
			Phone:       "77 666 77 88",
			Email:       "oumou.sane@email.com",
			Address:     "789 Avenue de la Maternité, Dakar",
			EmergencyContacts: []patient.EmergencyContact{
				{Name: "Seydou Sane", Phone: "77 777 88 99", Relationship: "Époux"},
			},
			Status:           patient.StatusWaitingConsultation,
			Department:       "maternity",
			ConsultationType: "follow-up",
			Priority:         patient.PriorityNormal,
			RegistrationDate: now.Add(-45 * time.Minute),
			PaymentStatus:    "paid",
			PaymentAmount:    70,
			PaymentMethod:    billing.MethodCash,
			PaymentDate:      ptr(now.Add(-40 * time.Minute)),
		},
	}

	for _, p := range seedPatients {
		p.CreatedAt = p.RegistrationDate
		p.UpdatedAt = p.RegistrationDate
		if err := patients.Create(ctx, p); err != nil {
			return fmt.Errorf("seed patient %s: %w", p.QRCode, err)
		}
	}

	seedPayments := []*billing.Payment{
		{
			ID:          uuid.New(),
			PatientID:   awaID,
			PatientName: "Awa Gueye",
			Amount:      80,
			Date:        now.Add(-90 * time.Minute),
			Type:        billing.PaymentConsultation,
			Status:      "paid",
			Method:      billing.MethodCard,
			CashierID:   "cashier.ndiaye",
			Department:  "cardiology",
			CreatedAt:   now.Add(-90 * time.Minute),
		},
		{
			ID:          uuid.New(),
			PatientID:   mariamID,
			PatientName: "Mariam Ndiaye",
			Amount:      120,
			Date:        now.Add(-3 * 24 * time.Hour),
			Type:        billing.PaymentConsultation,
			Status:      "paid",
			Method:      billing.MethodInsurance,
			CashierID:   "cashier.ndiaye",
			Department:  "cardiology",
			CreatedAt:   now.Add(-3 * 24 * time.Hour),
		},
	}

	for _, p := range seedPayments {
		if err := payments.Create(ctx, p); err != nil {
			return fmt.Errorf("seed payment for %s: %w", p.PatientName, err)
		}
	}

	return nil
}
