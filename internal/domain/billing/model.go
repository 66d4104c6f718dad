// Package billing keeps the payment ledger. Entries are append-only; a
// recorded payment is never edited or deleted.
package billing

import (
	"time"

	"github.com/google/uuid"
)

// PaymentType classifies what the payment was for.
type PaymentType string

const (
	PaymentConsultation    PaymentType = "consultation"
	PaymentProcedure       PaymentType = "procedure"
	PaymentMedication      PaymentType = "medication"
	PaymentHospitalization PaymentType = "hospitalization"
)

// PaymentMethod is how the patient settled the amount.
type PaymentMethod string

const (
	MethodCash      PaymentMethod = "cash"
	MethodCard      PaymentMethod = "card"
	MethodInsurance PaymentMethod = "insurance"
)

// Payment is one ledger entry.
type Payment struct {
	ID          uuid.UUID     `json:"id"`
	PatientID   uuid.UUID     `json:"patient_id"`
	PatientName string        `json:"patient_name"`
	Amount      float64       `json:"amount"`
	Date        time.Time     `json:"date"`
	Type        PaymentType   `json:"type"`
	Status      string        `json:"status"`
	Method      PaymentMethod `json:"method"`
	CashierID   string        `json:"cashier_id"`
	Department  string        `json:"department"`
	CreatedAt   time.Time     `json:"created_at"`
}

// MethodTotals breaks a revenue figure down by payment method.
type MethodTotals struct {
	Cash      float64 `json:"cash"`
	Card      float64 `json:"card"`
	Insurance float64 `json:"insurance"`
}

// DailySummary is the cashier's end-of-day view for a single date.
type DailySummary struct {
	Date         string             `json:"date"`
	Count        int                `json:"count"`
	Total        float64            `json:"total"`
	ByMethod     MethodTotals       `json:"by_method"`
	ByDepartment map[string]float64 `json:"by_department"`
}
