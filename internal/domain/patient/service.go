package patient

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ftk-keit/medi-application/internal/domain/billing"
	"github.com/Ftk-keit/medi-application/internal/domain/department"
	"github.com/Ftk-keit/medi-application/internal/domain/records"
)

// Service orchestrates the patient workflow. Workflow writes are serialized
// by a single mutex: one event is read, transitioned, and stored before the
// next begins, so the state machine never sees torn updates.
type Service struct {
	mu       sync.Mutex
	repo     Repository
	payments *billing.Service
	tx       func(ctx context.Context, fn func(ctx context.Context) error) error
	now      func() time.Time
	randInt  func(n int) int
}

func NewService(repo Repository, payments *billing.Service) *Service {
	return &Service{
		repo:     repo,
		payments: payments,
		tx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
		now:     time.Now,
		randInt: rand.Intn,
	}
}

// SetClock overrides the service clock, for tests.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// SetTxRunner routes multi-write events through run, so stores with real
// transactions commit all writes of one event together. The default runner
// executes the writes directly.
func (s *Service) SetTxRunner(run func(ctx context.Context, fn func(ctx context.Context) error) error) {
	s.tx = run
}

// SetRand overrides the random source used for QR generation and the
// simulated scanner, for tests.
func (s *Service) SetRand(randInt func(n int) int) { s.randInt = randInt }

// Register validates a new patient file, stamps the consultation fee from the
// department catalog, issues a QR code, and enqueues the patient for payment.
func (s *Service) Register(ctx context.Context, p *Patient) error {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)

	if p.FirstName == "" {
		return &ValidationError{Field: "first_name", Message: "required"}
	}
	if p.LastName == "" {
		return &ValidationError{Field: "last_name", Message: "required"}
	}
	if p.DateOfBirth == "" {
		return &ValidationError{Field: "date_of_birth", Message: "required"}
	}
	if _, err := time.Parse("2006-01-02", p.DateOfBirth); err != nil {
		return &ValidationError{Field: "date_of_birth", Message: "expected YYYY-MM-DD"}
	}
	if p.Gender != "M" && p.Gender != "F" {
		return &ValidationError{Field: "gender", Message: "must be M or F"}
	}
	if p.Phone == "" {
		return &ValidationError{Field: "phone", Message: "required"}
	}

	dept, ok := department.Lookup(p.Department)
	if !ok {
		return &ValidationError{Field: "department", Message: fmt.Sprintf("unknown department %q", p.Department)}
	}

	if p.Priority == "" {
		p.Priority = PriorityNormal
	}
	if !p.Priority.valid() {
		return &ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", p.Priority)}
	}
	if p.ConsultationType == "" {
		p.ConsultationType = "consultation"
	}

	// Fully empty contact rows come in from blank form lines; drop them.
	var contacts []EmergencyContact
	for _, c := range p.EmergencyContacts {
		if !c.Empty() {
			contacts = append(contacts, c)
		}
	}
	p.EmergencyContacts = contacts

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p.ID = uuid.New()
	qr, err := s.generateQRCode(ctx)
	if err != nil {
		return err
	}
	p.QRCode = qr
	p.Status = StatusWaitingPayment
	p.PaymentStatus = "pending"
	p.PaymentAmount = dept.ConsultationPrice
	p.PaymentMethod = ""
	p.PaymentDate = nil
	p.RegistrationDate = now
	p.IsHospitalized = false
	p.HospitalRoom = ""
	p.AdmissionDate = nil
	p.MedicalHistory = nil
	p.LabResults = nil
	p.CreatedAt = now
	p.UpdatedAt = now

	return s.repo.Create(ctx, p)
}

// generateQRCode draws "PAT" plus six digits until the alias is unused.
func (s *Service) generateQRCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 100; attempt++ {
		code := fmt.Sprintf("PAT%06d", s.randInt(1000000))
		_, err := s.repo.GetByQRCode(ctx, code)
		if errors.Is(err, ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("could not allocate a unique patient code")
}

// RecordPayment settles the consultation fee, moves the patient into the
// consultation queue, and appends the matching ledger entry.
func (s *Service) RecordPayment(ctx context.Context, id uuid.UUID, method billing.PaymentMethod, cashierID string) (*Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	paid, err := Pay(*p, p.PaymentAmount, method, now)
	if err != nil {
		return nil, err
	}

	entry := &billing.Payment{
		PatientID:   paid.ID,
		PatientName: paid.FullName(),
		Amount:      paid.PaymentAmount,
		Date:        now,
		Type:        billing.PaymentConsultation,
		Method:      method,
		CashierID:   cashierID,
		Department:  paid.Department,
	}

	// Both writes go through the tx runner so the postgres store commits
	// them as one transaction. The patient row moves first: without a real
	// transaction a failed write leaves the fee uncharged, and the retry is
	// rejected as an illegal transition instead of charging it twice.
	err = s.tx(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, &paid); err != nil {
			return err
		}
		return s.payments.Record(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return &paid, nil
}

// StartConsultation takes the next patient into the consultation room.
func (s *Service) StartConsultation(ctx context.Context, id uuid.UUID) (*Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	started, err := StartConsultation(*p, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &started); err != nil {
		return nil, err
	}
	return &started, nil
}

// CompleteInput carries the consultation outcome.
type CompleteInput struct {
	DoctorID     string
	DoctorName   string
	RecordType   records.RecordType
	Diagnosis    string
	Symptoms     []string
	Treatment    string
	Notes        string
	VitalSigns   *records.VitalSigns
	Medications  []records.Medication
	Instructions string
	FollowUpDate *time.Time
	Hospitalize  bool
	HospitalRoom string
}

// CompleteConsultation writes the medical record (with an optional
// prescription), then discharges or admits the patient.
func (s *Service) CompleteConsultation(ctx context.Context, id uuid.UUID, in CompleteInput) (*Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	recordType := in.RecordType
	if recordType == "" {
		recordType = records.RecordConsultation
		if in.Hospitalize {
			recordType = records.RecordHospitalization
		}
	}

	record, err := records.NewMedicalRecord(now, recordType, in.DoctorID, in.DoctorName, p.Department, in.Diagnosis)
	if err != nil {
		return nil, &ValidationError{Field: "record", Message: err.Error()}
	}
	record.Symptoms = in.Symptoms
	record.Treatment = in.Treatment
	record.Notes = in.Notes
	record.VitalSigns = in.VitalSigns
	record.FollowUpDate = in.FollowUpDate

	if len(in.Medications) > 0 {
		prescription, err := records.NewPrescription(now, in.Medications, in.Instructions)
		if err != nil {
			return nil, &ValidationError{Field: "prescription", Message: err.Error()}
		}
		record.Prescription = &prescription
	}

	done, err := CompleteConsultation(*p, record, in.Hospitalize, in.HospitalRoom, now)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &done); err != nil {
		return nil, err
	}
	return &done, nil
}

// Discharge releases a hospitalized patient.
func (s *Service) Discharge(ctx context.Context, id uuid.UUID) (*Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	released, err := Discharge(*p, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &released); err != nil {
		return nil, err
	}
	return &released, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByQRCode(ctx context.Context, code string) (*Patient, error) {
	return s.repo.GetByQRCode(ctx, code)
}

// ScanRandom simulates the badge scanner by picking a random registered
// patient. There is no camera on a headless API; the kiosk flow is demoed
// this way.
func (s *Service) ScanRandom(ctx context.Context) (*Patient, error) {
	patients, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(patients) == 0 {
		return nil, ErrNotFound
	}
	return patients[s.randInt(len(patients))], nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// PaymentQueue returns the ordered line at the cashier.
func (s *Service) PaymentQueue(ctx context.Context) ([]*Patient, error) {
	patients, err := s.repo.ListByStatus(ctx, StatusWaitingPayment)
	if err != nil {
		return nil, err
	}
	return OrderedQueue(patients, nil), nil
}

// ConsultationQueue returns the ordered waiting room for one department.
func (s *Service) ConsultationQueue(ctx context.Context, dept string) ([]*Patient, error) {
	if _, ok := department.Lookup(dept); !ok {
		return nil, &ValidationError{Field: "department", Message: fmt.Sprintf("unknown department %q", dept)}
	}
	patients, err := s.repo.ListByStatus(ctx, StatusWaitingConsultation)
	if err != nil {
		return nil, err
	}
	return OrderedQueue(patients, func(p *Patient) bool { return p.Department == dept }), nil
}

// Hospitalized lists the patients currently admitted.
func (s *Service) Hospitalized(ctx context.Context) ([]*Patient, error) {
	return s.repo.ListByStatus(ctx, StatusHospitalized)
}

// RequestLab attaches a pending lab request to the patient file.
func (s *Service) RequestLab(ctx context.Context, id uuid.UUID, testName, requestedBy string) (*Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result, err := records.NewLabResult(s.now(), testName, requestedBy)
	if err != nil {
		return nil, &ValidationError{Field: "lab_result", Message: err.Error()}
	}
	p.LabResults = append(p.LabResults, result)
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CompleteLab records measured values on a pending lab result.
func (s *Service) CompleteLab(ctx context.Context, id uuid.UUID, labID string, values []records.LabValue) (*Patient, error) {
	return s.updateLab(ctx, id, labID, func(r records.LabResult) (records.LabResult, error) {
		return r.Complete(values)
	})
}

// ReviewLab marks a completed lab result as reviewed.
func (s *Service) ReviewLab(ctx context.Context, id uuid.UUID, labID, reviewedBy string) (*Patient, error) {
	return s.updateLab(ctx, id, labID, func(r records.LabResult) (records.LabResult, error) {
		return r.Review(reviewedBy)
	})
}

func (s *Service) updateLab(ctx context.Context, id uuid.UUID, labID string, apply func(records.LabResult) (records.LabResult, error)) (*Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	found := false
	for i, r := range p.LabResults {
		if r.ID != labID {
			continue
		}
		updated, err := apply(r)
		if err != nil {
			return nil, &ValidationError{Field: "lab_result", Message: err.Error()}
		}
		p.LabResults[i] = updated
		found = true
		break
	}
	if !found {
		return nil, fmt.Errorf("lab result %s: %w", labID, ErrNotFound)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// MarkPrescriptionPrinted flags the prescription on the given record as
// printed. There is no PDF surface; the flag is the whole feature.
func (s *Service) MarkPrescriptionPrinted(ctx context.Context, id uuid.UUID, recordID string) (*Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for i, rec := range p.MedicalHistory {
		if rec.ID != recordID || rec.Prescription == nil {
			continue
		}
		prescription := *rec.Prescription
		prescription.Printed = true
		p.MedicalHistory[i].Prescription = &prescription
		p.UpdatedAt = s.now()
		if err := s.repo.Update(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("prescription on record %s: %w", recordID, ErrNotFound)
}
