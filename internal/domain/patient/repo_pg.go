package patient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ftk-keit/medi-application/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// pgRepo persists patient files in Postgres. The embedded lists (contacts,
// history, lab results) live in JSONB columns so each workflow event maps to
// a single-row write.
type pgRepo struct{ pool *pgxpool.Pool }

func NewPGRepo(pool *pgxpool.Pool) Repository { return &pgRepo{pool: pool} }

func (r *pgRepo) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const patientCols = `id, qr_code, first_name, last_name, date_of_birth, gender, phone, email, address,
	emergency_contacts, allergies, chronic_conditions, current_medications,
	medical_history, lab_results,
	status, department, consultation_type, priority, registration_date,
	payment_status, payment_amount, payment_method, payment_date,
	is_hospitalized, hospital_room, admission_date, created_at, updated_at`

func jsonb(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode jsonb: %w", err)
	}
	return b, nil
}

func (r *pgRepo) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	var contacts, allergies, conditions, medications, history, labs []byte
	err := row.Scan(&p.ID, &p.QRCode, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.Gender, &p.Phone, &p.Email, &p.Address,
		&contacts, &allergies, &conditions, &medications,
		&history, &labs,
		&p.Status, &p.Department, &p.ConsultationType, &p.Priority, &p.RegistrationDate,
		&p.PaymentStatus, &p.PaymentAmount, &p.PaymentMethod, &p.PaymentDate,
		&p.IsHospitalized, &p.HospitalRoom, &p.AdmissionDate, &p.CreatedAt, &p.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	for _, field := range []struct {
		raw  []byte
		dest interface{}
	}{
		{contacts, &p.EmergencyContacts},
		{allergies, &p.Allergies},
		{conditions, &p.ChronicConditions},
		{medications, &p.CurrentMedications},
		{history, &p.MedicalHistory},
		{labs, &p.LabResults},
	} {
		if len(field.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(field.raw, field.dest); err != nil {
			return nil, fmt.Errorf("decode patient %s jsonb: %w", p.ID, err)
		}
	}

	return &p, nil
}

func (r *pgRepo) encodeLists(p *Patient) (contacts, allergies, conditions, medications, history, labs []byte, err error) {
	if contacts, err = jsonb(p.EmergencyContacts); err != nil {
		return
	}
	if allergies, err = jsonb(p.Allergies); err != nil {
		return
	}
	if conditions, err = jsonb(p.ChronicConditions); err != nil {
		return
	}
	if medications, err = jsonb(p.CurrentMedications); err != nil {
		return
	}
	if history, err = jsonb(p.MedicalHistory); err != nil {
		return
	}
	labs, err = jsonb(p.LabResults)
	return
}

func (r *pgRepo) Create(ctx context.Context, p *Patient) error {
	contacts, allergies, conditions, medications, history, labs, err := r.encodeLists(p)
	if err != nil {
		return err
	}
	_, err = r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (id, qr_code, first_name, last_name, date_of_birth, gender, phone, email, address,
			emergency_contacts, allergies, chronic_conditions, current_medications,
			medical_history, lab_results,
			status, department, consultation_type, priority, registration_date,
			payment_status, payment_amount, payment_method, payment_date,
			is_hospitalized, hospital_room, admission_date, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29)`,
		p.ID, p.QRCode, p.FirstName, p.LastName, p.DateOfBirth, p.Gender, p.Phone, p.Email, p.Address,
		contacts, allergies, conditions, medications,
		history, labs,
		p.Status, p.Department, p.ConsultationType, p.Priority, p.RegistrationDate,
		p.PaymentStatus, p.PaymentAmount, p.PaymentMethod, p.PaymentDate,
		p.IsHospitalized, p.HospitalRoom, p.AdmissionDate, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *pgRepo) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *pgRepo) GetByQRCode(ctx context.Context, code string) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE qr_code = $1`, code))
}

func (r *pgRepo) Update(ctx context.Context, p *Patient) error {
	contacts, allergies, conditions, medications, history, labs, err := r.encodeLists(p)
	if err != nil {
		return err
	}
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET qr_code=$2, first_name=$3, last_name=$4, date_of_birth=$5, gender=$6,
			phone=$7, email=$8, address=$9,
			emergency_contacts=$10, allergies=$11, chronic_conditions=$12, current_medications=$13,
			medical_history=$14, lab_results=$15,
			status=$16, department=$17, consultation_type=$18, priority=$19,
			payment_status=$20, payment_amount=$21, payment_method=$22, payment_date=$23,
			is_hospitalized=$24, hospital_room=$25, admission_date=$26, updated_at=$27
		WHERE id = $1`,
		p.ID, p.QRCode, p.FirstName, p.LastName, p.DateOfBirth, p.Gender,
		p.Phone, p.Email, p.Address,
		contacts, allergies, conditions, medications,
		history, labs,
		p.Status, p.Department, p.ConsultationType, p.Priority,
		p.PaymentStatus, p.PaymentAmount, p.PaymentMethod, p.PaymentDate,
		p.IsHospitalized, p.HospitalRoom, p.AdmissionDate, p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgRepo) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY registration_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := r.collect(rows)
	return items, total, err
}

func (r *pgRepo) ListAll(ctx context.Context) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY registration_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *pgRepo) ListByStatus(ctx context.Context, status Status) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient WHERE status = $1 ORDER BY registration_date DESC`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *pgRepo) collect(rows pgx.Rows) ([]*Patient, error) {
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
