package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"caredesk/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PatientRepository struct {
	db *pgxpool.Pool
}

func NewPatientRepository(db *pgxpool.Pool) domain.PatientRepository {
	return &PatientRepository{db: db}
}

const patientColumns = `id, user_id, name, age, gender, phone, address, created_at, updated_at`

func scanPatient(row pgx.Row) (*domain.Patient, error) {
	var p domain.Patient
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Age,
		&p.Gender,
		&p.Phone,
		&p.Address,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) List(ctx context.Context, ownerID int64) ([]*domain.Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patients
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := conn(ctx, r.db).Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	patients := []*domain.Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patients: %w", err)
		}
		patients = append(patients, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return patients, nil
}

func (r *PatientRepository) GetByID(ctx context.Context, ownerID, patientID int64) (*domain.Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patients
		WHERE id = $1 AND user_id = $2
	`

	p, err := scanPatient(conn(ctx, r.db).QueryRow(ctx, query, patientID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to scan patient: %w", err)
	}

	return p, nil
}

func (r *PatientRepository) Create(ctx context.Context, p *domain.Patient) error {
	query := `
		INSERT INTO patients (user_id, name, age, gender, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	now := time.Now().UTC()
	err := conn(ctx, r.db).QueryRow(ctx, query,
		p.UserID,
		p.Name,
		p.Age,
		p.Gender,
		p.Phone,
		p.Address,
		now,
		now,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err, constraintPatientUser) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert patient: %w", err)
	}

	return nil
}

func (r *PatientRepository) Update(ctx context.Context, ownerID int64, p *domain.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, age = $2, gender = $3, phone = $4, address = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8
		RETURNING user_id, created_at, updated_at
	`

	err := conn(ctx, r.db).QueryRow(ctx, query,
		p.Name,
		p.Age,
		p.Gender,
		p.Phone,
		p.Address,
		time.Now().UTC(),
		p.ID,
		ownerID,
	).Scan(&p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrPatientNotFound
		}
		return fmt.Errorf("failed to update patient: %w", err)
	}

	return nil
}

func (r *PatientRepository) Delete(ctx context.Context, ownerID, patientID int64) error {
	query := `DELETE FROM patients WHERE id = $1 AND user_id = $2`

	ct, err := conn(ctx, r.db).Exec(ctx, query, patientID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return domain.ErrPatientNotFound
	}

	return nil
}
