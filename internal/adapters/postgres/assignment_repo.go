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

type AssignmentRepository struct {
	db *pgxpool.Pool
}

func NewAssignmentRepository(db *pgxpool.Pool) domain.AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Exists(ctx context.Context, patientID, doctorID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM patient_doctors WHERE patient_id = $1 AND doctor_id = $2)`

	var exists bool
	if err := conn(ctx, r.db).QueryRow(ctx, query, patientID, doctorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}

	return exists, nil
}

// Create relies on patient_doctors_pair_unique; a concurrent insert of the
// same pair fails here even when Exists said otherwise.
func (r *AssignmentRepository) Create(ctx context.Context, a *domain.Assignment) error {
	query := `
		INSERT INTO patient_doctors (patient_id, doctor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	now := time.Now().UTC()
	err := conn(ctx, r.db).QueryRow(ctx, query,
		a.PatientID,
		a.DoctorID,
		now,
		now,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err, constraintAssignmentPair):
			return domain.ErrDuplicateAssignment
		case isForeignKeyViolation(err, constraintAssignmentPatient):
			return domain.ErrPatientNotFound
		case isForeignKeyViolation(err, constraintAssignmentDoctor):
			return domain.ErrDoctorNotFound
		}
		return fmt.Errorf("failed to insert assignment: %w", err)
	}

	return nil
}

func (r *AssignmentRepository) GetByID(ctx context.Context, assignmentID int64) (*domain.Assignment, error) {
	query := `
		SELECT
			pd.id,
			pd.patient_id,
			pd.doctor_id,
			pd.created_at,
			pd.updated_at,
			p.user_id,
			p.name,
			p.age,
			p.gender
		FROM patient_doctors pd
		JOIN patients p ON p.id = pd.patient_id
		WHERE pd.id = $1
	`

	var a domain.Assignment
	var ps domain.PatientSummary
	if err := conn(ctx, r.db).QueryRow(ctx, query, assignmentID).Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.OwnerID,
		&ps.Name,
		&ps.Age,
		&ps.Gender,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to scan assignment: %w", err)
	}

	a.Patient = &ps
	return &a, nil
}

func (r *AssignmentRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Assignment, error) {
	query := `
		SELECT
			pd.id,
			pd.patient_id,
			pd.doctor_id,
			pd.created_at,
			pd.updated_at,
			p.name,
			p.age,
			p.gender,
			d.name,
			d.specialization,
			d.phone,
			d.email
		FROM patient_doctors pd
		JOIN patients p ON p.id = pd.patient_id
		JOIN doctors d ON d.id = pd.doctor_id
		WHERE p.user_id = $1
		ORDER BY pd.created_at DESC, pd.id DESC
	`

	rows, err := conn(ctx, r.db).Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	assignments := []*domain.Assignment{}
	for rows.Next() {
		var a domain.Assignment
		var ps domain.PatientSummary
		var ds domain.DoctorSummary

		if err := rows.Scan(
			&a.ID,
			&a.PatientID,
			&a.DoctorID,
			&a.CreatedAt,
			&a.UpdatedAt,
			&ps.Name,
			&ps.Age,
			&ps.Gender,
			&ds.Name,
			&ds.Specialization,
			&ds.Phone,
			&ds.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assignments: %w", err)
		}

		a.OwnerID = ownerID
		a.Patient = &ps
		a.Doctor = &ds
		assignments = append(assignments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *AssignmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*domain.Assignment, error) {
	query := `
		SELECT
			pd.id,
			pd.patient_id,
			pd.doctor_id,
			pd.created_at,
			pd.updated_at,
			d.name,
			d.specialization,
			d.phone,
			d.email,
			d.experience
		FROM patient_doctors pd
		JOIN doctors d ON d.id = pd.doctor_id
		WHERE pd.patient_id = $1
		ORDER BY pd.created_at DESC, pd.id DESC
	`

	rows, err := conn(ctx, r.db).Query(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query patient assignments: %w", err)
	}
	defer rows.Close()

	assignments := []*domain.Assignment{}
	for rows.Next() {
		var a domain.Assignment
		var ds domain.DoctorSummary
		var experience int

		if err := rows.Scan(
			&a.ID,
			&a.PatientID,
			&a.DoctorID,
			&a.CreatedAt,
			&a.UpdatedAt,
			&ds.Name,
			&ds.Specialization,
			&ds.Phone,
			&ds.Email,
			&experience,
		); err != nil {
			return nil, fmt.Errorf("failed to scan patient assignments: %w", err)
		}

		ds.Experience = &experience
		a.Doctor = &ds
		assignments = append(assignments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, assignmentID int64) error {
	query := `DELETE FROM patient_doctors WHERE id = $1`

	ct, err := conn(ctx, r.db).Exec(ctx, query, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return domain.ErrAssignmentNotFound
	}

	return nil
}
