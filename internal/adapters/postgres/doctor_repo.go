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

type DoctorRepository struct {
	db *pgxpool.Pool
}

func NewDoctorRepository(db *pgxpool.Pool) domain.DoctorRepository {
	return &DoctorRepository{db: db}
}

const doctorColumns = `id, name, specialization, phone, email, experience, created_at, updated_at`

func scanDoctor(row pgx.Row) (*domain.Doctor, error) {
	var d domain.Doctor
	if err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Specialization,
		&d.Phone,
		&d.Email,
		&d.Experience,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepository) List(ctx context.Context) ([]*domain.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors ORDER BY created_at DESC, id DESC`

	rows, err := conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query doctors: %w", err)
	}
	defer rows.Close()

	doctors := []*domain.Doctor{}
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan doctors: %w", err)
		}
		doctors = append(doctors, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return doctors, nil
}

func (r *DoctorRepository) GetByID(ctx context.Context, doctorID int64) (*domain.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`

	d, err := scanDoctor(conn(ctx, r.db).QueryRow(ctx, query, doctorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to scan doctor: %w", err)
	}

	return d, nil
}

func (r *DoctorRepository) Create(ctx context.Context, d *domain.Doctor) error {
	query := `
		INSERT INTO doctors (name, specialization, phone, email, experience, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	now := time.Now().UTC()
	if err := conn(ctx, r.db).QueryRow(ctx, query,
		d.Name,
		d.Specialization,
		d.Phone,
		d.Email,
		d.Experience,
		now,
		now,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert doctor: %w", err)
	}

	return nil
}

func (r *DoctorRepository) Update(ctx context.Context, d *domain.Doctor) error {
	query := `
		UPDATE doctors
		SET name = $1, specialization = $2, phone = $3, email = $4, experience = $5, updated_at = $6
		WHERE id = $7
		RETURNING created_at, updated_at
	`

	err := conn(ctx, r.db).QueryRow(ctx, query,
		d.Name,
		d.Specialization,
		d.Phone,
		d.Email,
		d.Experience,
		time.Now().UTC(),
		d.ID,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrDoctorNotFound
		}
		return fmt.Errorf("failed to update doctor: %w", err)
	}

	return nil
}

func (r *DoctorRepository) Delete(ctx context.Context, doctorID int64) error {
	query := `DELETE FROM doctors WHERE id = $1`

	ct, err := conn(ctx, r.db).Exec(ctx, query, doctorID)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return domain.ErrDoctorNotFound
	}

	return nil
}
