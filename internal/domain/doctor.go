package domain

import (
	"context"
	"strings"
	"time"
)

var ErrDoctorNotFound = notFound("doctor not found")

type Doctor struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Experience     int       `json:"experience"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type DoctorSaveRequest struct {
	Name           string `json:"name" validate:"required,notblank"`
	Specialization string `json:"specialization" validate:"required,notblank"`
	Phone          string `json:"phone" validate:"required,notblank"`
	Email          string `json:"email" validate:"required,email"`
	Experience     *int   `json:"experience" validate:"required,min=0"`
}

func (r DoctorSaveRequest) Normalize() DoctorSaveRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Specialization = strings.TrimSpace(r.Specialization)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.TrimSpace(r.Email)
	return r
}

type DoctorUpdateRequest struct {
	Name           *string `json:"name" validate:"omitnil,notblank"`
	Specialization *string `json:"specialization" validate:"omitnil,notblank"`
	Phone          *string `json:"phone" validate:"omitnil,notblank"`
	Email          *string `json:"email" validate:"omitnil,email"`
	Experience     *int    `json:"experience" validate:"omitnil,min=0"`
}

func (r DoctorUpdateRequest) Normalize() DoctorUpdateRequest {
	r.Name = trimPtr(r.Name)
	r.Specialization = trimPtr(r.Specialization)
	r.Phone = trimPtr(r.Phone)
	r.Email = trimPtr(r.Email)
	return r
}

func (r DoctorUpdateRequest) Apply(d *Doctor) {
	if r.Name != nil {
		d.Name = *r.Name
	}
	if r.Specialization != nil {
		d.Specialization = *r.Specialization
	}
	if r.Phone != nil {
		d.Phone = *r.Phone
	}
	if r.Email != nil {
		d.Email = *r.Email
	}
	if r.Experience != nil {
		d.Experience = *r.Experience
	}
}

// DoctorRepository is not scoped by owner: doctors are shared reference data.
type DoctorRepository interface {
	List(ctx context.Context) ([]*Doctor, error)
	GetByID(ctx context.Context, doctorID int64) (*Doctor, error)
	Create(ctx context.Context, d *Doctor) error
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, doctorID int64) error
}

type DoctorService interface {
	List(ctx context.Context) ([]*Doctor, error)
	Get(ctx context.Context, doctorID int64) (*Doctor, error)
	Create(ctx context.Context, req DoctorSaveRequest) (*Doctor, error)
	Update(ctx context.Context, doctorID int64, req DoctorUpdateRequest) (*Doctor, error)
	Delete(ctx context.Context, doctorID int64) error
}
