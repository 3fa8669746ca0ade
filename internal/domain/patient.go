package domain

import (
	"context"
	"strings"
	"time"
)

var ErrPatientNotFound = notFound("patient not found")

type Patient struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	Phone     string    `json:"phone"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PatientSaveRequest struct {
	Name    string  `json:"name" validate:"required,notblank"`
	Age     *int    `json:"age" validate:"required,min=1"`
	Gender  string  `json:"gender" validate:"required,notblank"`
	Phone   string  `json:"phone" validate:"required,notblank"`
	Address *string `json:"address"`
}

// Normalize trims surrounding whitespace. A blank address is dropped.
func (r PatientSaveRequest) Normalize() PatientSaveRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Gender = strings.TrimSpace(r.Gender)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = trimOptional(r.Address)
	return r
}

// PatientUpdateRequest only touches the fields that are present.
type PatientUpdateRequest struct {
	Name    *string `json:"name" validate:"omitnil,notblank"`
	Age     *int    `json:"age" validate:"omitnil,min=1"`
	Gender  *string `json:"gender" validate:"omitnil,notblank"`
	Phone   *string `json:"phone" validate:"omitnil,notblank"`
	Address *string `json:"address"`
}

func (r PatientUpdateRequest) Normalize() PatientUpdateRequest {
	r.Name = trimPtr(r.Name)
	r.Gender = trimPtr(r.Gender)
	r.Phone = trimPtr(r.Phone)
	r.Address = trimPtr(r.Address)
	return r
}

func (r PatientUpdateRequest) Apply(p *Patient) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Age != nil {
		p.Age = *r.Age
	}
	if r.Gender != nil {
		p.Gender = *r.Gender
	}
	if r.Phone != nil {
		p.Phone = *r.Phone
	}
	if r.Address != nil {
		p.Address = r.Address
	}
}

// PatientRepository scopes every query by the owning user. A patient owned by
// someone else is reported exactly like a missing one.
type PatientRepository interface {
	List(ctx context.Context, ownerID int64) ([]*Patient, error)
	GetByID(ctx context.Context, ownerID, patientID int64) (*Patient, error)
	Create(ctx context.Context, p *Patient) error
	Update(ctx context.Context, ownerID int64, p *Patient) error
	Delete(ctx context.Context, ownerID, patientID int64) error
}

type PatientService interface {
	List(ctx context.Context, ownerID int64) ([]*Patient, error)
	Get(ctx context.Context, ownerID, patientID int64) (*Patient, error)
	Create(ctx context.Context, ownerID int64, req PatientSaveRequest) (*Patient, error)
	Update(ctx context.Context, ownerID, patientID int64, req PatientUpdateRequest) (*Patient, error)
	Delete(ctx context.Context, ownerID, patientID int64) error
}
