package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAssignmentNotFound  = notFound("assignment not found")
	ErrDuplicateAssignment = errors.New("doctor already assigned to this patient")
)

// Assignment records that a doctor treats a patient. It is never updated in
// place; removing and re-creating is the only way to change it.
type Assignment struct {
	ID        int64     `json:"id"`
	PatientID int64     `json:"patient_id"`
	DoctorID  int64     `json:"doctor_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// OwnerID is the user owning the patient side. Populated on reads only.
	OwnerID int64 `json:"-"`

	Patient *PatientSummary `json:"patient,omitempty"`
	Doctor  *DoctorSummary  `json:"doctor,omitempty"`
}

type PatientSummary struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

type DoctorSummary struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Experience     *int   `json:"experience,omitempty"`
}

func NewPatientSummary(p *Patient) *PatientSummary {
	return &PatientSummary{Name: p.Name, Age: p.Age, Gender: p.Gender}
}

func NewDoctorSummary(d *Doctor) *DoctorSummary {
	experience := d.Experience
	return &DoctorSummary{
		Name:           d.Name,
		Specialization: d.Specialization,
		Phone:          d.Phone,
		Email:          d.Email,
		Experience:     &experience,
	}
}

type AssignmentCreateRequest struct {
	PatientID int64 `json:"patient_id" validate:"required,gt=0"`
	DoctorID  int64 `json:"doctor_id" validate:"required,gt=0"`
}

type AssignmentRepository interface {
	Exists(ctx context.Context, patientID, doctorID int64) (bool, error)
	Create(ctx context.Context, a *Assignment) error
	GetByID(ctx context.Context, assignmentID int64) (*Assignment, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Assignment, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*Assignment, error)
	Delete(ctx context.Context, assignmentID int64) error
}

type AssignmentService interface {
	Assign(ctx context.Context, requesterID int64, req AssignmentCreateRequest) (*Assignment, error)
	ListAll(ctx context.Context, requesterID int64) ([]*Assignment, error)
	ListForPatient(ctx context.Context, requesterID, patientID int64) ([]*Assignment, error)
	Unassign(ctx context.Context, requesterID, assignmentID int64) error
}
