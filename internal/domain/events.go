package domain

import "time"

const (
	EventAssignmentCreated = "assignment_created"
	EventAssignmentRemoved = "assignment_removed"
	EventPatientDeleted    = "patient_deleted"
	EventAccountDeleted    = "account_deleted"
)

type EventAssignmentCreatedPayload struct {
	OwnerID      int64     `json:"owner_id"`
	AssignmentID int64     `json:"assignment_id"`
	PatientID    int64     `json:"patient_id"`
	DoctorID     int64     `json:"doctor_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type EventAssignmentRemovedPayload struct {
	OwnerID      int64 `json:"owner_id"`
	AssignmentID int64 `json:"assignment_id"`
	PatientID    int64 `json:"patient_id"`
	DoctorID     int64 `json:"doctor_id"`
}

type EventPatientDeletedPayload struct {
	OwnerID   int64 `json:"owner_id"`
	PatientID int64 `json:"patient_id"`
}

type EventAccountDeletedPayload struct {
	UserID int64 `json:"user_id"`
}

// OwnedEvent is implemented by payloads that belong to a single user.
type OwnedEvent interface {
	Owner() int64
}

func (e EventAssignmentCreatedPayload) Owner() int64 { return e.OwnerID }
func (e EventAssignmentRemovedPayload) Owner() int64 { return e.OwnerID }
func (e EventPatientDeletedPayload) Owner() int64    { return e.OwnerID }
func (e EventAccountDeletedPayload) Owner() int64    { return e.UserID }
