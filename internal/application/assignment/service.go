// Package assignment links doctors to the patients of the requesting user.
package assignment

import (
	"context"

	"caredesk/internal/domain"
	"caredesk/internal/event"
	"caredesk/internal/validator"
)

type Service struct {
	tx          domain.Transactor
	patients    domain.PatientRepository
	doctors     domain.DoctorRepository
	assignments domain.AssignmentRepository
	validator   validator.Validator
	bus         *event.Bus

	hideForeign bool
}

type Option func(*Service)

// WithHideForeign controls how removing another user's assignment fails:
// ErrAssignmentNotFound when hide is true, ErrForbidden otherwise.
func WithHideForeign(hide bool) Option {
	return func(s *Service) { s.hideForeign = hide }
}

func NewService(
	tx domain.Transactor,
	patients domain.PatientRepository,
	doctors domain.DoctorRepository,
	assignments domain.AssignmentRepository,
	v validator.Validator,
	bus *event.Bus,
	opts ...Option,
) domain.AssignmentService {
	s := &Service{
		tx:          tx,
		patients:    patients,
		doctors:     doctors,
		assignments: assignments,
		validator:   v,
		bus:         bus,
		hideForeign: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assign checks ownership, existence and uniqueness and inserts the pair in a
// single transaction. The store's unique constraint settles concurrent calls.
func (s *Service) Assign(ctx context.Context, requesterID int64, req domain.AssignmentCreateRequest) (*domain.Assignment, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var created *domain.Assignment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.patients.GetByID(ctx, requesterID, req.PatientID)
		if err != nil {
			return err
		}

		d, err := s.doctors.GetByID(ctx, req.DoctorID)
		if err != nil {
			return err
		}

		exists, err := s.assignments.Exists(ctx, p.ID, d.ID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateAssignment
		}

		a := &domain.Assignment{
			PatientID: p.ID,
			DoctorID:  d.ID,
		}
		if err := s.assignments.Create(ctx, a); err != nil {
			return err
		}

		a.OwnerID = requesterID
		a.Patient = domain.NewPatientSummary(p)
		a.Doctor = domain.NewDoctorSummary(d)
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(domain.EventAssignmentCreated, domain.EventAssignmentCreatedPayload{
			OwnerID:      requesterID,
			AssignmentID: created.ID,
			PatientID:    created.PatientID,
			DoctorID:     created.DoctorID,
			CreatedAt:    created.CreatedAt,
		})
	}

	return created, nil
}

func (s *Service) ListAll(ctx context.Context, requesterID int64) ([]*domain.Assignment, error) {
	return s.assignments.ListByOwner(ctx, requesterID)
}

func (s *Service) ListForPatient(ctx context.Context, requesterID, patientID int64) ([]*domain.Assignment, error) {
	var assignments []*domain.Assignment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.patients.GetByID(ctx, requesterID, patientID); err != nil {
			return err
		}

		list, err := s.assignments.ListByPatient(ctx, patientID)
		if err != nil {
			return err
		}

		assignments = list
		return nil
	})
	if err != nil {
		return nil, err
	}

	return assignments, nil
}

func (s *Service) Unassign(ctx context.Context, requesterID, assignmentID int64) error {
	var removed *domain.Assignment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		a, err := s.assignments.GetByID(ctx, assignmentID)
		if err != nil {
			return err
		}

		if a.OwnerID != requesterID {
			if s.hideForeign {
				return domain.ErrAssignmentNotFound
			}
			return domain.ErrForbidden
		}

		if err := s.assignments.Delete(ctx, a.ID); err != nil {
			return err
		}

		removed = a
		return nil
	})
	if err != nil {
		return err
	}

	if s.bus != nil {
		s.bus.Publish(domain.EventAssignmentRemoved, domain.EventAssignmentRemovedPayload{
			OwnerID:      requesterID,
			AssignmentID: removed.ID,
			PatientID:    removed.PatientID,
			DoctorID:     removed.DoctorID,
		})
	}

	return nil
}
