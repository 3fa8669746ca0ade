package patient

import (
	"context"

	"caredesk/internal/domain"
	"caredesk/internal/event"
	"caredesk/internal/validator"
)

type Service struct {
	tx        domain.Transactor
	repo      domain.PatientRepository
	validator validator.Validator
	bus       *event.Bus
}

func NewService(tx domain.Transactor, repo domain.PatientRepository, v validator.Validator, bus *event.Bus) domain.PatientService {
	return &Service{
		tx:        tx,
		repo:      repo,
		validator: v,
		bus:       bus,
	}
}

func (s *Service) List(ctx context.Context, ownerID int64) ([]*domain.Patient, error) {
	return s.repo.List(ctx, ownerID)
}

func (s *Service) Get(ctx context.Context, ownerID, patientID int64) (*domain.Patient, error) {
	return s.repo.GetByID(ctx, ownerID, patientID)
}

func (s *Service) Create(ctx context.Context, ownerID int64, req domain.PatientSaveRequest) (*domain.Patient, error) {
	req = req.Normalize()
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	p := &domain.Patient{
		UserID:  ownerID,
		Name:    req.Name,
		Age:     *req.Age,
		Gender:  req.Gender,
		Phone:   req.Phone,
		Address: req.Address,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Update(ctx context.Context, ownerID, patientID int64, req domain.PatientUpdateRequest) (*domain.Patient, error) {
	req = req.Normalize()
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var updated *domain.Patient
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, ownerID, patientID)
		if err != nil {
			return err
		}

		req.Apply(p)
		if err := s.repo.Update(ctx, ownerID, p); err != nil {
			return err
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, patientID int64) error {
	if err := s.repo.Delete(ctx, ownerID, patientID); err != nil {
		return err
	}

	if s.bus != nil {
		s.bus.Publish(domain.EventPatientDeleted, domain.EventPatientDeletedPayload{
			OwnerID:   ownerID,
			PatientID: patientID,
		})
	}

	return nil
}
