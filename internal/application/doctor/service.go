package doctor

import (
	"context"

	"caredesk/internal/domain"
	"caredesk/internal/validator"
)

type Service struct {
	tx        domain.Transactor
	repo      domain.DoctorRepository
	validator validator.Validator
}

func NewService(tx domain.Transactor, repo domain.DoctorRepository, v validator.Validator) domain.DoctorService {
	return &Service{
		tx:        tx,
		repo:      repo,
		validator: v,
	}
}

func (s *Service) List(ctx context.Context) ([]*domain.Doctor, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, doctorID int64) (*domain.Doctor, error) {
	return s.repo.GetByID(ctx, doctorID)
}

func (s *Service) Create(ctx context.Context, req domain.DoctorSaveRequest) (*domain.Doctor, error) {
	req = req.Normalize()
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	d := &domain.Doctor{
		Name:           req.Name,
		Specialization: req.Specialization,
		Phone:          req.Phone,
		Email:          req.Email,
		Experience:     *req.Experience,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Update(ctx context.Context, doctorID int64, req domain.DoctorUpdateRequest) (*domain.Doctor, error) {
	req = req.Normalize()
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var updated *domain.Doctor
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		d, err := s.repo.GetByID(ctx, doctorID)
		if err != nil {
			return err
		}

		req.Apply(d)
		if err := s.repo.Update(ctx, d); err != nil {
			return err
		}

		updated = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the doctor and every assignment that references it.
func (s *Service) Delete(ctx context.Context, doctorID int64) error {
	return s.repo.Delete(ctx, doctorID)
}
