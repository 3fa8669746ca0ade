package account

import (
	"context"

	"caredesk/internal/domain"
	"caredesk/internal/event"
	"caredesk/internal/logger"
)

type Service struct {
	repo domain.UserRepository
	bus  *event.Bus
	log  logger.Logger
}

func NewService(repo domain.UserRepository, bus *event.Bus, log logger.Logger) domain.AccountService {
	return &Service{
		repo: repo,
		bus:  bus,
		log:  log,
	}
}

// Delete removes the user. The store cascades to the user's patients and
// their assignments in the same statement.
func (s *Service) Delete(ctx context.Context, userID int64) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	s.log.Info("account deleted", "user_id", userID)

	if s.bus != nil {
		s.bus.Publish(domain.EventAccountDeleted, domain.EventAccountDeletedPayload{UserID: userID})
	}

	return nil
}
