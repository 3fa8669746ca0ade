// Package auth registers users, checks their credentials and hands out
// bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"caredesk/internal/domain"
	"caredesk/internal/logger"
	"caredesk/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users       domain.UserRepository
	tokens      domain.TokenService
	revocations domain.RevocationStore
	validator   validator.Validator
	log         logger.Logger

	cost int
	now  func() time.Time
}

func NewService(
	users domain.UserRepository,
	tokens domain.TokenService,
	revocations domain.RevocationStore,
	v validator.Validator,
	log logger.Logger,
) domain.AuthService {
	return &Service{
		users:       users,
		tokens:      tokens,
		revocations: revocations,
		validator:   v,
		log:         log,
		cost:        bcrypt.DefaultCost,
		now:         time.Now,
	}
}

func errPasswordTooLong() error {
	return domain.NewValidationError(map[string]string{
		"password": fmt.Sprintf("The password may not be greater than %d bytes.", domain.MaxPasswordBytes),
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	req = req.Normalize()
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// max=72 counts runes; bcrypt's limit is in bytes.
	if len(req.Password) > domain.MaxPasswordBytes {
		return nil, errPasswordTooLong()
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, errPasswordTooLong()
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPwd),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", "user_id", user.ID)

	return s.issue(user)
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *Service) issue(user *domain.User) (*domain.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout revokes the token behind identity for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, identity *domain.Identity) error {
	if identity == nil {
		return domain.ErrUnauthorized
	}

	if s.revocations == nil {
		return nil
	}

	return s.revocations.Revoke(ctx, identity.TokenID, identity.ExpiresAt.Sub(s.now()))
}

func (s *Service) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}
