package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"caredesk/internal/domain"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

type RevocationStore struct {
	redis *redis.Client
}

func NewRevocationStore(r *redis.Client) domain.RevocationStore {
	return &RevocationStore{redis: r}
}

// Revoke keeps the token id until the token would have expired anyway.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := s.redis.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.redis.Get(ctx, revokedKeyPrefix+tokenID).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, redis.Nil) {
		return false, nil
	}

	return false, fmt.Errorf("failed to check token revocation: %w", err)
}
