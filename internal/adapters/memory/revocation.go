package memory

import (
	"context"
	"sync"
	"time"

	"caredesk/internal/domain"
)

// RevocationStore keeps revoked token ids in process. Expired entries are
// dropped on lookup and by Prune.
type RevocationStore struct {
	mu      sync.Mutex
	now     func() time.Time
	revoked map[string]time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

var _ domain.RevocationStore = (*RevocationStore)(nil)

func (s *RevocationStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked[tokenID] = s.now().Add(ttl)

	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.revoked, tokenID)
		return false, nil
	}

	return true, nil
}

// Prune removes every expired entry and reports how many were dropped.
func (s *RevocationStore) Prune(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, until := range s.revoked {
		if !now.Before(until) {
			delete(s.revoked, id)
			removed++
		}
	}

	return removed, nil
}
