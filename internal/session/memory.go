package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in an in-process TTL cache. It is the
// default when no Redis URL is configured and the backend used in tests.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (s *MemoryStore) Create(_ context.Context, userID int64) (string, error) {
	id := uuid.NewString()
	s.cache.Set(id, userID, cache.DefaultExpiration)
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (int64, error) {
	v, found := s.cache.Get(sessionID)
	if !found {
		return 0, ErrSessionNotFound
	}
	return v.(int64), nil
}

func (s *MemoryStore) Destroy(_ context.Context, sessionID string) error {
	s.cache.Delete(sessionID)
	return nil
}
