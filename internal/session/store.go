package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	defaultTTL       = 24 * time.Hour
)

// Store keeps server-side login sessions in Redis. The stored value is the
// account's username; authorities are re-resolved on every request so role
// changes take effect without re-login.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a new session store.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// Create stores a new session for the username and returns its ID.
func (s *Store) Create(ctx context.Context, username string) (string, error) {
	id := uuid.New().String()
	key := sessionKeyPrefix + id
	if err := s.rdb.Set(ctx, key, username, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return id, nil
}

// Username returns the username bound to the session, or false if the
// session does not exist or has expired.
func (s *Store) Username(ctx context.Context, id string) (string, bool) {
	username, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return "", false
	}
	return username, true
}

// Delete removes a session by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
