package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/emotional-truth/portal-api/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// sessionClient is the slice of the Redis API the store depends on;
// *redis.Client satisfies it.
type sessionClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetXX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// SessionStore persists authenticated sessions in Redis.
// Key format: session:<uuid> → JSON-serialized password-stripped user.
type SessionStore struct {
	client sessionClient
	ttl    time.Duration
	logger zerolog.Logger
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl, logger: logger}
}

// Put creates or replaces a session. The user is redacted before
// serialization; a password never reaches Redis.
func (s *SessionStore) Put(ctx context.Context, id string, user domain.User) error {
	payload, err := json.Marshal(user.Redacted())
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(id), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Get restores the actor for a session. A missing entry yields (nil, nil).
// Malformed payloads are discarded silently: the entry is deleted, the
// anomaly debug-logged, and the caller sees "not signed in".
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.User, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		s.logger.Debug().Err(err).Str("session_id", id).Msg("discarding malformed session payload")
		_ = s.client.Del(ctx, s.key(id)).Err()
		return nil, nil
	}
	if user.VideoURLs == nil {
		user.VideoURLs = []string{}
	}
	return &user, nil
}

// Refresh rewrites the stored actor keeping the remaining TTL. Refreshing
// a session that no longer exists is a no-op, not an error.
func (s *SessionStore) Refresh(ctx context.Context, id string, user domain.User) error {
	payload, err := json.Marshal(user.Redacted())
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	// SetXX: only rewrite sessions that still exist, keeping their TTL.
	err = s.client.SetXX(ctx, s.key(id), payload, redis.KeepTTL).Err()
	if err != nil {
		return fmt.Errorf("refresh session: %w", err)
	}
	return nil
}

// Delete removes a session; deleting a missing one is fine.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return sessionKeyPrefix + id
}
