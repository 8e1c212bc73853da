package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/emotional-truth/portal-api/internal/core/domain"
)

const languageKeyPrefix = "pref:language:"

// PreferenceStore holds durable per-user UI preferences.
// Key format: pref:language:<user_id> → locale code, no expiry.
type PreferenceStore struct {
	client *redis.Client
}

func NewPreferenceStore(client *redis.Client) *PreferenceStore {
	return &PreferenceStore{client: client}
}

func (s *PreferenceStore) Language(ctx context.Context, userID string) (string, error) {
	code, err := s.client.Get(ctx, languageKeyPrefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.DefaultLanguage, nil
		}
		return "", fmt.Errorf("load language preference: %w", err)
	}
	return code, nil
}

func (s *PreferenceStore) SetLanguage(ctx context.Context, userID, code string) error {
	if err := s.client.Set(ctx, languageKeyPrefix+userID, code, 0).Err(); err != nil {
		return fmt.Errorf("store language preference: %w", err)
	}
	return nil
}
