package service

import (
	"context"

	"github.com/emotional-truth/portal-api/internal/core/domain"
	"github.com/emotional-truth/portal-api/internal/core/ports"
)

// PreferenceService validates and persists per-user UI preferences.
type PreferenceService struct {
	store ports.PreferenceStore
}

func NewPreferenceService(store ports.PreferenceStore) *PreferenceService {
	return &PreferenceService{store: store}
}

func (s *PreferenceService) Language(ctx context.Context, userID string) (string, error) {
	return s.store.Language(ctx, userID)
}

func (s *PreferenceService) SetLanguage(ctx context.Context, userID, code string) error {
	if !domain.IsSupportedLanguage(code) {
		return domain.ErrUnsupportedLanguage
	}
	return s.store.SetLanguage(ctx, userID, code)
}
