package ports

import "context"

// PreferenceService exposes the per-user language preference.
type PreferenceService interface {
	Language(ctx context.Context, userID string) (string, error)

	// SetLanguage rejects codes outside the supported set with
	// domain.ErrUnsupportedLanguage.
	SetLanguage(ctx context.Context, userID, code string) error
}
