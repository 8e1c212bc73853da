package ports

import "context"

// PreferenceStore holds durable per-user UI preferences, currently just the
// locale code stored under the "language" slot.
type PreferenceStore interface {
	// Language returns the stored locale code, or domain.DefaultLanguage
	// when none has been set.
	Language(ctx context.Context, userID string) (string, error)

	SetLanguage(ctx context.Context, userID, code string) error
}
