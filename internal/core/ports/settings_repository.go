package ports

import "context"

// SettingsRepository defines the persistence interface for the sparse site
// settings mapping. Missing keys are not an error; readers apply the
// empty-string default at the cache layer.
type SettingsRepository interface {
	FindAll(ctx context.Context) (map[string]string, error)

	// Set upserts a single key.
	Set(ctx context.Context, key, value string) error
}
