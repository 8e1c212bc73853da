package ports

import "context"

// SettingsService is the facade for the site settings mapping.
type SettingsService interface {
	UpdateSiteLogo(ctx context.Context, url string) error
	UpdateAdminPassword(ctx context.Context, newPassword string) error

	// Logo returns the cached logo URL, "" when unset.
	Logo() string
}
