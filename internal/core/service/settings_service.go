package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emotional-truth/portal-api/internal/core/domain"
	"github.com/emotional-truth/portal-api/internal/core/ports"
)

// SettingsService implements single-key upserts against the site settings
// mapping.
type SettingsService struct {
	repo   ports.SettingsRepository
	state  *AppState
	logger zerolog.Logger
}

func NewSettingsService(repo ports.SettingsRepository, state *AppState, logger zerolog.Logger) *SettingsService {
	return &SettingsService{repo: repo, state: state, logger: logger}
}

func (s *SettingsService) UpdateSiteLogo(ctx context.Context, url string) error {
	if err := s.repo.Set(ctx, domain.SettingSiteLogo, url); err != nil {
		return err
	}
	s.state.SetSetting(domain.SettingSiteLogo, url)
	s.logger.Info().Str("logo_url", url).Msg("site logo updated")
	return nil
}

// UpdateAdminPassword upserts the admin password setting. The value is
// never logged.
func (s *SettingsService) UpdateAdminPassword(ctx context.Context, newPassword string) error {
	if err := s.repo.Set(ctx, domain.SettingAdminPassword, newPassword); err != nil {
		return err
	}
	s.state.SetSetting(domain.SettingAdminPassword, newPassword)
	s.logger.Info().Msg("admin password updated")
	return nil
}

func (s *SettingsService) Logo() string {
	return s.state.Setting(domain.SettingSiteLogo)
}
