package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emotional-truth/portal-api/internal/core/domain"
	"github.com/emotional-truth/portal-api/internal/core/ports"
)

// AdService implements carousel CRUD. No special rules: the cache entry is
// patched after each successful store write, nothing more.
type AdService struct {
	repo   ports.AdRepository
	state  *AppState
	logger zerolog.Logger
}

func NewAdService(repo ports.AdRepository, state *AppState, logger zerolog.Logger) *AdService {
	return &AdService{repo: repo, state: state, logger: logger}
}

func (s *AdService) AddAd(ctx context.Context, ad domain.Ad) (*domain.Ad, error) {
	created, err := s.repo.Insert(ctx, &ad)
	if err != nil {
		return nil, err
	}
	s.state.PutAd(*created)
	return created, nil
}

func (s *AdService) UpdateAd(ctx context.Context, ad domain.Ad) (*domain.Ad, error) {
	stored, err := s.repo.Update(ctx, &ad)
	if err != nil {
		return nil, err
	}
	s.state.PutAd(*stored)
	return stored, nil
}

func (s *AdService) DeleteAd(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.state.RemoveAd(id)
	return nil
}

func (s *AdService) Ads() []domain.Ad {
	return s.state.Ads()
}
