package ports

import (
	"context"

	"github.com/emotional-truth/portal-api/internal/core/domain"
)

// AdService is the facade for the advertisement carousel.
type AdService interface {
	AddAd(ctx context.Context, ad domain.Ad) (*domain.Ad, error)
	UpdateAd(ctx context.Context, ad domain.Ad) (*domain.Ad, error)
	DeleteAd(ctx context.Context, id string) error

	// Ads returns the cached ad list.
	Ads() []domain.Ad
}
