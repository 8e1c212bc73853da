package ports

import (
	"context"

	"github.com/emotional-truth/portal-api/internal/core/domain"
)

// AdRepository defines the persistence interface for advertisement rows.
type AdRepository interface {
	FindAll(ctx context.Context) ([]domain.Ad, error)
	Insert(ctx context.Context, ad *domain.Ad) (*domain.Ad, error)
	Update(ctx context.Context, ad *domain.Ad) (*domain.Ad, error)
	Delete(ctx context.Context, id string) error
}
