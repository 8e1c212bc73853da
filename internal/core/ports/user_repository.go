package ports

import (
	"context"

	"github.com/emotional-truth/portal-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user rows.
type UserRepository interface {
	FindAll(ctx context.Context) ([]domain.User, error)

	// FindByCredentials matches username and password exactly
	// (case-sensitive equality filters). Returns domain.ErrUserNotFound
	// when no row matches.
	FindByCredentials(ctx context.Context, username, password string) (*domain.User, error)

	// FindByEmail matches case-insensitively. Returns
	// domain.ErrUserNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	Insert(ctx context.Context, user *domain.User) (*domain.User, error)

	// Update replaces the row identified by user.ID and returns the stored
	// result. An empty Password in the payload leaves the persisted
	// password untouched.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)

	Delete(ctx context.Context, id string) error
}
