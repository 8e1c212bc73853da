package ports

import (
	"context"

	"github.com/emotional-truth/portal-api/internal/core/domain"
)

// SessionStore persists the authenticated actor for the lifetime of a
// session. The stored user is always password-stripped.
type SessionStore interface {
	// Put creates or replaces a session and starts its TTL.
	Put(ctx context.Context, id string, user domain.User) error

	// Get restores the actor for a session. A missing or unreadable entry
	// yields (nil, nil): the caller treats it as "not signed in" rather
	// than an error.
	Get(ctx context.Context, id string) (*domain.User, error)

	// Refresh rewrites the stored actor in place, preserving the
	// remaining TTL. Refreshing a missing session is a no-op.
	Refresh(ctx context.Context, id string, user domain.User) error

	// Delete removes a session; deleting a missing session is not an
	// error.
	Delete(ctx context.Context, id string) error
}
