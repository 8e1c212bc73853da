package ports

import (
	"context"

	"github.com/emotional-truth/portal-api/internal/core/domain"
)

// AccountService is the facade for everything touching user accounts and
// the authenticated session.
type AccountService interface {
	// Login authenticates by exact username/password match. No matching
	// row yields domain.ErrInvalidCredentials; transport failures come
	// back as-is. On success the returned user is password-stripped, a
	// session has been created, and token is a signed JWT referencing it.
	Login(ctx context.Context, username, password string) (user *domain.User, token string, err error)

	// Logout destroys the session. Always succeeds for missing sessions.
	Logout(ctx context.Context, sessionID string) error

	AddUser(ctx context.Context, user domain.User) (*domain.User, error)

	// UpdateUser updates by id. An empty password leaves the stored one
	// untouched. When the updated user is the actor bound to sessionID,
	// the session is refreshed with the new redacted values.
	UpdateUser(ctx context.Context, sessionID string, user domain.User) (*domain.User, error)

	DeleteUser(ctx context.Context, id string) error

	// FindUserByEmail backs the password recovery flow. Returns
	// domain.ErrUserNotFound when no account carries the address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// Users returns the cached, password-stripped user list.
	Users() []domain.User
}
