package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emotional-truth/portal-api/internal/core/domain"
	"github.com/emotional-truth/portal-api/internal/core/ports"
	"github.com/emotional-truth/portal-api/pkg/videourl"
)

// AccountService implements the account facade: login/logout, user CRUD,
// and keeping the session store and collection cache in step with every
// mutation.
type AccountService struct {
	repo      ports.UserRepository
	sessions  ports.SessionStore
	state     *AppState
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAccountService(repo ports.UserRepository, sessions ports.SessionStore, state *AppState, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AccountService{
		repo:      repo,
		sessions:  sessions,
		state:     state,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Login matches username and password exactly against the users table.
// A row matching the reserved admin username must also carry the admin
// role; this guards against a regular row accidentally sharing it.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if username == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	row, err := s.repo.FindByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if username == domain.AdminUsername && !row.IsAdmin() {
		s.logger.Warn().Str("user_id", row.ID).Msg("admin username on non-admin row rejected")
		return nil, "", domain.ErrInvalidCredentials
	}

	user := row.Redacted()
	sessionID := uuid.NewString()
	if err := s.sessions.Put(ctx, sessionID, user); err != nil {
		return nil, "", err
	}

	token, err := s.signToken(sessionID, user)
	if err != nil {
		return nil, "", err
	}

	s.state.PutUser(user)
	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login")
	return &user, token, nil
}

func (s *AccountService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// AddUser inserts a new row; the store assigns the id. Role defaults to
// the regular user role for self-registration paths.
func (s *AccountService) AddUser(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	user.VideoURLs = normalizeVideoURLs(user.VideoURLs)

	created, err := s.repo.Insert(ctx, &user)
	if err != nil {
		return nil, err
	}

	out := created.Redacted()
	s.state.PutUser(out)
	return &out, nil
}

// UpdateUser updates by id. An empty password in the payload never
// overwrites the stored one. When the updated row belongs to the actor
// bound to sessionID, the session entry is rewritten in place so the
// signed-in view matches the store.
func (s *AccountService) UpdateUser(ctx context.Context, sessionID string, user domain.User) (*domain.User, error) {
	user.VideoURLs = normalizeVideoURLs(user.VideoURLs)

	stored, err := s.repo.Update(ctx, &user)
	if err != nil {
		return nil, err
	}

	out := stored.Redacted()
	s.state.PutUser(out)

	if sessionID != "" {
		current, err := s.sessions.Get(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if current != nil && current.ID == out.ID {
			if err := s.sessions.Refresh(ctx, sessionID, out); err != nil {
				return nil, err
			}
		}
	}
	return &out, nil
}

func (s *AccountService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.state.RemoveUser(id)
	return nil
}

func (s *AccountService) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	out := row.Redacted()
	return &out, nil
}

func (s *AccountService) Users() []domain.User {
	return s.state.Users()
}

// normalizeVideoURLs rewrites recognized YouTube links into their embed
// form so the carousel can render them directly. Links the normalizer does
// not recognize pass through unchanged. The result is never nil.
func normalizeVideoURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		if embed := videourl.YouTubeEmbed(raw); embed != "" {
			out = append(out, embed)
			continue
		}
		out = append(out, raw)
	}
	return out
}

func (s *AccountService) signToken(sessionID string, user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sid":      sessionID,
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
