package service

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/emotional-truth/portal-api/internal/core/domain"
	"github.com/emotional-truth/portal-api/internal/core/ports"
)

// AppState holds the in-memory mirrors of the users, ads and settings
// collections. It is loaded in full once at startup and patched entry by
// entry after each successful mutation; it is only as fresh as the last
// locally observed write (no cross-instance invalidation).
//
// Handlers run concurrently, so every access goes through the RWMutex.
// Users are stored redacted; a password never enters the state.
type AppState struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	ads      map[string]domain.Ad
	settings map[string]string
}

func NewAppState() *AppState {
	return &AppState{
		users:    make(map[string]domain.User),
		ads:      make(map[string]domain.Ad),
		settings: make(map[string]string),
	}
}

// Load fetches the three collections concurrently and rebuilds the mirrors.
// A failure in any fetch aborts the whole load and leaves the previous
// state untouched.
func (s *AppState) Load(ctx context.Context, users ports.UserRepository, ads ports.AdRepository, settings ports.SettingsRepository) error {
	var (
		userRows    []domain.User
		adRows      []domain.Ad
		settingRows map[string]string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userRows, err = users.FindAll(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		adRows, err = ads.FindAll(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		settingRows, err = settings.FindAll(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]domain.User, len(userRows))
	for _, u := range userRows {
		s.users[u.ID] = u.Redacted()
	}
	s.ads = make(map[string]domain.Ad, len(adRows))
	for _, a := range adRows {
		s.ads[a.ID] = a
	}
	s.settings = make(map[string]string, len(settingRows))
	for k, v := range settingRows {
		s.settings[k] = v
	}
	return nil
}

// Users returns a snapshot of the cached users, redacted, sorted by
// username for stable listings.
func (s *AppState) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// User returns the cached entry for id, if present.
func (s *AppState) User(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *AppState) PutUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u.Redacted()
}

func (s *AppState) RemoveUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// Ads returns a snapshot of the cached ads sorted by creation time, id as
// tiebreak.
func (s *AppState) Ads() []domain.Ad {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Ad, 0, len(s.ads))
	for _, a := range s.ads {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *AppState) PutAd(a domain.Ad) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ads[a.ID] = a
}

func (s *AppState) RemoveAd(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ads, id)
}

// Setting returns the cached value for key, "" when absent. The empty
// default is deliberate: missing settings rows are not an error anywhere
// in the system.
func (s *AppState) Setting(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings[key]
}

func (s *AppState) SetSetting(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
}
