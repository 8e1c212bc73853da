package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/emotional-truth/portal-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
	err    error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.VideoURLs != nil {
		clone.VideoURLs = append([]string(nil), u.VideoURLs...)
	}
	return &clone
}

func (r *stubUserRepo) FindAll(context.Context) ([]domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) FindByCredentials(_ context.Context, username, password string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == username && u.Password == password {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("id-%d", r.nextID)
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	existing, ok := r.users[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	stored := cloneUser(user)
	if stored.Password == "" {
		stored.Password = existing.Password
	}
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubSessionStore struct {
	sessions map[string]domain.User
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.User)}
}

func (s *stubSessionStore) Put(_ context.Context, id string, user domain.User) error {
	s.sessions[id] = user
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *stubSessionStore) Refresh(_ context.Context, id string, user domain.User) error {
	if _, ok := s.sessions[id]; ok {
		s.sessions[id] = user
	}
	return nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func newAccountFixture() (*AccountService, *stubUserRepo, *stubSessionStore, *AppState) {
	repo := newStubUserRepo()
	sessions := newStubSessionStore()
	state := NewAppState()
	svc := NewAccountService(repo, sessions, state, "secret", time.Hour, zerolog.Nop())
	return svc, repo, sessions, state
}

func seedUser(repo *stubUserRepo, username, password, role string) *domain.User {
	u, _ := repo.Insert(context.Background(), &domain.User{
		Username:  username,
		Password:  password,
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
		Role:      role,
	})
	return u
}

func TestAccountService_Login_Success(t *testing.T) {
	svc, repo, sessions, _ := newAccountFixture()
	seedUser(repo, "alice", "s3cret", domain.RoleUser)

	user, token, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.Password != "" {
		t.Fatalf("password leaked into login result: %q", user.Password)
	}
	if user.VideoURLs == nil {
		t.Fatalf("video urls not normalized to empty slice")
	}
	if token == "" {
		t.Fatalf("expected a signed token")
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		t.Fatalf("token missing session id")
	}
	stored, ok := sessions.sessions[sid]
	if !ok {
		t.Fatalf("session not created")
	}
	if stored.Password != "" {
		t.Fatalf("password persisted into session store")
	}
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	svc, repo, _, _ := newAccountFixture()
	seedUser(repo, "alice", "s3cret", domain.RoleUser)

	if _, _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "alice", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAccountService_Login_PasswordIsCaseSensitive(t *testing.T) {
	svc, repo, _, _ := newAccountFixture()
	seedUser(repo, "alice", "S3cret", domain.RoleUser)

	if _, _, err := svc.Login(context.Background(), "alice", "s3cret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Login_AdminUsernameRequiresAdminRole(t *testing.T) {
	svc, repo, _, _ := newAccountFixture()
	// A regular row accidentally sharing the admin username must not
	// authenticate even with matching credentials.
	seedUser(repo, domain.AdminUsername, "adminpw", domain.RoleUser)

	if _, _, err := svc.Login(context.Background(), domain.AdminUsername, "adminpw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Login_StoreErrorPropagates(t *testing.T) {
	svc, repo, _, _ := newAccountFixture()
	repo.err = errors.New("connection reset")

	_, _, err := svc.Login(context.Background(), "alice", "pw")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store failure must not be reported as bad credentials, got %v", err)
	}
}

func TestAccountService_Logout(t *testing.T) {
	svc, repo, sessions, _ := newAccountFixture()
	seedUser(repo, "alice", "pw", domain.RoleUser)

	_, token, err := svc.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims := jwt.MapClaims{}
	_, _ = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	sid := claims["sid"].(string)

	if err := svc.Logout(context.Background(), sid); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := sessions.sessions[sid]; ok {
		t.Fatalf("session still present after logout")
	}
	// Logging out an already-destroyed session is still fine.
	if err := svc.Logout(context.Background(), sid); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestAccountService_AddUser_DefaultsAndRoundTrip(t *testing.T) {
	svc, _, _, state := newAccountFixture()

	in := domain.User{
		Username:  "bob",
		Password:  "pw",
		FirstName: "Bob",
		LastName:  "Jones",
		Email:     "bob@example.com",
	}
	created, err := svc.AddUser(context.Background(), in)
	if err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected server-assigned id")
	}
	if created.Role != domain.RoleUser {
		t.Fatalf("role not defaulted, got %q", created.Role)
	}
	if created.Password != "" {
		t.Fatalf("password not stripped from result")
	}
	if created.VideoURLs == nil {
		t.Fatalf("video urls must be an empty collection, not nil")
	}

	cached, ok := state.User(created.ID)
	if !ok {
		t.Fatalf("cache not patched with new user")
	}
	if cached.Username != "bob" || cached.Email != "bob@example.com" {
		t.Fatalf("cached user does not match input: %+v", cached)
	}
}

func TestAccountService_UpdateUser_EmptyPasswordPreserved(t *testing.T) {
	svc, repo, _, _ := newAccountFixture()
	u := seedUser(repo, "carol", "oldpw", domain.RoleUser)

	update := *u
	update.Password = ""
	update.FirstName = "Carola"
	if _, err := svc.UpdateUser(context.Background(), "", update); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	// The old password must still authenticate.
	user, _, err := svc.Login(context.Background(), "carol", "oldpw")
	if err != nil {
		t.Fatalf("login with old password failed after empty-password update: %v", err)
	}
	if user.FirstName != "Carola" {
		t.Fatalf("update not applied, first name %q", user.FirstName)
	}
}

func TestAccountService_UpdateUser_RefreshesOwnSession(t *testing.T) {
	svc, repo, sessions, _ := newAccountFixture()
	u := seedUser(repo, "dave", "pw", domain.RoleUser)

	_, token, err := svc.Login(context.Background(), "dave", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims := jwt.MapClaims{}
	_, _ = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	sid := claims["sid"].(string)

	update := *u
	update.Email = "dave@new.example.com"
	update.Password = "newpw"
	if _, err := svc.UpdateUser(context.Background(), sid, update); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	sess := sessions.sessions[sid]
	if sess.Email != "dave@new.example.com" {
		t.Fatalf("session not refreshed, email %q", sess.Email)
	}
	if sess.Password != "" {
		t.Fatalf("refreshed session carries a password")
	}
}

func TestAccountService_UpdateUser_OtherSessionUntouched(t *testing.T) {
	svc, repo, sessions, _ := newAccountFixture()
	seedUser(repo, "erin", "pw", domain.RoleUser)
	other := seedUser(repo, "frank", "pw2", domain.RoleUser)

	_, token, err := svc.Login(context.Background(), "erin", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims := jwt.MapClaims{}
	_, _ = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	sid := claims["sid"].(string)

	update := *other
	update.Email = "frank@new.example.com"
	if _, err := svc.UpdateUser(context.Background(), sid, update); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if sessions.sessions[sid].Username != "erin" {
		t.Fatalf("updating another user must not rewrite the caller's session")
	}
}

func TestAccountService_DeleteUser(t *testing.T) {
	svc, repo, _, state := newAccountFixture()
	u := seedUser(repo, "gina", "pw", domain.RoleUser)
	state.PutUser(*u)

	if err := svc.DeleteUser(context.Background(), u.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, ok := state.User(u.ID); ok {
		t.Fatalf("cache still holds deleted user")
	}
	if _, _, err := svc.Login(context.Background(), "gina", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("login after delete should fail with ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_FindUserByEmail(t *testing.T) {
	svc, repo, _, _ := newAccountFixture()
	seedUser(repo, "hugo", "pw", domain.RoleUser)

	found, err := svc.FindUserByEmail(context.Background(), "hugo@example.com")
	if err != nil {
		t.Fatalf("FindUserByEmail: %v", err)
	}
	if found.Password != "" {
		t.Fatalf("recovery lookup leaked a password")
	}

	if _, err := svc.FindUserByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountService_VideoURLsNormalizedOnWrite(t *testing.T) {
	svc, repo, _, _ := newAccountFixture()

	created, err := svc.AddUser(context.Background(), domain.User{
		Username: "dora",
		Password: "pw",
		Email:    "dora@example.com",
		VideoURLs: []string{
			"https://youtu.be/dQw4w9WgXcQ",
			"https://vimeo.com/12345",
		},
	})
	if err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	want := []string{
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://vimeo.com/12345",
	}
	if len(created.VideoURLs) != len(want) {
		t.Fatalf("unexpected video urls: %v", created.VideoURLs)
	}
	for i := range want {
		if created.VideoURLs[i] != want[i] {
			t.Fatalf("url %d: got %q, want %q", i, created.VideoURLs[i], want[i])
		}
	}

	created.VideoURLs = []string{"https://www.youtube.com/watch?v=kJQP7kiw5Fk&t=10"}
	updated, err := svc.UpdateUser(context.Background(), "", *created)
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if len(updated.VideoURLs) != 1 || updated.VideoURLs[0] != "https://www.youtube.com/embed/kJQP7kiw5Fk" {
		t.Fatalf("update did not normalize: %v", updated.VideoURLs)
	}

	if _, err := repo.FindByEmail(context.Background(), "dora@example.com"); err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
}
