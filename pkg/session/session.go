// Package session holds the authentication state of the current user: the
// bearer token and the cached profile, mirrored to durable storage.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/air846/personal-blog-system/pkg/client"
	"github.com/air846/personal-blog-system/pkg/domain"
	"github.com/air846/personal-blog-system/pkg/storage"
)

// Notice texts for successful session operations.
const (
	MsgLoginOK        = "login successful"
	MsgRegisterOK     = "registration successful, please log in"
	MsgProfileUpdated = "profile updated"
	MsgPasswordOK     = "password changed"
	MsgLoggedOut      = "logged out"
)

// UserAPI is the subset of the API client the store drives.
type UserAPI interface {
	Login(ctx context.Context, req client.LoginRequest) (string, error)
	Register(ctx context.Context, req client.RegisterRequest) error
	GetUserInfo(ctx context.Context) (*domain.UserProfile, error)
	UpdateUserInfo(ctx context.Context, req client.UpdateUserRequest) error
	ChangePassword(ctx context.Context, req client.ChangePasswordRequest) error
}

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	Token    string
	User     *domain.UserProfile
	LoggedIn bool
}

// Store is the session store. Methods are safe for concurrent use.
type Store struct {
	api       UserAPI
	store     storage.Storage
	notifier  client.Notifier
	navigator client.Navigator
	logger    *slog.Logger

	mu    sync.Mutex
	token string
	user  *domain.UserProfile
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier sets where success notices are sent.
func WithNotifier(n client.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithNavigator sets the navigator used after login, registration and logout.
func WithNavigator(n client.Navigator) Option {
	return func(s *Store) { s.navigator = n }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a store and restores any persisted token and profile.
func New(api UserAPI, store storage.Storage, opts ...Option) (*Store, error) {
	s := &Store{
		api:       api,
		store:     store,
		notifier:  client.NotifierFunc(func(client.Notice) {}),
		navigator: client.NavigatorFunc(func(client.Route) {}),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	tok, _, err := store.Get(storage.KeyToken)
	if err != nil {
		return nil, err
	}
	s.token = tok

	raw, ok, err := store.Get(storage.KeyUser)
	if err != nil {
		return nil, err
	}
	if ok && raw != "" {
		var u domain.UserProfile
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			s.logger.Warn("discarding corrupt stored profile", "err", err)
			s.removeKey(storage.KeyUser)
		} else {
			s.user = &u
		}
	}
	return s, nil
}

// Token returns the current bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the cached profile, or nil.
func (s *Store) User() *domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUser(s.user)
}

// IsLoggedIn reports whether a token is held.
func (s *Store) IsLoggedIn() bool {
	return s.Token() != ""
}

// Snapshot returns the token, profile and login flag read under one lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Token: s.token, User: copyUser(s.user), LoggedIn: s.token != ""}
}

// Login authenticates and stores the returned token. On failure the state is
// left untouched; the client has already shown the failure.
func (s *Store) Login(ctx context.Context, username, password string) error {
	tok, err := s.api.Login(ctx, client.LoginRequest{Username: username, Password: password})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()
	s.setKey(storage.KeyToken, tok)

	// The token is valid either way; FetchProfile decides what a failure means.
	if err := s.FetchProfile(ctx); err != nil {
		s.logger.Warn("profile fetch after login failed", "err", err)
	}

	s.notify(client.LevelSuccess, MsgLoginOK)
	s.navigator.Navigate(client.RouteHome)
	return nil
}

// Register creates an account and sends the user to the login view.
func (s *Store) Register(ctx context.Context, req client.RegisterRequest) error {
	if err := s.api.Register(ctx, req); err != nil {
		return err
	}
	s.notify(client.LevelSuccess, MsgRegisterOK)
	s.navigator.Navigate(client.RouteLogin)
	return nil
}

// FetchProfile refreshes the cached profile. An authentication failure ends
// the session; any other failure keeps the token.
func (s *Store) FetchProfile(ctx context.Context) error {
	u, err := s.api.GetUserInfo(ctx)
	if err != nil {
		if client.IsUnauthorized(err) {
			s.logger.Info("profile fetch unauthorized, clearing session")
			s.Invalidate()
		} else {
			s.logger.Warn("profile fetch failed, keeping session", "err", err)
		}
		return err
	}

	s.mu.Lock()
	s.user = copyUser(u)
	s.mu.Unlock()

	data, err := json.Marshal(u)
	if err != nil {
		s.logger.Error("encode profile", "err", err)
		return nil
	}
	s.setKey(storage.KeyUser, string(data))
	return nil
}

// UpdateProfile changes nickname and avatar, then refreshes the profile.
func (s *Store) UpdateProfile(ctx context.Context, req client.UpdateUserRequest) error {
	if err := s.api.UpdateUserInfo(ctx, req); err != nil {
		return err
	}
	if err := s.FetchProfile(ctx); err != nil {
		s.logger.Warn("profile refresh after update failed", "err", err)
	}
	s.notify(client.LevelSuccess, MsgProfileUpdated)
	return nil
}

// ChangePassword changes the password. The session is kept.
func (s *Store) ChangePassword(ctx context.Context, req client.ChangePasswordRequest) error {
	if err := s.api.ChangePassword(ctx, req); err != nil {
		return err
	}
	s.notify(client.LevelSuccess, MsgPasswordOK)
	return nil
}

// Logout clears the session, tells the user and goes to the login view.
// Calling it while logged out repeats the notice and navigation only.
func (s *Store) Logout() {
	s.Invalidate()
	s.notify(client.LevelInfo, MsgLoggedOut)
	s.navigator.Navigate(client.RouteLogin)
}

// Invalidate clears token and profile from memory and storage without any
// notice or navigation. The API client calls it after a 401.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	s.removeKey(storage.KeyToken)
	s.removeKey(storage.KeyUser)
}

func (s *Store) setKey(key, value string) {
	if err := s.store.Set(key, value); err != nil {
		s.logger.Error("persist session", "key", key, "err", err)
	}
}

func (s *Store) removeKey(key string) {
	if err := s.store.Remove(key); err != nil {
		s.logger.Error("clear session", "key", key, "err", err)
	}
}

func (s *Store) notify(level client.Level, text string) {
	s.notifier.Notify(client.Notice{Level: level, Text: text})
}

func copyUser(u *domain.UserProfile) *domain.UserProfile {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
