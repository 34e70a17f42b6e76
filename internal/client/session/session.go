// Package session owns the client's auth session: the current user, the
// lifecycle state machine and the process-wide access-token slot. It is the
// only component that mutates session state; consumers (guards, portal
// commands) read through it.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/careerkey/portal/internal/client/models"
	"github.com/careerkey/portal/internal/logging"
)

// State is the session lifecycle state.
type State string

const (
	// StateAnonymous: no user, no usable token.
	StateAnonymous State = "anonymous"
	// StateChecking: startup token validation in flight. Guards render a
	// neutral state instead of redirecting while here.
	StateChecking State = "checking"
	// StateAuthenticated: a user is bound to the session.
	StateAuthenticated State = "authenticated"
	// StateRefreshing: a transparent token refresh is in flight. Owned by
	// the HTTP transport; the session observes it only during an explicit
	// Refresh call.
	StateRefreshing State = "refreshing"
	// StateExpired: a refresh failed; the stored token is gone and the
	// user must log in again.
	StateExpired State = "expired"
)

// AuthAPI is the backend surface the store needs. *api.Client satisfies it.
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (string, *models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	RefreshToken(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}

// Store holds the session for the lifetime of the process. Created at app
// start, torn down on logout; injected into consumers rather than reached
// for as a singleton.
type Store struct {
	mu    sync.RWMutex
	state State
	user  *models.User

	api  AuthAPI
	slot *TokenSlot
	log  logging.Logger

	expiredHook func()
}

func NewStore(api AuthAPI, slot *TokenSlot, log logging.Logger) *Store {
	return &Store{state: StateAnonymous, api: api, slot: slot, log: log}
}

// OnExpired registers the navigation side effect run when the session
// expires (the only error with one in the whole client).
func (s *Store) OnExpired(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiredHook = fn
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the current user, or nil when the session is not
// authenticated.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

func (s *Store) setState(state State, user *models.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.mu.Unlock()
}

// CheckAuth runs the startup token check: with a stored token present the
// session moves to checking and validates it against /auth/me; on success
// the session is authenticated, on failure the token is discarded and the
// session stays anonymous. Without a stored token this is a no-op.
func (s *Store) CheckAuth(ctx context.Context) {
	if err := s.slot.Load(ctx); err != nil {
		s.log.Warn(ctx, "stored token not loaded", "error", err)
	}

	token := s.slot.AccessToken()
	if token == "" {
		return
	}

	s.setState(StateChecking, nil)

	if tokenExpired(token) {
		s.log.Info(ctx, "stored token already expired, discarding")
		s.slot.ClearAccessToken()
		s.setState(StateAnonymous, nil)
		return
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.log.Warn(ctx, "auth check failed", "error", err)
		s.slot.ClearAccessToken()
		s.setState(StateAnonymous, nil)
		return
	}

	s.setState(StateAuthenticated, user)
	s.log.Info(ctx, "session restored", "email", user.Email)
}

// Login authenticates, stores the issued token in the slot and binds the
// normalized user to the session.
func (s *Store) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	token, user, err := s.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	if token != "" {
		s.slot.SetAccessToken(token)
	}
	s.setState(StateAuthenticated, user)
	return user, nil
}

// Refresh explicitly mints a new access token from the cookie-carried
// refresh credential. The transparent variant lives in the HTTP transport;
// this one serves callers that want to refresh ahead of expiry.
func (s *Store) Refresh(ctx context.Context) error {
	if !s.IsAuthenticated() {
		return fmt.Errorf("refresh requires an authenticated session")
	}

	s.mu.Lock()
	s.state = StateRefreshing
	s.mu.Unlock()

	token, err := s.api.RefreshToken(ctx)
	if err != nil {
		s.HandleExpired()
		return err
	}

	s.slot.SetAccessToken(token)
	s.mu.Lock()
	s.state = StateAuthenticated
	s.mu.Unlock()
	return nil
}

// Logout clears local session state regardless of whether the backend
// logout call succeeds.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn(ctx, "backend logout failed", "error", err)
	}
	s.slot.ClearAccessToken()
	s.setState(StateAnonymous, nil)
}

// HandleExpired marks the session expired after a failed refresh and runs
// the registered navigation hook. Wired to api.Client.OnAuthExpired.
func (s *Store) HandleExpired() {
	s.slot.ClearAccessToken()
	s.setState(StateExpired, nil)

	s.mu.RLock()
	hook := s.expiredHook
	s.mu.RUnlock()
	if hook != nil {
		hook()
	}
}
