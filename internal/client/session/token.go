package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/careerkey/portal/internal/common"
	"github.com/careerkey/portal/internal/logging"
)

// tokenKey is the metadata slot the access token persists under between
// invocations within a browsing session.
const tokenKey = "accessToken"

const persistTimeout = 2 * time.Second

// TokenStore persists the access token across process restarts within a
// session. The metadata repository satisfies it.
type TokenStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// TokenSlot is the single process-wide access-token slot. Writers are
// login, refresh and logout only; every outbound call reads the latest
// value at send time. Satisfies api.TokenSource.
type TokenSlot struct {
	mu    sync.RWMutex
	token string
	store TokenStore
	log   logging.Logger
}

func NewTokenSlot(store TokenStore, log logging.Logger) *TokenSlot {
	return &TokenSlot{store: store, log: log}
}

// Load pulls the persisted token into the slot at startup. A missing slot
// is not an error.
func (s *TokenSlot) Load(ctx context.Context) error {
	value, err := s.store.Get(ctx, tokenKey)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.token = string(value)
	s.mu.Unlock()
	return nil
}

func (s *TokenSlot) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetAccessToken replaces the slot value and persists it best-effort;
// a storage failure never blocks the in-memory session.
func (s *TokenSlot) SetAccessToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.store.Set(ctx, tokenKey, []byte(token)); err != nil {
		s.log.Warn(ctx, "access token not persisted", "error", err)
	}
}

func (s *TokenSlot) ClearAccessToken() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.store.Delete(ctx, tokenKey); err != nil {
		s.log.Warn(ctx, "persisted access token not cleared", "error", err)
	}
}

// tokenExpired reports whether the token is a JWT whose exp claim is
// already past. The claim is only peeked at, never verified; opaque tokens
// are left for the backend to judge.
func tokenExpired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now())
}
