package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerkey/portal/internal/client/models"
	"github.com/careerkey/portal/internal/common"
	"github.com/careerkey/portal/internal/logging"
)

// ---- fakes ----

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return v, nil
}

func (m *memStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type fakeAPI struct {
	loginToken string
	loginUser  *models.User
	loginErr   error

	meUser *models.User
	meErr  error

	refreshToken string
	refreshErr   error

	logoutErr   error
	logoutCalls int
	meCalls     int
}

func (f *fakeAPI) Login(ctx context.Context, creds models.Credentials) (string, *models.User, error) {
	return f.loginToken, f.loginUser, f.loginErr
}

func (f *fakeAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	f.meCalls++
	return f.meUser, f.meErr
}

func (f *fakeAPI) RefreshToken(ctx context.Context) (string, error) {
	return f.refreshToken, f.refreshErr
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newStore(api *fakeAPI) (*Store, *TokenSlot, *memStore) {
	mem := newMemStore()
	slot := NewTokenSlot(mem, testLogger())
	return NewStore(api, slot, testLogger()), slot, mem
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

// ---- tests ----

func TestCheckAuth_NoStoredTokenStaysAnonymous(t *testing.T) {
	api := &fakeAPI{}
	store, _, _ := newStore(api)

	store.CheckAuth(context.Background())

	assert.Equal(t, StateAnonymous, store.State())
	assert.Zero(t, api.meCalls)
}

func TestCheckAuth_ValidStoredToken(t *testing.T) {
	api := &fakeAPI{meUser: &models.User{Email: "a@b.pk", Roles: []string{"ROLE_STUDENT"}}}
	store, slot, mem := newStore(api)
	require.NoError(t, mem.Set(context.Background(), tokenKey, []byte("opaque-token")))

	store.CheckAuth(context.Background())

	assert.Equal(t, StateAuthenticated, store.State())
	assert.Equal(t, "a@b.pk", store.User().Email)
	assert.Equal(t, "opaque-token", slot.AccessToken())
}

func TestCheckAuth_RejectedTokenIsDiscarded(t *testing.T) {
	api := &fakeAPI{meErr: errors.New("401")}
	store, slot, mem := newStore(api)
	require.NoError(t, mem.Set(context.Background(), tokenKey, []byte("bad-token")))

	store.CheckAuth(context.Background())

	assert.Equal(t, StateAnonymous, store.State())
	assert.Empty(t, slot.AccessToken())
	_, err := mem.Get(context.Background(), tokenKey)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCheckAuth_LocallyExpiredTokenSkipsNetwork(t *testing.T) {
	api := &fakeAPI{meUser: &models.User{}}
	store, slot, mem := newStore(api)
	expired := signedToken(t, time.Now().Add(-time.Hour))
	require.NoError(t, mem.Set(context.Background(), tokenKey, []byte(expired)))

	store.CheckAuth(context.Background())

	assert.Equal(t, StateAnonymous, store.State())
	assert.Empty(t, slot.AccessToken())
	assert.Zero(t, api.meCalls, "expired token discarded without a backend call")
}

func TestLogin_StoresTokenAndUser(t *testing.T) {
	api := &fakeAPI{
		loginToken: "tok-1",
		loginUser:  &models.User{Email: "a@b.pk", Roles: []string{"ROLE_HEC"}},
	}
	store, slot, mem := newStore(api)

	user, err := store.Login(context.Background(), models.Credentials{Email: "a@b.pk", Password: "password123"})
	require.NoError(t, err)

	assert.Equal(t, StateAuthenticated, store.State())
	assert.Equal(t, []string{"ROLE_HEC"}, user.Roles)
	assert.Equal(t, "tok-1", slot.AccessToken())

	persisted, err := mem.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", string(persisted))
}

func TestLogin_ValidationBeforeNetwork(t *testing.T) {
	api := &fakeAPI{loginErr: errors.New("must not reach backend")}
	store, _, _ := newStore(api)

	_, err := store.Login(context.Background(), models.Credentials{Email: "", Password: ""})
	require.ErrorIs(t, err, common.ErrorMissingField)
	assert.Equal(t, StateAnonymous, store.State())
}

func TestLogout_ClearsStateEvenWhenBackendFails(t *testing.T) {
	api := &fakeAPI{
		loginToken: "tok-1",
		loginUser:  &models.User{Email: "a@b.pk"},
		logoutErr:  errors.New("backend down"),
	}
	store, slot, _ := newStore(api)

	_, err := store.Login(context.Background(), models.Credentials{Email: "a@b.pk", Password: "password123"})
	require.NoError(t, err)

	store.Logout(context.Background())

	assert.Equal(t, StateAnonymous, store.State())
	assert.Nil(t, store.User())
	assert.Empty(t, slot.AccessToken())
	assert.Equal(t, 1, api.logoutCalls)
}

func TestRefresh_SuccessKeepsAuthenticated(t *testing.T) {
	api := &fakeAPI{
		loginToken:   "tok-1",
		loginUser:    &models.User{Email: "a@b.pk"},
		refreshToken: "tok-2",
	}
	store, slot, _ := newStore(api)

	_, err := store.Login(context.Background(), models.Credentials{Email: "a@b.pk", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, store.Refresh(context.Background()))
	assert.Equal(t, StateAuthenticated, store.State())
	assert.Equal(t, "tok-2", slot.AccessToken())
}

func TestRefresh_FailureExpiresSession(t *testing.T) {
	api := &fakeAPI{
		loginToken: "tok-1",
		loginUser:  &models.User{Email: "a@b.pk"},
		refreshErr: errors.New("refresh rejected"),
	}
	store, slot, _ := newStore(api)

	var expiredCalls int
	store.OnExpired(func() { expiredCalls++ })

	_, err := store.Login(context.Background(), models.Credentials{Email: "a@b.pk", Password: "password123"})
	require.NoError(t, err)

	require.Error(t, store.Refresh(context.Background()))
	assert.Equal(t, StateExpired, store.State())
	assert.Empty(t, slot.AccessToken())
	assert.Equal(t, 1, expiredCalls, "login entry navigation happens exactly once")
}

func TestTokenExpired(t *testing.T) {
	assert.True(t, tokenExpired(signedToken(t, time.Now().Add(-time.Minute))))
	assert.False(t, tokenExpired(signedToken(t, time.Now().Add(time.Hour))))
	assert.False(t, tokenExpired("opaque-session-token"), "non-JWT tokens are left for the backend")
}
