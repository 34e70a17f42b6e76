// Package api is the typed REST client for the CareerKey backend. All
// authenticated calls ride a bearer transport with a single transparent
// refresh+retry on 401; the refresh credential itself is cookie-carried and
// stays inside the client's cookie jar, invisible to component code.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/careerkey/portal/internal/client/models"
	"github.com/careerkey/portal/internal/common"
	"github.com/careerkey/portal/internal/logging"
)

const maxResponseBytes = 1 << 20

type Client struct {
	baseURL   string
	http      *http.Client
	refresh   *http.Client
	tokens    TokenSource
	transport *authTransport
	log       logging.Logger
}

// New builds a client for the backend at baseURL (e.g.
// "http://localhost:9090/api/v1"). Both the bearer client and the refresh
// client share one cookie jar so the refresh credential set at login is
// available to /auth/refresh.
func New(baseURL string, tokens TokenSource, timeout time.Duration, log logging.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: cookie jar: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		log:     log,
	}
	c.refresh = &http.Client{Jar: jar, Timeout: timeout}
	c.transport = &authTransport{
		base:    http.DefaultTransport,
		tokens:  tokens,
		refresh: c.RefreshToken,
	}
	c.http = &http.Client{Jar: jar, Timeout: timeout, Transport: c.transport}
	return c, nil
}

// OnAuthExpired registers the hook fired when a transparent refresh fails.
// Fired at most once per original request; the registered hook performs the
// only navigation side effect in the error design (back to the login entry).
func (c *Client) OnAuthExpired(fn func()) {
	c.transport.onExpired = fn
}

// Login authenticates and returns the issued access token together with the
// normalized user. The token is returned, not stored; the session store is
// the writer of the token slot on login.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (string, *models.User, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/login", creds)
	if err != nil {
		return "", nil, err
	}

	var lr struct {
		AccessToken string          `json:"accessToken"`
		User        json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(data, &lr); err != nil {
		return "", nil, fmt.Errorf("decode login response: %w", err)
	}

	// Some backend builds inline the user fields at the top level instead
	// of nesting them under "user".
	userData := lr.User
	if len(userData) == 0 {
		userData = data
	}

	user := &models.User{}
	if err := json.Unmarshal(userData, user); err != nil {
		return "", nil, fmt.Errorf("decode login user: %w", err)
	}
	return lr.AccessToken, user, nil
}

// RegisterStudent submits a student profile and returns the backend
// confirmation message, if any.
func (c *Client) RegisterStudent(ctx context.Context, reg models.StudentRegistration) (string, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/register-student", reg)
	if err != nil {
		return "", err
	}
	return backendMessage(data), nil
}

// RegisterUniversity onboards an institution and returns the backend
// confirmation message, if any.
func (c *Client) RegisterUniversity(ctx context.Context, reg models.UniversityRegistration) (string, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/register-university", reg)
	if err != nil {
		return "", err
	}
	return backendMessage(data), nil
}

// CurrentUser fetches the authenticated user behind the bearer token.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	data, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	user := &models.User{}
	if err := json.Unmarshal(data, user); err != nil {
		return nil, fmt.Errorf("decode current user: %w", err)
	}
	return user, nil
}

// Logout invalidates the server session. Local state is cleared by the
// session store regardless of this call's outcome.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil)
	return err
}

// RefreshToken mints a new access token using the cookie-carried refresh
// credential. It bypasses the bearer transport, so a refresh can never
// trigger another refresh.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", http.NoBody)
	if err != nil {
		return "", err
	}

	resp, err := c.refresh.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refresh rejected: %w", ErrUnauthorized)
	}

	var out struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("refresh returned no token: %w", ErrUnauthorized)
	}
	return out.AccessToken, nil
}

// VerifyResponse is the verify endpoint's discriminated result.
type VerifyResponse struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Record  *models.VerificationRecord `json:"data"`
}

// VerifyDegreeRequest checks a degree request by its canonical identifier.
// Called exactly once per verification attempt.
func (c *Client) VerifyDegreeRequest(ctx context.Context, requestID string) (*VerifyResponse, error) {
	if requestID == "" {
		return nil, common.ErrorEmptyInput
	}

	path := "/verifier/degree-requests/" + url.PathEscape(requestID) + "/verify"
	data, err := c.do(ctx, http.MethodPost, path, nil)
	if err != nil {
		return nil, err
	}

	var vr VerifyResponse
	if err := json.Unmarshal(data, &vr); err != nil {
		return nil, fmt.Errorf("decode verify response: %w", err)
	}
	return &vr, nil
}

func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request transport failure", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	case resp.StatusCode >= 400:
		return nil, &APIError{Status: resp.StatusCode, Message: backendMessage(data)}
	}
	return data, nil
}

func backendMessage(data []byte) string {
	var p struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(data, &p)
	return p.Message
}
