package api

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/careerkey/portal/internal/common"
)

// TokenSource is the single process-wide access-token slot. The transport
// reads the latest value on every attempt and is, besides login and logout,
// its only writer (on a successful refresh).
type TokenSource interface {
	AccessToken() string
	SetAccessToken(token string)
	ClearAccessToken()
}

type refreshFunc func(ctx context.Context) (string, error)

// authTransport stamps the bearer credential onto outbound requests and
// owns the 401 policy: at most one transparent refresh+retry per original
// request. The retried state lives on the stack of a single RoundTrip call,
// never on shared request state.
type authTransport struct {
	base      http.RoundTripper
	tokens    TokenSource
	refresh   refreshFunc
	onExpired func()
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.tokens.AccessToken()

	attempt, err := t.prepare(req, token)
	if err != nil {
		return nil, err
	}

	resp, err := t.base.RoundTrip(attempt)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// A 401 on an anonymous call is a business outcome (bad credentials),
	// not an expired session; there is nothing to refresh.
	if token == "" {
		return resp, nil
	}

	newToken, refreshErr := t.refresh(req.Context())
	if refreshErr != nil {
		t.tokens.ClearAccessToken()
		if t.onExpired != nil {
			t.onExpired()
		}
		return resp, nil
	}
	t.tokens.SetAccessToken(newToken)

	discard(resp)

	attempt, err = t.prepare(req, newToken)
	if err != nil {
		return nil, err
	}

	// Exactly one retry. A second 401 goes back to the caller as-is.
	return t.base.RoundTrip(attempt)
}

// prepare clones the request with a replayable body and per-attempt headers.
// The caller's request is never mutated.
func (t *authTransport) prepare(req *http.Request, token string) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		clone.Body = body
	}
	if token != "" {
		clone.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	clone.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	return clone, nil
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
