package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks transport-level failures (connection refused,
	// timeout, DNS). Callers surface a generic service-error message and
	// never retry automatically.
	ErrUnavailable = errors.New("verification service unavailable")

	// ErrUnauthorized is returned when a request stays unauthorized after
	// the single transparent refresh attempt.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError carries a backend-reported business failure. Message holds the
// backend-provided text when the payload carried one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
