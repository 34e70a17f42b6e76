// Sentinel errors shared across client layers. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors, surfaced inline and never sent to the backend.
	ErrorEmptyInput     = errors.New("empty input")
	ErrorMissingField   = errors.New("required field missing")
	ErrorPasswordLength = errors.New("password must be at least 8 characters long")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
