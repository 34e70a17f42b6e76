// Package services contains the application services behind the portal
// commands: the verification intake flow, registration, and the student
// dashboard over the local attestation cache.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/careerkey/portal/internal/client/api"
	"github.com/careerkey/portal/internal/client/models"
	"github.com/careerkey/portal/internal/logging"
)

// Fallback messages when the backend payload carries none.
const (
	msgVerificationFailed = "Verification failed"
	msgServiceError       = "Error contacting verification server. Please try again."
)

// ErrVerificationInFlight rejects a second submission while one is
// outstanding for the same flow.
var ErrVerificationInFlight = errors.New("verification already in progress")

// VerifyAPI is the backend surface the verifier needs. *api.Client
// satisfies it.
type VerifyAPI interface {
	VerifyDegreeRequest(ctx context.Context, requestID string) (*api.VerifyResponse, error)
}

// Outcome is the result of one verification attempt. Ephemeral: it lives
// only in the intake flow's transient state, never persisted.
type Outcome struct {
	Success bool
	Message string
	Record  *models.VerificationRecord
}

// Verifier runs the verification intake flow: normalize the identifier,
// call the verify endpoint exactly once, fold every response shape into an
// Outcome. It never retries; the user re-invokes.
type Verifier struct {
	api  VerifyAPI
	log  logging.Logger
	busy atomic.Bool
}

func NewVerifier(api VerifyAPI, log logging.Logger) *Verifier {
	return &Verifier{api: api, log: log}
}

// Verify accepts the raw payload of any intake mode (typed id, camera
// payload, cropped-image payload). A payload that reduces to an empty
// identifier fails locally with common.ErrorEmptyInput before any network
// activity.
func (v *Verifier) Verify(ctx context.Context, rawInput string) (*Outcome, error) {
	requestID, err := ExtractRequestID(rawInput)
	if err != nil {
		return nil, err
	}

	if !v.busy.CompareAndSwap(false, true) {
		return nil, ErrVerificationInFlight
	}
	defer v.busy.Store(false)

	v.log.Info(ctx, "verifying degree request", "id", requestID)

	resp, err := v.api.VerifyDegreeRequest(ctx, requestID)
	if err != nil {
		// A backend-reported business failure carries its message through
		// verbatim; transport failures stay generic.
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return &Outcome{Success: false, Message: apiErr.Error()}, nil
		}
		if errors.Is(err, api.ErrUnavailable) {
			v.log.Error(ctx, "verify transport failure", "id", requestID, "error", err)
			return nil, fmt.Errorf("%s: %w", msgServiceError, err)
		}
		return nil, err
	}

	if !resp.Success {
		message := resp.Message
		if message == "" {
			message = msgVerificationFailed
		}
		return &Outcome{Success: false, Message: message}, nil
	}

	return &Outcome{Success: true, Message: resp.Message, Record: resp.Record}, nil
}
