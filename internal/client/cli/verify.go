package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/careerkey/portal/internal/client/api"
	"github.com/careerkey/portal/internal/client/services"
	"github.com/careerkey/portal/internal/common"
)

// Verify runs the typed-entry verification flow: the user pastes a Digital
// Degree ID or a verification link and the canonical identifier is checked
// against the backend. Open to everyone, no login required.
func (a *App) Verify(ctx context.Context) error {
	raw, err := getSimpleText(a.reader, "Enter a Digital Degree ID or verification link", a.out)
	if err != nil {
		return err
	}

	outcome, err := a.verifier.Verify(ctx, raw)
	if err != nil {
		a.reportVerifyError(err, "Verify service error. Please check if ID is correct.")
		return err
	}

	a.renderOutcome(outcome)
	a.reconcileOutcome(ctx, outcome)
	return nil
}

// reconcileOutcome settles the signed-in student's cached attestation
// request when the verified record covers their own degree. Best effort;
// the cache never blocks the flow.
func (a *App) reconcileOutcome(ctx context.Context, o *services.Outcome) {
	if !o.Success || o.Record == nil {
		return
	}
	user := a.session.User()
	if user == nil || !user.HasAnyRole(common.RoleStudent) {
		return
	}
	if err := a.dashboard.Reconcile(ctx, user.Email, o.Record); err != nil {
		a.log.Warn(ctx, "attestation cache not reconciled", "error", err)
	}
}

// reportVerifyError maps a verification error to a user-facing message.
// unavailableMsg differs between the typed-entry and scan flows.
func (a *App) reportVerifyError(err error, unavailableMsg string) {
	switch {
	case errors.Is(err, common.ErrorEmptyInput):
		fmt.Fprintln(a.out, "Please enter a valid Digital Degree ID.")
	case errors.Is(err, services.ErrVerificationInFlight):
		fmt.Fprintln(a.out, "A verification is already in progress. Please wait for it to finish.")
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, unavailableMsg)
	default:
		fmt.Fprintln(a.out, "Verification failed:", err.Error())
	}
}
