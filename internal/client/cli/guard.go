package cli

import (
	"errors"
	"fmt"

	"github.com/careerkey/portal/internal/client/session"
)

// errNotAllowed marks a command refused by a guard. Handlers return it so
// callers can tell a refusal from a handler failure; the guard has already
// told the user.
var errNotAllowed = errors.New("not allowed")

// requireRoles gates a command on an authenticated session holding at
// least one of the allowed canonical role tokens. While the startup token
// check is still in flight it reports a neutral message rather than
// bouncing the user to login.
func (a *App) requireRoles(allowed ...string) error {
	switch a.session.State() {
	case session.StateChecking:
		fmt.Fprintln(a.out, "Checking your session, please retry in a moment.")
		return errNotAllowed
	case session.StateAuthenticated:
	default:
		fmt.Fprintln(a.out, "Please log in to continue.")
		return errNotAllowed
	}

	if len(allowed) == 0 {
		return nil
	}

	if !a.session.User().HasAnyRole(allowed...) {
		fmt.Fprintln(a.out, "Your account does not have access to this command.")
		return errNotAllowed
	}
	return nil
}
