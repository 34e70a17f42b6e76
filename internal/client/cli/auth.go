package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/careerkey/portal/internal/client/api"
	"github.com/careerkey/portal/internal/client/models"
	"github.com/careerkey/portal/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates against the backend.
//
// After a successful login the user lands in their home area, picked by
// role priority: HEC first, then student, then university. The password
// byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	creds := models.Credentials{Email: email, Password: string(password)}

	user, err := a.session.Login(ctx, creds)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorMissingField):
			fmt.Fprintln(a.out, "Email and password are required.")
		case errors.Is(err, api.ErrUnavailable):
			fmt.Fprintln(a.out, "Login service is unavailable. Please try again later.")
		default:
			fmt.Fprintln(a.out, "Login failed:", err.Error())
		}
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Name)
	fmt.Fprintln(a.out, a.homeAreaFor(user))
	return nil
}

// homeAreaFor picks the post-login destination by role priority.
func (a *App) homeAreaFor(user *models.User) string {
	switch {
	case user.HasAnyRole(common.RoleHEC):
		return "Opening the HEC admin area."
	case user.HasAnyRole(common.RoleStudent):
		return "Opening your student dashboard."
	case user.HasAnyRole(common.RoleUniversity):
		return "Opening the university area."
	default:
		return "Opening the portal home page."
	}
}

// Logout ends the backend session and clears local state. Local state is
// cleared even when the backend call fails.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "You have been logged out.")
	return nil
}

// Whoami shows the authenticated user and their canonical roles.
func (a *App) Whoami(ctx context.Context) error {
	if err := a.requireRoles(); err != nil {
		return err
	}

	user := a.session.User()
	fmt.Fprintf(a.out, "Name:  %s\n", user.Name)
	fmt.Fprintf(a.out, "Email: %s\n", user.Email)
	fmt.Fprintf(a.out, "Roles: %s\n", strings.Join(user.Roles, ", "))
	return nil
}
