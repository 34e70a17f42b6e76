package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/careerkey/portal/internal/client/api"
	"github.com/careerkey/portal/internal/client/models"
	"github.com/careerkey/portal/internal/common"
)

// registerAPI is the backend surface the registration commands need.
type registerAPI interface {
	RegisterStudent(ctx context.Context, reg models.StudentRegistration) (string, error)
	RegisterUniversity(ctx context.Context, reg models.UniversityRegistration) (string, error)
}

// Signup walks the user through the student registration form. Validation
// runs locally before anything is sent; a validation failure reports the
// offending field and makes no backend call.
func (a *App) Signup(ctx context.Context) error {
	var reg models.StudentRegistration

	fields := []struct {
		prompt string
		dest   *string
	}{
		{"Full name", &reg.Name},
		{"Email", &reg.Email},
		{"CNIC", &reg.CNIC},
		{"Date of birth (YYYY-MM-DD)", &reg.DateOfBirth},
		{"Gender", &reg.Gender},
		{"Contact number", &reg.ContactNumber},
		{"Address", &reg.Address},
		{"University name", &reg.UniversityName},
	}
	for _, f := range fields {
		value, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dest = value
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	reg.Password = string(password)

	if err := reg.Validate(); err != nil {
		a.reportValidation(err)
		return err
	}

	message, err := a.register.RegisterStudent(ctx, reg)
	if err != nil {
		a.reportRegistration(err)
		return err
	}

	if message == "" {
		message = "Registration successful. You can now log in."
	}
	fmt.Fprintln(a.out, message)
	return nil
}

func (a *App) reportValidation(err error) {
	switch {
	case errors.Is(err, common.ErrorPasswordLength):
		fmt.Fprintln(a.out, "Password must be at least 8 characters long.")
	case errors.Is(err, common.ErrorMissingField):
		fmt.Fprintf(a.out, "Please fill in all required fields (%s).\n", err.Error())
	default:
		fmt.Fprintln(a.out, "Invalid input:", err.Error())
	}
}

func (a *App) reportRegistration(err error) {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintln(a.out, "Registration failed:", apiErr.Error())
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Registration service is unavailable. Please try again later.")
	default:
		fmt.Fprintln(a.out, "Registration failed:", err.Error())
	}
}
