package cli

import (
	"context"
	"fmt"

	"github.com/careerkey/portal/internal/client/models"
	"github.com/careerkey/portal/internal/common"
)

// RegisterUniversity walks an HEC administrator through onboarding an
// institution. Only HEC accounts may run it.
func (a *App) RegisterUniversity(ctx context.Context) error {
	if err := a.requireRoles(common.RoleHEC); err != nil {
		return err
	}

	var reg models.UniversityRegistration

	fields := []struct {
		prompt string
		dest   *string
	}{
		{"Contact name", &reg.Name},
		{"Contact email", &reg.Email},
		{"University name", &reg.UniversityName},
		{"City", &reg.City},
		{"Charter number", &reg.CharterNumber},
		{"Issuing authority", &reg.IssuingAuthority},
		{"Logo URL (optional)", &reg.Image},
	}
	for _, f := range fields {
		value, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dest = value
	}

	recognized, err := GetYesNo(a.reader, "HEC recognized?", a.out)
	if err != nil {
		return err
	}
	reg.HECRecognized = recognized

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

	message, err := a.register.RegisterUniversity(ctx, reg)
	if err != nil {
		a.reportRegistration(err)
		return err
	}

	if message == "" {
		message = "University registered successfully."
	}
	fmt.Fprintln(a.out, message)
	return nil
}
