package cli

import (
	"context"
	"fmt"

	"github.com/careerkey/portal/internal/common"
)

// Dashboard shows the student's attestation counters. Students only.
func (a *App) Dashboard(ctx context.Context) error {
	if err := a.requireRoles(common.RoleStudent); err != nil {
		return err
	}

	stats, err := a.dashboard.Stats(ctx, a.session.User().Email)
	if err != nil {
		fmt.Fprintln(a.out, "Unable to load your dashboard:", err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Your dashboard")
	fmt.Fprintf(a.out, "  Documents: %d\n", stats.Documents)
	fmt.Fprintf(a.out, "  Verified:  %d\n", stats.Verified)
	fmt.Fprintf(a.out, "  Pending:   %d\n", stats.Pending)
	return nil
}

// Documents lists the student's attestation requests, newest first.
func (a *App) Documents(ctx context.Context) error {
	if err := a.requireRoles(common.RoleStudent); err != nil {
		return err
	}

	docs, err := a.dashboard.Documents(ctx, a.session.User().Email)
	if err != nil {
		fmt.Fprintln(a.out, "Unable to load your documents:", err.Error())
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(a.out, "You have no attestation requests yet.")
		return nil
	}

	for _, doc := range docs {
		line := fmt.Sprintf("%s  [%s]", doc.Name, doc.Status)
		if !doc.RequestedAt.IsZero() {
			line += "  requested " + doc.RequestedAt.Format("2006-01-02")
		}
		if doc.TxHash != "" {
			line += "  tx " + doc.TxHash
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// Attest submits a new attestation request for the signed-in student.
func (a *App) Attest(ctx context.Context) error {
	if err := a.requireRoles(common.RoleStudent); err != nil {
		return err
	}

	degree, err := getSimpleText(a.reader, "Degree title (empty for the default)", a.out)
	if err != nil {
		return err
	}

	req, err := a.dashboard.Submit(ctx, a.session.User().Email, degree)
	if err != nil {
		fmt.Fprintln(a.out, "Unable to submit the request:", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Attestation request %s submitted. Current status: %s.\n", req.ID, req.Status)
	return nil
}
