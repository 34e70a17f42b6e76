package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careerkey/portal/internal/client/models"
	"github.com/careerkey/portal/internal/client/repositories/attestations"
	"github.com/careerkey/portal/internal/common"
	"github.com/careerkey/portal/internal/logging"
)

// DefaultDegreeName fills in when an attestation request omits the
// degree title.
const DefaultDegreeName = "Degree Certificate"

// DashboardStats are the counters rendered on the student dashboard.
type DashboardStats struct {
	Documents int
	Verified  int
	Pending   int
}

// Document is one row of the student's documents listing. Status is the
// coarse display status, never the raw cache value.
type Document struct {
	Name        string
	Status      string
	RequestedAt time.Time
	TxHash      string
}

// coarseStatus folds the cache statuses into the three the listing shows:
// both rejection variants display as Rejected, anything not yet settled as
// Pending.
func coarseStatus(status string) string {
	switch status {
	case models.StatusVerified:
		return models.StatusVerified
	case models.StatusRejected, models.StatusRejectedByHEC:
		return models.StatusRejected
	default:
		return models.StatusPending
	}
}

// Dashboard serves the student dashboard from the local attestation
// cache.
type Dashboard struct {
	repo attestations.Repository
	log  logging.Logger
	now  func() time.Time
}

func NewDashboard(repo attestations.Repository, log logging.Logger) *Dashboard {
	return &Dashboard{repo: repo, log: log, now: time.Now}
}

// Stats aggregates the student's attestation requests into dashboard
// counters. Pending counts everything not yet settled, so a status
// outside the known set still shows up as in-progress rather than
// disappearing.
func (d *Dashboard) Stats(ctx context.Context, studentEmail string) (DashboardStats, error) {
	reqs, err := d.repo.ListByStudent(ctx, studentEmail)
	if err != nil {
		return DashboardStats{}, err
	}
	stats := DashboardStats{Documents: len(reqs)}
	for i := range reqs {
		switch {
		case reqs[i].Status == models.StatusVerified:
			stats.Verified++
		case !reqs[i].Settled():
			stats.Pending++
		}
	}
	return stats, nil
}

// Documents lists the student's attestation requests, newest first.
func (d *Dashboard) Documents(ctx context.Context, studentEmail string) ([]Document, error) {
	reqs, err := d.repo.ListByStudent(ctx, studentEmail)
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(reqs))
	for i := range reqs {
		name := reqs[i].Degree
		if name == "" {
			name = DefaultDegreeName
		}
		docs = append(docs, Document{
			Name:        name,
			Status:      coarseStatus(reqs[i].Status),
			RequestedAt: reqs[i].RequestedAt,
			TxHash:      reqs[i].TxHash,
		})
	}
	return docs, nil
}

// Reconcile settles the student's pending cached request for a degree the
// backend just verified, recording the transaction hash. Requests are
// matched by program title; with no matching pending request the cache is
// left alone.
func (d *Dashboard) Reconcile(ctx context.Context, studentEmail string, rec *models.VerificationRecord) error {
	if rec == nil || rec.Program == "" {
		return nil
	}

	reqs, err := d.repo.ListByStudent(ctx, studentEmail)
	if err != nil {
		return err
	}
	for i := range reqs {
		if reqs[i].Settled() || !strings.EqualFold(reqs[i].Degree, rec.Program) {
			continue
		}
		if err := d.repo.UpdateStatus(ctx, reqs[i].ID, models.StatusVerified, rec.TransactionHash); err != nil {
			return err
		}
		d.log.Info(ctx, "attestation request settled", "id", reqs[i].ID, "student", studentEmail)
		return nil
	}
	return nil
}

// Submit files a new attestation request. It starts out pending and is
// settled later by backend-driven status updates.
func (d *Dashboard) Submit(ctx context.Context, studentEmail, degree string) (*models.AttestationRequest, error) {
	studentEmail = strings.TrimSpace(studentEmail)
	if studentEmail == "" {
		return nil, common.ErrorEmptyInput
	}
	req := models.AttestationRequest{
		ID:           uuid.NewString(),
		StudentEmail: studentEmail,
		Degree:       strings.TrimSpace(degree),
		Status:       models.StatusPending,
		RequestedAt:  d.now().UTC(),
	}
	if err := d.repo.Add(ctx, req); err != nil {
		return nil, err
	}
	d.log.Info(ctx, "attestation request submitted", "id", req.ID, "student", studentEmail)
	return &req, nil
}
