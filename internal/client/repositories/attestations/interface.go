// Package attestations is the repository over the legacy local cache of
// attestation requests, keyed by the requesting student's email. The cache
// only feeds dashboard counts and the documents list; the backend remains
// the source of truth for attestation state.
package attestations

import (
	"context"

	"github.com/careerkey/portal/internal/client/models"
)

type Repository interface {
	Add(ctx context.Context, req models.AttestationRequest) error
	ListByStudent(ctx context.Context, email string) ([]models.AttestationRequest, error)
	UpdateStatus(ctx context.Context, id, status, txHash string) error
}
