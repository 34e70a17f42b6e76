package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerkey/portal/internal/client/models"
	"github.com/careerkey/portal/internal/common"
)

type memAttestations struct {
	items []models.AttestationRequest
}

func (m *memAttestations) Add(_ context.Context, req models.AttestationRequest) error {
	m.items = append(m.items, req)
	return nil
}

func (m *memAttestations) ListByStudent(_ context.Context, email string) ([]models.AttestationRequest, error) {
	var out []models.AttestationRequest
	for _, it := range m.items {
		if it.StudentEmail == email {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memAttestations) UpdateStatus(_ context.Context, id, status, txHash string) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Status = status
			m.items[i].TxHash = txHash
			return nil
		}
	}
	return common.ErrorNotFound
}

func seededDashboard(t *testing.T) (*Dashboard, *memAttestations) {
	t.Helper()
	repo := &memAttestations{items: []models.AttestationRequest{
		{ID: "1", StudentEmail: "a@uni.pk", Degree: "BSCS", Status: models.StatusVerified},
		{ID: "2", StudentEmail: "a@uni.pk", Degree: "", Status: models.StatusPending},
		{ID: "3", StudentEmail: "a@uni.pk", Degree: "MSDS", Status: models.StatusRejectedByHEC},
		{ID: "4", StudentEmail: "a@uni.pk", Degree: "MBA", Status: "Under Review"},
		{ID: "5", StudentEmail: "b@uni.pk", Degree: "BSSE", Status: models.StatusPending},
	}}
	return NewDashboard(repo, discardLogger()), repo
}

func TestDashboardStats(t *testing.T) {
	d, _ := seededDashboard(t)

	stats, err := d.Stats(context.Background(), "a@uni.pk")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Documents)
	assert.Equal(t, 1, stats.Verified)
	// Pending covers anything not yet settled, including unknown statuses.
	assert.Equal(t, 2, stats.Pending)
}

func TestDashboardStatsEmpty(t *testing.T) {
	d := NewDashboard(&memAttestations{}, discardLogger())

	stats, err := d.Stats(context.Background(), "nobody@uni.pk")
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{}, stats)
}

func TestDashboardDocuments(t *testing.T) {
	d, _ := seededDashboard(t)

	docs, err := d.Documents(context.Background(), "a@uni.pk")
	require.NoError(t, err)
	require.Len(t, docs, 4)
	assert.Equal(t, "BSCS", docs[0].Name)
	assert.Equal(t, DefaultDegreeName, docs[1].Name)
}

// The listing shows coarse statuses only: both rejection variants display
// as Rejected, anything unsettled as Pending.
func TestDashboardDocumentsCoarseStatus(t *testing.T) {
	d, _ := seededDashboard(t)

	docs, err := d.Documents(context.Background(), "a@uni.pk")
	require.NoError(t, err)
	require.Len(t, docs, 4)
	assert.Equal(t, models.StatusVerified, docs[0].Status)
	assert.Equal(t, models.StatusPending, docs[1].Status)
	assert.Equal(t, models.StatusRejected, docs[2].Status)
	assert.Equal(t, models.StatusPending, docs[3].Status)
}

func TestDashboardSubmit(t *testing.T) {
	repo := &memAttestations{}
	d := NewDashboard(repo, discardLogger())
	fixed := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return fixed }

	req, err := d.Submit(context.Background(), " a@uni.pk ", " BSCS ")
	require.NoError(t, err)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, "a@uni.pk", req.StudentEmail)
	assert.Equal(t, "BSCS", req.Degree)
	assert.Equal(t, models.StatusPending, req.Status)
	assert.Equal(t, fixed, req.RequestedAt)
	require.Len(t, repo.items, 1)
	assert.Equal(t, *req, repo.items[0])
}

func TestDashboardReconcile(t *testing.T) {
	rec := &models.VerificationRecord{Program: "bscs", TransactionHash: "0xabc"}

	t.Run("settles the matching pending request", func(t *testing.T) {
		repo := &memAttestations{items: []models.AttestationRequest{
			{ID: "1", StudentEmail: "a@uni.pk", Degree: "BSCS", Status: models.StatusPending},
		}}
		d := NewDashboard(repo, discardLogger())

		require.NoError(t, d.Reconcile(context.Background(), "a@uni.pk", rec))
		assert.Equal(t, models.StatusVerified, repo.items[0].Status)
		assert.Equal(t, "0xabc", repo.items[0].TxHash)
	})

	t.Run("settled requests are left alone", func(t *testing.T) {
		repo := &memAttestations{items: []models.AttestationRequest{
			{ID: "1", StudentEmail: "a@uni.pk", Degree: "BSCS", Status: models.StatusRejectedByHEC},
		}}
		d := NewDashboard(repo, discardLogger())

		require.NoError(t, d.Reconcile(context.Background(), "a@uni.pk", rec))
		assert.Equal(t, models.StatusRejectedByHEC, repo.items[0].Status)
	})

	t.Run("no matching program leaves the cache alone", func(t *testing.T) {
		repo := &memAttestations{items: []models.AttestationRequest{
			{ID: "1", StudentEmail: "a@uni.pk", Degree: "MBA", Status: models.StatusPending},
		}}
		d := NewDashboard(repo, discardLogger())

		require.NoError(t, d.Reconcile(context.Background(), "a@uni.pk", rec))
		assert.Equal(t, models.StatusPending, repo.items[0].Status)
	})

	t.Run("record without a program is ignored", func(t *testing.T) {
		d := NewDashboard(&memAttestations{}, discardLogger())
		require.NoError(t, d.Reconcile(context.Background(), "a@uni.pk", &models.VerificationRecord{}))
		require.NoError(t, d.Reconcile(context.Background(), "a@uni.pk", nil))
	})
}

func TestDashboardSubmitEmptyEmail(t *testing.T) {
	d := NewDashboard(&memAttestations{}, discardLogger())

	_, err := d.Submit(context.Background(), "  ", "BSCS")
	assert.ErrorIs(t, err, common.ErrorEmptyInput)
}
