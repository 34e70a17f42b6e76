package attestations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/careerkey/portal/internal/client/models"
	"github.com/careerkey/portal/internal/common"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, req models.AttestationRequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attestation_requests (id, student_email, degree, status, requested_at, tx_hash)
		VALUES (?, ?, ?, ?, ?, ?)
	`, req.ID, req.StudentEmail, req.Degree, req.Status, req.RequestedAt, req.TxHash)
	if err != nil {
		return fmt.Errorf("add attestation request: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListByStudent(ctx context.Context, email string) ([]models.AttestationRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, student_email, degree, status, requested_at, tx_hash
		FROM attestation_requests
		WHERE student_email = ?
		ORDER BY requested_at DESC
	`, email)
	if err != nil {
		return nil, fmt.Errorf("list attestation requests: %w", err)
	}
	defer rows.Close()

	var result []models.AttestationRequest
	for rows.Next() {
		var req models.AttestationRequest
		if err := rows.Scan(&req.ID, &req.StudentEmail, &req.Degree, &req.Status, &req.RequestedAt, &req.TxHash); err != nil {
			return nil, fmt.Errorf("scan attestation request: %w", err)
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attestation requests: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) UpdateStatus(ctx context.Context, id, status, txHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE attestation_requests SET status = ?, tx_hash = ? WHERE id = ?
	`, status, txHash, id)
	if err != nil {
		return fmt.Errorf("update attestation request %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update attestation request %s: %w", id, err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
