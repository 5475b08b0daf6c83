package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"field-attendance/backend/internal/attendancetoken/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an attendance token repository that uses the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetActiveByDigest returns the active token record for digest, or nil if not found.
func (r *PostgresRepository) GetActiveByDigest(ctx context.Context, digest string) (*domain.TokenRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, organization_id, employee_id, token_digest, is_active, created_at, rotated_at
		 FROM attendance_tokens WHERE token_digest = $1 AND is_active`, digest)
	var t domain.TokenRecord
	if err := row.Scan(&t.ID, &t.OrgID, &t.EmployeeID, &t.TokenDigest, &t.Active, &t.CreatedAt, &t.RotatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Create persists the token record. The record must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, t *domain.TokenRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attendance_tokens (id, organization_id, employee_id, token_digest, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.OrgID, t.EmployeeID, t.TokenDigest, t.Active, t.CreatedAt)
	return err
}

// DeactivateForEmployee marks all active records for (orgID, employeeID) inactive.
func (r *PostgresRepository) DeactivateForEmployee(ctx context.Context, orgID, employeeID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE attendance_tokens SET is_active = FALSE, rotated_at = $1
		 WHERE organization_id = $2 AND employee_id = $3 AND is_active`,
		time.Now().UTC(), orgID, employeeID)
	return err
}
