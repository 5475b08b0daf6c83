package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"field-attendance/backend/internal/challenge/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a challenge repository that uses the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the challenge. The challenge must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, c *domain.Challenge) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO webauthn_challenges
		 (id, organization_id, employee_id, token_digest, kind, challenge_value, session_data, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.OrgID, c.EmployeeID, c.TokenDigest, c.Kind, c.Value, c.SessionData, c.CreatedAt, c.ExpiresAt)
	return err
}

// LatestUnexpired returns the newest unexpired challenge for the identity and kind, or nil.
func (r *PostgresRepository) LatestUnexpired(ctx context.Context, orgID, employeeID, tokenDigest string, kind domain.Kind, now time.Time) (*domain.Challenge, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, organization_id, employee_id, token_digest, kind, challenge_value, session_data, created_at, expires_at
		 FROM webauthn_challenges
		 WHERE organization_id = $1 AND employee_id = $2 AND token_digest = $3 AND kind = $4 AND expires_at > $5
		 ORDER BY created_at DESC
		 LIMIT 1`,
		orgID, employeeID, tokenDigest, kind, now)
	var c domain.Challenge
	if err := row.Scan(&c.ID, &c.OrgID, &c.EmployeeID, &c.TokenDigest, &c.Kind, &c.Value, &c.SessionData, &c.CreatedAt, &c.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
