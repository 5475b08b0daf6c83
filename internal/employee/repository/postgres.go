package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"field-attendance/backend/internal/employee/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an employee repository that uses the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByOrgAndID returns the employee for (orgID, id), or nil if not found.
func (r *PostgresRepository) GetByOrgAndID(ctx context.Context, orgID, id string) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, organization_id, display_name, status, fallback_code_hash, created_at, updated_at
		 FROM employees WHERE organization_id = $1 AND id = $2`, orgID, id)
	var e domain.Employee
	if err := row.Scan(&e.ID, &e.OrgID, &e.DisplayName, &e.Status, &e.FallbackCodeHash, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// Create persists the employee. The employee must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, e *domain.Employee) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (id, organization_id, display_name, status, fallback_code_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.OrgID, e.DisplayName, e.Status, e.FallbackCodeHash, e.CreatedAt, e.UpdatedAt)
	return err
}

// SetFallbackCodeHash replaces the employee's manual fallback code hash.
func (r *PostgresRepository) SetFallbackCodeHash(ctx context.Context, orgID, id, hash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE employees SET fallback_code_hash = $1, updated_at = $2
		 WHERE organization_id = $3 AND id = $4`,
		hash, time.Now().UTC(), orgID, id)
	return err
}
