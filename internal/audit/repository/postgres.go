package repository

import (
	"context"
	"database/sql"

	"field-attendance/backend/internal/audit/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an audit log repository that uses the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the audit log entry. The entry must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, organization_id, employee_id, action, resource, ip, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.OrgID, entry.EmployeeID, entry.Action, entry.Resource, entry.IP, entry.Metadata, entry.CreatedAt)
	return err
}
