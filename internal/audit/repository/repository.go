package repository

import (
	"context"

	"field-attendance/backend/internal/audit/domain"
)

// Repository defines persistence for audit logs.
type Repository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}
