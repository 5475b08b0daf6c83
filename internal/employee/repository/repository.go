package repository

import (
	"context"

	"field-attendance/backend/internal/employee/domain"
)

// Repository defines persistence for employees.
type Repository interface {
	// GetByOrgAndID returns the employee scoped to the organization, or nil if
	// not found. Both keys are required to prevent cross-tenant reads.
	GetByOrgAndID(ctx context.Context, orgID, id string) (*domain.Employee, error)
	Create(ctx context.Context, e *domain.Employee) error
	SetFallbackCodeHash(ctx context.Context, orgID, id, hash string) error
}
