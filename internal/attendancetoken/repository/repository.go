package repository

import (
	"context"

	"field-attendance/backend/internal/attendancetoken/domain"
)

// Repository defines persistence for attendance token records.
type Repository interface {
	// GetActiveByDigest returns the single active record for the digest, or
	// nil if no active record exists.
	GetActiveByDigest(ctx context.Context, digest string) (*domain.TokenRecord, error)
	Create(ctx context.Context, t *domain.TokenRecord) error
	// DeactivateForEmployee marks every active record for (orgID, employeeID)
	// inactive, recording the rotation time. Used when assigning a new token.
	DeactivateForEmployee(ctx context.Context, orgID, employeeID string) error
}
