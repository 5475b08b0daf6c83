package repository

import (
	"context"
	"time"

	"field-attendance/backend/internal/credential/domain"
)

// Repository defines persistence for WebAuthn credentials. All lookups are
// scoped by (orgID, employeeID) to prevent cross-tenant leakage.
type Repository interface {
	ListActiveByEmployee(ctx context.Context, orgID, employeeID string) ([]*domain.Credential, error)
	// GetActiveByCredentialID returns the active credential with the given
	// base64url credential id, or nil if not found for this employee.
	GetActiveByCredentialID(ctx context.Context, orgID, employeeID, credentialID string) (*domain.Credential, error)
	Create(ctx context.Context, c *domain.Credential) error
	// UpdateSignCount sets the signature counter and last-used time, guarded so
	// the row is only written when newCount is not below the stored counter
	// (equality covers authenticators that always report zero). Returns true
	// when a row was updated. The guard keeps two concurrent authentications
	// from both passing a stale-counter comparison.
	UpdateSignCount(ctx context.Context, orgID, employeeID, credentialID string, newCount uint32, usedAt time.Time) (bool, error)
}
