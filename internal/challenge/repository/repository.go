package repository

import (
	"context"
	"time"

	"field-attendance/backend/internal/challenge/domain"
)

// Repository defines persistence for WebAuthn challenges.
type Repository interface {
	Create(ctx context.Context, c *domain.Challenge) error
	// LatestUnexpired returns the most recently created challenge for the
	// identity and kind whose expiry is after now, or nil if none exists.
	// Latest-wins means concurrent ceremonies of one kind per token are
	// unsupported; the earlier challenge becomes unrecoverable.
	LatestUnexpired(ctx context.Context, orgID, employeeID, tokenDigest string, kind domain.Kind, now time.Time) (*domain.Challenge, error)
}

// DefaultTTL is the challenge expiry window.
const DefaultTTL = 10 * time.Minute
