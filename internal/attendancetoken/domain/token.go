package domain

import "time"

// TokenRecord maps an attendance token digest to one employee within one
// organization. The raw token is never stored; resolution goes through the
// SHA-256 digest. At most one record per digest is active at a time; rotation
// leaves historical rows inactive.
type TokenRecord struct {
	ID          string
	OrgID       string
	EmployeeID  string
	TokenDigest string
	Active      bool
	CreatedAt   time.Time
	RotatedAt   *time.Time // nil while the token is the employee's current one
}
