package domain

import "time"

// AuditLog is one security-relevant event (ceremony outcome, token resolution
// failure, suspected cloned authenticator).
type AuditLog struct {
	ID         string
	OrgID      string
	EmployeeID string
	Action     string
	Resource   string
	IP         string
	Metadata   string
	CreatedAt  time.Time
}
