package domain

import "time"

// Credential is one registered authenticator for an employee. CredentialID and
// PublicKey are base64url-encoded. SignCount is the authenticator's reported
// signature counter; it must never decrease across successful authentications,
// a decrease indicates a cloned authenticator.
type Credential struct {
	ID           string
	OrgID        string
	EmployeeID   string
	CredentialID string
	PublicKey    string
	SignCount    uint32
	Transports   []string
	DeviceLabel  string
	Active       bool
	CreatedAt    time.Time
	LastUsedAt   *time.Time
}
