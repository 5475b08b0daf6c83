package domain

import "time"

// Kind distinguishes the two ceremony challenge types.
type Kind string

const (
	KindRegistration   Kind = "registration"
	KindAuthentication Kind = "authentication"
)

// Challenge is one issued WebAuthn challenge, scoped to (org, employee, token
// digest, kind). The verify step reads the most recently created unexpired row
// for that scope; rows are not consumed on verify (see DESIGN.md).
type Challenge struct {
	ID          string
	OrgID       string
	EmployeeID  string
	TokenDigest string
	Kind        Kind
	Value       string // base64url challenge embedded in the ceremony options
	SessionData []byte // serialized ceremony session used by verification
	CreatedAt   time.Time
	ExpiresAt   time.Time
}
