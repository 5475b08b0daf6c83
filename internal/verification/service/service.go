package service

import (
	"context"
	"strings"
	"time"

	attendancetokenrepo "field-attendance/backend/internal/attendancetoken/repository"
	"field-attendance/backend/internal/audit"
	challengerepo "field-attendance/backend/internal/challenge/repository"
	credentialrepo "field-attendance/backend/internal/credential/repository"
	employeedomain "field-attendance/backend/internal/employee/domain"
	employeerepo "field-attendance/backend/internal/employee/repository"
	"field-attendance/backend/internal/security"
)

// DefaultTokenMinLength is the minimum accepted attendance token length.
// Shorter values are rejected before any store lookup.
const DefaultTokenMinLength = 16

// Service implements the verification protocol: identity resolution from a
// bearer attendance token, WebAuthn registration and authentication
// ceremonies, the status query, and the manual fallback code check.
type Service struct {
	tokens      attendancetokenrepo.Repository
	employees   employeerepo.Repository
	challenges  challengerepo.Repository
	credentials credentialrepo.Repository
	hasher      *security.Hasher
	audit       audit.AuditLogger

	rpDisplayName  string
	challengeTTL   time.Duration
	tokenMinLength int

	now func() time.Time
}

// Deps carries the collaborators for NewService.
type Deps struct {
	Tokens      attendancetokenrepo.Repository
	Employees   employeerepo.Repository
	Challenges  challengerepo.Repository
	Credentials credentialrepo.Repository
	Hasher      *security.Hasher
	Audit       audit.AuditLogger

	RPDisplayName  string
	ChallengeTTL   time.Duration
	TokenMinLength int
}

// NewService wires a Service. Zero-valued options fall back to defaults;
// a nil Audit falls back to a no-op logger.
func NewService(d Deps) *Service {
	if d.ChallengeTTL <= 0 {
		d.ChallengeTTL = challengerepo.DefaultTTL
	}
	if d.TokenMinLength <= 0 {
		d.TokenMinLength = DefaultTokenMinLength
	}
	if d.RPDisplayName == "" {
		d.RPDisplayName = "Attendance Check-In"
	}
	if d.Audit == nil {
		d.Audit = audit.Nop()
	}
	return &Service{
		tokens:         d.Tokens,
		employees:      d.Employees,
		challenges:     d.Challenges,
		credentials:    d.Credentials,
		hasher:         d.Hasher,
		audit:          d.Audit,
		rpDisplayName:  d.RPDisplayName,
		challengeTTL:   d.ChallengeTTL,
		tokenMinLength: d.TokenMinLength,
		now:            time.Now,
	}
}

// identity is the resolved subject of a request: one employee in one org,
// reached through one token digest.
type identity struct {
	OrgID       string
	EmployeeID  string
	DisplayName string
	TokenDigest string
	Employee    *employeedomain.Employee
}

// resolveIdentity maps a raw bearer token to an active employee. The length
// check runs before any digesting or lookup so obviously bad input never
// touches the store. Failed resolutions are audited under the sentinel org.
func (s *Service) resolveIdentity(ctx context.Context, rawToken string) (*identity, error) {
	token := strings.TrimSpace(rawToken)
	if len(token) < s.tokenMinLength {
		return nil, invalidInputf("token shorter than %d characters", s.tokenMinLength)
	}

	digest := security.DigestToken(token)
	rec, err := s.tokens.GetActiveByDigest(ctx, digest)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		s.audit.LogEvent(ctx, "", "", "token_rejected", "attendance_token", "no active token for digest")
		return nil, ErrUnauthorized
	}

	emp, err := s.employees.GetByOrgAndID(ctx, rec.OrgID, rec.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil || emp.Status != employeedomain.EmployeeStatusActive {
		s.audit.LogEvent(ctx, rec.OrgID, rec.EmployeeID, "token_rejected", "attendance_token", "employee missing or disabled")
		return nil, ErrUnauthorized
	}

	return &identity{
		OrgID:       rec.OrgID,
		EmployeeID:  rec.EmployeeID,
		DisplayName: emp.DisplayName,
		TokenDigest: digest,
		Employee:    emp,
	}, nil
}
