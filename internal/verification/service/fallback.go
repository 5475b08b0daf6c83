package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// FallbackVerify checks a manually entered code against the bcrypt hash on
// the employee row. Employees without an assigned code always fail. A
// mismatch is a Verified=false result, not an error.
func (s *Service) FallbackVerify(ctx context.Context, rawToken, code string) (*VerifyResult, error) {
	id, err := s.resolveIdentity(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	if code == "" {
		return nil, invalidInputf("missing fallback code")
	}
	if s.hasher == nil || id.Employee.FallbackCodeHash == "" {
		s.audit.LogEvent(ctx, id.OrgID, id.EmployeeID, "fallback_failed", "fallback_code", "no code assigned")
		return &VerifyResult{Verified: false}, nil
	}

	if err := s.hasher.Compare(id.Employee.FallbackCodeHash, []byte(code)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.audit.LogEvent(ctx, id.OrgID, id.EmployeeID, "fallback_failed", "fallback_code", "code mismatch")
			return &VerifyResult{Verified: false}, nil
		}
		return nil, err
	}

	s.audit.LogEvent(ctx, id.OrgID, id.EmployeeID, "fallback_succeeded", "fallback_code", "")
	return &VerifyResult{Verified: true}, nil
}
