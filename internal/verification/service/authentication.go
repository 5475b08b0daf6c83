package service

import (
	"context"
	"fmt"

	"github.com/go-webauthn/webauthn/protocol"

	challengedomain "field-attendance/backend/internal/challenge/domain"
)

// AuthenticationOptions resolves the token and issues assertion options whose
// allow list is the employee's active credentials.
func (s *Service) AuthenticationOptions(ctx context.Context, rp RelyingParty, rawToken string) (*protocol.CredentialAssertion, error) {
	id, err := s.resolveIdentity(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	web, err := s.relyingParty(rp)
	if err != nil {
		return nil, fmt.Errorf("configure relying party: %w", err)
	}

	stored, err := s.credentials.ListActiveByEmployee(ctx, id.OrgID, id.EmployeeID)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, invalidInputf("no registered credentials")
	}
	user, err := newCeremonyUser(id, stored)
	if err != nil {
		return nil, err
	}

	assertion, session, err := web.BeginLogin(user)
	if err != nil {
		return nil, fmt.Errorf("begin authentication: %w", err)
	}

	if err := s.storeChallenge(ctx, id, challengedomain.KindAuthentication, session); err != nil {
		return nil, err
	}
	return assertion, nil
}

// AuthenticationVerify validates an assertion response against the latest
// unexpired authentication challenge. An unknown credential id or a failed
// signature check returns Verified=false with no state mutated; a signature
// counter that does not advance is treated as a suspected cloned authenticator
// and also fails. Success persists the new counter and last-used time.
func (s *Service) AuthenticationVerify(ctx context.Context, rp RelyingParty, rawToken string, response []byte) (*VerifyResult, error) {
	id, err := s.resolveIdentity(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	if len(response) == 0 {
		return nil, invalidInputf("missing credential response")
	}
	web, err := s.relyingParty(rp)
	if err != nil {
		return nil, fmt.Errorf("configure relying party: %w", err)
	}

	parsed, err := protocol.ParseCredentialRequestResponseBytes(response)
	if err != nil {
		return nil, invalidInputf("parse credential response: %v", err)
	}

	// Challenge expiry is checked before the credential lookup: an expired
	// ceremony is reported as such even when the asserted credential is
	// unknown, so the client restarts from the options step.
	session, err := s.loadChallengeSession(ctx, id, challengedomain.KindAuthentication)
	if err != nil {
		return nil, err
	}

	credID := encodeCredentialID(parsed.RawID)
	known, err := s.credentials.GetActiveByCredentialID(ctx, id.OrgID, id.EmployeeID, credID)
	if err != nil {
		return nil, err
	}
	if known == nil {
		s.audit.LogEvent(ctx, id.OrgID, id.EmployeeID, "authentication_failed", "webauthn_credential", "unknown credential "+credID)
		return &VerifyResult{Verified: false}, nil
	}

	stored, err := s.credentials.ListActiveByEmployee(ctx, id.OrgID, id.EmployeeID)
	if err != nil {
		return nil, err
	}
	user, err := newCeremonyUser(id, stored)
	if err != nil {
		return nil, err
	}

	validated, err := web.ValidateLogin(user, *session, parsed)
	if err != nil {
		s.audit.LogEvent(ctx, id.OrgID, id.EmployeeID, "authentication_failed", "webauthn_credential", err.Error())
		return &VerifyResult{Verified: false}, nil
	}
	if validated.Authenticator.CloneWarning {
		s.audit.LogEvent(ctx, id.OrgID, id.EmployeeID, "counter_regression", "webauthn_credential", credID)
		return &VerifyResult{Verified: false}, nil
	}

	updated, err := s.credentials.UpdateSignCount(ctx, id.OrgID, id.EmployeeID, credID, validated.Authenticator.SignCount, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if !updated {
		// A concurrent authentication advanced the counter past this one;
		// accepting the stale assertion would undo the regression guard.
		s.audit.LogEvent(ctx, id.OrgID, id.EmployeeID, "counter_regression", "webauthn_credential", credID)
		return &VerifyResult{Verified: false}, nil
	}

	s.audit.LogEvent(ctx, id.OrgID, id.EmployeeID, "authentication_succeeded", "webauthn_credential", credID)
	return &VerifyResult{Verified: true, CredentialID: credID}, nil
}
