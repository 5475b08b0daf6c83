package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/google/uuid"

	challengedomain "field-attendance/backend/internal/challenge/domain"
	credentialdomain "field-attendance/backend/internal/credential/domain"
)

// RegistrationOptions resolves the token and issues creation options for a new
// credential. Already-registered credentials go on the exclude list so the
// same authenticator cannot be enrolled twice.
func (s *Service) RegistrationOptions(ctx context.Context, rp RelyingParty, rawToken string) (*protocol.CredentialCreation, error) {
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
	user, err := newCeremonyUser(id, stored)
	if err != nil {
		return nil, err
	}

	var opts []webauthn.RegistrationOption
	if len(user.credentials) > 0 {
		opts = append(opts, webauthn.WithExclusions(webauthn.Credentials(user.credentials).CredentialDescriptors()))
	}
	creation, session, err := web.BeginRegistration(user, opts...)
	if err != nil {
		return nil, fmt.Errorf("begin registration: %w", err)
	}

	if err := s.storeChallenge(ctx, id, challengedomain.KindRegistration, session); err != nil {
		return nil, err
	}
	return creation, nil
}

// RegistrationVerify validates an attestation response against the latest
// unexpired registration challenge and persists the new credential. A failed
// cryptographic check returns Verified=false, not an error.
func (s *Service) RegistrationVerify(ctx context.Context, rp RelyingParty, rawToken string, response []byte, deviceLabel string) (*VerifyResult, error) {
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

	parsed, err := protocol.ParseCredentialCreationResponseBytes(response)
	if err != nil {
		return nil, invalidInputf("parse credential response: %v", err)
	}

	session, err := s.loadChallengeSession(ctx, id, challengedomain.KindRegistration)
	if err != nil {
		return nil, err
	}

	stored, err := s.credentials.ListActiveByEmployee(ctx, id.OrgID, id.EmployeeID)
	if err != nil {
		return nil, err
	}
	user, err := newCeremonyUser(id, stored)
	if err != nil {
		return nil, err
	}

	credential, err := web.CreateCredential(user, *session, parsed)
	if err != nil {
		s.audit.LogEvent(ctx, id.OrgID, id.EmployeeID, "registration_failed", "webauthn_credential", err.Error())
		return &VerifyResult{Verified: false}, nil
	}

	transports := make([]string, 0, len(credential.Transport))
	for _, t := range credential.Transport {
		transports = append(transports, string(t))
	}
	rec := &credentialdomain.Credential{
		ID:           uuid.New().String(),
		OrgID:        id.OrgID,
		EmployeeID:   id.EmployeeID,
		CredentialID: encodeCredentialID(credential.ID),
		PublicKey:    encodeCredentialID(credential.PublicKey),
		SignCount:    credential.Authenticator.SignCount,
		Transports:   transports,
		DeviceLabel:  deviceLabel,
		Active:       true,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.credentials.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, id.OrgID, id.EmployeeID, "registration_succeeded", "webauthn_credential", rec.CredentialID)
	return &VerifyResult{Verified: true, CredentialID: rec.CredentialID}, nil
}

// storeChallenge persists the ceremony session alongside its challenge value,
// scoped to the identity and kind. Verify reads the most recent unexpired row.
func (s *Service) storeChallenge(ctx context.Context, id *identity, kind challengedomain.Kind, session *webauthn.SessionData) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode ceremony session: %w", err)
	}
	now := s.now().UTC()
	return s.challenges.Create(ctx, &challengedomain.Challenge{
		ID:          uuid.New().String(),
		OrgID:       id.OrgID,
		EmployeeID:  id.EmployeeID,
		TokenDigest: id.TokenDigest,
		Kind:        kind,
		Value:       session.Challenge,
		SessionData: data,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.challengeTTL),
	})
}

// loadChallengeSession returns the decoded session for the most recent
// unexpired challenge of the given kind, or ErrChallengeExpired when none.
func (s *Service) loadChallengeSession(ctx context.Context, id *identity, kind challengedomain.Kind) (*webauthn.SessionData, error) {
	ch, err := s.challenges.LatestUnexpired(ctx, id.OrgID, id.EmployeeID, id.TokenDigest, kind, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, ErrChallengeExpired
	}
	var session webauthn.SessionData
	if err := json.Unmarshal(ch.SessionData, &session); err != nil {
		return nil, fmt.Errorf("decode ceremony session: %w", err)
	}
	return &session, nil
}
