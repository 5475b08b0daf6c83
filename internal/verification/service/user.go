package service

import (
	"encoding/base64"
	"fmt"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"field-attendance/backend/internal/credential/domain"
)

// ceremonyUser adapts a resolved employee and their stored credentials to the
// webauthn.User interface for the duration of one ceremony call.
type ceremonyUser struct {
	id          string
	displayName string
	credentials []webauthn.Credential
}

func (u *ceremonyUser) WebAuthnID() []byte { return []byte(u.id) }

func (u *ceremonyUser) WebAuthnName() string { return u.displayName }

func (u *ceremonyUser) WebAuthnDisplayName() string { return u.displayName }

func (u *ceremonyUser) WebAuthnIcon() string { return "" }

func (u *ceremonyUser) WebAuthnCredentials() []webauthn.Credential { return u.credentials }

func newCeremonyUser(id *identity, stored []*domain.Credential) (*ceremonyUser, error) {
	creds, err := decodeStoredCredentials(stored)
	if err != nil {
		return nil, err
	}
	return &ceremonyUser{
		id:          id.EmployeeID,
		displayName: id.DisplayName,
		credentials: creds,
	}, nil
}

func decodeStoredCredentials(stored []*domain.Credential) ([]webauthn.Credential, error) {
	out := make([]webauthn.Credential, 0, len(stored))
	for _, c := range stored {
		id, err := base64.RawURLEncoding.DecodeString(c.CredentialID)
		if err != nil {
			return nil, fmt.Errorf("decode credential id %q: %w", c.CredentialID, err)
		}
		key, err := base64.RawURLEncoding.DecodeString(c.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("decode public key for credential %q: %w", c.CredentialID, err)
		}
		transports := make([]protocol.AuthenticatorTransport, 0, len(c.Transports))
		for _, t := range c.Transports {
			transports = append(transports, protocol.AuthenticatorTransport(t))
		}
		out = append(out, webauthn.Credential{
			ID:        id,
			PublicKey: key,
			Transport: transports,
			Authenticator: webauthn.Authenticator{
				SignCount: c.SignCount,
			},
		})
	}
	return out, nil
}

func encodeCredentialID(raw []byte) string {
	return base64.RawURLEncoding.EncodeToString(raw)
}
