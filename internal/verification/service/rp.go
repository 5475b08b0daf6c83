package service

import (
	"net/url"
	"strings"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
)

// RelyingParty identifies the WebAuthn relying party for one request: the
// rpId (hostname) and the full origin the browser reported. Credentials are
// cryptographically bound to the rpId, so it is always derived from the
// request's Origin header, never taken from the client payload.
type RelyingParty struct {
	ID     string
	Origin string
}

// RelyingPartyFromOrigin derives the relying party from an Origin header
// value. Fails with ErrInvalidInput when the origin is absent or has no
// hostname: accepting a missing or forged origin would let a phishing site
// run ceremonies on behalf of a legitimate RP.
func RelyingPartyFromOrigin(origin string) (RelyingParty, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return RelyingParty{}, invalidInputf("missing Origin header")
	}
	u, err := url.Parse(origin)
	if err != nil || u.Hostname() == "" {
		return RelyingParty{}, invalidInputf("origin %q has no hostname", origin)
	}
	return RelyingParty{ID: u.Hostname(), Origin: origin}, nil
}

// relyingParty builds a per-request WebAuthn instance bound to the derived
// rpId and origin. Ceremony timeouts match the challenge TTL so the library's
// session expiry and the stored row expiry agree.
func (s *Service) relyingParty(rp RelyingParty) (*webauthn.WebAuthn, error) {
	timeout := webauthn.TimeoutConfig{
		Enforce:    true,
		Timeout:    s.challengeTTL,
		TimeoutUVD: s.challengeTTL,
	}
	return webauthn.New(&webauthn.Config{
		RPID:                  rp.ID,
		RPDisplayName:         s.rpDisplayName,
		RPOrigins:             []string{rp.Origin},
		AttestationPreference: protocol.PreferNoAttestation,
		AuthenticatorSelection: protocol.AuthenticatorSelection{
			ResidentKey:      protocol.ResidentKeyRequirementPreferred,
			UserVerification: protocol.VerificationRequired,
		},
		Timeouts: webauthn.TimeoutsConfig{
			Login:        timeout,
			Registration: timeout,
		},
	})
}
