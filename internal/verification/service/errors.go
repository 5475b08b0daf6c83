package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for the verification service; the handler maps them to HTTP
// statuses. Cryptographic ceremony failure is not an error: it is a normal
// VerifyResult with Verified=false, so callers can distinguish "fix the
// request" from "the user failed to prove possession".
var (
	// ErrInvalidInput covers malformed actions, tokens, origins, and bodies.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized means the token digest resolved to no active record.
	ErrUnauthorized = errors.New("attendance token not recognized")
	// ErrChallengeExpired means no unexpired challenge exists for the identity
	// and ceremony kind; the client must restart from the options step.
	ErrChallengeExpired = errors.New("challenge expired or missing")
)

func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
