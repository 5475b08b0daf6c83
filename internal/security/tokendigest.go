package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestToken returns a SHA-256 digest of the raw attendance token, hex-encoded.
// Only the digest is ever stored or used for lookups; the raw token is never persisted.
func DigestToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
