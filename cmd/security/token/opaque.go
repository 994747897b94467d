package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// MinOpaqueBytes is the minimum entropy for opaque tokens (256 bits).
const MinOpaqueBytes = 32

// NewOpaqueToken returns a URL-safe random token with nBytes of entropy.
// It refuses to generate tokens below MinOpaqueBytes.
func NewOpaqueToken(nBytes int) (string, error) {
	if nBytes < MinOpaqueBytes {
		return "", ErrEntropyTooLow
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	// URL-safe, no padding.
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashSHA256Hex returns a SHA-256 hex digest of s (64 hex chars).
// Opaque tokens are stored only in this form.
func HashSHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
