package token

import "errors"

// Public, stable errors for callers.
var (
	// ErrInvalidToken covers malformed encoding, signature mismatch, and
	// expiry. Callers must not reveal which check failed; the underlying
	// cause is wrapped for logging only.
	ErrInvalidToken = errors.New("invalid token")

	ErrSecretTooShort = errors.New("signing secret too short")
	ErrInvalidTTL     = errors.New("invalid token ttl")
	ErrEntropyTooLow  = errors.New("opaque token entropy too low")
)
