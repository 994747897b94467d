package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// MinSecretBytes is the minimum accepted HS256 secret length.
	MinSecretBytes = 32

	// DefaultAccessTTL is the access token lifetime when callers do not
	// override it.
	DefaultAccessTTL = 15 * time.Minute
)

// Manager issues and verifies short-lived access tokens.
//
// The secret is immutable after construction and shared process-wide;
// no locking is required for concurrent use.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewManager constructs a Manager from an explicit secret.
// The secret must carry at least MinSecretBytes bytes.
func NewManager(secret []byte, issuer string, ttl time.Duration) (*Manager, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrSecretTooShort
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	if issuer == "" {
		issuer = "todo"
	}
	// Copy to keep the manager immune to caller mutation.
	s := make([]byte, len(secret))
	copy(s, secret)

	return &Manager{secret: s, issuer: issuer, ttl: ttl}, nil
}

// TTL returns the configured access token lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue mints a signed access token for subject with expiry now+TTL.
func (m *Manager) Issue(subject string, now time.Time) (string, time.Time, error) {
	exp := now.Add(m.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    m.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify checks a token at the given instant and returns its subject.
//
// Malformed encoding, wrong algorithm, signature mismatch, and expiry all
// collapse into ErrInvalidToken. The returned error wraps the underlying
// cause so it can be logged, but callers must surface only the sentinel.
func (m *Manager) Verify(tokenString string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
