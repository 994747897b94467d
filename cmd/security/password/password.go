package password

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt work factor used when callers do not
	// override it.
	DefaultCost = bcrypt.DefaultCost

	// maxPasswordBytes is bcrypt's hard input limit. Longer inputs are
	// rejected rather than silently truncated.
	maxPasswordBytes = 72
)

// Hash returns a bcrypt hash of plain using DefaultCost.
// The salt is generated per call and embedded in the output.
func Hash(plain string) (string, error) {
	return HashWithCost(plain, DefaultCost)
}

// HashWithCost returns a bcrypt hash of plain with an explicit cost.
func HashWithCost(plain string, cost int) (string, error) {
	if len(plain) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", ErrInvalidCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches the encoded bcrypt hash.
// Comparison runs in constant time regardless of where a mismatch occurs.
func Verify(plain, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plain)) == nil
}
