package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"todo/cmd/internal/docstore"
	"todo/cmd/security/password"
	"todo/cmd/security/token"
)

// maxTokenLen bounds inbound opaque tokens to avoid pathological inputs.
const maxTokenLen = 4096

// Issued is the result of a successful login: one short-lived access
// token and one opaque refresh token.
type Issued struct {
	AccessToken  string
	AccessExp    time.Time
	RefreshToken string
}

// Service implements the high-level session operations: registration,
// password login, and refresh-token redemption.
//
// It is the only component with multi-step business logic; the stores and
// the token manager stay single-purpose.
type Service struct {
	creds   *CredentialStore
	refresh *RefreshTokenStore
	tokens  *token.Manager

	// dummyHash is verified on the unknown-user login path so that both
	// login failure cases take comparable time.
	dummyHash string
}

// NewService constructs a Service over the given docstore and token manager.
func NewService(store docstore.Store, tokens *token.Manager) (*Service, error) {
	if store == nil {
		return nil, errors.New("session: nil store")
	}
	if tokens == nil {
		return nil, errors.New("session: nil token manager")
	}

	dummy, err := password.Hash("dummy-password-for-timing-only")
	if err != nil {
		return nil, err
	}

	return &Service{
		creds:     NewCredentialStore(store),
		refresh:   NewRefreshTokenStore(store),
		tokens:    tokens,
		dummyHash: dummy,
	}, nil
}

// Register creates a credential record for email.
//
// Fails with ErrInvalidInput on empty fields (before any storage call)
// and ErrAlreadyExists when a record is already present. No secret is
// returned; the caller must log in separately.
func (s *Service) Register(ctx context.Context, email, plaintext string, now time.Time) error {
	email = strings.TrimSpace(email)
	if email == "" || plaintext == "" {
		return ErrInvalidInput
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		if errors.Is(err, password.ErrPasswordTooLong) {
			return ErrInvalidInput
		}
		return err
	}

	return s.creds.Create(ctx, email, hash, now)
}

// Login verifies email/plaintext and, on success, issues one access token
// and one refresh token.
//
// Unknown identifier and wrong password both fail with the identical
// ErrInvalidCredentials; a dummy hash verification runs on the
// unknown-user path to keep the two failure latencies comparable.
func (s *Service) Login(ctx context.Context, email, plaintext string, now time.Time) (Issued, error) {
	email = strings.TrimSpace(email)
	if email == "" || plaintext == "" {
		return Issued{}, ErrInvalidInput
	}

	cred, err := s.creds.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNoCredential) {
			password.Verify(plaintext, s.dummyHash)
			return Issued{}, ErrInvalidCredentials
		}
		return Issued{}, err
	}

	if !password.Verify(plaintext, cred.PasswordHash) {
		return Issued{}, ErrInvalidCredentials
	}

	accessToken, accessExp, err := s.tokens.Issue(email, now)
	if err != nil {
		return Issued{}, err
	}

	refreshToken, err := s.refresh.Issue(ctx, email, now)
	if err != nil {
		return Issued{}, err
	}

	return Issued{
		AccessToken:  accessToken,
		AccessExp:    accessExp,
		RefreshToken: refreshToken,
	}, nil
}

// Redeem exchanges a refresh token for a new access token.
//
// Unknown tokens fail with ErrTokenNotFound. Redemption does not rotate
// or invalidate the record; the refresh token stays usable.
func (s *Service) Redeem(ctx context.Context, refreshToken string, now time.Time) (string, time.Time, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" || len(refreshToken) > maxTokenLen {
		return "", time.Time{}, ErrTokenNotFound
	}

	owner, err := s.refresh.Lookup(ctx, refreshToken)
	if err != nil {
		return "", time.Time{}, err
	}

	return s.tokens.Issue(owner, now)
}
