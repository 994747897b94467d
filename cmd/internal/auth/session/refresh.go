package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todo/cmd/internal/docstore"
	"todo/cmd/security/token"
)

// RefreshTokenStore persists opaque refresh tokens in the docstore.
//
// The plain token is returned to the caller exactly once; only its
// SHA-256 hex digest is stored. Lookup resolves a presented plain token
// back to the owning identifier.
type RefreshTokenStore struct {
	store docstore.Store
}

// NewRefreshTokenStore constructs a RefreshTokenStore.
func NewRefreshTokenStore(store docstore.Store) *RefreshTokenStore {
	return &RefreshTokenStore{store: store}
}

// Issue generates, persists, and returns a fresh opaque token for owner.
//
// Each login issues a new record; prior records stay live. A hash
// collision (astronomically unlikely at 256 bits of entropy) is an
// internal error, never a silent overwrite.
func (s *RefreshTokenStore) Issue(ctx context.Context, owner string, now time.Time) (string, error) {
	plain, err := token.NewOpaqueToken(token.MinOpaqueBytes)
	if err != nil {
		return "", err
	}

	_, err = s.store.InsertOne(ctx, docstore.RefreshTokens, docstore.Document{
		"tokenHash": token.HashSHA256Hex(plain),
		"owner":     owner,
		"createdAt": now.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		if errors.Is(err, docstore.ErrDuplicateKey) {
			return "", fmt.Errorf("refresh token collision: %w", err)
		}
		return "", err
	}
	return plain, nil
}

// Lookup resolves a plain refresh token to its owner, or ErrTokenNotFound.
func (s *RefreshTokenStore) Lookup(ctx context.Context, plain string) (string, error) {
	doc, err := s.store.FindOne(ctx, docstore.RefreshTokens, docstore.Filter{
		"tokenHash": token.HashSHA256Hex(plain),
	})
	if err != nil {
		if errors.Is(err, docstore.ErrNoDocuments) {
			return "", ErrTokenNotFound
		}
		return "", err
	}

	owner, _ := doc["owner"].(string)
	if owner == "" {
		return "", ErrTokenNotFound
	}
	return owner, nil
}
