package session

import (
	"context"
	"errors"
	"time"

	"todo/cmd/internal/docstore"
)

// Credential is the persisted identifier -> password hash record.
// The hash is opaque; it is only ever checked via the password package.
type Credential struct {
	ID           string
	Email        string
	PasswordHash string
}

// CredentialStore persists credentials in the docstore.
//
// Records are created on registration and never mutated or deleted; there
// is no password-change flow.
type CredentialStore struct {
	store docstore.Store
}

// NewCredentialStore constructs a CredentialStore.
func NewCredentialStore(store docstore.Store) *CredentialStore {
	return &CredentialStore{store: store}
}

// Create inserts a credential record for email.
//
// The docstore's unique key on email is the true guard against the
// registration race: a duplicate-key failure maps to ErrAlreadyExists
// even when a concurrent registration won after any pre-check.
func (s *CredentialStore) Create(ctx context.Context, email, passwordHash string, now time.Time) error {
	_, err := s.store.InsertOne(ctx, docstore.Credentials, docstore.Document{
		"email":        email,
		"passwordHash": passwordHash,
		"createdAt":    now.UTC().Format(time.RFC3339Nano),
	})
	if errors.Is(err, docstore.ErrDuplicateKey) {
		return ErrAlreadyExists
	}
	return err
}

// Get loads the credential record for email, or ErrNoCredential.
func (s *CredentialStore) Get(ctx context.Context, email string) (Credential, error) {
	doc, err := s.store.FindOne(ctx, docstore.Credentials, docstore.Filter{"email": email})
	if err != nil {
		if errors.Is(err, docstore.ErrNoDocuments) {
			return Credential{}, ErrNoCredential
		}
		return Credential{}, err
	}

	id, _ := doc["id"].(string)
	hash, _ := doc["passwordHash"].(string)
	return Credential{ID: id, Email: email, PasswordHash: hash}, nil
}
