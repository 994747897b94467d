// Package docstore is the document-store boundary of the todo service.
//
// Collections hold schemaless JSON documents addressed by insert/find/
// update/delete primitives. Uniqueness is a storage-enforced invariant:
// callers may check-then-insert, but the store's unique keys are the true
// guard against races, surfaced as ErrDuplicateKey.
//
// Two implementations exist: Postgres (JSONB tables, one per collection)
// and an in-memory store used for dev mode and tests.
package docstore

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
)

// Collection names known to the service. The Postgres tables behind them
// are created by cmd/internal/migrations.
const (
	Credentials   = "credentials"
	RefreshTokens = "refresh_tokens"
	Todos         = "todos"
)

// Document is a single schemaless record. Every stored document carries a
// string "id" field; InsertOne assigns one when absent.
type Document = map[string]any

// Filter matches documents whose fields equal every filter entry.
type Filter = map[string]any

// Public, stable errors for callers.
var (
	// ErrNoDocuments is returned when a filter matches nothing.
	ErrNoDocuments = errors.New("no matching documents")

	// ErrDuplicateKey is returned when an insert violates a unique key.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnknownCollection is returned for collections outside the fixed
	// set above.
	ErrUnknownCollection = errors.New("unknown collection")
)

// Store is the persistence boundary consumed by the rest of the service.
//
// Implementations must be safe for concurrent use; no caller caches
// results across requests.
type Store interface {
	// InsertOne stores doc and returns its id. A unique-key violation is
	// reported as ErrDuplicateKey, never as a silent overwrite.
	InsertOne(ctx context.Context, collection string, doc Document) (id string, err error)

	// FindOne returns the first document matching filter, or ErrNoDocuments.
	FindOne(ctx context.Context, collection string, filter Filter) (Document, error)

	// FindAll returns every document matching filter, oldest first.
	FindAll(ctx context.Context, collection string, filter Filter) ([]Document, error)

	// UpdateOne merges patch into the first document matching filter.
	// Returns ErrNoDocuments when nothing matched.
	UpdateOne(ctx context.Context, collection string, filter Filter, patch Document) error

	// DeleteOne removes the first document matching filter.
	// Returns ErrNoDocuments when nothing matched.
	DeleteOne(ctx context.Context, collection string, filter Filter) error
}

// NewID returns a new ULID string (26 chars) for document ids.
// ULIDs are lexicographically sortable, so insertion order survives id sort.
func NewID(now time.Time) (string, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
