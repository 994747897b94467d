package docstore

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"sync"
	"time"
)

// MemoryStore implements Store in process memory.
//
// It mirrors the Postgres semantics, including unique-key enforcement, so
// the service can run without a database (dev mode) and tests can exercise
// the full stack without network I/O.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Document
	uniqueKeys  map[string][]string
}

// NewMemoryStore constructs a MemoryStore with the same collections and
// unique keys the migrations create in Postgres.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: map[string][]Document{
			Credentials:   nil,
			RefreshTokens: nil,
			Todos:         nil,
		},
		uniqueKeys: map[string][]string{
			Credentials:   {"email"},
			RefreshTokens: {"tokenHash"},
		},
	}
}

// InsertOne stores a copy of doc, assigning an id when absent.
func (s *MemoryStore) InsertOne(_ context.Context, collection string, doc Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	id, okID := doc["id"].(string)
	if !okID || id == "" {
		var err error
		id, err = NewID(time.Now().UTC())
		if err != nil {
			return "", err
		}
		doc["id"] = id
	}

	for _, key := range s.uniqueKeys[collection] {
		val, present := doc[key]
		if !present {
			continue
		}
		for _, existing := range docs {
			if fieldEqual(existing[key], val) {
				return "", fmt.Errorf("%w: %s.%s", ErrDuplicateKey, collection, key)
			}
		}
	}

	s.collections[collection] = append(docs, maps.Clone(doc))
	return id, nil
}

// FindOne returns a copy of the first matching document.
func (s *MemoryStore) FindOne(_ context.Context, collection string, filter Filter) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	for _, doc := range docs {
		if matches(doc, filter) {
			return maps.Clone(doc), nil
		}
	}
	return nil, ErrNoDocuments
}

// FindAll returns copies of every matching document in insertion order.
func (s *MemoryStore) FindAll(_ context.Context, collection string, filter Filter) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	var out []Document
	for _, doc := range docs {
		if matches(doc, filter) {
			out = append(out, maps.Clone(doc))
		}
	}
	return out, nil
}

// UpdateOne merges patch into the first matching document.
func (s *MemoryStore) UpdateOne(_ context.Context, collection string, filter Filter, patch Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	for _, doc := range docs {
		if matches(doc, filter) {
			for k, v := range patch {
				doc[k] = v
			}
			return nil
		}
	}
	return ErrNoDocuments
}

// DeleteOne removes the first matching document.
func (s *MemoryStore) DeleteOne(_ context.Context, collection string, filter Filter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	for i, doc := range docs {
		if matches(doc, filter) {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return nil
		}
	}
	return ErrNoDocuments
}

func matches(doc Document, filter Filter) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !fieldEqual(got, want) {
			return false
		}
	}
	return true
}

// fieldEqual compares field values the way JSON round-trips would:
// numeric values compare as float64 regardless of the Go type stored.
func fieldEqual(a, b any) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
