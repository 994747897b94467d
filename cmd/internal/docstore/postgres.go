package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store over Postgres JSONB tables.
//
// One table per collection, each with an id column kept equal to the
// document's "id" field and a jsonb doc column. Filters translate to
// jsonb containment (doc @> filter), so unique indexes on extracted
// fields enforce the collection invariants server-side.
//
// The pgx pool is owned by the caller; this store must not close it.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// collectionTables is the fixed collection -> table mapping. Identifiers
// never come from user input.
var collectionTables = map[string]string{
	Credentials:   "credentials",
	RefreshTokens: "refresh_tokens",
	Todos:         "todos",
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("docstore: nil pool")
	}
	return &PostgresStore{pool: pool}, nil
}

// InsertOne stores doc, assigning an id when absent.
func (s *PostgresStore) InsertOne(ctx context.Context, collection string, doc Document) (string, error) {
	table, err := tableFor(collection)
	if err != nil {
		return "", err
	}

	id, ok := doc["id"].(string)
	if !ok || id == "" {
		id, err = NewID(time.Now().UTC())
		if err != nil {
			return "", err
		}
		doc["id"] = id
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("docstore: marshal doc: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+table+` (id, doc) VALUES ($1, $2)`,
		id, raw,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return "", fmt.Errorf("%w: %s", ErrDuplicateKey, constraint)
		}
		return "", err
	}
	return id, nil
}

// FindOne returns the first matching document.
func (s *PostgresStore) FindOne(ctx context.Context, collection string, filter Filter) (Document, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}
	raw, err := marshalFilter(filter)
	if err != nil {
		return nil, err
	}

	var docRaw []byte
	err = s.pool.QueryRow(ctx,
		`SELECT doc FROM `+table+` WHERE doc @> $1 ORDER BY id LIMIT 1`,
		raw,
	).Scan(&docRaw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoDocuments
		}
		return nil, err
	}
	return unmarshalDoc(docRaw)
}

// FindAll returns every matching document ordered by id (insertion order).
func (s *PostgresStore) FindAll(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}
	raw, err := marshalFilter(filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT doc FROM `+table+` WHERE doc @> $1 ORDER BY id`,
		raw,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var docRaw []byte
		if err := rows.Scan(&docRaw); err != nil {
			return nil, err
		}
		doc, err := unmarshalDoc(docRaw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// UpdateOne merges patch into the first matching document.
func (s *PostgresStore) UpdateOne(ctx context.Context, collection string, filter Filter, patch Document) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}
	filterRaw, err := marshalFilter(filter)
	if err != nil {
		return err
	}
	patchRaw, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("docstore: marshal patch: %w", err)
	}

	ct, err := s.pool.Exec(ctx,
		`UPDATE `+table+` SET doc = doc || $2
		  WHERE id = (SELECT id FROM `+table+` WHERE doc @> $1 ORDER BY id LIMIT 1)`,
		filterRaw, patchRaw,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNoDocuments
	}
	return nil
}

// DeleteOne removes the first matching document.
func (s *PostgresStore) DeleteOne(ctx context.Context, collection string, filter Filter) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}
	raw, err := marshalFilter(filter)
	if err != nil {
		return err
	}

	ct, err := s.pool.Exec(ctx,
		`DELETE FROM `+table+`
		  WHERE id = (SELECT id FROM `+table+` WHERE doc @> $1 ORDER BY id LIMIT 1)`,
		raw,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNoDocuments
	}
	return nil
}

// ---- helpers ----

func tableFor(collection string) (string, error) {
	table, ok := collectionTables[collection]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	return table, nil
}

func marshalFilter(filter Filter) ([]byte, error) {
	if filter == nil {
		filter = Filter{}
	}
	raw, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("docstore: marshal filter: %w", err)
	}
	return raw, nil
}

func unmarshalDoc(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("docstore: unmarshal doc: %w", err)
	}
	return doc, nil
}

func uniqueViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	if pgErr.Code != pgerrcode.UniqueViolation {
		return "", false
	}
	return pgErr.ConstraintName, true
}
