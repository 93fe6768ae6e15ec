package tablebase

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrNotFound is returned when no statistics exist for a signature.
var ErrNotFound = errors.New("endgame not found")

// ErrDuplicateSignature is returned by Import when two keys of one document
// normalize to the same endgame.
var ErrDuplicateSignature = errors.New("duplicate endgame signature")

const statsSchema = `
CREATE TABLE IF NOT EXISTS endgame_stats (
    signature     TEXT PRIMARY KEY,
    payload       TEXT NOT NULL,
    imported_at   DATETIME NOT NULL
);
`

// SetupSchema creates the tables used by Store.
func SetupSchema(db *sql.DB) error {
	_, err := db.Exec(statsSchema)
	return err
}

// Store persists one JSON statistics document per endgame.
// It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store using db. SetupSchema must have been called.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Import reads a JSON object mapping signatures to statistics documents and
// upserts every entry in a single transaction. Keys are normalized before
// they are stored and must be distinct after normalization. It returns the
// number of imported endgames.
func (s *Store) Import(ctx context.Context, r io.Reader) (int, error) {
	var entries map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return 0, fmt.Errorf("failed to decode stats: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	now := time.Now().UTC()
	seen := make(map[string]string, len(entries))
	for key, payload := range entries {
		sig, err := NormalizeSignature(key)
		if err != nil {
			return 0, err
		}
		if prev, ok := seen[sig]; ok {
			return 0, fmt.Errorf("%w: %s and %s", ErrDuplicateSignature, prev, key)
		}
		seen[sig] = key
		var compact bytes.Buffer
		if err = json.Compact(&compact, payload); err != nil {
			return 0, fmt.Errorf("invalid stats for %s: %w", sig, err)
		}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO endgame_stats (signature, payload, imported_at) VALUES (?, ?, ?)
            ON CONFLICT(signature) DO UPDATE SET payload = excluded.payload, imported_at = excluded.imported_at
        `, sig, compact.String(), now)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert stats for %s: %w", sig, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit stats import: %w", err)
	}
	return len(seen), nil
}

// Get returns the statistics document of a normalized signature.
func (s *Store) Get(ctx context.Context, signature string) (json.RawMessage, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM endgame_stats WHERE signature = ?", signature).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, signature)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query stats for %s: %w", signature, err)
	}
	return json.RawMessage(payload), nil
}

// All returns every statistics document as one JSON object keyed by
// signature, in signature order.
func (s *Store) All(ctx context.Context) (json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT signature, payload FROM endgame_stats ORDER BY signature")
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for rows.Next() {
		var sig, payload string
		if err = rows.Scan(&sig, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, _ := json.Marshal(sig)
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(payload)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stats: %w", err)
	}
	buf.WriteByte('}')
	return json.RawMessage(buf.Bytes()), nil
}

// Count returns the number of stored endgames.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM endgame_stats").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count stats: %w", err)
	}
	return n, nil
}
