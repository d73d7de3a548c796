package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"borgo/internal/core/port"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// SQLiteStore implements port.Store on a single kv table. Values are
// stored as JSON so structured data round-trips exactly; namespaces are
// key prefixes with a "/" separator.
type SQLiteStore struct {
	db     *sql.DB
	prefix string
}

// Open creates or opens the store file. WAL mode keeps concurrent readers
// off the writers' backs; the busy timeout serializes same-key writes.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing store schema: %w", err)
	}

	log.Info().Str("path", path).Msg("storage opened")

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) key(key string) string {
	return s.prefix + key
}

func (s *SQLiteStore) Get(ctx context.Context, key string, out any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", s.key(key)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("decoding %q: %w", key, err)
	}

	return true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		s.key(key), string(raw))
	if err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}

	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", s.key(key)); err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}

	return nil
}

func (s *SQLiteStore) Has(ctx context.Context, key string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM kv WHERE key = ?", s.key(key)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %q: %w", key, err)
	}

	return true, nil
}

// Increment adds delta to the numeric value under key inside one
// transaction, creating it at delta when absent.
func (s *SQLiteStore) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("incrementing %q: %w", key, err)
	}
	defer tx.Rollback()

	var current int64
	var raw string
	err = tx.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", s.key(key)).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// key starts at zero
	case err != nil:
		return 0, fmt.Errorf("incrementing %q: %w", key, err)
	default:
		if err := json.Unmarshal([]byte(raw), &current); err != nil {
			return 0, fmt.Errorf("incrementing %q: value is not numeric: %w", key, err)
		}
	}

	current += delta

	_, err = tx.ExecContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		s.key(key), fmt.Sprintf("%d", current))
	if err != nil {
		return 0, fmt.Errorf("incrementing %q: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("incrementing %q: %w", key, err)
	}

	return current, nil
}

// Iterate walks the namespace in lexicographic key order, yielding keys
// relative to the namespace and raw JSON values.
func (s *SQLiteStore) Iterate(ctx context.Context, fn func(key string, value []byte) error) error {
	pattern := escapeLike(s.prefix) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM kv WHERE key LIKE ? ESCAPE '\' ORDER BY key`, pattern)
	if err != nil {
		return fmt.Errorf("iterating %q: %w", s.prefix, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("iterating %q: %w", s.prefix, err)
		}

		if err := fn(strings.TrimPrefix(key, s.prefix), []byte(value)); err != nil {
			return err
		}
	}

	return rows.Err()
}

// Namespace returns a view of the store scoped under prefix.
func (s *SQLiteStore) Namespace(prefix string) port.Store {
	return &SQLiteStore{db: s.db, prefix: s.prefix + prefix + "/"}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
