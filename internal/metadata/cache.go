package metadata

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vmunix/plexify/internal/migrations"
)

// SQLiteStore keeps the cache in the external_ids table.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore wraps an already migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenSQLiteStore opens (creating if needed) the database at path and
// applies migrations.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	// A single connection serializes writers and keeps :memory: databases
	// on one handle.
	db.SetMaxOpenConns(1)

	if err := migrations.Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Get retrieves a cached entry by key.
// Returns false if not found or the row is unreadable.
func (s *SQLiteStore) Get(ctx context.Context, key string) (Entry, bool) {
	var e Entry
	err := s.db.QueryRowContext(ctx,
		"SELECT external_id, year, provider_id FROM external_ids WHERE key = ?", key,
	).Scan(&e.ExternalID, &e.Year, &e.ProviderID)
	if err != nil || e.ExternalID == "" {
		return Entry{}, false
	}
	return e, true
}

// Set stores an entry, replacing any existing one.
func (s *SQLiteStore) Set(ctx context.Context, key string, entry Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO external_ids (key, external_id, year, provider_id, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET
		   external_id = excluded.external_id,
		   year = excluded.year,
		   provider_id = excluded.provider_id,
		   updated_at = excluded.updated_at`,
		key, entry.ExternalID, entry.Year, entry.ProviderID,
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached entry.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM external_ids WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// All returns every cached entry.
func (s *SQLiteStore) All(ctx context.Context) (map[string]Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, external_id, year, provider_id FROM external_ids")
	if err != nil {
		return nil, fmt.Errorf("cache list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make(map[string]Entry)
	for rows.Next() {
		var key string
		var e Entry
		if err := rows.Scan(&key, &e.ExternalID, &e.Year, &e.ProviderID); err != nil {
			return nil, fmt.Errorf("cache list: %w", err)
		}
		entries[key] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cache list: %w", err)
	}
	return entries, nil
}

// Clear removes all entries.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM external_ids"); err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
