/*
Package sqlite provides a SQLite-backed store for gratuity schemes.

PURPOSE:
  Persists rule scheme documents (built-in and custom) so custom tiers
  survive restarts. Calculations themselves are never stored.

KEY TABLES:
  schemes: One row per rule id, holding the JSON scheme document

VERSIONING:
  SaveScheme upserts. Each overwrite bumps version; created_at is kept.
  SeedSchemes inserts only missing rows, so restarts never clobber edits.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of database/sql.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time

USAGE:
  store, err := sqlite.New("./data/gratuity.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - factory/scheme.go: Scheme document format
  - api/handlers.go: Loads schemes into the registry
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/gratuity-engine/generic"
)

// Store persists scheme documents in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// SchemeRecord is one stored scheme document.
type SchemeRecord struct {
	ID         string
	Name       string
	ConfigJSON string
	Builtin    bool
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to ":memory:" is a separate database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schemes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		config_json TEXT NOT NULL,
		builtin BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_schemes_name
		ON schemes(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SCHEME STORE
// =============================================================================

// SaveScheme inserts or replaces a scheme document.
func (s *Store) SaveScheme(ctx context.Context, rec SchemeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO schemes (id, name, config_json, builtin, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			config_json = excluded.config_json,
			version = schemes.version + 1,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query, rec.ID, rec.Name, rec.ConfigJSON, rec.Builtin, now, now)
	if err != nil {
		return fmt.Errorf("failed to save scheme %s: %w", rec.ID, err)
	}
	return nil
}

// InsertScheme stores a new scheme. Returns generic.ErrSchemeExists when
// the id is taken.
func (s *Store) InsertScheme(ctx context.Context, rec SchemeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schemes (id, name, config_json, builtin, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
	`, rec.ID, rec.Name, rec.ConfigJSON, rec.Builtin, now, now)
	if err != nil {
		if isUniqueConstraintError(err) {
			return generic.ErrSchemeExists
		}
		return fmt.Errorf("failed to insert scheme %s: %w", rec.ID, err)
	}
	return nil
}

// SeedSchemes inserts records whose id is not stored yet. Existing rows are untouched.
func (s *Store) SeedSchemes(ctx context.Context, recs []SchemeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, rec := range recs {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO schemes (id, name, config_json, builtin, version, created_at, updated_at)
			VALUES (?, ?, ?, ?, 1, ?, ?)
		`, rec.ID, rec.Name, rec.ConfigJSON, rec.Builtin, now, now)
		if err != nil {
			return fmt.Errorf("failed to seed scheme %s: %w", rec.ID, err)
		}
	}

	return tx.Commit()
}

// GetScheme retrieves a scheme by id. Returns nil, nil when not found.
func (s *Store) GetScheme(ctx context.Context, id string) (*SchemeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, config_json, builtin, version, created_at, updated_at FROM schemes WHERE id = ?",
		id,
	)

	rec, err := scanScheme(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListSchemes returns all schemes ordered by id.
func (s *Store) ListSchemes(ctx context.Context) ([]SchemeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, config_json, builtin, version, created_at, updated_at FROM schemes ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query schemes: %w", err)
	}
	defer rows.Close()

	var recs []SchemeRecord
	for rows.Next() {
		rec, err := scanScheme(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

// DeleteScheme removes a custom scheme. Built-in schemes cannot be deleted;
// the returned bool reports whether a row was removed.
func (s *Store) DeleteScheme(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM schemes WHERE id = ? AND builtin = FALSE", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete scheme %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// =============================================================================
// HELPERS
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanScheme(row scanner) (*SchemeRecord, error) {
	var rec SchemeRecord
	var createdAt, updatedAt string
	if err := row.Scan(&rec.ID, &rec.Name, &rec.ConfigJSON, &rec.Builtin, &rec.Version, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &rec, nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
