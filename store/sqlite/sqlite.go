/*
Package sqlite persists saved analyses - named snapshots of a practice
configuration - using SQLite.

PURPOSE:
  The calculation engine is stateless by design: every snapshot is
  recomputed from one configuration value. What IS worth keeping between
  sessions is the configuration itself, so an operator can save a
  what-if roster under a name and reload it later. That is the only table
  this store owns.

KEY TABLE:
  analyses: id, name, config_json, created_at, updated_at

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers don't
  block, single writer at a time, better crash recovery.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. The HTTP host serves concurrent
  requests; the engine itself needs no locking.

USAGE:
  store, err := sqlite.New("./data/dashboard.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  Use ":memory:" for tests.
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrAnalysisNotFound is returned when a referenced analysis doesn't exist.
var ErrAnalysisNotFound = errors.New("analysis not found")

// Analysis is one saved configuration snapshot.
type Analysis struct {
	ID         int64
	Name       string
	ConfigJSON string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store persists analyses in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store at the given database path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
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

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_name ON analyses(name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save stores a configuration under a name and returns the saved record.
func (s *Store) Save(ctx context.Context, name, configJSON string) (Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (name, config_json, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		name, configJSON, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return Analysis{}, fmt.Errorf("save analysis: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Analysis{}, fmt.Errorf("save analysis: %w", err)
	}
	return Analysis{ID: id, Name: name, ConfigJSON: configJSON, CreatedAt: now, UpdatedAt: now}, nil
}

// Get returns one saved analysis by ID.
func (s *Store) Get(ctx context.Context, id int64) (Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, config_json, created_at, updated_at FROM analyses WHERE id = ?`, id)
	a, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, fmt.Errorf("analysis %d: %w", id, ErrAnalysisNotFound)
	}
	return a, err
}

// List returns all saved analyses, newest first.
func (s *Store) List(ctx context.Context) ([]Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, config_json, created_at, updated_at FROM analyses ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

// Delete removes a saved analysis by ID.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("analysis %d: %w", id, ErrAnalysisNotFound)
	}
	return nil
}

// Reset clears all saved analyses. Used when loading a demo preset.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM analyses`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var createdAt, updatedAt string
	if err := row.Scan(&a.ID, &a.Name, &a.ConfigJSON, &createdAt, &updatedAt); err != nil {
		return Analysis{}, err
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	a.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return a, nil
}
