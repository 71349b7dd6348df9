// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package drafts persists manuscript snapshots so the story survives exits
// and crashes.
package drafts

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNoDraft       = errors.New("no draft saved")
	ErrDatabaseError = errors.New("draft database error")
)

// =============================================================================
// SCHEMA
// =============================================================================

// SQLite schema for the snapshot store.
const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    id TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    created_at INTEGER NOT NULL  -- Unix nanoseconds
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
`

// =============================================================================
// SNAPSHOT STORE
// =============================================================================

// Snapshot is one persisted manuscript state.
type Snapshot struct {
	ID        string
	Content   string
	CreatedAt time.Time
}

// Store keeps manuscript snapshots in a local SQLite database. Writes are
// append-only; old snapshots are pruned past MaxSnapshots.
type Store struct {
	db   *sql.DB
	path string

	// MaxSnapshots limits retained snapshots (0 = unlimited).
	MaxSnapshots int
}

// Open creates or opens the snapshot database at path.
func Open(path string, maxSnapshots int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create draft directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open draft database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{
		db:           db,
		path:         path,
		MaxSnapshots: maxSnapshots,
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// Save persists a snapshot of the manuscript and returns its ID. Retention
// is enforced in the same transaction so the store never holds more than
// MaxSnapshots rows.
func (s *Store) Save(content string) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO snapshots (id, content, created_at) VALUES (?, ?, ?)",
		id, content, time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	if s.MaxSnapshots > 0 {
		_, err = tx.Exec(`
			DELETE FROM snapshots WHERE id NOT IN (
				SELECT id FROM snapshots ORDER BY created_at DESC, rowid DESC LIMIT ?
			)
		`, s.MaxSnapshots)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	return id, nil
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// Latest returns the most recent snapshot, or ErrNoDraft when the store is
// empty.
func (s *Store) Latest() (*Snapshot, error) {
	var snap Snapshot
	var createdAt int64

	err := s.db.QueryRow(`
		SELECT id, content, created_at FROM snapshots
		ORDER BY created_at DESC, rowid DESC LIMIT 1
	`).Scan(&snap.ID, &snap.Content, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoDraft
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	snap.CreatedAt = time.Unix(0, createdAt)
	return &snap, nil
}

// History returns snapshot metadata, most recent first, capped at limit
// (0 = all retained snapshots).
func (s *Store) History(limit int) ([]Snapshot, error) {
	query := `
		SELECT id, content, created_at FROM snapshots
		ORDER BY created_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		var createdAt int64
		if err := rows.Scan(&snap.ID, &snap.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		snap.CreatedAt = time.Unix(0, createdAt)
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	return snaps, nil
}

// Count returns the number of retained snapshots.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return n, nil
}

// Clear removes every snapshot.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM snapshots"); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}
