// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records converted timelines and their dialogue lines in a
// local SQLite database so transcripts can be searched and exported without
// re-reading the source files.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/timeline-transcript/pkg/types"
)

const (
	dbFile            = "catalog.db"
	defaultMaxResults = 20
)

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// Open opens or creates the catalog database at cfg.Dir/catalog.db and
// creates the schema if it does not exist.
func Open(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS timelines (
			source_path TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			output_path TEXT,
			lines_read INTEGER,
			fragments INTEGER,
			converted_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS dialogue (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_path TEXT NOT NULL REFERENCES timelines(source_path) ON DELETE CASCADE,
			ordinal INTEGER NOT NULL,
			speaker TEXT NOT NULL,
			text TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_dialogue_source ON dialogue(source_path)`,
		`CREATE INDEX IF NOT EXISTS idx_dialogue_speaker ON dialogue(speaker)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a converted timeline, replacing any earlier record for the
// same source path together with its dialogue lines.
func (s *Store) Record(ctx context.Context, tl types.Timeline) error {
	source, err := filepath.Abs(tl.SourcePath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", tl.SourcePath, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM dialogue WHERE source_path = ?`, source); err != nil {
		return fmt.Errorf("deleting old dialogue: %w", err)
	}

	convertedAt := tl.ConvertedAt
	if convertedAt.IsZero() {
		convertedAt = time.Now().UTC()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO timelines (source_path, name, output_path, lines_read, fragments, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source_path) DO UPDATE SET
			name=excluded.name, output_path=excluded.output_path,
			lines_read=excluded.lines_read, fragments=excluded.fragments,
			converted_at=excluded.converted_at`,
		source, tl.Name, tl.OutputPath, tl.LinesRead, tl.Fragments,
		convertedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting timeline: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO dialogue (source_path, ordinal, speaker, text) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range tl.Dialogue {
		if _, err := stmt.ExecContext(ctx, source, d.Ordinal, d.Character, d.Text); err != nil {
			return fmt.Errorf("inserting line %d: %w", d.Ordinal, err)
		}
	}

	return tx.Commit()
}
