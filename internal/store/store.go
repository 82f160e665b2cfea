package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

var (
	// ErrNotFound is returned when a workout or template does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRange is returned for malformed or inverted date ranges.
	ErrInvalidRange = errors.New("invalid date range")
)

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS scheduled_workouts (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		uid         TEXT NOT NULL UNIQUE,
		date        TEXT NOT NULL,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		completed   INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_date ON scheduled_workouts(date);

	CREATE TABLE IF NOT EXISTS workout_segments (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id  INTEGER NOT NULL REFERENCES scheduled_workouts(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		type        TEXT NOT NULL CHECK (type IN ('easy', 'tempo', 'interval', 'time_trial')),
		distance    REAL NOT NULL DEFAULT 0 CHECK (distance >= 0),
		pace        INTEGER NOT NULL DEFAULT 0,
		duration    INTEGER NOT NULL DEFAULT 0,
		repetitions INTEGER NOT NULL DEFAULT 1 CHECK (repetitions >= 1)
	);

	CREATE INDEX IF NOT EXISTS idx_segments_workout ON workout_segments(workout_id);

	CREATE TABLE IF NOT EXISTS workout_templates (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		name           TEXT NOT NULL UNIQUE,
		description    TEXT NOT NULL DEFAULT '',
		total_distance REAL NOT NULL DEFAULT 0,
		total_duration INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS template_segments (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		template_id INTEGER NOT NULL REFERENCES workout_templates(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		type        TEXT NOT NULL CHECK (type IN ('easy', 'tempo', 'interval', 'time_trial')),
		distance    REAL NOT NULL DEFAULT 0 CHECK (distance >= 0),
		pace        INTEGER NOT NULL DEFAULT 0,
		duration    INTEGER NOT NULL DEFAULT 0,
		repetitions INTEGER NOT NULL DEFAULT 1 CHECK (repetitions >= 1)
	);

	CREATE INDEX IF NOT EXISTS idx_segments_template ON template_segments(template_id);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('week_start',           'monday'),
		('default_segment_type', 'easy'),
		('default_pace',         '06:00');
	`
	_, err := s.db.Exec(ddl)
	return err
}

