// Package storage provides SQLite implementations of the storage ports.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/xvierd/pomotui/internal/ports"
	_ "modernc.org/sqlite"
)

// schemaVersion is bumped whenever the schema changes shape.
const schemaVersion = 1

// timeLayout is the on-disk timestamp format. The schema predates this
// implementation, so timestamps stay ISO 8601 text.
const timeLayout = time.RFC3339Nano

// sqliteStorage implements the ports.Storage interface using SQLite.
type sqliteStorage struct {
	db           *sql.DB
	taskRepo     ports.TaskRepository
	sessionRepo  ports.SessionRepository
	settingsRepo ports.SettingsRepository
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// New creates a new SQLite storage instance.
func New(dbPath string) (ports.Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A second pooled connection to :memory: would see its own empty
	// database, and the CLI is single-user anyway.
	db.SetMaxOpenConns(1)

	// Enable foreign keys and WAL mode for better performance
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	storage := &sqliteStorage{
		db:           db,
		taskRepo:     newTaskRepository(db),
		sessionRepo:  newSessionRepository(db),
		settingsRepo: newSettingsRepository(db),
	}

	if err := storage.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// NewMemory creates a new in-memory SQLite storage instance for testing.
func NewMemory() (ports.Storage, error) {
	return New(":memory:")
}

// Tasks returns the task repository.
func (s *sqliteStorage) Tasks() ports.TaskRepository {
	return s.taskRepo
}

// Sessions returns the session repository.
func (s *sqliteStorage) Sessions() ports.SessionRepository {
	return s.sessionRepo
}

// Settings returns the settings repository.
func (s *sqliteStorage) Settings() ports.SettingsRepository {
	return s.settingsRepo
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema. Integer autoincrement ids and the
// ON DELETE SET NULL session FK are load-bearing: existing databases from
// earlier releases must keep working.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT DEFAULT '',
		created_at TEXT NOT NULL,
		completed_at TEXT,
		color TEXT DEFAULT 'blue',
		pomodoro_count INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id INTEGER,
		start_time TEXT NOT NULL,
		end_time TEXT,
		duration INTEGER NOT NULL,
		completed BOOLEAN DEFAULT 0,
		session_type TEXT NOT NULL,
		FOREIGN KEY (task_id) REFERENCES tasks (id) ON DELETE SET NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_task ON sessions(task_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(start_time);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err == sql.ErrNoRows {
		if _, err := s.db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	return nil
}

// formatTime renders a timestamp for storage.
func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

// formatTimePtr renders an optional timestamp, NULL when nil.
func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(timeLayout)
}

// parseTime reads a stored timestamp.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// Databases written by older releases use second precision.
		t, err = time.Parse(time.RFC3339, s)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored timestamp %q: %w", s, err)
	}
	return t, nil
}

// parseTimePtr reads an optional stored timestamp.
func parseTimePtr(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
