package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xvierd/pomotui/internal/ports"
)

// settingsRepository implements ports.SettingsRepository using SQLite.
type settingsRepository struct {
	db *sql.DB
}

// newSettingsRepository creates a new settings repository.
func newSettingsRepository(db *sql.DB) ports.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the value for key; ok is false when the key is absent.
func (r *settingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores or replaces the value for key.
func (r *settingsRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}
	return nil
}
