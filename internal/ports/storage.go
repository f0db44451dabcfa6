// Package ports defines the interfaces (driven and driving ports)
// for the Pomotui application following hexagonal architecture
// principles. These interfaces define the contracts between the core
// and external infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/xvierd/pomotui/internal/domain"
)

// TaskRepository defines the interface for task persistence.
// This is a driven port (implemented by adapters).
type TaskRepository interface {
	// Create persists a new task and assigns its ID.
	Create(ctx context.Context, task *domain.Task) error

	// FindByID retrieves a task by id, or domain.ErrTaskNotFound.
	FindByID(ctx context.Context, id int64) (*domain.Task, error)

	// FindAll retrieves all tasks, newest first. When includeCompleted
	// is false, completed tasks are filtered out.
	FindAll(ctx context.Context, includeCompleted bool) ([]*domain.Task, error)

	// Update modifies an existing task.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task. Sessions referencing it keep existing with
	// a null task reference.
	Delete(ctx context.Context, id int64) error

	// IncrementPomodoroCount bumps the task's pomodoro counter.
	IncrementPomodoroCount(ctx context.Context, id int64) error
}

// SessionFilter narrows a session listing. Zero values mean "no filter";
// Since/Until bound the session start time, half-open on Until.
type SessionFilter struct {
	Since  *time.Time
	Until  *time.Time
	TaskID *int64
}

// SessionRepository defines the interface for session persistence.
// This is a driven port (implemented by adapters).
type SessionRepository interface {
	// Create persists a new session row and assigns its ID.
	Create(ctx context.Context, session *domain.Session) error

	// FindByID retrieves a session by id, or domain.ErrSessionNotFound.
	FindByID(ctx context.Context, id int64) (*domain.Session, error)

	// Find retrieves sessions matching the filter, newest first.
	Find(ctx context.Context, filter SessionFilter) ([]*domain.Session, error)

	// Update modifies an existing session.
	Update(ctx context.Context, session *domain.Session) error
}

// SettingsRepository is a key-value store for preferences.
type SettingsRepository interface {
	// Get returns the value for key; ok is false when absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores or replaces the value for key.
	Set(ctx context.Context, key, value string) error
}

// Storage is the combined repository interface.
type Storage interface {
	// Tasks provides access to task operations.
	Tasks() TaskRepository

	// Sessions provides access to session operations.
	Sessions() SessionRepository

	// Settings provides access to preference storage.
	Settings() SettingsRepository

	// Close closes the storage connection.
	Close() error

	// Migrate creates or upgrades the schema.
	Migrate() error
}
