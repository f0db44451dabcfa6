package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xvierd/pomotui/internal/domain"
	"github.com/xvierd/pomotui/internal/ports"
)

// taskRepository implements ports.TaskRepository using SQLite.
type taskRepository struct {
	db *sql.DB
}

// newTaskRepository creates a new task repository.
func newTaskRepository(db *sql.DB) ports.TaskRepository {
	return &taskRepository{db: db}
}

// Create persists a new task and assigns its ID.
func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (name, description, created_at, completed_at, color, pomodoro_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		task.Name,
		task.Description,
		formatTime(task.CreatedAt),
		formatTimePtr(task.CompletedAt),
		task.Color,
		task.PomodoroCount,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read task id: %w", err)
	}
	task.ID = id

	return nil
}

// FindByID retrieves a task by its identifier.
func (r *taskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `
		SELECT id, name, description, created_at, completed_at, color, pomodoro_count
		FROM tasks
		WHERE id = ?
	`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query task: %w", err)
	}
	return task, nil
}

// FindAll retrieves all tasks, newest first.
func (r *taskRepository) FindAll(ctx context.Context, includeCompleted bool) ([]*domain.Task, error) {
	query := `
		SELECT id, name, description, created_at, completed_at, color, pomodoro_count
		FROM tasks
	`
	if !includeCompleted {
		query += " WHERE completed_at IS NULL"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// Update modifies an existing task.
func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET name = ?, description = ?, completed_at = ?, color = ?, pomodoro_count = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		task.Name,
		task.Description,
		formatTimePtr(task.CompletedAt),
		task.Color,
		task.PomodoroCount,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Delete removes a task. The sessions FK is declared ON DELETE SET NULL,
// so session history survives with a null task reference.
func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// IncrementPomodoroCount bumps the task's pomodoro counter.
func (r *taskRepository) IncrementPomodoroCount(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET pomodoro_count = pomodoro_count + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to increment pomodoro count: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// rowScanner abstracts sql.Row and sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask scans a single task row.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var createdAt string
	var completedAt sql.NullString

	err := row.Scan(
		&task.ID,
		&task.Name,
		&task.Description,
		&createdAt,
		&completedAt,
		&task.Color,
		&task.PomodoroCount,
	)
	if err != nil {
		return nil, err
	}

	if task.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if task.CompletedAt, err = parseTimePtr(completedAt); err != nil {
		return nil, err
	}

	return &task, nil
}
