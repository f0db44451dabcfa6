package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/xvierd/pomotui/internal/domain"
	"github.com/xvierd/pomotui/internal/ports"
)

// sessionRepository implements ports.SessionRepository using SQLite.
type sessionRepository struct {
	db *sql.DB
}

// newSessionRepository creates a new session repository.
func newSessionRepository(db *sql.DB) ports.SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session row and assigns its ID.
func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (task_id, start_time, end_time, duration, completed, session_type)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		nullableID(session.TaskID),
		formatTime(session.StartTime),
		formatTimePtr(session.EndTime),
		session.Duration,
		boolToInt(session.Completed),
		string(session.SessionType),
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read session id: %w", err)
	}
	session.ID = id

	return nil
}

// FindByID retrieves a session by its identifier.
func (r *sessionRepository) FindByID(ctx context.Context, id int64) (*domain.Session, error) {
	query := `
		SELECT id, task_id, start_time, end_time, duration, completed, session_type
		FROM sessions
		WHERE id = ?
	`

	session, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return session, nil
}

// Find retrieves sessions matching the filter, newest first. The date
// range applies to the session start time, half-open on Until.
func (r *sessionRepository) Find(ctx context.Context, filter ports.SessionFilter) ([]*domain.Session, error) {
	query := `
		SELECT id, task_id, start_time, end_time, duration, completed, session_type
		FROM sessions
	`

	var clauses []string
	var args []any
	if filter.Since != nil {
		clauses = append(clauses, "start_time >= ?")
		args = append(args, formatTime(*filter.Since))
	}
	if filter.Until != nil {
		clauses = append(clauses, "start_time < ?")
		args = append(args, formatTime(*filter.Until))
	}
	if filter.TaskID != nil {
		clauses = append(clauses, "task_id = ?")
		args = append(args, *filter.TaskID)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY start_time DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// Update modifies an existing session.
func (r *sessionRepository) Update(ctx context.Context, session *domain.Session) error {
	query := `
		UPDATE sessions
		SET task_id = ?, start_time = ?, end_time = ?, duration = ?, completed = ?, session_type = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		nullableID(session.TaskID),
		formatTime(session.StartTime),
		formatTimePtr(session.EndTime),
		session.Duration,
		boolToInt(session.Completed),
		string(session.SessionType),
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// scanSession scans a single session row.
func scanSession(row rowScanner) (*domain.Session, error) {
	var session domain.Session
	var taskID sql.NullInt64
	var startTime string
	var endTime sql.NullString
	var completed int

	err := row.Scan(
		&session.ID,
		&taskID,
		&startTime,
		&endTime,
		&session.Duration,
		&completed,
		&session.SessionType,
	)
	if err != nil {
		return nil, err
	}

	if taskID.Valid {
		session.TaskID = &taskID.Int64
	}
	if session.StartTime, err = parseTime(startTime); err != nil {
		return nil, err
	}
	if session.EndTime, err = parseTimePtr(endTime); err != nil {
		return nil, err
	}
	session.Completed = completed != 0

	return &session, nil
}

// nullableID converts an optional task id for binding.
func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

// boolToInt stores booleans the way the original schema does.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
