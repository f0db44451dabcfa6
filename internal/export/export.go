// Package export writes CSV and JSON snapshots of sessions, tasks and
// statistics to the user's documents directory.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/xvierd/pomotui/internal/domain"
	"github.com/xvierd/pomotui/internal/ports"
	"github.com/xvierd/pomotui/internal/stats"
)

// installIDKey is the settings key holding the per-install identifier.
const installIDKey = "install_id"

// TaskRecord is the JSON shape of an exported task.
type TaskRecord struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Color         string     `json:"color"`
	PomodoroCount int        `json:"pomodoro_count"`
}

// SessionRecord is the JSON shape of an exported session.
type SessionRecord struct {
	ID          int64      `json:"id"`
	TaskID      *int64     `json:"task_id,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Duration    int        `json:"duration_seconds"`
	Completed   bool       `json:"completed"`
	SessionType string     `json:"session_type"`
}

// TopTaskRecord is the JSON shape of a per-task breakdown entry.
type TopTaskRecord struct {
	TaskID       int64  `json:"task_id"`
	Name         string `json:"name"`
	WorkSessions int    `json:"work_sessions"`
}

// Snapshot is the full JSON export document.
type Snapshot struct {
	SnapshotID  string            `json:"snapshot_id"`
	InstallID   string            `json:"install_id,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
	Tasks       []TaskRecord      `json:"tasks"`
	Sessions    []SessionRecord   `json:"sessions"`
	Week        stats.PeriodStats `json:"week"`
	TopTasks    []TopTaskRecord   `json:"top_tasks"`
}

// NewSnapshot assembles an export document. The snapshot id is freshly
// generated; installID may be empty.
func NewSnapshot(installID string, at time.Time, tasks []*domain.Task, sessions []*domain.Session, week stats.PeriodStats, top []stats.TaskStat) *Snapshot {
	snap := &Snapshot{
		SnapshotID:  uuid.New().String(),
		InstallID:   installID,
		GeneratedAt: at,
		Tasks:       make([]TaskRecord, 0, len(tasks)),
		Sessions:    make([]SessionRecord, 0, len(sessions)),
		Week:        week,
		TopTasks:    make([]TopTaskRecord, 0, len(top)),
	}

	for _, t := range tasks {
		snap.Tasks = append(snap.Tasks, TaskRecord{
			ID:            t.ID,
			Name:          t.Name,
			Description:   t.Description,
			CreatedAt:     t.CreatedAt,
			CompletedAt:   t.CompletedAt,
			Color:         t.Color,
			PomodoroCount: t.PomodoroCount,
		})
	}
	for _, s := range sessions {
		snap.Sessions = append(snap.Sessions, SessionRecord{
			ID:          s.ID,
			TaskID:      s.TaskID,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			Duration:    s.Duration,
			Completed:   s.Completed,
			SessionType: string(s.SessionType),
		})
	}
	for _, t := range top {
		snap.TopTasks = append(snap.TopTasks, TopTaskRecord{
			TaskID:       t.Task.ID,
			Name:         t.Task.Name,
			WorkSessions: t.WorkSessions,
		})
	}

	return snap
}

// EnsureInstallID returns the per-install identifier from settings,
// generating and persisting one on first use.
func EnsureInstallID(ctx context.Context, settings ports.SettingsRepository) (string, error) {
	id, ok, err := settings.Get(ctx, installIDKey)
	if err != nil {
		return "", fmt.Errorf("failed to read install id: %w", err)
	}
	if ok && id != "" {
		return id, nil
	}

	id = uuid.New().String()
	if err := settings.Set(ctx, installIDKey, id); err != nil {
		return "", fmt.Errorf("failed to store install id: %w", err)
	}
	return id, nil
}

// DefaultDir returns the user documents directory.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, "Documents"), nil
}

// WriteJSON writes the snapshot to dir with a timestamped filename and
// returns the full path.
func WriteJSON(dir string, snap *Snapshot) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("pomotui-export-%s.json", snap.GeneratedAt.Format("20060102-150405")))

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	return path, nil
}

// WriteSessionsCSV writes the session history to dir as CSV with a
// timestamped filename and returns the full path. Task names are joined
// in for readability; sessions whose task was deleted get an empty name.
func WriteSessionsCSV(dir string, sessions []*domain.Session, tasks []*domain.Task, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("pomotui-sessions-%s.csv", at.Format("20060102-150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	names := make(map[int64]string, len(tasks))
	for _, t := range tasks {
		names[t.ID] = t.Name
	}

	w := csv.NewWriter(f)
	_ = w.Write([]string{"id", "task", "start_time", "end_time", "duration_min", "completed", "session_type"})

	for _, s := range sessions {
		taskName := ""
		if s.TaskID != nil {
			taskName = names[*s.TaskID]
		}
		endTime := ""
		if s.EndTime != nil {
			endTime = s.EndTime.Format(time.RFC3339)
		}
		_ = w.Write([]string{
			strconv.FormatInt(s.ID, 10),
			taskName,
			s.StartTime.Format(time.RFC3339),
			endTime,
			fmt.Sprintf("%.1f", float64(s.Duration)/60),
			strconv.FormatBool(s.Completed),
			string(s.SessionType),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}
	return path, nil
}
