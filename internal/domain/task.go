// Package domain contains the core business entities for Pomotui.
// These entities represent the fundamental concepts of the pomodoro
// tracker and are independent of any external frameworks or
// infrastructure.
package domain

import (
	"errors"
	"strings"
	"time"
)

// Common domain errors.
var (
	ErrEmptyTaskName   = errors.New("task name cannot be empty")
	ErrTaskNotFound    = errors.New("task not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrInvalidInterval = errors.New("long break interval must be at least 1")
)

// DefaultTaskColor is assigned to tasks created without an explicit color.
const DefaultTaskColor = "blue"

// Task represents a unit of work tracked with pomodoros.
// The ID is zero until the store assigns one.
type Task struct {
	ID            int64
	Name          string
	Description   string
	CreatedAt     time.Time
	CompletedAt   *time.Time
	Color         string
	PomodoroCount int
}

// NewTask creates a new task with the given name.
func NewTask(name, description string) (*Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTaskName
	}

	return &Task{
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		Color:       DefaultTaskColor,
	}, nil
}

// IsCompleted returns true if the task has been marked done.
func (t *Task) IsCompleted() bool {
	return t.CompletedAt != nil
}

// Complete marks the task as completed.
func (t *Task) Complete() {
	if t.CompletedAt != nil {
		return
	}
	now := time.Now()
	t.CompletedAt = &now
}

// Reopen clears the completion timestamp.
func (t *Task) Reopen() {
	t.CompletedAt = nil
}
