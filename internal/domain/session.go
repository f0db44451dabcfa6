package domain

import "time"

// SessionType represents the type of a timed interval.
type SessionType string

const (
	SessionTypeWork       SessionType = "work"
	SessionTypeShortBreak SessionType = "short_break"
	SessionTypeLongBreak  SessionType = "long_break"
)

// IsBreak returns true for either break type.
func (t SessionType) IsBreak() bool {
	return t == SessionTypeShortBreak || t == SessionTypeLongBreak
}

// Label returns a human-readable label for the session type.
func (t SessionType) Label() string {
	switch t {
	case SessionTypeWork:
		return "Work"
	case SessionTypeShortBreak:
		return "Short Break"
	case SessionTypeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// Session represents a single timed interval. A row is created when the
// phase starts and finalized (EndTime + Completed) when it ends naturally
// or is abandoned. TaskID is nil for sessions not tied to a task; deleting
// a task nulls the reference rather than deleting the session.
type Session struct {
	ID          int64
	TaskID      *int64
	StartTime   time.Time
	EndTime     *time.Time
	Duration    int // planned duration in seconds
	Completed   bool
	SessionType SessionType
}

// ActualDuration returns the elapsed seconds between start and end, or the
// planned duration when the session has not been finalized.
func (s *Session) ActualDuration() int {
	if s.EndTime != nil {
		return int(s.EndTime.Sub(s.StartTime).Seconds())
	}
	return s.Duration
}

// TimerConfig holds the durations driving the pomodoro cycle.
type TimerConfig struct {
	WorkDuration       time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	SessionsBeforeLong int
}

// DefaultTimerConfig returns the standard pomodoro configuration.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		WorkDuration:       25 * time.Minute,
		ShortBreakDuration: 5 * time.Minute,
		LongBreakDuration:  15 * time.Minute,
		SessionsBeforeLong: 4,
	}
}

// Validate checks the configuration invariants: all durations positive,
// interval at least 1.
func (c TimerConfig) Validate() error {
	if c.WorkDuration <= 0 || c.ShortBreakDuration <= 0 || c.LongBreakDuration <= 0 {
		return ErrInvalidDuration
	}
	if c.SessionsBeforeLong < 1 {
		return ErrInvalidInterval
	}
	return nil
}
