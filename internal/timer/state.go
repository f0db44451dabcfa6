// Package timer implements the pomodoro finite-state machine. The engine
// is driven by an external one-tick-per-second caller and reports changes
// through synchronous observer callbacks.
package timer

import "github.com/xvierd/pomotui/internal/domain"

// State represents the timer's position in the work/break cycle.
type State string

const (
	StateIdle       State = "idle"
	StateWorking    State = "working"
	StateShortBreak State = "short_break"
	StateLongBreak  State = "long_break"
	StatePaused     State = "paused"
)

// IsActive returns true while a phase is counting down.
func (s State) IsActive() bool {
	return s == StateWorking || s == StateShortBreak || s == StateLongBreak
}

// IsBreak returns true for either break state.
func (s State) IsBreak() bool {
	return s == StateShortBreak || s == StateLongBreak
}

// Label returns a human-readable label for the state.
func (s State) Label() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateWorking:
		return "Working"
	case StateShortBreak:
		return "Short Break"
	case StateLongBreak:
		return "Long Break"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// SessionType maps an active state to its session type. Only meaningful
// for WORKING, SHORT_BREAK and LONG_BREAK.
func (s State) SessionType() domain.SessionType {
	switch s {
	case StateShortBreak:
		return domain.SessionTypeShortBreak
	case StateLongBreak:
		return domain.SessionTypeLongBreak
	default:
		return domain.SessionTypeWork
	}
}

// stateFor returns the active state for a session type.
func stateFor(t domain.SessionType) State {
	switch t {
	case domain.SessionTypeShortBreak:
		return StateShortBreak
	case domain.SessionTypeLongBreak:
		return StateLongBreak
	default:
		return StateWorking
	}
}
