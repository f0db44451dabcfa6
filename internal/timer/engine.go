package timer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xvierd/pomotui/internal/domain"
	"github.com/xvierd/pomotui/internal/ports"
)

// ErrTimerBusy is returned when an operation requires the timer to be idle.
var ErrTimerBusy = errors.New("timer has a session in progress")

// Engine is the pomodoro finite-state machine. It owns the in-memory cycle
// state and the lifecycle of session records: a row is opened when a phase
// starts and finalized when the phase completes or is abandoned.
//
// The engine assumes a single logical caller; Tick must be invoked once per
// second by exactly one external driver while a phase is active. Invalid
// operations (pausing while idle, ticking while paused) are silent no-ops.
// Store failures do not roll back the in-memory transition; they are
// returned so the caller can decide to retry or keep running memory-only.
type Engine struct {
	cfg   domain.TimerConfig
	store ports.Storage
	now   func() time.Time

	state     State
	resumeTo  State
	remaining int // seconds left in the current phase
	total     int // planned seconds of the current phase
	completed int // work sessions completed this cycle
	taskID    *int64
	current   *domain.Session

	onStateChange     func(old, new State)
	onTick            func(remaining int, progress float64)
	onSessionComplete func(t domain.SessionType, session *domain.Session)
}

// NewEngine creates an idle engine with the given configuration.
func NewEngine(cfg domain.TimerConfig, store ports.Storage) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timer config: %w", err)
	}

	return &Engine{
		cfg:       cfg,
		store:     store,
		now:       time.Now,
		state:     StateIdle,
		remaining: int(cfg.WorkDuration.Seconds()),
		total:     int(cfg.WorkDuration.Seconds()),
	}, nil
}

// SetClock overrides the wall clock used for session timestamps.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// OnStateChange registers the state-change observer.
func (e *Engine) OnStateChange(fn func(old, new State)) {
	e.onStateChange = fn
}

// OnTick registers the tick observer. It receives the remaining seconds and
// the progress fraction of the current phase after each tick.
func (e *Engine) OnTick(fn func(remaining int, progress float64)) {
	e.onTick = fn
}

// OnSessionComplete registers the session-completion observer. It fires
// once per naturally completed phase, before the auto-advance state change.
func (e *Engine) OnSessionComplete(fn func(t domain.SessionType, session *domain.Session)) {
	e.onSessionComplete = fn
}

// State returns the current timer state.
func (e *Engine) State() State {
	return e.state
}

// Remaining returns the seconds left in the current phase. While paused it
// reports the captured remainder.
func (e *Engine) Remaining() int {
	return e.remaining
}

// Progress returns the completed fraction of the current phase, 0 to 1.
func (e *Engine) Progress() float64 {
	if e.total == 0 {
		return 0
	}
	return float64(e.total-e.remaining) / float64(e.total)
}

// CompletedPomodoros returns the number of work sessions completed since
// construction. Abandoned sessions do not count.
func (e *Engine) CompletedPomodoros() int {
	return e.completed
}

// CurrentSession returns the in-progress session record, nil while idle.
func (e *Engine) CurrentSession() *domain.Session {
	return e.current
}

// TaskID returns the task associated with work sessions, nil for none.
func (e *Engine) TaskID() *int64 {
	return e.taskID
}

// SetTask associates a task with subsequent work sessions, or clears the
// association when id is nil. Returns ErrTimerBusy unless the timer is
// idle; mid-session task switches are rejected rather than queued.
func (e *Engine) SetTask(id *int64) error {
	if e.state != StateIdle {
		return ErrTimerBusy
	}
	e.taskID = id
	return nil
}

// Start begins a work session. No-op unless the timer is idle; sessions
// after the first are opened automatically when the previous phase ends.
func (e *Engine) Start(ctx context.Context) error {
	if e.state != StateIdle {
		return nil
	}
	return e.begin(ctx, StateWorking)
}

// Pause suspends an active phase, capturing the remaining time and the
// state to resume to. No-op while idle or already paused.
func (e *Engine) Pause() {
	if !e.state.IsActive() {
		return
	}
	old := e.state
	e.resumeTo = e.state
	e.state = StatePaused
	e.fireStateChange(old, StatePaused)
}

// Resume restores the paused phase without resetting elapsed time or
// opening a new session record. No-op unless paused.
func (e *Engine) Resume() {
	if e.state != StatePaused {
		return
	}
	e.state = e.resumeTo
	e.fireStateChange(StatePaused, e.state)
}

// Toggle is the single start-or-pause control exposed to the driving
// caller: it starts from idle, resumes from paused, pauses otherwise.
func (e *Engine) Toggle(ctx context.Context) error {
	switch {
	case e.state == StateIdle:
		return e.Start(ctx)
	case e.state == StatePaused:
		e.Resume()
		return nil
	default:
		e.Pause()
		return nil
	}
}

// Tick advances the timer by one second. It must be called at 1 Hz by the
// external driver while a phase is active; calls while idle or paused are
// silently ignored and fire no notification. It returns true when the call
// completed the current phase and advanced to the next one.
func (e *Engine) Tick(ctx context.Context) (bool, error) {
	if !e.state.IsActive() {
		return false, nil
	}

	if e.remaining > 0 {
		e.remaining--
	}
	e.fireTick()

	if e.remaining > 0 {
		return false, nil
	}
	return true, e.completePhase(ctx)
}

// Next abandons the current phase and advances to the next scheduled one
// without waiting for the remaining time. The abandoned session is
// finalized with completed = false and never counts toward the cycle or
// the task's pomodoro total. No-op while idle.
func (e *Engine) Next(ctx context.Context) error {
	if e.state == StateIdle {
		return nil
	}

	active := e.state
	if active == StatePaused {
		active = e.resumeTo
	}

	err := e.finalize(ctx, false)
	return firstErr(err, e.begin(ctx, e.nextAfter(active)))
}

// Reset abandons any in-progress session and returns to idle with the
// remaining time restored to the configured work duration. The completed-
// pomodoro cycle counter is preserved; only a new engine starts a fresh
// cycle.
func (e *Engine) Reset(ctx context.Context) error {
	if e.state == StateIdle {
		return nil
	}

	err := e.finalize(ctx, false)

	old := e.state
	e.state = StateIdle
	e.total = int(e.cfg.WorkDuration.Seconds())
	e.remaining = e.total
	e.fireStateChange(old, StateIdle)
	return err
}

// begin opens the session record for a new phase and fires the state
// change. The in-memory transition happens even when the store write
// fails.
func (e *Engine) begin(ctx context.Context, st State) error {
	old := e.state
	e.state = st
	e.total = e.phaseSeconds(st)
	e.remaining = e.total

	session := &domain.Session{
		StartTime:   e.now(),
		Duration:    e.total,
		SessionType: st.SessionType(),
	}
	if st == StateWorking {
		session.TaskID = e.taskID
	}
	e.current = session

	var err error
	if createErr := e.store.Sessions().Create(ctx, session); createErr != nil {
		err = fmt.Errorf("failed to record session start: %w", createErr)
	}

	e.fireStateChange(old, st)
	return err
}

// completePhase handles a phase that ran down to zero: finalize the
// record, count the pomodoro, notify, and auto-advance.
func (e *Engine) completePhase(ctx context.Context) error {
	finished := e.current
	wasWork := e.state == StateWorking

	err := e.finalize(ctx, true)

	if wasWork {
		e.completed++
		if e.taskID != nil {
			if incErr := e.store.Tasks().IncrementPomodoroCount(ctx, *e.taskID); incErr != nil {
				err = firstErr(err, fmt.Errorf("failed to count pomodoro: %w", incErr))
			}
		}
	}

	if e.onSessionComplete != nil && finished != nil {
		e.onSessionComplete(finished.SessionType, finished)
	}

	return firstErr(err, e.begin(ctx, e.nextAfter(stateFor(finishedType(finished)))))
}

// finalize stamps the end time and completion flag on the current session
// record and clears it.
func (e *Engine) finalize(ctx context.Context, completed bool) error {
	session := e.current
	e.current = nil
	if session == nil {
		return nil
	}

	end := e.now()
	session.EndTime = &end
	session.Completed = completed

	if err := e.store.Sessions().Update(ctx, session); err != nil {
		return fmt.Errorf("failed to record session end: %w", err)
	}
	return nil
}

// nextAfter applies the cycle rule: after a work phase the break is long
// once the interval's worth of pomodoros has completed, short otherwise;
// after any break the next phase is work.
func (e *Engine) nextAfter(active State) State {
	if active != StateWorking {
		return StateWorking
	}
	if e.completed > 0 && e.completed%e.cfg.SessionsBeforeLong == 0 {
		return StateLongBreak
	}
	return StateShortBreak
}

// phaseSeconds returns the configured duration for an active state.
func (e *Engine) phaseSeconds(st State) int {
	switch st {
	case StateShortBreak:
		return int(e.cfg.ShortBreakDuration.Seconds())
	case StateLongBreak:
		return int(e.cfg.LongBreakDuration.Seconds())
	default:
		return int(e.cfg.WorkDuration.Seconds())
	}
}

func (e *Engine) fireStateChange(old, new State) {
	if e.onStateChange != nil && old != new {
		e.onStateChange(old, new)
	}
}

func (e *Engine) fireTick() {
	if e.onTick != nil {
		e.onTick(e.remaining, e.Progress())
	}
}

// FormatRemaining renders the remaining time as MM:SS.
func (e *Engine) FormatRemaining() string {
	return FormatSeconds(e.remaining)
}

// FormatSeconds renders a second count as MM:SS.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func finishedType(s *domain.Session) domain.SessionType {
	if s == nil {
		return domain.SessionTypeWork
	}
	return s.SessionType
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
