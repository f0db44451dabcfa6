package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/pomotui/internal/adapters/storage"
	"github.com/xvierd/pomotui/internal/config"
	"github.com/xvierd/pomotui/internal/domain"
	"github.com/xvierd/pomotui/internal/ports"
	"github.com/xvierd/pomotui/internal/timer"
)

func newTestModel(t *testing.T) (Model, ports.Storage) {
	t.Helper()

	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	cfg := domain.TimerConfig{
		WorkDuration:       3 * time.Second,
		ShortBreakDuration: 2 * time.Second,
		LongBreakDuration:  4 * time.Second,
		SessionsBeforeLong: 2,
	}
	engine, err := timer.NewEngine(cfg, store)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	model := NewModel(context.Background(), engine, store, nil, config.DefaultThemeConfig(), nil)
	return model, store
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ViewIdle(t *testing.T) {
	model, _ := newTestModel(t)

	view := model.View()
	if view == "" {
		t.Fatal("View() returned empty string")
	}
	if !strings.Contains(view, "Idle") {
		t.Error("idle view missing state label")
	}
	if !strings.Contains(view, "00:03") {
		t.Error("idle view missing work duration countdown")
	}
}

func TestModel_SpaceStartsAndPauses(t *testing.T) {
	model, _ := newTestModel(t)

	updated, _ := model.Update(keyMsg(" "))
	m := updated.(Model)
	if m.engine.State() != timer.StateWorking {
		t.Fatalf("state after space = %v, want working", m.engine.State())
	}
	if !strings.Contains(m.View(), "Working") {
		t.Error("view does not reflect working state")
	}

	updated, _ = m.Update(keyMsg(" "))
	m = updated.(Model)
	if m.engine.State() != timer.StatePaused {
		t.Fatalf("state after second space = %v, want paused", m.engine.State())
	}
	if !strings.Contains(m.View(), "Paused") {
		t.Error("view does not reflect paused state")
	}
}

func TestModel_TickAdvancesCountdown(t *testing.T) {
	model, _ := newTestModel(t)

	updated, _ := model.Update(keyMsg(" "))
	m := updated.(Model)

	updated, cmd := m.Update(tickMsg(time.Now()))
	m = updated.(Model)
	if cmd == nil {
		t.Error("tick should reschedule itself")
	}
	if !strings.Contains(m.View(), "00:02") {
		t.Errorf("view after one tick missing 00:02:\n%s", m.View())
	}
}

func TestModel_SkipAndReset(t *testing.T) {
	model, _ := newTestModel(t)

	updated, _ := model.Update(keyMsg(" "))
	m := updated.(Model)

	updated, _ = m.Update(keyMsg("n"))
	m = updated.(Model)
	if m.engine.State() != timer.StateShortBreak {
		t.Fatalf("state after skip = %v, want short break", m.engine.State())
	}

	updated, _ = m.Update(keyMsg("r"))
	m = updated.(Model)
	if m.engine.State() != timer.StateIdle {
		t.Fatalf("state after reset = %v, want idle", m.engine.State())
	}
}

func TestModel_TaskPickerSelection(t *testing.T) {
	model, store := newTestModel(t)
	ctx := context.Background()

	task, err := domain.NewTask("Refactor storage", "")
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}
	if err := store.Tasks().Create(ctx, task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, _ := model.Update(keyMsg("t"))
	m := updated.(Model)
	if m.picker == nil {
		t.Fatal("t did not open the picker while idle")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.picker != nil {
		t.Fatal("enter did not close the picker")
	}
	if m.engine.TaskID() == nil || *m.engine.TaskID() != task.ID {
		t.Error("selection did not associate the task")
	}
	if !strings.Contains(m.View(), "Refactor storage") {
		t.Error("view does not show the selected task")
	}
}

func TestModel_PickerBlockedWhileRunning(t *testing.T) {
	model, _ := newTestModel(t)

	updated, _ := model.Update(keyMsg(" "))
	m := updated.(Model)

	updated, _ = m.Update(keyMsg("t"))
	m = updated.(Model)
	if m.picker != nil {
		t.Error("picker opened while a session is running")
	}
}

func TestModel_QuitFinalizesSession(t *testing.T) {
	model, store := newTestModel(t)
	ctx := context.Background()

	updated, _ := model.Update(keyMsg(" "))
	m := updated.(Model)

	updated, cmd := m.Update(keyMsg("q"))
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if m.engine.State() != timer.StateIdle {
		t.Errorf("state after quit = %v, want idle", m.engine.State())
	}

	sessions, err := store.Sessions().Find(ctx, ports.SessionFilter{})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("len(sessions) = %d, want 1", len(sessions))
	}
	if sessions[0].Completed {
		t.Error("abandoned session marked completed")
	}
	if sessions[0].EndTime == nil {
		t.Error("abandoned session not finalized")
	}
}
