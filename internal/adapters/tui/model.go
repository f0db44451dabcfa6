// Package tui implements the fullscreen timer interface using Bubbletea.
// It is the timer engine's driving caller: it ticks the engine once per
// second and renders from the engine's notification callbacks rather than
// polling internal state.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/pomotui/internal/adapters/notification"
	"github.com/xvierd/pomotui/internal/config"
	"github.com/xvierd/pomotui/internal/domain"
	"github.com/xvierd/pomotui/internal/ports"
	"github.com/xvierd/pomotui/internal/timer"
)

// tickMsg drives the engine at one tick per second.
type tickMsg time.Time

// display collects what the engine reports through its callbacks. The
// callbacks fire synchronously inside Update, so no locking is needed.
type display struct {
	state     timer.State
	remaining int
	progress  float64
	pomodoros int
}

// Model is the Bubbletea model for the timer screen.
type Model struct {
	engine   *timer.Engine
	store    ports.Storage
	notifier *notification.Notifier
	theme    config.ThemeConfig
	gitInfo  *ports.GitInfo

	ctx      context.Context
	display  *display
	bar      progress.Model
	picker   *picker
	taskName string
	width    int
	err      error
	quitting bool
}

// NewModel creates the timer model and subscribes it to the engine's
// notifications.
func NewModel(ctx context.Context, engine *timer.Engine, store ports.Storage, notifier *notification.Notifier, theme config.ThemeConfig, gitInfo *ports.GitInfo) Model {
	d := &display{
		state:     engine.State(),
		remaining: engine.Remaining(),
		progress:  engine.Progress(),
		pomodoros: engine.CompletedPomodoros(),
	}

	engine.OnTick(func(remaining int, fraction float64) {
		d.remaining = remaining
		d.progress = fraction
	})
	engine.OnStateChange(func(old, new timer.State) {
		d.state = new
		d.remaining = engine.Remaining()
		d.progress = engine.Progress()
	})
	engine.OnSessionComplete(func(t domain.SessionType, session *domain.Session) {
		d.pomodoros = engine.CompletedPomodoros()
		if notifier != nil {
			_ = notifier.NotifySessionComplete(t, session.Duration/60)
		}
	})

	bar := progress.New(progress.WithGradient(theme.ColorWork, theme.ColorBreak))

	taskName := ""
	if id := engine.TaskID(); id != nil {
		if task, err := store.Tasks().FindByID(ctx, *id); err == nil {
			taskName = task.Name
		}
	}

	return Model{
		engine:   engine,
		store:    store,
		notifier: notifier,
		theme:    theme,
		gitInfo:  gitInfo,
		ctx:      ctx,
		display:  d,
		bar:      bar,
		taskName: taskName,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		barWidth := msg.Width - 8
		if barWidth > 60 {
			barWidth = 60
		}
		if barWidth > 0 {
			m.bar.Width = barWidth
		}
		return m, nil

	case tickMsg:
		// Engine ignores ticks while idle or paused.
		if _, err := m.engine.Tick(m.ctx); err != nil {
			m.err = err
		}
		return m, tickCmd()

	case tea.KeyMsg:
		if m.picker != nil {
			return m.updatePicker(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		// Abandon any in-progress phase so the record is finalized.
		if err := m.engine.Reset(m.ctx); err != nil {
			m.err = err
		}
		m.quitting = true
		return m, tea.Quit

	case " ":
		if err := m.engine.Toggle(m.ctx); err != nil {
			m.err = err
		}

	case "n":
		if err := m.engine.Next(m.ctx); err != nil {
			m.err = err
		}

	case "r":
		if err := m.engine.Reset(m.ctx); err != nil {
			m.err = err
		}

	case "t":
		if m.engine.State() != timer.StateIdle {
			break
		}
		tasks, err := m.store.Tasks().FindAll(m.ctx, false)
		if err != nil {
			m.err = err
			break
		}
		m.picker = newPicker(tasks)
	}

	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	done, chosen, cancelled := m.picker.update(msg)
	if cancelled {
		m.picker = nil
		return m, nil
	}
	if done {
		m.picker = nil
		if chosen != nil {
			id := chosen.ID
			if err := m.engine.SetTask(&id); err != nil {
				m.err = err
			} else {
				m.taskName = chosen.Name
			}
		} else {
			if err := m.engine.SetTask(nil); err != nil {
				m.err = err
			} else {
				m.taskName = ""
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.picker != nil {
		return m.picker.view(m.theme)
	}

	stateStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.stateColor()))
	timeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.stateColor()))
	taskStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorTask))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	var b strings.Builder

	b.WriteString("\n  🍅 pomotui\n\n")
	b.WriteString(fmt.Sprintf("  %s\n\n", stateStyle.Render(m.display.state.Label())))
	b.WriteString(fmt.Sprintf("  %s\n\n", timeStyle.Render(timer.FormatSeconds(m.display.remaining))))

	if m.display.state.IsActive() || m.display.state == timer.StatePaused {
		b.WriteString(fmt.Sprintf("  %s\n\n", m.bar.ViewAs(m.display.progress)))
	}

	if m.taskName != "" {
		b.WriteString(fmt.Sprintf("  %s\n", taskStyle.Render("📋 "+m.taskName)))
	}
	if m.gitInfo != nil && m.display.state == timer.StateWorking {
		b.WriteString(fmt.Sprintf("  %s\n", taskStyle.Render("🌿 "+m.gitInfo.Branch)))
	}
	b.WriteString(fmt.Sprintf("  %s\n\n", taskStyle.Render(fmt.Sprintf("Pomodoros this cycle: %d", m.display.pomodoros))))

	b.WriteString(fmt.Sprintf("  %s\n", helpStyle.Render("space start/pause · n skip · r reset · t task · q quit")))

	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
		b.WriteString(fmt.Sprintf("\n  %s\n", errStyle.Render("⚠ "+m.err.Error()+" (running in memory)")))
	}

	return b.String()
}

func (m Model) stateColor() string {
	switch {
	case m.display.state == timer.StatePaused:
		return m.theme.ColorPaused
	case m.display.state.IsBreak():
		return m.theme.ColorBreak
	default:
		return m.theme.ColorWork
	}
}

// Run starts the fullscreen timer and blocks until the user quits.
func Run(ctx context.Context, engine *timer.Engine, store ports.Storage, notifier *notification.Notifier, theme config.ThemeConfig, gitInfo *ports.GitInfo) error {
	model := NewModel(ctx, engine, store, notifier, theme, gitInfo)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
