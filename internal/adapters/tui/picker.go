package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"github.com/xvierd/pomotui/internal/config"
	"github.com/xvierd/pomotui/internal/domain"
)

// picker is a fuzzy-filtered task selector shown over the timer screen.
type picker struct {
	input    textinput.Model
	tasks    []*domain.Task
	filtered []*domain.Task
	cursor   int
}

// newPicker creates a picker over the given tasks.
func newPicker(tasks []*domain.Task) *picker {
	input := textinput.New()
	input.Placeholder = "filter tasks"
	input.Focus()

	return &picker{
		input:    input,
		tasks:    tasks,
		filtered: tasks,
	}
}

// taskNames implements fuzzy.Source.
type taskNames []*domain.Task

func (t taskNames) String(i int) string { return t[i].Name }
func (t taskNames) Len() int            { return len(t) }

// update handles a key press. done reports a selection was made (chosen
// is nil for "no task"); cancelled reports the picker was dismissed.
func (p *picker) update(msg tea.KeyMsg) (done bool, chosen *domain.Task, cancelled bool) {
	switch msg.String() {
	case "esc":
		return false, nil, true

	case "enter":
		if len(p.filtered) == 0 {
			return true, nil, false
		}
		return true, p.filtered[p.cursor], false

	case "up", "ctrl+k":
		if p.cursor > 0 {
			p.cursor--
		}
		return false, nil, false

	case "down", "ctrl+j":
		if p.cursor < len(p.filtered)-1 {
			p.cursor++
		}
		return false, nil, false
	}

	p.input, _ = p.input.Update(msg)
	p.filter()
	return false, nil, false
}

// filter narrows the task list with fuzzy matching on the query.
func (p *picker) filter() {
	query := p.input.Value()
	if query == "" {
		p.filtered = p.tasks
		p.cursor = 0
		return
	}

	matches := fuzzy.FindFrom(query, taskNames(p.tasks))
	filtered := make([]*domain.Task, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, p.tasks[m.Index])
	}
	p.filtered = filtered
	p.cursor = 0
}

// view renders the picker.
func (p *picker) view(theme config.ThemeConfig) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorWork))
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorBreak))
	taskStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorTask))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp))

	var b strings.Builder
	b.WriteString(fmt.Sprintf("\n  %s\n\n", titleStyle.Render("Pick a task")))
	b.WriteString(fmt.Sprintf("  %s\n\n", p.input.View()))

	if len(p.filtered) == 0 {
		b.WriteString(fmt.Sprintf("  %s\n", taskStyle.Render("no matching tasks (enter clears the association)")))
	}
	for i, t := range p.filtered {
		line := fmt.Sprintf("%s (%d 🍅)", t.Name, t.PomodoroCount)
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("  %s\n", selectedStyle.Render("> "+line)))
		} else {
			b.WriteString(fmt.Sprintf("    %s\n", taskStyle.Render(line)))
		}
	}

	b.WriteString(fmt.Sprintf("\n  %s\n", helpStyle.Render("enter select · esc cancel")))
	return b.String()
}
