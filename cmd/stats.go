package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/xvierd/pomotui/internal/ports"
	"github.com/xvierd/pomotui/internal/stats"
)

var statsPeriod string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a dashboard of session statistics",
	Long:  `Display a terminal dashboard with work sessions, focused minutes and your most worked-on tasks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		sessions, err := storageAdapter.Sessions().Find(ctx, ports.SessionFilter{})
		if err != nil {
			return fmt.Errorf("failed to fetch sessions: %w", err)
		}
		tasks, err := storageAdapter.Tasks().FindAll(ctx, true)
		if err != nil {
			return fmt.Errorf("failed to fetch tasks: %w", err)
		}

		switch statsPeriod {
		case "day":
			today := aggregator.Today(sessions)
			fmt.Println()
			renderDay(today)
		case "month":
			period := aggregator.Monthly(sessions)
			fmt.Println()
			renderPeriod("Last 30 days", period)
		default:
			period := aggregator.Weekly(sessions)
			fmt.Println()
			renderPeriod("Last 7 days", period)
		}

		top := aggregator.TopTasks(sessions, tasks, 5)
		renderTopTasks(top)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVarP(&statsPeriod, "period", "p", "week", "Time period: day, week or month")
	rootCmd.AddCommand(statsCmd)
}

func renderDay(day stats.DailyStats) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E06C75"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))

	fmt.Println(titleStyle.Render("  🍅 Today — " + day.Date.Format("Mon Jan 2")))
	fmt.Println()
	fmt.Printf("  %s %s\n", valueStyle.Render(fmt.Sprintf("%d", day.WorkSessions)), dimStyle.Render("pomodoros"))
	fmt.Printf("  %s %s\n", valueStyle.Render(fmt.Sprintf("%d", day.FocusedMinutes)), dimStyle.Render("focused minutes"))
	fmt.Printf("  %s %s\n", valueStyle.Render(fmt.Sprintf("%d", day.BreakSessions)), dimStyle.Render("breaks taken"))
	fmt.Printf("  %s %s\n", valueStyle.Render(fmt.Sprintf("%d", day.TasksWorkedOn)), dimStyle.Render("tasks worked on"))
	fmt.Println()
}

func renderPeriod(label string, period stats.PeriodStats) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E06C75"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))

	fmt.Println(titleStyle.Render("  🍅 " + label))
	fmt.Println()
	fmt.Printf("  %s %s   %s %s\n",
		valueStyle.Render(fmt.Sprintf("%d", period.WorkSessions)), dimStyle.Render("pomodoros"),
		valueStyle.Render(fmt.Sprintf("%dh %dm", period.FocusedMinutes/60, period.FocusedMinutes%60)), dimStyle.Render("focused"))
	fmt.Println()

	// Scale the per-day bars against the busiest day.
	max := 0
	for _, day := range period.Days {
		if day.WorkSessions > max {
			max = day.WorkSessions
		}
	}

	for _, day := range period.Days {
		bar := ""
		if max > 0 {
			bar = strings.Repeat("█", day.WorkSessions*20/max)
		}
		fmt.Printf("  %s %s %s\n",
			dimStyle.Render(day.Date.Format("Jan 02")),
			barStyle.Render(bar),
			dimStyle.Render(fmt.Sprintf("%d", day.WorkSessions)))
	}
	fmt.Println()

	if best, ok := period.MostProductiveDay(); ok {
		fmt.Printf("  %s %s\n\n",
			dimStyle.Render("Most productive:"),
			valueStyle.Render(fmt.Sprintf("%s (%d pomodoros)", best.Date.Format("Mon Jan 2"), best.WorkSessions)))
	}
}

func renderTopTasks(top []stats.TaskStat) {
	if len(top) == 0 {
		return
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E06C75"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	fmt.Println(titleStyle.Render("  📋 Top tasks"))
	fmt.Println()
	for i, t := range top {
		fmt.Printf("  %s %s %s\n",
			dimStyle.Render(fmt.Sprintf("%d.", i+1)),
			t.Task.Name,
			dimStyle.Render(fmt.Sprintf("(%d 🍅)", t.WorkSessions)))
	}
	fmt.Println()
}
