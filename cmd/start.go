package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/xvierd/pomotui/internal/adapters/tui"
	"github.com/xvierd/pomotui/internal/ports"
	"github.com/xvierd/pomotui/internal/timer"
)

var startTaskID string

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start [task-id]",
	Short: "Open the fullscreen pomodoro timer",
	Long: `Open the fullscreen timer. Optionally specify a task ID to associate
with work sessions; completed pomodoros are counted against it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(os.Stdout.Fd()) {
			return fmt.Errorf("the timer needs an interactive terminal")
		}

		ctx := setupSignalHandler()

		engine, err := timer.NewEngine(appConfig.ToTimerConfig(), storageAdapter)
		if err != nil {
			return fmt.Errorf("failed to create timer: %w", err)
		}

		// Determine task ID
		rawID := startTaskID
		if rawID == "" && len(args) > 0 {
			rawID = args[0]
		}
		if rawID != "" {
			id, err := strconv.ParseInt(rawID, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", rawID)
			}
			// Fail early if the task does not exist.
			if _, err := storageAdapter.Tasks().FindByID(ctx, id); err != nil {
				return fmt.Errorf("failed to find task: %w", err)
			}
			if err := engine.SetTask(&id); err != nil {
				return err
			}
		}

		// Git context is display-only; detection failures just hide it.
		var gitInfo *ports.GitInfo
		if workingDir, err := os.Getwd(); err == nil {
			gitInfo, _ = gitDetector.Detect(ctx, workingDir)
		}

		return tui.Run(ctx, engine, storageAdapter, notifier, appConfig.Theme, gitInfo)
	},
}

func init() {
	startCmd.Flags().StringVarP(&startTaskID, "task", "t", "", "Task ID to associate with work sessions")
}
