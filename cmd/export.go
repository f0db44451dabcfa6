package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomotui/internal/export"
	"github.com/xvierd/pomotui/internal/ports"
)

var (
	exportFormat string
	exportDir    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session history",
	Long: `Export your tasks, session history and weekly statistics. JSON exports
carry a snapshot ID and a stable per-install ID; CSV exports hold the raw
session rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json or csv")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Output directory (default: config export dir or ~/Documents)")
}

func runExport(ctx context.Context) error {
	dir := exportDir
	if dir == "" {
		dir = appConfig.Export.Directory
	}
	if dir == "" {
		var err error
		dir, err = export.DefaultDir()
		if err != nil {
			return err
		}
	}

	sessions, err := storageAdapter.Sessions().Find(ctx, ports.SessionFilter{})
	if err != nil {
		return fmt.Errorf("failed to fetch sessions: %w", err)
	}
	tasks, err := storageAdapter.Tasks().FindAll(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to fetch tasks: %w", err)
	}

	now := time.Now()

	var path string
	switch exportFormat {
	case "csv":
		path, err = export.WriteSessionsCSV(dir, sessions, tasks, now)
	default:
		installID, idErr := export.EnsureInstallID(ctx, storageAdapter.Settings())
		if idErr != nil {
			// The snapshot is still useful without a stable install id.
			installID = ""
		}
		week := aggregator.Weekly(sessions)
		top := aggregator.TopTasks(sessions, tasks, 5)
		snap := export.NewSnapshot(installID, now, tasks, sessions, week, top)
		path, err = export.WriteJSON(dir, snap)
	}
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	fmt.Printf("📦 Exported to %s\n", path)
	return nil
}
