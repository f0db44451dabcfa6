package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomotui/internal/domain"
)

var listAll bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long:  `List open tasks with their pomodoro counts, or all tasks with --all.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		tasks, err := storageAdapter.Tasks().FindAll(ctx, listAll)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if jsonOutput {
			var taskList []map[string]interface{}
			for _, task := range tasks {
				taskList = append(taskList, map[string]interface{}{
					"id":             task.ID,
					"name":           task.Name,
					"description":    task.Description,
					"pomodoro_count": task.PomodoroCount,
					"completed":      task.IsCompleted(),
					"created_at":     task.CreatedAt.Format("2006-01-02T15:04:05"),
				})
			}
			data := map[string]interface{}{
				"tasks": taskList,
				"count": len(taskList),
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal tasks: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		fmt.Printf("📋 Tasks (%d):\n\n", len(tasks))
		for _, task := range tasks {
			fmt.Printf("%s %s (ID: %d, 🍅 %d)\n", taskIcon(task), task.Name, task.ID, task.PomodoroCount)
			if task.Description != "" {
				fmt.Printf("   %s\n", task.Description)
			}
		}

		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "List all tasks (default: open only)")
}

func taskIcon(task *domain.Task) string {
	if task.IsCompleted() {
		return "✅"
	}
	return "⏳"
}
