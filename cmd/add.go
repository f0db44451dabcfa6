package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomotui/internal/domain"
)

var addDescription string

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new task",
	Long:  `Add a new task to track pomodoros against.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		// Combine all arguments as the name
		name := strings.Join(args, " ")

		task, err := domain.NewTask(name, addDescription)
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}
		if err := storageAdapter.Tasks().Create(ctx, task); err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		if jsonOutput {
			data := map[string]interface{}{
				"id":          task.ID,
				"name":        task.Name,
				"description": task.Description,
				"color":       task.Color,
				"created_at":  task.CreatedAt.Format("2006-01-02T15:04:05"),
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal task: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		fmt.Printf("✅ Task added: %s (ID: %d)\n", task.Name, task.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Description for the task")
}
