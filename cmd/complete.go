package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// completeCmd represents the complete command
var completeCmd = &cobra.Command{
	Use:   "complete [task-id]",
	Short: "Mark a task as completed",
	Long:  `Mark a task as completed. Completed tasks are hidden from the default list.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid task id %q", args[0])
		}

		task, err := storageAdapter.Tasks().FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to find task: %w", err)
		}
		if task.IsCompleted() {
			fmt.Printf("Task %q is already completed.\n", task.Name)
			return nil
		}

		task.Complete()
		if err := storageAdapter.Tasks().Update(ctx, task); err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}

		fmt.Printf("✅ Task completed: %s (🍅 %d)\n", task.Name, task.PomodoroCount)
		return nil
	},
}
