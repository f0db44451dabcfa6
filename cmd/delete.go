package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var deleteForce bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete [task-id]",
	Short: "Delete a task",
	Long: `Delete a task permanently. Session history recorded against the task
is kept; those sessions lose their task association.`,
	Args: cobra.ExactArgs(1),
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

		if !deleteForce {
			fmt.Printf("Delete task %q? [y/N] ", task.Name)
			var answer string
			_, _ = fmt.Scanln(&answer)
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := storageAdapter.Tasks().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		fmt.Printf("🗑️  Task deleted: %s\n", task.Name)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Delete without confirmation")
}
