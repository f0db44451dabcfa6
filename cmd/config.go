package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomotui/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit timer durations",
	Long:  `Interactively configure work duration, break durations, the long-break interval and notifications.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)

		fmt.Println()
		fmt.Println("  Current configuration:")
		fmt.Println()
		fmt.Printf("    Work duration:         %s\n", formatMinutes(time.Duration(appConfig.Timer.WorkDuration)))
		fmt.Printf("    Short break:           %s\n", formatMinutes(time.Duration(appConfig.Timer.ShortBreak)))
		fmt.Printf("    Long break:            %s\n", formatMinutes(time.Duration(appConfig.Timer.LongBreak)))
		fmt.Printf("    Sessions before long:  %d\n", appConfig.Timer.SessionsBeforeLong)
		notifStatus := "off"
		if appConfig.Notifications.Enabled {
			notifStatus = "on"
			if appConfig.Notifications.Sound {
				notifStatus = "on (with sound)"
			}
		}
		fmt.Printf("    Notifications:         %s\n", notifStatus)
		fmt.Println()
		fmt.Println("  What would you like to change?")
		fmt.Println("    [w] Work duration")
		fmt.Println("    [b] Break durations")
		fmt.Println("    [i] Sessions before long break")
		fmt.Println("    [n] Toggle notifications")
		fmt.Println("    [q] Quit without saving")
		fmt.Print("  Choose: ")

		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(strings.ToLower(choice))

		switch choice {
		case "w":
			return editWork(reader, appConfig)
		case "b":
			return editBreaks(reader, appConfig)
		case "i":
			return editInterval(reader, appConfig)
		case "n":
			return editNotifications(reader, appConfig)
		case "q", "":
			fmt.Println("  No changes made.")
			return nil
		default:
			return fmt.Errorf("invalid choice %q", choice)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func editWork(reader *bufio.Reader, cfg *config.Config) error {
	minutes, err := promptMinutes(reader, "Work duration", time.Duration(cfg.Timer.WorkDuration))
	if err != nil {
		return err
	}
	cfg.Timer.WorkDuration = config.Duration(minutes)
	return saveConfig(cfg)
}

func editBreaks(reader *bufio.Reader, cfg *config.Config) error {
	short, err := promptMinutes(reader, "Short break", time.Duration(cfg.Timer.ShortBreak))
	if err != nil {
		return err
	}
	long, err := promptMinutes(reader, "Long break", time.Duration(cfg.Timer.LongBreak))
	if err != nil {
		return err
	}
	cfg.Timer.ShortBreak = config.Duration(short)
	cfg.Timer.LongBreak = config.Duration(long)
	return saveConfig(cfg)
}

func editInterval(reader *bufio.Reader, cfg *config.Config) error {
	fmt.Printf("  Sessions before long break [%d]: ", cfg.Timer.SessionsBeforeLong)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		fmt.Println("  No changes made.")
		return nil
	}

	var n int
	if _, err := fmt.Sscanf(line, "%d", &n); err != nil || n < 1 {
		return fmt.Errorf("invalid interval %q", line)
	}
	cfg.Timer.SessionsBeforeLong = n
	return saveConfig(cfg)
}

func editNotifications(reader *bufio.Reader, cfg *config.Config) error {
	cfg.Notifications.Enabled = !cfg.Notifications.Enabled
	state := "off"
	if cfg.Notifications.Enabled {
		state = "on"
	}
	fmt.Printf("  Notifications turned %s.\n", state)
	return saveConfig(cfg)
}

// promptMinutes asks for a duration in minutes, keeping the current value
// on an empty answer.
func promptMinutes(reader *bufio.Reader, label string, current time.Duration) (time.Duration, error) {
	fmt.Printf("  %s in minutes [%s]: ", label, formatMinutes(current))
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return current, nil
	}

	var minutes int
	if _, err := fmt.Sscanf(line, "%d", &minutes); err != nil || minutes < 1 {
		return 0, fmt.Errorf("invalid duration %q", line)
	}
	return time.Duration(minutes) * time.Minute, nil
}

func saveConfig(cfg *config.Config) error {
	if err := cfg.ToTimerConfig().Validate(); err != nil {
		return fmt.Errorf("invalid timer settings: %w", err)
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Println("  ✅ Saved.")
	return nil
}

func formatMinutes(d time.Duration) string {
	return fmt.Sprintf("%dm", int(d.Minutes()))
}
