// Package config provides configuration management for Pomotui.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/xvierd/pomotui/internal/domain"
)

// Config holds all configuration for the Pomotui application.
type Config struct {
	FirstRun      bool               `mapstructure:"first_run"`
	Timer         TimerSettings      `mapstructure:"timer"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Theme         ThemeConfig        `mapstructure:"theme"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Export        ExportConfig       `mapstructure:"export"`
}

// TimerSettings holds the pomodoro cycle durations.
type TimerSettings struct {
	WorkDuration       Duration `mapstructure:"work_duration"`
	ShortBreak         Duration `mapstructure:"short_break"`
	LongBreak          Duration `mapstructure:"long_break"`
	SessionsBeforeLong int      `mapstructure:"sessions_before_long"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// ThemeConfig holds the timer display colors.
type ThemeConfig struct {
	ColorWork   string `mapstructure:"color_work"`
	ColorBreak  string `mapstructure:"color_break"`
	ColorPaused string `mapstructure:"color_paused"`
	ColorTask   string `mapstructure:"color_task"`
	ColorHelp   string `mapstructure:"color_help"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorWork:   "#E06C75",
		ColorBreak:  "#4ECDC4",
		ColorPaused: "#6B7280",
		ColorTask:   "#A0AEC0",
		ColorHelp:   "#95A5A6",
	}
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// ExportConfig holds export settings.
type ExportConfig struct {
	Directory string `mapstructure:"directory"`
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		FirstRun: true,
		Timer: TimerSettings{
			WorkDuration:       Duration(25 * time.Minute),
			ShortBreak:         Duration(5 * time.Minute),
			LongBreak:          Duration(15 * time.Minute),
			SessionsBeforeLong: 4,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Theme: DefaultThemeConfig(),
		Storage: StorageConfig{
			DataDir: "~/.pomotui",
		},
		Export: ExportConfig{
			Directory: "",
		},
	}
}

// ToTimerConfig converts the timer section to the domain configuration.
func (c *Config) ToTimerConfig() domain.TimerConfig {
	return domain.TimerConfig{
		WorkDuration:       time.Duration(c.Timer.WorkDuration),
		ShortBreakDuration: time.Duration(c.Timer.ShortBreak),
		LongBreakDuration:  time.Duration(c.Timer.LongBreak),
		SessionsBeforeLong: c.Timer.SessionsBeforeLong,
	}
}

// Load loads the configuration from the config file, creating it with
// defaults on first run. Timer values are validated before returning.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.ToTimerConfig().Validate(); err != nil {
		return nil, fmt.Errorf("invalid timer settings in %s: %w", configPath, err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.pomotui" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".pomotui")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("first_run", cfg.FirstRun)
	viper.Set("timer.work_duration", cfg.Timer.WorkDuration.String())
	viper.Set("timer.short_break", cfg.Timer.ShortBreak.String())
	viper.Set("timer.long_break", cfg.Timer.LongBreak.String())
	viper.Set("timer.sessions_before_long", cfg.Timer.SessionsBeforeLong)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("theme.color_work", cfg.Theme.ColorWork)
	viper.Set("theme.color_break", cfg.Theme.ColorBreak)
	viper.Set("theme.color_paused", cfg.Theme.ColorPaused)
	viper.Set("theme.color_task", cfg.Theme.ColorTask)
	viper.Set("theme.color_help", cfg.Theme.ColorHelp)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("export.directory", cfg.Export.Directory)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomotui", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "pomotui.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("first_run", true)
	viper.SetDefault("timer.work_duration", "25m")
	viper.SetDefault("timer.short_break", "5m")
	viper.SetDefault("timer.long_break", "15m")
	viper.SetDefault("timer.sessions_before_long", 4)
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", true)
	viper.SetDefault("storage.data_dir", "~/.pomotui")
	viper.SetDefault("export.directory", "")

	defaults := DefaultThemeConfig()
	viper.SetDefault("theme.color_work", defaults.ColorWork)
	viper.SetDefault("theme.color_break", defaults.ColorBreak)
	viper.SetDefault("theme.color_paused", defaults.ColorPaused)
	viper.SetDefault("theme.color_task", defaults.ColorTask)
	viper.SetDefault("theme.color_help", defaults.ColorHelp)
}
