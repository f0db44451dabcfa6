// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/pomotui/internal/config"
	"github.com/xvierd/pomotui/internal/domain"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg *config.NotificationConfig
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Notify displays a desktop notification if enabled, with an optional
// alert sound.
func (n *Notifier) Notify(title, message string) error {
	if n.cfg == nil || !n.cfg.Enabled {
		return nil
	}

	if n.cfg.Sound {
		_ = beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
	}
	return beeep.Notify(title, message, "")
}

// NotifySessionComplete announces a finished phase and what comes next.
func (n *Notifier) NotifySessionComplete(t domain.SessionType, minutes int) error {
	if t.IsBreak() {
		return n.Notify("☕ Break Over!", "Your break is complete. Ready to focus?")
	}
	message := fmt.Sprintf("Great job! You completed a %d minute work session.", minutes)
	return n.Notify("🍅 Pomodoro Complete!", message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
