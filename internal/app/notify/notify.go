// Package notify surfaces desktop notifications for long-running work such
// as a recording finishing transcription.
package notify

import (
	"github.com/gen2brain/beeep"
)

// Notifier raises a user-visible notification. Implementations must be safe
// to call from any goroutine.
type Notifier interface {
	Notify(title, message string) error
}

// DesktopNotifier uses the platform notification daemon.
type DesktopNotifier struct{}

// NewDesktopNotifier creates the production notifier.
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{}
}

func (n *DesktopNotifier) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// NopNotifier discards notifications, for headless runs.
type NopNotifier struct{}

func (NopNotifier) Notify(string, string) error { return nil }
