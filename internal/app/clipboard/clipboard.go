// Package clipboard wraps the system clipboard behind a small port so the
// submission flow can be tested without touching the real clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Writer places text on the system clipboard. Last write wins; there is no
// locking across writers.
type Writer interface {
	Write(text string) error
}

// SystemClipboard writes through to the OS clipboard.
type SystemClipboard struct{}

// NewSystemClipboard creates the production clipboard writer.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

func (s *SystemClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}
