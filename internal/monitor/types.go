package monitor

import "github.com/raaihank/clip-sentinel/internal/logger"

// Clipboard is the boundary to the platform clipboard. Implementations
// live in the GUI shell; this package only needs to read the current text
// and write a replacement back.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// Notifier receives user-facing notifications when the clipboard is
// rewritten. GUI shells plug in a tray-message implementation.
type Notifier interface {
	Notify(title, message string)
}

// LogNotifier routes notifications to the log. It is the default when no
// shell notifier is wired in.
type LogNotifier struct {
	Logger *logger.Logger
}

func (n *LogNotifier) Notify(title, message string) {
	n.Logger.Info(title + ": " + message)
}
