// Package notification delivers best-effort desktop notifications. Delivery
// failures are swallowed at the call site and never escalate; a failed
// notification must not take down the job runner.
package notification

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	"taskdash/domain/repository"
	"taskdash/infrastructure/logger"
)

type Notifier struct{}

func NewNotifier() *Notifier { return &Notifier{} }

// Notify attempts platform notification delivery and always returns.
func (n *Notifier) Notify(title, message string) {
	defer func() {
		if r := recover(); r != nil {
			logger.GetLogger().WithField("recover", r).Warn("Notification delivery panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := "display notification " + appleQuote(message) + " with title " + appleQuote(title)
		cmd = exec.CommandContext(ctx, "osascript", "-e", script)
	case "linux":
		cmd = exec.CommandContext(ctx, "notify-send", title, message)
	default:
		logger.GetLogger().WithField("title", title).Info(message)
		return
	}

	if err := cmd.Run(); err != nil {
		// Best-effort only: log and move on.
		logger.GetLogger().WithField("error", err).WithField("title", title).Debug("Notification delivery failed")
	}
}

func appleQuote(s string) string {
	out := make([]rune, 0, len(s)+2)
	out = append(out, '"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	out = append(out, '"')
	return string(out)
}

var _ repository.INotifier = (*Notifier)(nil)
