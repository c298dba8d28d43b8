// Package notify sends desktop notifications when new messages arrive.
package notify

import (
	"fmt"
	"strings"

	"github.com/atomicstack/penpal-tui/internal/logging/events"
	"github.com/atomicstack/penpal-tui/internal/provider"
	"github.com/gen2brain/beeep"
)

const appTitle = "Penpal"

const previewLength = 80

// Notifier delivers a single notification.
type Notifier interface {
	Notify(title, body string) error
}

// Desktop sends notifications through the platform notification service
// (D-Bus or notify-send on Linux, AppleScript on macOS, WinRT on Windows).
type Desktop struct{}

func (Desktop) Notify(title, body string) error {
	if err := beeep.Notify(title, body, ""); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(string, string) error { return nil }

// Func adapts a plain function to Notifier.
type Func func(title, body string) error

func (f Func) Notify(title, body string) error { return f(title, body) }

// MessageArrived announces msg and traces the outcome.
func MessageArrived(n Notifier, msg provider.Message) error {
	if n == nil {
		return nil
	}
	title := appTitle
	if from := strings.TrimSpace(msg.From); from != "" {
		title = fmt.Sprintf("%s: new message from %s", appTitle, from)
	}
	err := n.Notify(title, Preview(msg.Body, previewLength))
	if err != nil {
		events.Notify.Failed(err)
		return err
	}
	events.Notify.Sent(title)
	return nil
}

// Preview collapses whitespace in body and cuts it to at most limit runes,
// appending an ellipsis when shortened.
func Preview(body string, limit int) string {
	flat := strings.Join(strings.Fields(body), " ")
	runes := []rune(flat)
	if limit <= 0 || len(runes) <= limit {
		return flat
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}
