package command

import (
	"context"
	"time"

	"github.com/atomicstack/penpal-tui/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultTimeout = 10 * time.Second

// Handler performs one provider action off the UI loop.
type Handler func(ctx context.Context) error

// Request encapsulates an action invocation. ID identifies the action kind
// (for example "penpals.refresh"); Target is the entity it acts on, if any.
type Request struct {
	ID      string
	Label   string
	Target  string
	Handler Handler
}

// Result reports the outcome of a Request back to the model.
type Result struct {
	ID     string
	Label  string
	Target string
	Err    error
}

// Bus coordinates the execution of provider actions.
type Bus struct {
	timeout time.Duration
}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{timeout: defaultTimeout}
}

// WithTimeout returns a bus whose handlers are cancelled after d.
func (b *Bus) WithTimeout(d time.Duration) *Bus {
	return &Bus{timeout: d}
}

// Execute wraps a handler into a Bubble Tea command while emitting trace
// logs. The command always yields a Result so the model can clear its
// pending state.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	timeout := defaultTimeout
	if b != nil && b.timeout > 0 {
		timeout = b.timeout
	}
	return func() tea.Msg {
		res := Result{ID: req.ID, Label: req.Label, Target: req.Target}
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return res
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res.Err = req.Handler(ctx)
		events.Command.Result(req.ID, req.Label, res.Err)
		return res
	}
}
