package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/penpal-tui/internal/backend"
	"github.com/atomicstack/penpal-tui/internal/logging/events"
	"github.com/atomicstack/penpal-tui/internal/nav"
	"github.com/atomicstack/penpal-tui/internal/notify"
	"github.com/atomicstack/penpal-tui/internal/provider"
	"github.com/atomicstack/penpal-tui/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	FixturesPath string
	InitialTab   nav.Tab
	OpenMessage  string
	PollInterval time.Duration
	Notify       bool
}

// ErrStartup marks failures that happen before the program starts.
var ErrStartup = errors.New("startup")

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	fixture, err := provider.LoadFixture(cfg.FixturesPath)
	if err != nil {
		return fmt.Errorf("%w: load fixtures: %w", ErrStartup, err)
	}
	providers := provider.FromFixture(fixture)

	watcher := backend.NewWatcher(providers, cfg.PollInterval)
	defer watcher.Stop()

	state := nav.New(cfg.InitialTab)
	detach := events.Nav.Observe(state)
	defer detach()
	if cfg.OpenMessage != "" {
		state.SetPendingDeepLink(cfg.OpenMessage)
	}

	model := ui.NewModel(newModelOptions(cfg, state, providers, watcher))
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen())
	model.AttachSender(program.Send)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func newModelOptions(cfg Config, state *nav.State, providers provider.Providers, watcher *backend.Watcher) ui.Options {
	var notifier notify.Notifier = notify.Nop{}
	if cfg.Notify {
		notifier = notify.Desktop{}
	}
	return ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Nav:        state,
		Providers:  providers,
		Watcher:    watcher,
		Notifier:   notifier,
	}
}
