package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/penpal-tui/internal/app"
	"github.com/atomicstack/penpal-tui/internal/config"
	"github.com/atomicstack/penpal-tui/internal/logging"
	"github.com/atomicstack/penpal-tui/internal/logging/events"
	"golang.org/x/term"
)

const embeddedFixture = "embedded"

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	events.App.Start(startupTracePayload(cfg))

	err := app.Run(cfg.App)
	events.App.Exit(err)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps a Run error to the process status: 2 for failures before
// the program started, 1 for anything after.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrStartup):
		return 2
	default:
		return 1
	}
}

// sessionContext is what the session will open with, as recorded in the
// startup trace.
type sessionContext struct {
	Fixtures     string `json:"fixtures"`
	InitialTab   string `json:"initial_tab"`
	OpenMessage  string `json:"open_message,omitempty"`
	PollInterval string `json:"poll_interval"`
	Notify       bool   `json:"notify"`
	Size         string `json:"size"`
}

func newSessionContext(cfg app.Config, tty ttyDetails) sessionContext {
	s := sessionContext{
		Fixtures:     cfg.FixturesPath,
		InitialTab:   cfg.InitialTab.String(),
		OpenMessage:  cfg.OpenMessage,
		PollInterval: cfg.PollInterval.String(),
		Notify:       cfg.Notify,
	}
	if s.Fixtures == "" {
		s.Fixtures = embeddedFixture
	}
	switch {
	case cfg.Width > 0 || cfg.Height > 0:
		s.Size = fmt.Sprintf("fixed %dx%d", cfg.Width, cfg.Height)
	case tty.Detected != nil:
		s.Size = fmt.Sprintf("%s %dx%d", tty.Detected.Source, tty.Detected.Width, tty.Detected.Height)
	default:
		s.Size = "unknown"
	}
	return s
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	tty := probeTTY()
	payload := map[string]interface{}{
		"argv":    cfg.Args,
		"flags":   flags,
		"config":  cfg,
		"session": newSessionContext(cfg.App, tty),
		"tty":     tty,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

type ttyDetails struct {
	Detected *ttySize  `json:"detected,omitempty"`
	Probes   []ttySize `json:"probes"`
}

type ttySize struct {
	Source   string `json:"source"`
	Terminal bool   `json:"terminal"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Error    string `json:"error,omitempty"`
}

var ttyFiles = []struct {
	name string
	file *os.File
}{
	{"stdin", os.Stdin},
	{"stdout", os.Stdout},
	{"stderr", os.Stderr},
}

// probeTTY reports which standard descriptors are terminals. The first one
// with a readable size is the detected size.
func probeTTY() ttyDetails {
	var out ttyDetails
	for _, f := range ttyFiles {
		probe := ttySize{Source: f.name}
		fd := int(f.file.Fd())
		if fd >= 0 && term.IsTerminal(fd) {
			probe.Terminal = true
			w, h, err := term.GetSize(fd)
			if err != nil {
				probe.Error = err.Error()
			} else {
				probe.Width, probe.Height = w, h
				if out.Detected == nil {
					detected := probe
					out.Detected = &detected
				}
			}
		}
		out.Probes = append(out.Probes, probe)
	}
	return out
}
