package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/penpal-tui/internal/app"
	"github.com/atomicstack/penpal-tui/internal/nav"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envPrefix           = "PENPAL_TUI_"
	minPollInterval     = 100 * time.Millisecond
	defaultPollInterval = 1500 * time.Millisecond
)

// ErrHelp is returned when --help was requested.
var ErrHelp = pflag.ErrHelp

// envConfig mirrors every flag; flags given on the command line win.
type envConfig struct {
	Width        int           `env:"WIDTH"`
	Height       int           `env:"HEIGHT"`
	Footer       bool          `env:"FOOTER"`
	Trace        bool          `env:"TRACE"`
	Verbose      bool          `env:"VERBOSE"`
	LogFile      string        `env:"LOG_FILE"`
	Fixtures     string        `env:"FIXTURES"`
	Tab          string        `env:"TAB" envDefault:"home"`
	OpenMessage  string        `env:"OPEN_MESSAGE"`
	PollInterval time.Duration `env:"POLL_INTERVAL"`
	Notify       bool          `env:"NOTIFY"`
}

type flagValues struct {
	width        *int
	height       *int
	footer       *bool
	trace        *bool
	verbose      *bool
	logFile      *string
	fixtures     *string
	tab          *string
	openMessage  *string
	pollInterval *time.Duration
	notify       *bool
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	defaults := envConfig{PollInterval: defaultPollInterval}
	if err := env.ParseWithOptions(&defaults, env.Options{
		Environment: parseEnv(environ),
		Prefix:      envPrefix,
	}); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}

	fs, values := newFlagSet(defaults)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *values.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *values.width)
	}
	if *values.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *values.height)
	}
	tab, err := nav.ParseTab(*values.tab)
	if err != nil {
		return Config{}, fmt.Errorf("--tab: %w", err)
	}

	cfg := Config{
		App: app.Config{
			Width:        *values.width,
			Height:       *values.height,
			ShowFooter:   *values.footer,
			Verbose:      *values.verbose,
			FixturesPath: strings.TrimSpace(*values.fixtures),
			InitialTab:   tab,
			OpenMessage:  strings.TrimSpace(*values.openMessage),
			PollInterval: *values.pollInterval,
			Notify:       *values.notify,
		},
		Logging: Logging{
			FilePath: *values.logFile,
			Trace:    *values.trace,
		},
		Flags: map[string]string{
			"width":        strconv.Itoa(*values.width),
			"height":       strconv.Itoa(*values.height),
			"footer":       strconv.FormatBool(*values.footer),
			"trace":        strconv.FormatBool(*values.trace),
			"verbose":      strconv.FormatBool(*values.verbose),
			"logFile":      *values.logFile,
			"fixtures":     *values.fixtures,
			"tab":          tab.String(),
			"openMessage":  *values.openMessage,
			"pollInterval": values.pollInterval.String(),
			"notify":       strconv.FormatBool(*values.notify),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func newFlagSet(defaults envConfig) (*pflag.FlagSet, flagValues) {
	fs := pflag.NewFlagSet("penpal-tui", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.SortFlags = false
	v := flagValues{
		width:        fs.Int("width", defaults.Width, "desired viewport width in cells (0 uses terminal width)"),
		height:       fs.Int("height", defaults.Height, "desired viewport height in rows (0 uses terminal height)"),
		footer:       fs.Bool("footer", defaults.Footer, "show the key hint footer"),
		trace:        fs.Bool("trace", defaults.Trace, "enable verbose JSON trace logging"),
		verbose:      fs.Bool("verbose", defaults.Verbose, "print success messages for actions"),
		logFile:      fs.String("log-file", defaults.LogFile, "path to the log file"),
		fixtures:     fs.String("fixtures", defaults.Fixtures, "TOML fixture file to serve data from (built-in demo data when empty)"),
		tab:          fs.String("tab", defaults.Tab, "tab to open at startup: home, penpals, messages, study or profile"),
		openMessage:  fs.String("open-message", defaults.OpenMessage, "message id to open once the messages tab is shown"),
		pollInterval: fs.Duration("poll-interval", defaults.PollInterval, "how often providers are polled"),
		notify:       fs.Bool("notify", defaults.Notify, "send a desktop notification when a new message arrives"),
	}
	return fs, v
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values
}

// Usage returns the flag help text.
func Usage() string {
	fs, _ := newFlagSet(envConfig{Tab: nav.TabHome.String(), PollInterval: defaultPollInterval})
	return "Usage: penpal-tui [flags]\n\n" + fs.FlagUsages()
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if errors.Is(err, ErrHelp) {
		fmt.Fprint(os.Stdout, Usage())
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.PollInterval < minPollInterval {
		return fmt.Errorf("poll interval must be at least %s (got %s)", minPollInterval, cfg.App.PollInterval)
	}
	if !cfg.App.InitialTab.Valid() {
		return fmt.Errorf("invalid initial tab %s", cfg.App.InitialTab)
	}
	return nil
}
