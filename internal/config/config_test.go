package config

import (
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/penpal-tui/internal/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, nav.TabHome, cfg.App.InitialTab)
	assert.Equal(t, defaultPollInterval, cfg.App.PollInterval)
	assert.False(t, cfg.App.ShowFooter)
	assert.Empty(t, cfg.App.FixturesPath)
	assert.Equal(t, "home", cfg.Flags["tab"])
	require.NoError(t, Validate(cfg))
}

func TestLoadArgsFlags(t *testing.T) {
	args := []string{
		"--width", "90", "--height", "30", "--footer", "--trace",
		"--log-file", "/tmp/penpal.log", "--fixtures", "demo.toml",
		"--tab", "Messages", "--open-message", "msg-42",
		"--poll-interval", "2s", "--notify",
	}
	cfg, err := LoadArgs(args, nil)
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.App.Width)
	assert.Equal(t, 30, cfg.App.Height)
	assert.True(t, cfg.App.ShowFooter)
	assert.True(t, cfg.Logging.Trace)
	assert.Equal(t, "/tmp/penpal.log", cfg.Logging.FilePath)
	assert.Equal(t, "demo.toml", cfg.App.FixturesPath)
	assert.Equal(t, nav.TabMessages, cfg.App.InitialTab)
	assert.Equal(t, "msg-42", cfg.App.OpenMessage)
	assert.Equal(t, 2*time.Second, cfg.App.PollInterval)
	assert.True(t, cfg.App.Notify)
	assert.Equal(t, args, cfg.Args)
}

func TestLoadArgsEnvironment(t *testing.T) {
	environ := []string{
		"PENPAL_TUI_WIDTH=70",
		"PENPAL_TUI_FOOTER=true",
		"PENPAL_TUI_TAB=study",
		"PENPAL_TUI_POLL_INTERVAL=750ms",
		"UNRELATED=1",
	}
	cfg, err := LoadArgs(nil, environ)
	require.NoError(t, err)
	assert.Equal(t, 70, cfg.App.Width)
	assert.True(t, cfg.App.ShowFooter)
	assert.Equal(t, nav.TabStudy, cfg.App.InitialTab)
	assert.Equal(t, 750*time.Millisecond, cfg.App.PollInterval)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := LoadArgs([]string{"--width", "40", "--tab", "profile"}, []string{"PENPAL_TUI_WIDTH=70", "PENPAL_TUI_TAB=study"})
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.App.Width)
	assert.Equal(t, nav.TabProfile, cfg.App.InitialTab)
}

func TestLoadArgsRejectsInvalidValues(t *testing.T) {
	cases := map[string]struct {
		args    []string
		environ []string
	}{
		"negative width":  {args: []string{"--width", "-1"}},
		"negative height": {args: []string{"--height", "-5"}},
		"unknown tab":     {args: []string{"--tab", "inbox"}},
		"bad env width":   {environ: []string{"PENPAL_TUI_WIDTH=wide"}},
		"unknown flag":    {args: []string{"--socket", "x"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadArgs(tc.args, tc.environ)
			assert.Error(t, err)
		})
	}
}

func TestUnknownTabSuggestsClosest(t *testing.T) {
	_, err := LoadArgs([]string{"--tab", "mesages"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, nav.ErrUnknownTab))
	assert.Contains(t, err.Error(), `"messages"`)
}

func TestHelpFlag(t *testing.T) {
	_, err := LoadArgs([]string{"--help"}, nil)
	assert.ErrorIs(t, err, ErrHelp)
	assert.Contains(t, Usage(), "--poll-interval")
}

func TestValidateRejectsFastPolling(t *testing.T) {
	cfg, err := LoadArgs([]string{"--poll-interval", "10ms"}, nil)
	require.NoError(t, err)
	assert.Error(t, Validate(cfg))
}
