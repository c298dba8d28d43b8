package main

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/atomicstack/penpal-tui/internal/app"
	"github.com/atomicstack/penpal-tui/internal/config"
	"github.com/atomicstack/penpal-tui/internal/nav"
)

func TestProbeTTYIncludesStandardDescriptors(t *testing.T) {
	info := probeTTY()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	for i, name := range []string{"stdin", "stdout", "stderr"} {
		if info.Probes[i].Source != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Source)
		}
	}
}

func TestExitCode(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"clean":   {nil, 0},
		"startup": {fmt.Errorf("%w: load fixtures: %w", app.ErrStartup, errors.New("boom")), 2},
		"runtime": {errors.New("program crashed"), 1},
	}
	for name, tc := range cases {
		if got := exitCode(tc.err); got != tc.want {
			t.Fatalf("%s: expected exit code %d, got %d", name, tc.want, got)
		}
	}
}

func TestSessionContext(t *testing.T) {
	s := newSessionContext(app.Config{InitialTab: nav.TabHome, PollInterval: 1500 * time.Millisecond}, ttyDetails{})
	if s.Fixtures != embeddedFixture {
		t.Fatalf("expected embedded fixtures, got %q", s.Fixtures)
	}
	if s.InitialTab != "home" || s.PollInterval != "1.5s" || s.Size != "unknown" {
		t.Fatalf("unexpected session context %#v", s)
	}

	tty := ttyDetails{Detected: &ttySize{Source: "stdout", Terminal: true, Width: 120, Height: 40}}
	s = newSessionContext(app.Config{InitialTab: nav.TabMessages}, tty)
	if s.Size != "stdout 120x40" {
		t.Fatalf("expected detected size, got %q", s.Size)
	}
	s = newSessionContext(app.Config{InitialTab: nav.TabMessages, Width: 80, Height: 24}, tty)
	if s.Size != "fixed 80x24" {
		t.Fatalf("expected configured size to win, got %q", s.Size)
	}
}

func TestStartupTracePayloadIncludesSession(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Width:        80,
			Height:       24,
			ShowFooter:   true,
			FixturesPath: "demo.toml",
			InitialTab:   nav.TabMessages,
			OpenMessage:  "msg-42",
			PollInterval: 2 * time.Second,
		},
		Logging: config.Logging{FilePath: "trace.log", Trace: true},
		Flags:   map[string]string{"fixtures": "demo.toml", "tab": "messages", "openMessage": "msg-42"},
		Args:    []string{"--fixtures", "demo.toml", "--tab", "messages", "--open-message", "msg-42"},
	}

	payload := startupTracePayload(cfg)

	flags, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flags["tab"] != "messages" || flags["trace"] != true || flags["logFile"] != "trace.log" {
		t.Fatalf("unexpected flags %#v", flags)
	}
	session, ok := payload["session"].(sessionContext)
	if !ok {
		t.Fatalf("expected session context in payload")
	}
	want := sessionContext{
		Fixtures:     "demo.toml",
		InitialTab:   "messages",
		OpenMessage:  "msg-42",
		PollInterval: "2s",
		Size:         "fixed 80x24",
	}
	if session != want {
		t.Fatalf("expected session %#v, got %#v", want, session)
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
}
