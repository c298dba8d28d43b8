package nav

import (
	"errors"
	"strings"
	"testing"
)

func TestTabsAreOrderedAndValid(t *testing.T) {
	want := []string{"home", "penpals", "messages", "study", "profile"}
	tabs := Tabs()
	if len(tabs) != len(want) {
		t.Fatalf("expected %d tabs, got %d", len(want), len(tabs))
	}
	for i, tab := range tabs {
		if !tab.Valid() {
			t.Fatalf("expected tab %d to be valid", i)
		}
		if tab.String() != want[i] {
			t.Fatalf("expected tab %d to be %q, got %q", i, want[i], tab.String())
		}
		if tab.Index() != i {
			t.Fatalf("expected index %d, got %d", i, tab.Index())
		}
		if tab.Title() == "" {
			t.Fatalf("expected title for %s", tab)
		}
	}
}

func TestNextPrevWrap(t *testing.T) {
	if got := TabProfile.Next(); got != TabHome {
		t.Fatalf("expected profile.Next to wrap to home, got %s", got)
	}
	if got := TabHome.Prev(); got != TabProfile {
		t.Fatalf("expected home.Prev to wrap to profile, got %s", got)
	}
	if got := TabPenpals.Next(); got != TabMessages {
		t.Fatalf("expected penpals.Next to be messages, got %s", got)
	}
}

func TestTabAt(t *testing.T) {
	if tab, ok := TabAt(2); !ok || tab != TabMessages {
		t.Fatalf("expected messages at 2, got %s/%v", tab, ok)
	}
	if _, ok := TabAt(5); ok {
		t.Fatalf("expected out of range index to fail")
	}
	if _, ok := TabAt(-1); ok {
		t.Fatalf("expected negative index to fail")
	}
}

func TestParseTab(t *testing.T) {
	cases := []struct {
		in      string
		want    Tab
		wantErr bool
		hint    string
	}{
		{in: "home", want: TabHome},
		{in: " Messages ", want: TabMessages},
		{in: "PROFILE", want: TabProfile},
		{in: "mesages", wantErr: true, hint: `did you mean "messages"`},
		{in: "pen", wantErr: true},
		{in: "calendar", wantErr: true, hint: "valid:"},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseTab(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.in)
			}
			if !errors.Is(err, ErrUnknownTab) {
				t.Fatalf("expected ErrUnknownTab for %q, got %v", tc.in, err)
			}
			if tc.hint != "" && !strings.Contains(err.Error(), tc.hint) {
				t.Fatalf("expected %q in error, got %v", tc.hint, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("expected %s for %q, got %s", tc.want, tc.in, got)
		}
	}
}

func TestInvalidTabString(t *testing.T) {
	if got := Tab(9).String(); got != "tab(9)" {
		t.Fatalf("expected tab(9), got %q", got)
	}
	if got := Tab(9).Title(); got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
}
