package nav

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Tab identifies one of the fixed top-level destinations.
type Tab int

const (
	TabHome Tab = iota
	TabPenpals
	TabMessages
	TabStudy
	TabProfile
)

// maxSuggestDistance bounds how far a mistyped tab id may be from a real one
// before ParseTab stops suggesting it.
const maxSuggestDistance = 3

var ErrUnknownTab = errors.New("unknown tab")

var tabIDs = [...]string{
	TabHome:     "home",
	TabPenpals:  "penpals",
	TabMessages: "messages",
	TabStudy:    "study",
	TabProfile:  "profile",
}

var tabTitles = [...]string{
	TabHome:     "Home",
	TabPenpals:  "Penpals",
	TabMessages: "Messages",
	TabStudy:    "Study",
	TabProfile:  "Profile",
}

// Tabs returns every tab in display order.
func Tabs() []Tab {
	return []Tab{TabHome, TabPenpals, TabMessages, TabStudy, TabProfile}
}

// Valid reports whether t is a member of the tab set.
func (t Tab) Valid() bool {
	return t >= TabHome && t <= TabProfile
}

// String returns the stable identifier used in flags and trace logs.
func (t Tab) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tab(%d)", int(t))
	}
	return tabIDs[t]
}

// Title returns the label shown in the tab bar.
func (t Tab) Title() string {
	if !t.Valid() {
		return ""
	}
	return tabTitles[t]
}

// Index is the zero-based position of the tab in the tab bar.
func (t Tab) Index() int {
	return int(t)
}

// Next returns the tab after t, wrapping from the last tab to the first.
func (t Tab) Next() Tab {
	return tabAt(int(t) + 1)
}

// Prev returns the tab before t, wrapping from the first tab to the last.
func (t Tab) Prev() Tab {
	return tabAt(int(t) - 1)
}

func tabAt(i int) Tab {
	n := len(tabIDs)
	return Tab(((i % n) + n) % n)
}

// TabAt returns the tab at the given position, reporting false when the
// position is out of range.
func TabAt(i int) (Tab, bool) {
	t := Tab(i)
	if !t.Valid() {
		return TabHome, false
	}
	return t, true
}

// ParseTab maps an identifier such as "messages" to its Tab. Unknown
// identifiers wrap ErrUnknownTab and name the closest valid id when there is
// a plausible one.
func ParseTab(s string) (Tab, error) {
	id := strings.ToLower(strings.TrimSpace(s))
	for i, candidate := range tabIDs {
		if candidate == id {
			return Tab(i), nil
		}
	}
	if suggestion := closestTabID(id); suggestion != "" {
		return TabHome, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownTab, s, suggestion)
	}
	return TabHome, fmt.Errorf("%w %q (valid: %s)", ErrUnknownTab, s, strings.Join(tabIDs[:], ", "))
}

func closestTabID(id string) string {
	if id == "" {
		return ""
	}
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, candidate := range tabIDs {
		d := levenshtein.ComputeDistance(id, candidate)
		if d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	return best
}
