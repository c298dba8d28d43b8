// Package nav holds the single source of truth for top-level navigation: the
// active tab and an optional pending deep link that a destination screen
// consumes exactly once.
//
// One State is created at startup and handed to every screen by pointer.
// Mutations notify subscribers synchronously so the tab container (and the
// trace logger) can react without polling.
package nav

import (
	"strings"
	"sync"
)

// Snapshot is an immutable copy of the navigation state.
type Snapshot struct {
	CurrentTab        Tab
	PendingDeepLinkID string
}

// HasPendingDeepLink reports whether a deep link is waiting to be consumed.
func (s Snapshot) HasPendingDeepLink() bool {
	return s.PendingDeepLinkID != ""
}

// Change describes a single mutation.
type Change struct {
	Previous Snapshot
	Current  Snapshot
}

// TabChanged reports whether the mutation switched tabs.
func (c Change) TabChanged() bool {
	return c.Previous.CurrentTab != c.Current.CurrentTab
}

// DeepLinkChanged reports whether the pending deep link was set, replaced or
// cleared.
func (c Change) DeepLinkChanged() bool {
	return c.Previous.PendingDeepLinkID != c.Current.PendingDeepLinkID
}

// Listener observes navigation changes.
type Listener func(Change)

type subscription struct {
	id int
	fn Listener
}

// State is the shared navigation record.
type State struct {
	mu        sync.Mutex
	current   Tab
	pending   string
	listeners []subscription
	nextID    int
}

// New creates the navigation state starting at initial. Invalid tabs fall
// back to TabHome.
func New(initial Tab) *State {
	if !initial.Valid() {
		initial = TabHome
	}
	return &State{current: initial}
}

// CurrentTab returns the active tab.
func (s *State) CurrentTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// PendingDeepLink returns the pending deep link without consuming it.
func (s *State) PendingDeepLink() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending, s.pending != ""
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{CurrentTab: s.current, PendingDeepLinkID: s.pending}
}

// SetCurrentTab makes tab the active destination. Invalid values are ignored.
func (s *State) SetCurrentTab(tab Tab) {
	if !tab.Valid() {
		return
	}
	s.mutate(func() { s.current = tab })
}

// SetPendingDeepLink stores id as the pending deep link, replacing any
// previous one. A blank id clears it.
func (s *State) SetPendingDeepLink(id string) {
	id = strings.TrimSpace(id)
	s.mutate(func() { s.pending = id })
}

// ClearPendingDeepLink drops any pending deep link.
func (s *State) ClearPendingDeepLink() {
	s.mutate(func() { s.pending = "" })
}

// ConsumePendingDeepLink returns the pending deep link and clears it in the
// same critical section, so each link is delivered at most once.
func (s *State) ConsumePendingDeepLink() (string, bool) {
	var id string
	s.mutate(func() {
		id = s.pending
		s.pending = ""
	})
	return id, id != ""
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *State) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *State) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.listeners {
		if sub.id == id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

// mutate applies fn under the lock and notifies listeners outside it when
// the snapshot changed.
func (s *State) mutate(fn func()) {
	s.mu.Lock()
	prev := s.snapshotLocked()
	fn()
	next := s.snapshotLocked()
	if prev == next {
		s.mu.Unlock()
		return
	}
	listeners := make([]Listener, len(s.listeners))
	for i, sub := range s.listeners {
		listeners[i] = sub.fn
	}
	s.mu.Unlock()

	change := Change{Previous: prev, Current: next}
	for _, fn := range listeners {
		fn(change)
	}
}
