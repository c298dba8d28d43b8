package state

import (
	"testing"

	"github.com/atomicstack/penpal-tui/internal/provider"
)

func TestPenpalStoreClonesEntries(t *testing.T) {
	store := NewPenpalStore()
	if store.Loaded() {
		t.Fatalf("expected fresh store to be unloaded")
	}
	input := []provider.PenpalSummary{{ID: "pp-1", Hobbies: []string{"go"}}}
	store.SetEntries(input)
	input[0].Hobbies[0] = "changed"
	got := store.Entries()
	if got[0].Hobbies[0] != "go" {
		t.Fatalf("expected store to own hobbies, got %q", got[0].Hobbies[0])
	}
	got[0].ID = "mutated"
	if entry, ok := store.Find("pp-1"); !ok || entry.ID != "pp-1" {
		t.Fatalf("expected find to return stored entry, got %#v", entry)
	}
	if !store.Loaded() {
		t.Fatalf("expected store to be loaded after SetEntries")
	}
}

func TestPenpalStoreEmptySnapshotStillLoaded(t *testing.T) {
	store := NewPenpalStore()
	store.SetEntries(nil)
	if !store.Loaded() || len(store.Entries()) != 0 {
		t.Fatalf("expected loaded empty store")
	}
}

func TestMessageStoreMarkOpenedAndUnread(t *testing.T) {
	store := NewMessageStore()
	store.SetEntries([]provider.Message{{ID: "m1"}, {ID: "m2", Opened: true}, {ID: "m3"}})
	if store.Unread() != 2 {
		t.Fatalf("expected 2 unread, got %d", store.Unread())
	}
	if !store.MarkOpened("m1") {
		t.Fatalf("expected first mark to report a change")
	}
	if store.MarkOpened("m1") || store.MarkOpened("m2") || store.MarkOpened("missing") {
		t.Fatalf("expected repeated, already-opened or unknown marks to be no-ops")
	}
	if store.Unread() != 1 {
		t.Fatalf("expected 1 unread, got %d", store.Unread())
	}
	if msg, ok := store.Find("m1"); !ok || !msg.Opened {
		t.Fatalf("expected m1 opened, got %#v", msg)
	}
}

func TestSessionStoreNext(t *testing.T) {
	store := NewSessionStore()
	if _, ok := store.Next(); ok {
		t.Fatalf("expected no next session")
	}
	store.SetEntries([]provider.Session{{ID: "s1"}, {ID: "s2"}})
	if next, ok := store.Next(); !ok || next.ID != "s1" {
		t.Fatalf("expected s1, got %#v", next)
	}
}

func TestProfileStoreCopies(t *testing.T) {
	store := NewProfileStore()
	if store.Profile() != nil || store.Loaded() {
		t.Fatalf("expected empty profile store")
	}
	p := &provider.Profile{FirstName: "Ana"}
	store.SetProfile(p)
	p.FirstName = "changed"
	if got := store.Profile(); got == nil || got.FirstName != "Ana" {
		t.Fatalf("expected stored copy, got %#v", got)
	}
	store.SetProfile(nil)
	if store.Profile() != nil || !store.Loaded() {
		t.Fatalf("expected nil profile to be a loaded state")
	}
}

func TestStatsStore(t *testing.T) {
	store := NewStatsStore()
	store.SetStats(provider.Stats{StreakDays: 4})
	if store.Stats().StreakDays != 4 || !store.Loaded() {
		t.Fatalf("unexpected stats %#v", store.Stats())
	}
}
