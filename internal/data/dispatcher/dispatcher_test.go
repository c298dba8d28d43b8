package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/penpal-tui/internal/backend"
	"github.com/atomicstack/penpal-tui/internal/provider"
)

func messagesEvent(ids ...string) backend.Event {
	msgs := make([]provider.Message, len(ids))
	for i, id := range ids {
		msgs[i] = provider.Message{ID: id}
	}
	return backend.Event{Kind: backend.KindMessages, Data: backend.MessageSnapshot{Messages: msgs}}
}

func TestHandleUpdatesStores(t *testing.T) {
	stores := NewStores()
	d := New(stores)

	res := d.Handle(backend.Event{Kind: backend.KindPenpals, Data: backend.PenpalSnapshot{
		Penpals: []provider.PenpalSummary{{ID: "pp-1"}, {ID: "pp-2"}},
	}})
	if !res.PenpalsUpdated {
		t.Fatalf("expected penpals update, got %#v", res)
	}
	if got := len(stores.Penpals.Entries()); got != 2 {
		t.Fatalf("expected 2 penpals, got %d", got)
	}

	res = d.Handle(backend.Event{Kind: backend.KindProfile, Data: backend.ProfileSnapshot{
		Profile: &provider.Profile{FirstName: "Ana"},
	}})
	if !res.ProfileUpdated || stores.Profile.Profile().FirstName != "Ana" {
		t.Fatalf("expected profile stored, got %#v", res)
	}

	res = d.Handle(backend.Event{Kind: backend.KindSessions, Data: backend.SessionSnapshot{
		Sessions: []provider.Session{{ID: "s1"}},
	}})
	if !res.SessionsUpdated || !stores.Sessions.Loaded() {
		t.Fatalf("expected sessions stored")
	}

	res = d.Handle(backend.Event{Kind: backend.KindStats, Data: backend.StatsSnapshot{
		Stats: provider.Stats{StreakDays: 5},
	}})
	if !res.StatsUpdated || stores.Stats.Stats().StreakDays != 5 {
		t.Fatalf("expected stats stored")
	}
}

func TestHandleIgnoresLoadingAndErrors(t *testing.T) {
	stores := NewStores()
	d := New(stores)
	d.Handle(backend.Event{Kind: backend.KindPenpals, Data: backend.PenpalSnapshot{
		Penpals: []provider.PenpalSummary{{ID: "pp-1"}},
	}})

	res := d.Handle(backend.Event{Kind: backend.KindPenpals, Loading: true})
	if res.PenpalsUpdated {
		t.Fatalf("expected loading event to be ignored")
	}
	res = d.Handle(backend.Event{Kind: backend.KindPenpals, Err: errors.New("offline"), Data: backend.PenpalSnapshot{}})
	if res.PenpalsUpdated {
		t.Fatalf("expected error event to be ignored")
	}
	if got := len(stores.Penpals.Entries()); got != 1 {
		t.Fatalf("expected last good data kept, got %d entries", got)
	}
}

func TestHandleIgnoresMismatchedPayload(t *testing.T) {
	d := New(NewStores())
	res := d.Handle(backend.Event{Kind: backend.KindMessages, Data: backend.PenpalSnapshot{}})
	if res.MessagesUpdated {
		t.Fatalf("expected mismatched payload to be ignored")
	}
}

func TestNewMessagesAfterBaseline(t *testing.T) {
	d := New(NewStores())

	res := d.Handle(messagesEvent("msg-2", "msg-1"))
	if len(res.NewMessages) != 0 {
		t.Fatalf("expected baseline snapshot to report nothing new, got %#v", res.NewMessages)
	}

	res = d.Handle(messagesEvent("msg-2", "msg-1"))
	if len(res.NewMessages) != 0 {
		t.Fatalf("expected identical snapshot to report nothing new")
	}

	res = d.Handle(messagesEvent("msg-42", "msg-2", "msg-1"))
	if len(res.NewMessages) != 1 || res.NewMessages[0].ID != "msg-42" {
		t.Fatalf("expected msg-42 reported as new, got %#v", res.NewMessages)
	}

	res = d.Handle(messagesEvent("msg-42", "msg-2"))
	if len(res.NewMessages) != 0 {
		t.Fatalf("expected shrinking snapshot to report nothing new")
	}
}

func TestEmptyFirstSnapshotStillSetsBaseline(t *testing.T) {
	d := New(NewStores())
	d.Handle(messagesEvent())
	res := d.Handle(messagesEvent("msg-1"))
	if len(res.NewMessages) != 1 {
		t.Fatalf("expected message after empty baseline to be new, got %#v", res.NewMessages)
	}
}
