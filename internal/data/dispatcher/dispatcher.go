package dispatcher

import (
	"github.com/atomicstack/penpal-tui/internal/backend"
	"github.com/atomicstack/penpal-tui/internal/provider"
	"github.com/atomicstack/penpal-tui/internal/state"
)

type Result struct {
	ProfileUpdated  bool
	PenpalsUpdated  bool
	MessagesUpdated bool
	SessionsUpdated bool
	StatsUpdated    bool
	// NewMessages lists messages that were absent from every earlier
	// snapshot, in provider order. The first snapshot only establishes the
	// baseline and never reports anything as new.
	NewMessages []provider.Message
}

// Stores groups the data stores the dispatcher writes to.
type Stores struct {
	Profile  state.ProfileStore
	Penpals  state.PenpalStore
	Messages state.MessageStore
	Sessions state.SessionStore
	Stats    state.StatsStore
}

// NewStores creates an empty set of stores.
func NewStores() Stores {
	return Stores{
		Profile:  state.NewProfileStore(),
		Penpals:  state.NewPenpalStore(),
		Messages: state.NewMessageStore(),
		Sessions: state.NewSessionStore(),
		Stats:    state.NewStatsStore(),
	}
}

type Dispatcher struct {
	stores   Stores
	seen     map[string]struct{}
	baseline bool
}

func New(stores Stores) *Dispatcher {
	return &Dispatcher{stores: stores, seen: make(map[string]struct{})}
}

// Handle applies a backend event to the stores. Loading and error events
// leave the stores untouched so the last good data stays visible.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil || evt.Loading {
		return res
	}
	switch evt.Kind {
	case backend.KindProfile:
		if snapshot, ok := evt.Data.(backend.ProfileSnapshot); ok {
			d.stores.Profile.SetProfile(snapshot.Profile)
			res.ProfileUpdated = true
		}
	case backend.KindPenpals:
		if snapshot, ok := evt.Data.(backend.PenpalSnapshot); ok {
			d.stores.Penpals.SetEntries(snapshot.Penpals)
			res.PenpalsUpdated = true
		}
	case backend.KindMessages:
		if snapshot, ok := evt.Data.(backend.MessageSnapshot); ok {
			res.NewMessages = d.detectNew(snapshot.Messages)
			d.stores.Messages.SetEntries(snapshot.Messages)
			res.MessagesUpdated = true
		}
	case backend.KindSessions:
		if snapshot, ok := evt.Data.(backend.SessionSnapshot); ok {
			d.stores.Sessions.SetEntries(snapshot.Sessions)
			res.SessionsUpdated = true
		}
	case backend.KindStats:
		if snapshot, ok := evt.Data.(backend.StatsSnapshot); ok {
			d.stores.Stats.SetStats(snapshot.Stats)
			res.StatsUpdated = true
		}
	}
	return res
}

func (d *Dispatcher) detectNew(messages []provider.Message) []provider.Message {
	var fresh []provider.Message
	for _, msg := range messages {
		if _, ok := d.seen[msg.ID]; ok {
			continue
		}
		d.seen[msg.ID] = struct{}{}
		if d.baseline {
			fresh = append(fresh, msg)
		}
	}
	d.baseline = true
	return fresh
}
