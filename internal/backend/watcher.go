package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/atomicstack/penpal-tui/internal/logging/events"
	"github.com/atomicstack/penpal-tui/internal/provider"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindProfile Kind = iota
	KindPenpals
	KindMessages
	KindSessions
	KindStats
)

// Kinds lists every data kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindProfile, KindPenpals, KindMessages, KindSessions, KindStats}
}

func (k Kind) String() string {
	switch k {
	case KindProfile:
		return "profile"
	case KindPenpals:
		return "penpals"
	case KindMessages:
		return "messages"
	case KindSessions:
		return "sessions"
	case KindStats:
		return "stats"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const (
	fetchTimeout     = 5 * time.Second
	throttleInterval = 250 * time.Millisecond
)

// Event conveys updated data, an error, or the start of a fetch.
type Event struct {
	Kind    Kind
	Data    interface{}
	Err     error
	Loading bool
}

type ProfileSnapshot struct {
	Profile *provider.Profile
}

type PenpalSnapshot struct {
	Penpals []provider.PenpalSummary
}

type MessageSnapshot struct {
	Messages []provider.Message
}

type SessionSnapshot struct {
	Sessions []provider.Session
}

type StatsSnapshot struct {
	Stats provider.Stats
}

type fetchFunc func(context.Context) (interface{}, error)

// Watcher polls the providers at a fixed interval and publishes events.
type Watcher struct {
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events  chan Event
	refresh map[Kind]chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher creates a watcher that polls every configured provider every
// interval. Nil provider slots are skipped.
func NewWatcher(p provider.Providers, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
		refresh:  make(map[Kind]chan struct{}),
	}

	for kind, fetch := range fetchers(p) {
		w.start(kind, fetch)
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

func fetchers(p provider.Providers) map[Kind]fetchFunc {
	out := make(map[Kind]fetchFunc, 5)
	if p.Profile != nil {
		out[KindProfile] = func(ctx context.Context) (interface{}, error) {
			profile, err := p.Profile.CurrentProfile(ctx)
			return ProfileSnapshot{Profile: profile}, err
		}
	}
	if p.Penpals != nil {
		out[KindPenpals] = func(ctx context.Context) (interface{}, error) {
			penpals, err := p.Penpals.FetchAll(ctx)
			return PenpalSnapshot{Penpals: penpals}, err
		}
	}
	if p.Messages != nil {
		out[KindMessages] = func(ctx context.Context) (interface{}, error) {
			msgs, err := p.Messages.RecentMessages(ctx)
			return MessageSnapshot{Messages: msgs}, err
		}
	}
	if p.Calendar != nil {
		out[KindSessions] = func(ctx context.Context) (interface{}, error) {
			sessions, err := p.Calendar.Upcoming(ctx)
			return SessionSnapshot{Sessions: sessions}, err
		}
	}
	if p.Study != nil {
		out[KindStats] = func(ctx context.Context) (interface{}, error) {
			stats, err := p.Study.WeeklyStats(ctx)
			return StatsSnapshot{Stats: stats}, err
		}
	}
	return out
}

// Fetch performs a single fetch of kind against p outside any watcher. It
// reports false when p has no provider for kind.
func Fetch(ctx context.Context, p provider.Providers, kind Kind) (Event, bool) {
	fetch, ok := fetchers(p)[kind]
	if !ok {
		return Event{Kind: kind}, false
	}
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	data, err := fetch(fetchCtx)
	if err != nil {
		events.Backend.Error(kind.String(), err)
	}
	return Event{Kind: kind, Data: data, Err: err}, true
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// RequestRefresh asks the poller for kind to fetch immediately. It never
// blocks; a refresh already queued absorbs the request. It reports whether a
// poller exists for kind.
func (w *Watcher) RequestRefresh(kind Kind) bool {
	if w == nil {
		return false
	}
	ch, ok := w.refresh[kind]
	if !ok {
		return false
	}
	select {
	case ch <- struct{}{}:
	default:
	}
	return true
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) start(kind Kind, fetch fetchFunc) {
	throttle := newThrottle(throttleInterval)
	refresh := make(chan struct{}, 1)
	w.refresh[kind] = refresh
	w.wg.Add(1)
	go w.poll(kind, refresh, func(ctx context.Context) (interface{}, error) {
		if !throttle.wait(ctx) {
			return nil, ctx.Err()
		}
		fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		return fetch(fetchCtx)
	})
}

func (w *Watcher) send(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}

func (w *Watcher) poll(kind Kind, refresh <-chan struct{}, fetch fetchFunc) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		if w.ctx.Err() != nil {
			return false
		}
		if err != nil {
			events.Backend.Error(kind.String(), err)
		}
		return w.send(Event{Kind: kind, Data: data, Err: err})
	}

	if !w.send(Event{Kind: kind, Loading: true}) || !emit() {
		return
	}

	interval := w.interval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		case <-refresh:
			events.Backend.Refresh(kind.String())
			if !w.send(Event{Kind: kind, Loading: true}) || !emit() {
				return
			}
		}
	}
}
