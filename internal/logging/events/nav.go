package events

import (
	"github.com/atomicstack/penpal-tui/internal/logging"
	"github.com/atomicstack/penpal-tui/internal/nav"
)

type NavTracer struct{}

var Nav = NavTracer{}

func (NavTracer) Tab(from, to nav.Tab) {
	logging.Trace("nav.tab", map[string]interface{}{"from": from.String(), "to": to.String()})
}

func (NavTracer) DeepLinkSet(id string) {
	logging.Trace("nav.deeplink.set", map[string]interface{}{"id": id})
}

func (NavTracer) DeepLinkClear(id string) {
	logging.Trace("nav.deeplink.clear", map[string]interface{}{"id": id})
}

func (NavTracer) DeepLinkConsume(id string, screen nav.Tab) {
	logging.Trace("nav.deeplink.consume", map[string]interface{}{"id": id, "screen": screen.String()})
}

// Observe traces every change published by state. The returned func detaches
// the tracer.
func (t NavTracer) Observe(state *nav.State) func() {
	if state == nil {
		return func() {}
	}
	return state.Subscribe(func(c nav.Change) {
		if c.TabChanged() {
			t.Tab(c.Previous.CurrentTab, c.Current.CurrentTab)
		}
		if !c.DeepLinkChanged() {
			return
		}
		if c.Current.HasPendingDeepLink() {
			t.DeepLinkSet(c.Current.PendingDeepLinkID)
			return
		}
		t.DeepLinkClear(c.Previous.PendingDeepLinkID)
	})
}
