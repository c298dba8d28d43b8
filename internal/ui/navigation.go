package ui

import (
	"github.com/atomicstack/penpal-tui/internal/logging/events"
	"github.com/atomicstack/penpal-tui/internal/nav"
	tea "github.com/charmbracelet/bubbletea"
)

// navChangedMsg wakes the model after the navigation state was changed from
// outside the event loop.
type navChangedMsg struct{}

func (m *Model) onNavChange(c nav.Change) {
	m.navMu.Lock()
	m.navQueue = append(m.navQueue, c)
	send := m.sender
	m.navMu.Unlock()
	if send != nil && !m.inUpdate.Load() {
		// Send blocks until the loop receives, so never call it inline.
		go send(navChangedMsg{})
	}
}

// endUpdate leaves the event loop. A change queued after the last drain but
// before inUpdate cleared sent no wake-up, so one is sent here.
func (m *Model) endUpdate() {
	m.inUpdate.Store(false)
	m.navMu.Lock()
	pending := len(m.navQueue) > 0
	send := m.sender
	m.navMu.Unlock()
	if pending && send != nil {
		go send(navChangedMsg{})
	}
}

func (m *Model) handleNavChangedMsg(tea.Msg) tea.Cmd {
	// finishUpdate drains the queue.
	return nil
}

// drainNav applies queued navigation changes. Activation may itself change
// the state (a consumed deep link), so the queue is drained until empty.
func (m *Model) drainNav() []tea.Cmd {
	var cmds []tea.Cmd
	for {
		m.navMu.Lock()
		queue := m.navQueue
		m.navQueue = nil
		m.navMu.Unlock()
		if len(queue) == 0 {
			return cmds
		}
		for _, c := range queue {
			switch {
			case c.TabChanged():
				m.errMsg = ""
				cmds = append(cmds, m.activate(c.Current.CurrentTab))
			case c.DeepLinkChanged() && c.Current.HasPendingDeepLink():
				// The snapshot may predate a queued tab switch.
				if m.nav.CurrentTab() == nav.TabMessages {
					cmds = append(cmds, m.messages.consumeDeepLink(m))
				}
			}
		}
	}
}

func (m *Model) activate(tab nav.Tab) tea.Cmd {
	s, ok := m.screens[tab]
	if !ok {
		return nil
	}
	events.Screen.Activate(tab)
	return s.activate(m)
}

// selectTab requests a switch through the shared state. Activation happens
// when the resulting change is drained.
func (m *Model) selectTab(tab nav.Tab) {
	m.nav.SetCurrentTab(tab)
}

// openMessage records id as the pending deep link and switches to the
// messages tab, which consumes it on activation.
func (m *Model) openMessage(id string) {
	m.nav.SetPendingDeepLink(id)
	m.nav.SetCurrentTab(nav.TabMessages)
}
