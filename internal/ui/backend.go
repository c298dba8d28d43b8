package ui

import (
	"context"
	"fmt"

	"github.com/atomicstack/penpal-tui/internal/backend"
	"github.com/atomicstack/penpal-tui/internal/logging/events"
	"github.com/atomicstack/penpal-tui/internal/notify"
	"github.com/atomicstack/penpal-tui/internal/provider"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

// fetchedMsg carries the result of a one-off fetch made without a watcher.
type fetchedMsg struct {
	event backend.Event
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleFetchedMsg(msg tea.Msg) tea.Cmd {
	fetched, ok := msg.(fetchedMsg)
	if !ok {
		return nil
	}
	return m.applyBackendEvent(fetched.event)
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// requestRefresh asks the watcher to re-poll kind. Without a watcher the
// provider is queried directly.
func (m *Model) requestRefresh(kind backend.Kind) tea.Cmd {
	if m.backend != nil && m.backend.RequestRefresh(kind) {
		return nil
	}
	return m.fetchCmd(kind)
}

func (m *Model) fetchCmd(kind backend.Kind) tea.Cmd {
	if !m.hasProvider(kind) {
		return nil
	}
	providers := m.providers
	m.loading[kind] = true
	return func() tea.Msg {
		evt, ok := backend.Fetch(context.Background(), providers, kind)
		if !ok {
			return fetchedMsg{event: backend.Event{Kind: kind}}
		}
		return fetchedMsg{event: evt}
	}
}

func (m *Model) fetchAllCmds() []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(backend.Kinds()))
	for _, kind := range backend.Kinds() {
		if cmd := m.fetchCmd(kind); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func (m *Model) hasProvider(kind backend.Kind) bool {
	switch kind {
	case backend.KindProfile:
		return m.providers.Profile != nil
	case backend.KindPenpals:
		return m.providers.Penpals != nil
	case backend.KindMessages:
		return m.providers.Messages != nil
	case backend.KindSessions:
		return m.providers.Calendar != nil
	case backend.KindStats:
		return m.providers.Study != nil
	}
	return false
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if evt.Loading {
		m.loading[evt.Kind] = true
		return nil
	}
	m.loading[evt.Kind] = false
	m.backendState[evt.Kind] = evt.Err
	if evt.Err != nil {
		m.backendErr = fmt.Sprintf("%s: %v", evt.Kind, evt.Err)
		return nil
	}

	res := m.dispatcher.Handle(evt)
	var cmds []tea.Cmd

	if res.PenpalsUpdated {
		m.penpals.sync(m)
	}
	if res.MessagesUpdated {
		m.home.sync(m)
		cmds = append(cmds, m.messages.sync(m))
	}
	if res.SessionsUpdated {
		m.home.sync(m)
	}
	if len(res.NewMessages) > 0 {
		cmds = append(cmds, m.announce(res.NewMessages))
	}

	if warn, _ := m.hasBackendIssue(); !warn {
		m.backendErr = ""
	}
	return tea.Batch(cmds...)
}

// announce reacts to newly arrived messages: the newest becomes the pending
// deep link so the messages screen opens it, and a desktop notification is
// sent when enabled.
func (m *Model) announce(fresh []provider.Message) tea.Cmd {
	ids := make([]string, len(fresh))
	for i, msg := range fresh {
		ids[i] = msg.ID
	}
	events.Backend.NewMessages(ids)

	newest := fresh[0]
	for _, msg := range fresh[1:] {
		if msg.SentAt.After(newest.SentAt) {
			newest = msg
		}
	}
	m.nav.SetPendingDeepLink(newest.ID)
	if len(fresh) == 1 {
		m.setInfo(fmt.Sprintf("New message from %s", senderName(newest)))
	} else {
		m.setInfo(fmt.Sprintf("%d new messages", len(fresh)))
	}

	if m.notifier == nil {
		return nil
	}
	n := m.notifier
	return func() tea.Msg {
		_ = notify.MessageArrived(n, newest)
		return nil
	}
}

func (m *Model) hasBackendIssue() (bool, string) {
	for _, kind := range backend.Kinds() {
		if err := m.backendState[kind]; err != nil {
			msg := m.backendErr
			if msg == "" {
				msg = fmt.Sprintf("%s: %v", kind, err)
			}
			return true, msg
		}
	}
	return false, ""
}

// loadingSlot reports whether kind should render a loading indicator in
// place of data: a fetch is in flight and nothing has arrived yet.
func (m *Model) loadingSlot(kind backend.Kind, loaded bool) bool {
	return m.loading[kind] && !loaded
}

func senderName(msg provider.Message) string {
	if msg.From != "" {
		return msg.From
	}
	return "a penpal"
}
