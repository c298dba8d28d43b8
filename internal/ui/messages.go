package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/penpal-tui/internal/backend"
	"github.com/atomicstack/penpal-tui/internal/logging/events"
	"github.com/atomicstack/penpal-tui/internal/nav"
	"github.com/atomicstack/penpal-tui/internal/notify"
	"github.com/atomicstack/penpal-tui/internal/provider"
	uistate "github.com/atomicstack/penpal-tui/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

const (
	messageListHeight = 8
	messageDetail     = "message"
	previewLimit      = 60
)

// messagesScreen lists received messages. openID is the message shown in
// the detail pane. awaiting holds a consumed deep link whose message has not
// been loaded yet.
type messagesScreen struct {
	list     *listState
	openID   string
	awaiting string
}

func newMessagesScreen() *messagesScreen {
	return &messagesScreen{list: uistate.NewList("messages", nil)}
}

func (s *messagesScreen) tab() nav.Tab { return nav.TabMessages }

func (s *messagesScreen) editing() bool { return false }

func (s *messagesScreen) activate(m *Model) tea.Cmd {
	return s.consumeDeepLink(m)
}

// sync rebuilds the list from the message store and resolves a deep link
// that arrived before the messages did.
func (s *messagesScreen) sync(m *Model) tea.Cmd {
	entries := m.stores.Messages.Entries()
	items := make([]uistate.Item, len(entries))
	for i, e := range entries {
		items[i] = uistate.Item{ID: e.ID, Label: e.From, Hint: e.Body}
	}
	s.list.SetItems(items)
	if s.openID != "" {
		if _, ok := m.stores.Messages.Find(s.openID); !ok {
			s.closeDetail()
		}
	}
	if s.awaiting == "" || !m.stores.Messages.Loaded() {
		return nil
	}
	id := s.awaiting
	s.awaiting = ""
	return s.open(m, id)
}

// consumeDeepLink takes the pending deep link, if any, and opens it. The
// link is consumed exactly once even when the message is not loaded yet.
func (s *messagesScreen) consumeDeepLink(m *Model) tea.Cmd {
	id, ok := m.nav.ConsumePendingDeepLink()
	if !ok {
		return nil
	}
	events.Nav.DeepLinkConsume(id, nav.TabMessages)
	if !m.stores.Messages.Loaded() {
		s.awaiting = id
		return nil
	}
	return s.open(m, id)
}

// open shows id in the detail pane and marks it opened.
func (s *messagesScreen) open(m *Model, id string) tea.Cmd {
	if _, ok := m.stores.Messages.Find(id); !ok {
		events.Screen.Missing(nav.TabMessages, id)
		m.setInfo(fmt.Sprintf("Message %s is no longer available", id))
		return nil
	}
	s.list.Focus(id)
	s.openID = id
	events.Screen.Open(nav.TabMessages, id)
	events.Screen.DetailOpen(nav.TabMessages, messageDetail)
	if !m.stores.Messages.MarkOpened(id) {
		return nil
	}
	return m.markOpenedCmd(id)
}

func (s *messagesScreen) closeDetail() bool {
	if s.openID == "" {
		return false
	}
	s.openID = ""
	events.Screen.DetailClose(nav.TabMessages, messageDetail)
	return true
}

func (s *messagesScreen) handleKey(m *Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Open):
		item, ok := s.list.Selected()
		if !ok {
			return true, nil
		}
		return true, s.open(m, item.ID)
	case key.Matches(msg, m.keys.Back):
		s.closeDetail()
		return true, nil
	case key.Matches(msg, m.keys.Refresh):
		return true, m.requestRefresh(backend.KindMessages)
	}
	return m.listKeys(s.list, msg, messageListHeight), nil
}

func (s *messagesScreen) footerKeys(m *Model) []key.Binding {
	keys := []key.Binding{m.keys.Up, m.keys.Down, withHelp(m.keys.Open, "read"), m.keys.Refresh}
	if s.openID != "" {
		keys = append(keys, withHelp(m.keys.Back, "close"))
	}
	return keys
}

func (s *messagesScreen) view(m *Model, width, height int) []styledLine {
	if m.loadingSlot(backend.KindMessages, m.stores.Messages.Loaded()) {
		return []styledLine{m.loadingLine("messages")}
	}
	if len(s.list.Items) == 0 {
		return []styledLine{{text: "No messages yet", style: styles.Muted}}
	}
	lines := m.listLines(s.list, func(id string) string {
		msg, _ := m.stores.Messages.Find(id)
		return messageSummary(msg, m, width)
	}, messageListHeight, width)
	rows, cursor := s.list.Window(messageListHeight)
	for i, row := range rows {
		if msg, ok := m.stores.Messages.Find(row.ID); ok && !msg.Opened && i != cursor {
			lines[i].style = styles.Unread
		}
	}

	if s.openID == "" {
		return lines
	}
	msg, ok := m.stores.Messages.Find(s.openID)
	if !ok {
		return lines
	}
	lines = append(lines, blankLine())
	lines = append(lines, styledLine{
		text:  fmt.Sprintf("From %s · %s", senderName(msg), humanize.RelTime(msg.SentAt, m.now(), "ago", "from now")),
		style: styles.DetailTitle,
	})
	for _, para := range strings.Split(msg.Body, "\n") {
		lines = append(lines, styledLine{text: para, style: styles.DetailBody})
	}
	return lines
}

// messageSummary is the one-line list form of msg: an unread marker, the
// sender, a preview of the body and its age.
func messageSummary(msg provider.Message, m *Model, width int) string {
	marker := "  "
	if !msg.Opened {
		marker = "● "
	}
	limit := previewLimit
	if width > 0 && width/2 < limit {
		limit = width / 2
	}
	age := humanize.RelTime(msg.SentAt, m.now(), "ago", "from now")
	return fmt.Sprintf("%s%s: %s (%s)", marker, senderName(msg), notify.Preview(msg.Body, limit), age)
}
