package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/penpal-tui/internal/backend"
	"github.com/atomicstack/penpal-tui/internal/logging/events"
	"github.com/atomicstack/penpal-tui/internal/nav"
	"github.com/atomicstack/penpal-tui/internal/provider"
	uistate "github.com/atomicstack/penpal-tui/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

const (
	recentMessageLimit = 3
	calendarDetail     = "calendar"
	maxCardWidth       = 48
)

// homeScreen shows the greeting, the week's summary, the next session, the
// latest messages and one card per penpal. showingDetail swaps the body for
// the calendar detail view; the flag is local to this screen.
type homeScreen struct {
	recent        *listState
	calendar      *listState
	showingDetail bool
}

func newHomeScreen() *homeScreen {
	return &homeScreen{
		recent:   uistate.NewList("home:recent", nil),
		calendar: uistate.NewList("home:calendar", nil),
	}
}

func (h *homeScreen) tab() nav.Tab { return nav.TabHome }

func (h *homeScreen) editing() bool { return false }

func (h *homeScreen) activate(m *Model) tea.Cmd {
	h.sync(m)
	return nil
}

// sync rebuilds the recent-message and calendar lists from the stores.
func (h *homeScreen) sync(m *Model) {
	msgs := m.stores.Messages.Entries()
	if len(msgs) > recentMessageLimit {
		msgs = msgs[:recentMessageLimit]
	}
	items := make([]uistate.Item, len(msgs))
	for i, msg := range msgs {
		items[i] = uistate.Item{ID: msg.ID, Label: msg.From}
	}
	h.recent.SetItems(items)

	sessions := m.stores.Sessions.Entries()
	sessionItems := make([]uistate.Item, len(sessions))
	for i, s := range sessions {
		sessionItems[i] = uistate.Item{ID: s.ID, Label: s.Title}
	}
	h.calendar.SetItems(sessionItems)
}

func (h *homeScreen) openDetail() {
	if h.showingDetail {
		return
	}
	h.showingDetail = true
	events.Screen.DetailOpen(nav.TabHome, calendarDetail)
}

func (h *homeScreen) closeDetail() bool {
	if !h.showingDetail {
		return false
	}
	h.showingDetail = false
	events.Screen.DetailClose(nav.TabHome, calendarDetail)
	return true
}

func (h *homeScreen) handleKey(m *Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if h.showingDetail {
		return h.handleCalendarKey(m, msg)
	}
	switch {
	case key.Matches(msg, m.keys.Calendar):
		h.openDetail()
		return true, nil
	case key.Matches(msg, m.keys.Open):
		item, ok := h.recent.Selected()
		if !ok {
			return true, nil
		}
		m.openMessage(item.ID)
		return true, nil
	}
	return m.listKeys(h.recent, msg, recentMessageLimit), nil
}

func (h *homeScreen) handleCalendarKey(m *Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		h.closeDetail()
		return true, nil
	case key.Matches(msg, m.keys.Messages):
		m.selectTab(nav.TabMessages)
		return true, nil
	case key.Matches(msg, m.keys.Open):
		item, ok := h.calendar.Selected()
		if !ok {
			return true, nil
		}
		for _, s := range m.stores.Sessions.Entries() {
			if s.ID != item.ID {
				continue
			}
			if s.PenpalID != "" && !m.penpals.focus(s.PenpalID) {
				m.setInfo(fmt.Sprintf("Penpal %s is not in your list", s.PenpalID))
			}
			m.selectTab(nav.TabPenpals)
			break
		}
		return true, nil
	}
	return m.listKeys(h.calendar, msg, 0), nil
}

func (h *homeScreen) footerKeys(m *Model) []key.Binding {
	if h.showingDetail {
		return []key.Binding{m.keys.Up, m.keys.Down, withHelp(m.keys.Open, "penpal"), m.keys.Messages, m.keys.Back}
	}
	return []key.Binding{m.keys.Up, m.keys.Down, withHelp(m.keys.Open, "read"), m.keys.Calendar}
}

func (h *homeScreen) view(m *Model, width, height int) []styledLine {
	if h.showingDetail {
		return h.calendarView(m, width)
	}
	lines := make([]styledLine, 0, 32)
	lines = append(lines, h.greeting(m))
	lines = append(lines, blankLine())

	lines = append(lines, sectionTitle("This week"))
	lines = append(lines, h.statsLine(m))
	lines = append(lines, blankLine())

	lines = append(lines, sectionTitle("Next session"))
	lines = append(lines, h.nextSessionLine(m))
	lines = append(lines, blankLine())

	lines = append(lines, sectionTitle("Recent messages"))
	switch {
	case m.loadingSlot(backend.KindMessages, m.stores.Messages.Loaded()):
		lines = append(lines, m.loadingLine("messages"))
	case len(h.recent.Items) == 0:
		lines = append(lines, styledLine{text: "No messages yet", style: styles.Muted})
	default:
		lines = append(lines, m.listLines(h.recent, func(id string) string {
			msg, _ := m.stores.Messages.Find(id)
			return messageSummary(msg, m, width)
		}, 0, width)...)
	}
	lines = append(lines, blankLine())

	lines = append(lines, sectionTitle("Penpals"))
	penpals := m.stores.Penpals.Entries()
	switch {
	case m.loadingSlot(backend.KindPenpals, m.stores.Penpals.Loaded()):
		lines = append(lines, m.loadingLine("penpals"))
	case len(penpals) == 0:
		lines = append(lines, styledLine{text: "No penpals yet", style: styles.Muted})
	default:
		for _, p := range penpals {
			lines = append(lines, rawLines(penpalCard(p, cardWidth(width)))...)
		}
	}
	return lines
}

func (h *homeScreen) greeting(m *Model) styledLine {
	if m.loadingSlot(backend.KindProfile, m.stores.Profile.Loaded()) {
		return m.loadingLine("profile")
	}
	text := "Hello there"
	if p := m.stores.Profile.Profile(); p != nil && strings.TrimSpace(p.FirstName) != "" {
		text = "Hello, " + strings.TrimSpace(p.FirstName)
	}
	return styledLine{text: text, style: styles.Greeting}
}

func (h *homeScreen) statsLine(m *Model) styledLine {
	if m.loadingSlot(backend.KindStats, m.stores.Stats.Loaded()) {
		return m.loadingLine("stats")
	}
	if !m.stores.Stats.Loaded() {
		return styledLine{text: "No study data yet", style: styles.Muted}
	}
	s := m.stores.Stats.Stats()
	text := fmt.Sprintf("%s · %s · %s · %s",
		plural(s.MessagesSent, "message"),
		plural(s.WordsPractised, "word"),
		plural(s.SessionsCompleted, "session"),
		fmt.Sprintf("%d-day streak", s.StreakDays),
	)
	return styledLine{text: text, style: styles.Item}
}

func (h *homeScreen) nextSessionLine(m *Model) styledLine {
	if m.loadingSlot(backend.KindSessions, m.stores.Sessions.Loaded()) {
		return m.loadingLine("sessions")
	}
	next, ok := m.stores.Sessions.Next()
	if !ok {
		if m.stores.Sessions.Loaded() {
			return styledLine{text: "No session scheduled", style: styles.Muted}
		}
		return styledLine{text: "Sessions unavailable", style: styles.Muted}
	}
	return styledLine{text: sessionSummary(next, m), style: styles.Item}
}

func (h *homeScreen) calendarView(m *Model, width int) []styledLine {
	lines := []styledLine{
		{text: "Calendar", style: styles.DetailTitle},
		blankLine(),
	}
	switch {
	case m.loadingSlot(backend.KindSessions, m.stores.Sessions.Loaded()):
		lines = append(lines, m.loadingLine("sessions"))
	case len(h.calendar.Items) == 0:
		lines = append(lines, styledLine{text: "No session scheduled", style: styles.Muted})
	default:
		lines = append(lines, m.listLines(h.calendar, func(id string) string {
			for _, s := range m.stores.Sessions.Entries() {
				if s.ID == id {
					return sessionSummary(s, m)
				}
			}
			return id
		}, 0, width)...)
	}
	return lines
}

func sessionSummary(s provider.Session, m *Model) string {
	when := humanize.RelTime(s.StartsAt, m.now(), "ago", "from now")
	title := s.Title
	if title == "" {
		title = "Session"
	}
	if p, ok := m.stores.Penpals.Find(s.PenpalID); ok {
		return fmt.Sprintf("%s with %s · %s", title, p.DisplayName(), when)
	}
	return fmt.Sprintf("%s · %s", title, when)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}

func cardWidth(width int) int {
	if width <= 0 || width-2 > maxCardWidth {
		return maxCardWidth
	}
	return width - 2
}

func withHelp(b key.Binding, desc string) key.Binding {
	h := b.Help()
	return key.NewBinding(key.WithKeys(b.Keys()...), key.WithHelp(h.Key, desc))
}
