package ui

import (
	"strconv"

	"github.com/atomicstack/penpal-tui/internal/backend"
	"github.com/atomicstack/penpal-tui/internal/format/table"
	"github.com/atomicstack/penpal-tui/internal/nav"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// studyScreen shows the weekly study statistics.
type studyScreen struct{}

func (s *studyScreen) tab() nav.Tab { return nav.TabStudy }

func (s *studyScreen) editing() bool { return false }

func (s *studyScreen) activate(m *Model) tea.Cmd { return nil }

func (s *studyScreen) handleKey(m *Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if key.Matches(msg, m.keys.Refresh) {
		return true, m.requestRefresh(backend.KindStats)
	}
	return false, nil
}

func (s *studyScreen) footerKeys(m *Model) []key.Binding {
	return []key.Binding{m.keys.Refresh}
}

func (s *studyScreen) view(m *Model, width, height int) []styledLine {
	if m.loadingSlot(backend.KindStats, m.stores.Stats.Loaded()) {
		return []styledLine{m.loadingLine("stats")}
	}
	if !m.stores.Stats.Loaded() {
		return []styledLine{{text: "No study data yet", style: styles.Muted}}
	}
	stats := m.stores.Stats.Stats()
	rows := table.KeyValue([][2]string{
		{"Messages sent", humanize.Comma(int64(stats.MessagesSent))},
		{"Words practised", humanize.Comma(int64(stats.WordsPractised))},
		{"Sessions completed", humanize.Comma(int64(stats.SessionsCompleted))},
		{"Streak", strconv.Itoa(stats.StreakDays) + " days"},
	})
	lines := []styledLine{sectionTitle("This week"), blankLine()}
	for _, row := range rows {
		lines = append(lines, styledLine{text: row, style: styles.Item})
	}
	return lines
}
