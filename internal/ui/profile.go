package ui

import (
	"github.com/atomicstack/penpal-tui/internal/backend"
	"github.com/atomicstack/penpal-tui/internal/format/table"
	"github.com/atomicstack/penpal-tui/internal/nav"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type profileScreen struct{}

func (s *profileScreen) tab() nav.Tab { return nav.TabProfile }

func (s *profileScreen) editing() bool { return false }

func (s *profileScreen) activate(m *Model) tea.Cmd { return nil }

func (s *profileScreen) handleKey(m *Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if key.Matches(msg, m.keys.Refresh) {
		return true, m.requestRefresh(backend.KindProfile)
	}
	return false, nil
}

func (s *profileScreen) footerKeys(m *Model) []key.Binding {
	return []key.Binding{m.keys.Refresh}
}

func (s *profileScreen) view(m *Model, width, height int) []styledLine {
	if m.loadingSlot(backend.KindProfile, m.stores.Profile.Loaded()) {
		return []styledLine{m.loadingLine("profile")}
	}
	p := m.stores.Profile.Profile()
	if p == nil {
		return []styledLine{{text: "No profile yet", style: styles.Muted}}
	}
	pairs := [][2]string{{"Name", p.DisplayName()}}
	for _, field := range [][2]string{
		{"Native language", p.NativeLanguage},
		{"Learning", p.LearningLanguage},
		{"Region", p.Region},
	} {
		if field[1] != "" {
			pairs = append(pairs, field)
		}
	}
	lines := []styledLine{sectionTitle("Profile"), blankLine()}
	for _, row := range table.KeyValue(pairs) {
		lines = append(lines, styledLine{text: row, style: styles.Item})
	}
	return lines
}
