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
	"github.com/charmbracelet/lipgloss"
)

const penpalListHeight = 8

type penpalsScreen struct {
	list *listState
}

func newPenpalsScreen() *penpalsScreen {
	return &penpalsScreen{list: uistate.NewList("penpals", nil)}
}

func (p *penpalsScreen) tab() nav.Tab { return nav.TabPenpals }

func (p *penpalsScreen) editing() bool { return p.list.Editing }

func (p *penpalsScreen) activate(m *Model) tea.Cmd { return nil }

// sync rebuilds the list from the penpal store. The cursor stays on the
// same penpal when it is still present.
func (p *penpalsScreen) sync(m *Model) {
	entries := m.stores.Penpals.Entries()
	items := make([]uistate.Item, len(entries))
	for i, e := range entries {
		hint := e.Region
		if len(e.Hobbies) > 0 {
			hint = strings.TrimSpace(hint + " " + strings.Join(e.Hobbies, " "))
		}
		items[i] = uistate.Item{ID: e.ID, Label: e.DisplayName(), Hint: hint}
	}
	p.list.SetItems(items)
}

// focus moves the cursor to id, clearing a filter that hides it.
func (p *penpalsScreen) focus(id string) bool {
	if !p.list.Focus(id) {
		return false
	}
	events.UI.ListCursor(p.list.ID, p.list.Cursor)
	return true
}

func (p *penpalsScreen) handleKey(m *Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if p.list.Editing {
		return true, m.handleFilterInput(p.list, msg, penpalListHeight)
	}
	switch {
	case key.Matches(msg, m.keys.Filter):
		startFilter(p.list)
		return true, nil
	case key.Matches(msg, m.keys.Back):
		if p.list.ClearQuery() {
			events.Filter.Cleared(p.list.ID)
		}
		return true, nil
	case key.Matches(msg, m.keys.Refresh):
		return true, m.refreshPenpalsCmd()
	}
	return m.listKeys(p.list, msg, penpalListHeight), nil
}

func (p *penpalsScreen) footerKeys(m *Model) []key.Binding {
	if p.list.Editing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Filter, m.keys.Refresh}
}

func (p *penpalsScreen) view(m *Model, width, height int) []styledLine {
	if m.loadingSlot(backend.KindPenpals, m.stores.Penpals.Loaded()) {
		return []styledLine{m.loadingLine("penpals")}
	}
	if len(p.list.Full) == 0 {
		return []styledLine{{text: "No penpals yet", style: styles.Muted}}
	}
	lines := make([]styledLine, 0, penpalListHeight+12)
	if p.list.Editing || p.list.Query != "" {
		lines = append(lines, styledLine{text: m.filterPrompt(p.list), raw: true})
	}
	if len(p.list.Items) == 0 {
		lines = append(lines, styledLine{text: fmt.Sprintf("No penpals match %q", p.list.Query), style: styles.Muted})
		return lines
	}
	lines = append(lines, m.listLines(p.list, nil, penpalListHeight, width)...)
	if item, ok := p.list.Selected(); ok {
		if penpal, found := m.stores.Penpals.Find(item.ID); found {
			lines = append(lines, blankLine())
			lines = append(lines, rawLines(penpalCard(penpal, cardWidth(width)))...)
		}
	}
	return lines
}

// penpalCard renders one penpal as a bordered card: name, an id line with
// region and status, and the hobbies.
func penpalCard(p provider.PenpalSummary, width int) string {
	name := p.DisplayName()
	if name == "" {
		name = p.ID
	}
	meta := []string{p.ID}
	if p.Region != "" {
		meta = append(meta, p.Region)
	}
	if p.Status != "" {
		meta = append(meta, p.Status)
	}
	rows := []string{
		render(styles.CardTitle, name),
		render(styles.CardMeta, strings.Join(meta, " · ")),
	}
	if len(p.Hobbies) > 0 {
		rows = append(rows, "Hobbies: "+strings.Join(p.Hobbies, ", "))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if styles.Card == nil {
		return body
	}
	style := *styles.Card
	if width > 0 {
		style = style.Width(width - style.GetHorizontalBorderSize() - style.GetHorizontalMargins())
	}
	return style.Render(body)
}

func render(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}
