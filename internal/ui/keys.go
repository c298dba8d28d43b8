package ui

import (
	"strconv"

	"github.com/atomicstack/penpal-tui/internal/logging/events"
	"github.com/atomicstack/penpal-tui/internal/nav"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	SelectTab key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding

	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Open     key.Binding
	Back     key.Binding

	Filter   key.Binding
	Refresh  key.Binding
	Calendar key.Binding
	Messages key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		SelectTab: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "tabs")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		End:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Calendar:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "calendar")),
		Messages:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "messages")),
	}
}

func (k keyMap) globalHelp() []key.Binding {
	return []key.Binding{k.SelectTab, k.NextTab, k.Quit}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	active := m.activeScreen()
	events.UI.Key(keyMsg.String(), m.nav.CurrentTab().String())

	if key.Matches(keyMsg, m.keys.ForceQuit) {
		return tea.Quit
	}
	if active != nil && active.editing() {
		_, cmd := active.handleKey(m, keyMsg)
		return cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.SelectTab):
		if n, err := strconv.Atoi(keyMsg.String()); err == nil {
			if tab, ok := nav.TabAt(n - 1); ok {
				m.selectTab(tab)
			}
		}
		return nil
	case key.Matches(keyMsg, m.keys.NextTab):
		m.selectTab(m.nav.CurrentTab().Next())
		return nil
	case key.Matches(keyMsg, m.keys.PrevTab):
		m.selectTab(m.nav.CurrentTab().Prev())
		return nil
	}

	if active == nil {
		return nil
	}
	_, cmd := active.handleKey(m, keyMsg)
	return cmd
}

// listKeys applies the shared list movement bindings. It reports whether the
// key moved (or attempted to move) the cursor.
func (m *Model) listKeys(l *listState, msg tea.KeyMsg, maxVisible int) bool {
	moved := false
	switch {
	case key.Matches(msg, m.keys.Up):
		moved = l.MoveCursorUp()
	case key.Matches(msg, m.keys.Down):
		moved = l.MoveCursorDown()
	case key.Matches(msg, m.keys.PageUp):
		moved = l.MoveCursorPageUp(maxVisible)
	case key.Matches(msg, m.keys.PageDown):
		moved = l.MoveCursorPageDown(maxVisible)
	case key.Matches(msg, m.keys.Home):
		moved = l.MoveCursorHome()
	case key.Matches(msg, m.keys.End):
		moved = l.MoveCursorEnd()
	default:
		return false
	}
	if moved {
		events.UI.ListCursor(l.ID, l.Cursor)
	}
	return true
}
