package ui

import (
	"unicode"

	"github.com/atomicstack/penpal-tui/internal/logging/events"
	uistate "github.com/atomicstack/penpal-tui/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

type listState = uistate.List

const filterPlaceholder = "(type to filter)"

func startFilter(l *listState) {
	l.Editing = true
	l.QueryCursor = len([]rune(l.Query))
	events.Filter.Start(l.ID)
}

// handleFilterInput edits l's query while the list is in edit mode. Every
// key is consumed so screen bindings do not fire while typing.
func (m *Model) handleFilterInput(l *listState, msg tea.KeyMsg, maxVisible int) tea.Cmd {
	switch msg.String() {
	case "esc":
		l.ClearQuery()
		events.Filter.Cleared(l.ID)
		return nil
	case "enter":
		l.Editing = false
		return nil
	case "up", "down", "pgup", "pgdown":
		m.listKeys(l, msg, maxVisible)
		return nil
	case "ctrl+u":
		if l.Query != "" {
			l.SetQuery("", 0)
			m.errMsg = ""
			events.Filter.Cleared(l.ID)
		}
		return nil
	case "ctrl+w":
		if l.DeleteQueryWordBackward() {
			m.errMsg = ""
			events.Filter.WordBackspace(l.ID, l.Query)
		}
		return nil
	case "ctrl+a":
		if l.MoveQueryCursorStart() {
			events.Filter.Cursor(l.ID, l.QueryCursor)
		}
		return nil
	case "ctrl+e":
		if l.MoveQueryCursorEnd() {
			events.Filter.Cursor(l.ID, l.QueryCursor)
		}
		return nil
	case "alt+b":
		if l.MoveQueryCursorWordBackward() {
			events.Filter.CursorWord(l.ID, l.QueryCursor)
		}
		return nil
	case "alt+f":
		if l.MoveQueryCursorWordForward() {
			events.Filter.CursorWord(l.ID, l.QueryCursor)
		}
		return nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if l.DeleteQueryRuneBackward() {
			events.Filter.Backspace(l.ID, l.Query)
		}
	case tea.KeyLeft:
		if l.MoveQueryCursorRuneBackward() {
			events.Filter.Cursor(l.ID, l.QueryCursor)
		}
	case tea.KeyRight:
		if l.MoveQueryCursorRuneForward() {
			events.Filter.Cursor(l.ID, l.QueryCursor)
		}
	case tea.KeySpace:
		appendToFilter(l, " ")
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return nil
			}
		}
		appendToFilter(l, string(msg.Runes))
	}
	return nil
}

func appendToFilter(l *listState, text string) {
	if l.InsertQueryText(text) {
		events.Filter.Append(l.ID, l.Query)
	}
}

// filterPrompt renders the query line of l with a caret at the query cursor.
func (m *Model) filterPrompt(l *listState) string {
	prompt := "/ "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	render := func(value string) string {
		if styles.Filter == nil || value == "" {
			return value
		}
		return styles.Filter.Render(value)
	}
	if l.Query == "" {
		if !l.Editing {
			return prompt
		}
		runes := []rune(filterPlaceholder)
		rest := string(runes[1:])
		if styles.FilterPlaceholder != nil {
			rest = styles.FilterPlaceholder.Render(rest)
		}
		return prompt + m.renderFilterCursor(string(runes[0])) + rest
	}
	if !l.Editing {
		return prompt + render(l.Query)
	}
	runes := []rune(l.Query)
	pos := l.QueryCursorPos()
	caret := " "
	after := ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = string(runes[pos+1:])
	}
	return prompt + render(string(runes[:pos])) + m.renderFilterCursor(caret) + render(after)
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	return m.filterCursor.View()
}
