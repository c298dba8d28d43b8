package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atomicstack/penpal-tui/internal/logging/events"
	"github.com/atomicstack/penpal-tui/internal/nav"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

func blankLine() styledLine {
	return styledLine{}
}

// rawLines splits a pre-rendered lipgloss block into raw lines.
func rawLines(block string) []styledLine {
	parts := strings.Split(block, "\n")
	out := make([]styledLine, len(parts))
	for i, part := range parts {
		out[i] = styledLine{text: part, raw: true}
	}
	return out
}

// View implements tea.Model.
func (m *Model) View() string {
	header := rawLines(m.tabBar())

	bottom := make([]styledLine, 0, 4)
	if info := m.currentInfo(); info != "" {
		bottom = append(bottom, styledLine{text: info, style: styles.Info})
	}
	bottom = append(bottom, m.statusLine())
	if m.showFooter {
		bottom = append(bottom, styledLine{text: m.footer(), raw: true})
	}

	bodyHeight := 0
	if m.height > 0 {
		bodyHeight = m.height - len(header) - len(bottom)
		if bodyHeight < 1 {
			bodyHeight = 1
		}
	}
	var body []styledLine
	if active := m.activeScreen(); active != nil {
		body = active.view(m, m.width, bodyHeight)
	}
	body = limitHeight(body, bodyHeight, m.width)

	lines := make([]styledLine, 0, len(header)+len(body)+len(bottom))
	lines = append(lines, header...)
	lines = append(lines, body...)
	if bodyHeight > 0 {
		for pad := bodyHeight - len(body); pad > 0; pad-- {
			lines = append(lines, blankLine())
		}
	}
	lines = append(lines, bottom...)
	return renderLines(applyWidth(lines, m.width))
}

// tabBar renders every tab title, highlighting the active one. The messages
// tab carries an unread badge.
func (m *Model) tabBar() string {
	current := m.nav.CurrentTab()
	cells := make([]string, 0, len(nav.Tabs()))
	for i, tab := range nav.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, tab.Title())
		if tab == nav.TabMessages {
			if unread := m.stores.Messages.Unread(); unread > 0 {
				label += " " + styles.Badge.Render(fmt.Sprintf(" %d ", unread))
			}
		}
		style := styles.Tab
		if tab == current {
			style = styles.ActiveTab
		}
		cells = append(cells, style.Render(label))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	if styles.TabBar != nil {
		style := *styles.TabBar
		if m.width > 0 {
			style = style.Width(m.width)
		}
		return style.Render(bar)
	}
	return bar
}

func (m *Model) statusLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	if warn, msg := m.hasBackendIssue(); warn {
		return styledLine{text: fmt.Sprintf("Error: %s", msg), style: styles.Error}
	}
	if len(m.pending) > 0 {
		labels := make([]string, 0, len(m.pending))
		for _, label := range m.pending {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		return styledLine{text: m.spinner.View() + " " + strings.Join(labels, ", ") + "…", raw: true}
	}
	return blankLine()
}

func (m *Model) footer() string {
	var bindings []key.Binding
	if active := m.activeScreen(); active != nil {
		bindings = append(bindings, active.footerKeys(m)...)
	}
	bindings = append(bindings, m.keys.globalHelp()...)
	m.help.Width = m.width
	return m.help.ShortHelpView(bindings)
}

// loadingLine renders the loading slot.
func (m *Model) loadingLine(what string) styledLine {
	return styledLine{text: m.spinner.View() + " Loading " + what + "…", raw: true}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	return nil
}

func (m *Model) buildItemLine(label string, selected bool, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if width > 0 {
		if pad := width - lipgloss.Width(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

// listLines renders the visible window of l, or empty when l has no items.
func (m *Model) listLines(l *listState, label func(id string) string, maxVisible, width int) []styledLine {
	rows, cursor := l.Window(maxVisible)
	out := make([]styledLine, 0, len(rows))
	for i, item := range rows {
		text := item.Label
		if label != nil {
			text = label(item.ID)
		}
		out = append(out, m.buildItemLine(text, i == cursor, width))
	}
	return out
}

func sectionTitle(title string) styledLine {
	return styledLine{text: title, style: styles.SectionTitle}
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		if line.raw {
			if lipgloss.Width(line.text) > width {
				line.text = truncate.StringWithTail(line.text, uint(width-1), "…")
			}
		} else {
			line.text = truncateText(line.text, width)
		}
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
