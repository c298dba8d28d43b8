package ui

import (
	"context"
	"fmt"

	"github.com/atomicstack/penpal-tui/internal/backend"
	"github.com/atomicstack/penpal-tui/internal/logging"
	"github.com/atomicstack/penpal-tui/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	cmdRefreshPenpals = "penpals.refresh"
	cmdMarkOpened     = "messages.mark-opened"
)

func (m *Model) refreshPenpalsCmd() tea.Cmd {
	if m.providers.Penpals == nil {
		m.setInfo("Penpal refresh is unavailable")
		return nil
	}
	if _, running := m.pending[cmdRefreshPenpals]; running {
		return nil
	}
	penpals := m.providers.Penpals
	m.pending[cmdRefreshPenpals] = "Refreshing penpals"
	m.errMsg = ""
	return m.bus.Execute(command.Request{
		ID:    cmdRefreshPenpals,
		Label: "Refreshing penpals",
		Handler: func(ctx context.Context) error {
			return penpals.Refresh(ctx)
		},
	})
}

func (m *Model) markOpenedCmd(id string) tea.Cmd {
	if m.providers.Messages == nil {
		return nil
	}
	messages := m.providers.Messages
	return m.bus.Execute(command.Request{
		ID:     cmdMarkOpened,
		Label:  "Marking message opened",
		Target: id,
		Handler: func(ctx context.Context) error {
			return messages.MarkOpened(ctx, id)
		},
	})
}

func (m *Model) handleCommandResult(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	delete(m.pending, result.ID)
	if result.Err != nil {
		logging.Error(fmt.Errorf("%s: %w", result.Label, result.Err))
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		return nil
	}
	switch result.ID {
	case cmdRefreshPenpals:
		if m.verbose {
			m.setInfo("Penpals refreshed")
		}
		return m.requestRefresh(backend.KindPenpals)
	case cmdMarkOpened:
		return m.requestRefresh(backend.KindMessages)
	}
	return nil
}
