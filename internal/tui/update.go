package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/sustainlog/internal/constants"
	"github.com/julianstephens/sustainlog/internal/tui/handlers"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	wasLoading := m.Loading
	cmd := m.update(msg)
	if m.Loading && !wasLoading {
		cmd = tea.Batch(cmd, m.spinner.Tick)
	}
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		m.Table.SetSize(msg.Width-4, msg.Height-8)
		if m.Form != nil {
			m.Form = m.Form.WithWidth(msg.Width - 4)
		}
		return nil

	case spinner.TickMsg:
		// Let the tick chain die once nothing is loading.
		if !m.Loading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	}

	if handled, cmd := handlers.HandleActionMessages(&m.Model, msg); handled {
		return cmd
	}
	if handled, cmd := handlers.HandleConfirmationMessages(&m.Model, msg); handled {
		return cmd
	}

	switch m.State {
	case constants.StateEditing:
		return handlers.HandleEditingState(&m.Model, msg)
	case constants.StateConfirmation:
		return handlers.HandleConfirmationState(&m.Model, msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.Keys.Quit):
			m.Quitting = true
			return tea.Quit
		case key.Matches(msg, m.Keys.Help):
			m.Help.ShowAll = !m.Help.ShowAll
			return nil
		}
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return cmd
}
