package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/sustainlog/internal/constants"
	"github.com/julianstephens/sustainlog/internal/tui/state"
)

// HandleConfirmationState handles the generic confirmation state
func HandleConfirmationState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return ResolveConfirmation(m, false)
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		cmds = append(cmds, ResolveConfirmation(m, m.ConfirmationForm.Confirmed))
	case huh.StateAborted:
		cmds = append(cmds, ResolveConfirmation(m, false))
	}
	return tea.Batch(cmds...)
}

// ResolveConfirmation runs the pending action when confirmed and returns to
// the list either way.
func ResolveConfirmation(m *state.Model, confirmed bool) tea.Cmd {
	var cmd tea.Cmd
	if confirmed && m.PendingAction != nil {
		cmd = m.PendingAction()
	}
	m.PendingAction = nil
	m.ConfirmationForm = nil
	m.State = constants.StateActions
	return cmd
}

// HandleConfirmationMessages handles messages related to confirmations
func HandleConfirmationMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case constants.ConfirmationMsg:
		m.ConfirmationForm = &state.ConfirmationFormModel{
			Message: msg.Message,
		}
		m.PendingAction = msg.Action
		m.Form = NewConfirmationForm(m.ConfirmationForm)
		m.State = constants.StateConfirmation
		return true, m.Form.Init()
	}
	return false, nil
}
