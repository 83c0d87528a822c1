package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/sustainlog/internal/constants"
	"github.com/julianstephens/sustainlog/internal/models"
	"github.com/julianstephens/sustainlog/internal/tui/state"
)

// NewActionForm creates the add/edit form bound to fm. Fields are not
// validated per keystroke; Submit checks them all at once.
func NewActionForm(fm *models.ActionForm, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Action").
				Placeholder("Recycling").
				Value(&fm.Action),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&fm.Date),
			huh.NewInput().
				Title("Points").
				Placeholder("0").
				Value(&fm.Points),
		).Title(title),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmationForm creates a yes/no prompt bound to fm
func NewConfirmationForm(fm *state.ConfirmationFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fm.Message).
				Affirmative("Yes").
				Negative("No").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}

// OpenForm shows the action form over the current draft.
func OpenForm(m *state.Model) tea.Cmd {
	m.Form = NewActionForm(m.ActionForm, m.FormTitle())
	m.State = constants.StateEditing
	return m.Form.Init()
}

// BeginEdit loads a into the form and makes it the edit target.
func BeginEdit(m *state.Model, a models.Action) {
	*m.ActionForm = models.FormFromAction(a)
	id := a.ID
	m.EditingID = &id
}

// CancelEdit drops the edit target and the draft. Nothing is sent.
func CancelEdit(m *state.Model) {
	m.ResetForm()
}

// HandleEditingState handles the action form state
func HandleEditingState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		if m.IsEditing() {
			CancelEdit(m)
			m.Error = ""
		}
		m.State = constants.StateActions
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		submit := Submit(m)
		if submit == nil {
			// Stay in the form so the user can fill in the missing fields
			m.Form = NewActionForm(m.ActionForm, m.FormTitle())
			return tea.Batch(m.Form.Init())
		}
		m.State = constants.StateActions
		cmds = append(cmds, submit)
	case huh.StateAborted:
		m.State = constants.StateActions
	}
	return tea.Batch(cmds...)
}
