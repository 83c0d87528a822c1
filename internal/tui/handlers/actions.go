package handlers

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/sustainlog/internal/client"
	"github.com/julianstephens/sustainlog/internal/constants"
	"github.com/julianstephens/sustainlog/internal/logger"
	"github.com/julianstephens/sustainlog/internal/models"
	"github.com/julianstephens/sustainlog/internal/tui/components/actiontable"
	"github.com/julianstephens/sustainlog/internal/tui/state"
)

// ActionsLoadedMsg carries the result of a list fetch.
type ActionsLoadedMsg struct {
	Actions []models.Action
	Err     error
}

// ActionSavedMsg carries the result of a create or update.
type ActionSavedMsg struct {
	Err error
}

// ActionDeletedMsg carries the result of a delete.
type ActionDeletedMsg struct {
	ID  int64
	Err error
}

// ListActions fetches the collection in the background.
func ListActions(ctx context.Context, c client.Provider) tea.Cmd {
	return func() tea.Msg {
		actions, err := c.List(ctx)
		return ActionsLoadedMsg{Actions: actions, Err: err}
	}
}

// FetchActions marks the list as loading and starts a fetch. Earlier fetches
// are not cancelled; whichever result arrives last is shown.
func FetchActions(m *state.Model) tea.Cmd {
	m.SetLoading(true)
	return ListActions(m.Ctx, m.Client)
}

// DeleteAction removes id in the background.
func DeleteAction(ctx context.Context, c client.Provider, id int64) tea.Cmd {
	return func() tea.Msg {
		return ActionDeletedMsg{ID: id, Err: c.Remove(ctx, id)}
	}
}

// Submit validates the form and, when every field is filled in, returns the
// command that creates or updates the record. It returns nil when the form is
// incomplete.
func Submit(m *state.Model) tea.Cmd {
	m.Error = ""
	if err := m.ActionForm.Validate(); err != nil {
		m.Error = err.Error()
		return nil
	}

	c, ctx := m.Client, m.Ctx
	in := m.ActionForm.Input()

	if m.EditingID != nil {
		id := *m.EditingID
		patch := models.PatchFromInput(in)
		return func() tea.Msg {
			return ActionSavedMsg{Err: c.Update(ctx, id, patch)}
		}
	}
	return func() tea.Msg {
		return ActionSavedMsg{Err: c.Create(ctx, in)}
	}
}

// SubmitErrorMessage picks the text shown after a failed save.
func SubmitErrorMessage(err error) string {
	var verr *client.ValidationError
	if errors.As(err, &verr) {
		if msg, ok := verr.FieldError(constants.ValidationFieldKey); ok && msg != "" {
			return msg
		}
	}
	return constants.MsgServerRejected
}

// HandleActionMessages handles messages from the action table and results of
// background requests.
func HandleActionMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case ActionsLoadedMsg:
		m.SetLoading(false)
		if msg.Err != nil {
			logger.Error("Failed to load actions", "error", msg.Err)
			m.Error = constants.MsgLoadFailed
			return true, nil
		}
		m.SetActions(msg.Actions)
		return true, nil

	case ActionSavedMsg:
		if msg.Err != nil {
			logger.Error("Failed to save action", "error", msg.Err)
			m.Error = SubmitErrorMessage(msg.Err)
			return true, OpenForm(m)
		}
		m.ResetForm()
		return true, FetchActions(m)

	case ActionDeletedMsg:
		if msg.Err != nil {
			logger.Error("Failed to delete action", "id", msg.ID, "error", msg.Err)
			m.Error = constants.MsgDeleteFailed
			return true, nil
		}
		return true, FetchActions(m)

	case actiontable.AddActionMsg:
		return true, OpenForm(m)

	case actiontable.EditActionMsg:
		BeginEdit(m, msg.Action)
		return true, OpenForm(m)

	case actiontable.DeleteActionMsg:
		c, ctx, id := m.Client, m.Ctx, msg.ID
		return true, func() tea.Msg {
			return constants.ConfirmationMsg{
				Message: constants.MsgConfirmDelete,
				Action: func() tea.Cmd {
					return DeleteAction(ctx, c, id)
				},
			}
		}

	case actiontable.RefreshActionsMsg:
		return true, FetchActions(m)
	}
	return false, nil
}
