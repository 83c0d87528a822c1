package state

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/sustainlog/internal/client"
	"github.com/julianstephens/sustainlog/internal/constants"
	"github.com/julianstephens/sustainlog/internal/models"
	"github.com/julianstephens/sustainlog/internal/tui/components/actiontable"
)

// ConfirmationFormModel represents the form model for yes/no prompts
type ConfirmationFormModel struct {
	Message   string
	Confirmed bool
}

// Model represents the shared state for the TUI. It is only mutated from the
// bubbletea update loop; network calls run in commands and report back as
// messages.
type Model struct {
	Ctx              context.Context
	Client           client.Provider
	State            constants.SessionState
	Keys             KeyMap
	Help             help.Model
	Table            actiontable.Model
	Actions          []models.Action
	Form             *huh.Form
	ActionForm       *models.ActionForm
	ConfirmationForm *ConfirmationFormModel
	PendingAction    func() tea.Cmd
	EditingID        *int64 // Edit target; nil while composing a new action
	Error            string // Error message shown under the form and table
	Loading          bool
	Quitting         bool
	Width            int
	Height           int
}

// New creates the state for a freshly mounted TUI. The initial list fetch is
// issued by Init, so the state starts out loading.
func New(ctx context.Context, c client.Provider) Model {
	m := Model{
		Ctx:        ctx,
		Client:     c,
		State:      constants.StateActions,
		Keys:       DefaultKeyMap(),
		Help:       help.New(),
		Table:      actiontable.New(nil, 0, 0),
		Actions:    []models.Action{},
		ActionForm: &models.ActionForm{},
	}
	m.SetLoading(true)
	return m
}

// SetActions replaces the list snapshot.
func (m *Model) SetActions(actions []models.Action) {
	if actions == nil {
		actions = []models.Action{}
	}
	m.Actions = actions
	m.Table.SetActions(actions)
}

// SetLoading toggles the loading flag on the state and the table.
func (m *Model) SetLoading(loading bool) {
	m.Loading = loading
	m.Table.SetLoading(loading)
}

// IsEditing reports whether the form targets an existing action.
func (m Model) IsEditing() bool {
	return m.EditingID != nil
}

// FormTitle is the heading shown above the action form.
func (m Model) FormTitle() string {
	if m.IsEditing() {
		return constants.TitleEditAction
	}
	return constants.TitleAddAction
}

// ResetForm clears the form fields and the edit target.
func (m *Model) ResetForm() {
	m.ActionForm.Reset()
	m.EditingID = nil
}
