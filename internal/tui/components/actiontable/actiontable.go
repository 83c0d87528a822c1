package actiontable

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/sustainlog/internal/constants"
	"github.com/julianstephens/sustainlog/internal/models"
)

type AddActionMsg struct{}

type EditActionMsg struct {
	Action models.Action
}

type DeleteActionMsg struct {
	ID int64
}

type RefreshActionsMsg struct{}

type KeyMap struct {
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Refresh key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

const (
	idWidth     = 6
	dateWidth   = 12
	pointsWidth = 8
	minAction   = 16
)

var emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

type Model struct {
	table   table.Model
	actions []models.Action
	keys    KeyMap
	loading bool
}

func New(actions []models.Action, width, height int) Model {
	t := table.New(
		table.WithColumns(columns(width)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(styles)

	m := Model{table: t, keys: DefaultKeyMap()}
	m.SetActions(actions)
	m.SetSize(width, height)
	return m
}

// columns sizes the Action column to fill whatever width is left over.
func columns(width int) []table.Column {
	actionWidth := width - idWidth - dateWidth - pointsWidth - 8
	if actionWidth < minAction {
		actionWidth = minAction
	}
	return []table.Column{
		{Title: "ID", Width: idWidth},
		{Title: "Action", Width: actionWidth},
		{Title: "Date", Width: dateWidth},
		{Title: "Points", Width: pointsWidth},
	}
}

// SetActions replaces the rows shown by the table.
func (m *Model) SetActions(actions []models.Action) {
	m.actions = append([]models.Action(nil), actions...)
	rows := make([]table.Row, len(actions))
	for i, a := range actions {
		rows[i] = table.Row{
			strconv.FormatInt(a.ID, 10),
			a.Action,
			a.Date,
			strconv.Itoa(a.Points),
		}
	}
	m.table.SetRows(rows)
	// An empty table parks the cursor at -1; bring it back onto the rows.
	switch cursor := m.table.Cursor(); {
	case len(rows) == 0:
	case cursor < 0:
		m.table.SetCursor(0)
	case cursor >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// Selected returns the action under the cursor.
func (m Model) Selected() (models.Action, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.actions) {
		return models.Action{}, false
	}
	return m.actions[i], true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddActionMsg{} }
		case key.Matches(msg, m.keys.Refresh):
			return m, func() tea.Msg { return RefreshActionsMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if a, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditActionMsg{Action: a} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if a, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteActionMsg{ID: a.ID} }
			}
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.actions) == 0 {
		if m.loading {
			return ""
		}
		return "\n  " + constants.MsgNoActions + "\n  " + emptyStyle.Render("Press 'a' to add one.")
	}
	return m.table.View()
}

func (m *Model) SetSize(width, height int) {
	if width > 0 {
		m.table.SetColumns(columns(width))
		m.table.SetWidth(width)
	}
	if height > 0 {
		m.table.SetHeight(height)
	}
}
