package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/sustainlog/internal/constants"
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string

	switch m.State {
	case constants.StateEditing, constants.StateConfirmation:
		content = docStyle.Render(m.Form.View())
	default:
		content = m.viewActions()
	}

	sections := []string{m.viewHeader(), content}
	if m.Error != "" {
		sections = append(sections, dangerStyle.Render(m.Error))
	}
	if m.State == constants.StateActions {
		sections = append(sections, m.Help.View(m.Keys))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	title := constants.TitleActionsList
	if m.State == constants.StateEditing {
		title = m.FormTitle()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(constants.AppName),
		subtitleStyle.Render(title),
	)
}

func (m Model) viewActions() string {
	table := docStyle.Render(m.Table.View())
	if !m.Loading {
		return table
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		loadingStyle.Render(m.spinner.View()+" "+constants.MsgLoading),
		table,
	)
}
