package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/sustainlog/internal/client"
	"github.com/julianstephens/sustainlog/internal/tui/handlers"
	"github.com/julianstephens/sustainlog/internal/tui/state"
)

type Model struct {
	state.Model
	spinner spinner.Model
}

// NewModel creates the TUI for the collection served by c. Nothing is fetched
// until the program calls Init.
func NewModel(ctx context.Context, c client.Provider) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		Model:   state.New(ctx, c),
		spinner: s,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(handlers.ListActions(m.Ctx, m.Client), m.spinner.Tick)
}
