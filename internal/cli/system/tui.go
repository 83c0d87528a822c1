package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/sustainlog/internal/cli"
	"github.com/julianstephens/sustainlog/internal/logger"
	"github.com/julianstephens/sustainlog/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if ctx.Config != nil {
		logger.Info("Starting TUI", "api_url", ctx.Config.BaseURL)
	}

	p := tea.NewProgram(tui.NewModel(ctx.Context(), ctx.Client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}
