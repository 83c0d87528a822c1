package actions

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/sustainlog/internal/cli"
	"github.com/julianstephens/sustainlog/internal/constants"
	"github.com/julianstephens/sustainlog/internal/models"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

type ListCmd struct {
	JSON bool `help:"Print the collection as JSON."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	actions, err := ctx.Client.List(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to list actions: %w", err)
	}

	out := ctx.Stdout()
	if c.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(actions)
	}

	if len(actions) == 0 {
		fmt.Fprintln(out, constants.MsgNoActions)
		return nil
	}

	fmt.Fprintln(out, renderTable(actions))
	return nil
}

func renderTable(actions []models.Action) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Action", "Date", "Points").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, a := range actions {
		t.Row(strconv.FormatInt(a.ID, 10), a.Action, a.Date, strconv.Itoa(a.Points))
	}
	return t.Render()
}
