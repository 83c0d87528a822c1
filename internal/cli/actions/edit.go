package actions

import (
	"fmt"

	"github.com/julianstephens/sustainlog/internal/cli"
	"github.com/julianstephens/sustainlog/internal/models"
)

type EditCmd struct {
	ID     int64   `arg:"" help:"Action ID."`
	Action *string `short:"a" help:"New description."`
	Date   *string `short:"d" help:"New date (YYYY-MM-DD)."`
	Points *string `short:"p" help:"New point value."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	patch := models.ActionPatch{
		Action: c.Action,
		Date:   c.Date,
	}
	if c.Points != nil {
		points := models.ParsePoints(*c.Points)
		patch.Points = &points
	}
	if patch.Empty() {
		return fmt.Errorf("nothing to update: pass --action, --date or --points")
	}

	if err := ctx.Client.Update(ctx.Context(), c.ID, patch); err != nil {
		return fmt.Errorf("failed to update action %d: %w", c.ID, err)
	}

	fmt.Fprintf(ctx.Stdout(), "Updated action %d\n", c.ID)
	return nil
}
