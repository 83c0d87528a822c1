package actions

import (
	"fmt"

	"github.com/julianstephens/sustainlog/internal/cli"
	"github.com/julianstephens/sustainlog/internal/models"
)

type AddCmd struct {
	Action string `short:"a" help:"What was done."`
	Date   string `short:"d" help:"Day it was done (YYYY-MM-DD)."`
	Points string `short:"p" help:"Points earned."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	form := models.ActionForm{
		Action: c.Action,
		Date:   c.Date,
		Points: c.Points,
	}
	if err := form.Validate(); err != nil {
		return err
	}

	in := form.Input()
	if err := ctx.Client.Create(ctx.Context(), in); err != nil {
		return fmt.Errorf("failed to add action: %w", err)
	}

	fmt.Fprintf(ctx.Stdout(), "Added action: %s on %s (%s points)\n", in.Action, in.Date, in.Points)
	return nil
}
