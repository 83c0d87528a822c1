package actions

import (
	"fmt"

	"github.com/julianstephens/sustainlog/internal/cli"
	"github.com/julianstephens/sustainlog/internal/constants"
)

type DeleteCmd struct {
	ID  int64 `arg:"" help:"Action ID to delete."`
	Yes bool  `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		confirmed, err := ctx.Confirm(constants.MsgConfirmDelete)
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !confirmed {
			fmt.Fprintln(ctx.Stdout(), "Cancelled")
			return nil
		}
	}

	if err := ctx.Client.Remove(ctx.Context(), c.ID); err != nil {
		return fmt.Errorf("failed to delete action %d: %w", c.ID, err)
	}

	fmt.Fprintf(ctx.Stdout(), "Deleted action %d\n", c.ID)
	return nil
}
