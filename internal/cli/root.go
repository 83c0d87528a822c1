package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/julianstephens/sustainlog/internal/client"
	"github.com/julianstephens/sustainlog/internal/config"
)

type Context struct {
	Ctx     context.Context
	Client  client.Provider
	Config  *config.Config
	Metrics prometheus.Gatherer
	Out     io.Writer

	// Prompt replaces the interactive confirmation when set.
	Prompt func(message string) (bool, error)
}

// Context returns the request context, falling back to Background.
func (c *Context) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// Stdout is where commands write their output.
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Confirm asks a yes/no question on the terminal.
func (c *Context) Confirm(message string) (bool, error) {
	if c.Prompt != nil {
		return c.Prompt(message)
	}

	var confirmed bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(message).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeDracula()).Run()
	if err != nil {
		return false, err
	}
	return confirmed, nil
}
