package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/julianstephens/sustainlog/internal/cli"
	"github.com/julianstephens/sustainlog/internal/cli/actions"
	"github.com/julianstephens/sustainlog/internal/cli/system"
	"github.com/julianstephens/sustainlog/internal/client"
	"github.com/julianstephens/sustainlog/internal/config"
	"github.com/julianstephens/sustainlog/internal/constants"
	"github.com/julianstephens/sustainlog/internal/errors"
	"github.com/julianstephens/sustainlog/internal/logger"
)

var CLI struct {
	Version   kong.VersionFlag
	APIURL    string `name:"api-url" help:"Base URL of the actions API." env:"SUSTAINLOG_API_URL" default:"${default_api_url}"`
	ConfigDir string `help:"Directory for logs and the config file." type:"path" env:"SUSTAINLOG_CONFIG_DIR" default:"${default_config_dir}"`
	Debug     bool   `help:"Enable debug logging to stderr." env:"SUSTAINLOG_DEBUG"`

	Tui    system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Doctor system.DoctorCmd  `cmd:"" help:"Check that the actions API is reachable."`
	List   actions.ListCmd   `cmd:"" help:"List recorded actions."`
	Add    actions.AddCmd    `cmd:"" help:"Record a new action."`
	Edit   actions.EditCmd   `cmd:"" help:"Change fields of an existing action."`
	Delete actions.DeleteCmd `cmd:"" help:"Delete an action."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track sustainability actions against a remote collection"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, constants.DefaultConfigFile),
		kong.Vars{
			"version":            constants.Version,
			"default_api_url":    constants.DefaultBaseURL,
			"default_config_dir": constants.DefaultConfigDir,
		},
	)

	cfg, err := config.Load(CLI.APIURL, CLI.ConfigDir, CLI.Debug)
	if err != nil {
		errors.Fatal(err)
	}

	// The TUI owns the terminal, so stderr logging is only enabled for plain
	// commands.
	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.ConfigDir,
		Stderr:    ctx.Command() != "tui",
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Close()

	reg := prometheus.NewRegistry()
	appCtx := &cli.Context{
		Ctx:     context.Background(),
		Client:  client.New(cfg.BaseURL, client.WithRegistry(reg)),
		Config:  cfg,
		Metrics: reg,
	}

	logger.Debug("Running command", "command", ctx.Command(), "api_url", cfg.BaseURL)

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
