package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/envira/envira-cli/internal/api"
	"github.com/envira/envira-cli/internal/cli"
	"github.com/envira/envira-cli/internal/config"
	"github.com/envira/envira-cli/internal/constants"
	"github.com/envira/envira-cli/internal/logger"
	"github.com/envira/envira-cli/internal/session"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Enable debug logging."`
	Config  string `help:"Config directory override." type:"path"`

	Login       cli.LoginCmd       `cmd:"" help:"Sign in and store the session token."`
	Register    cli.RegisterCmd    `cmd:"" help:"Create a new account."`
	Logout      cli.LogoutCmd      `cmd:"" help:"Discard the stored session token."`
	Dashboard   cli.DashboardCmd   `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Preferences cli.PreferencesCmd `cmd:"" help:"Pick the activities recommendations are tuned to."`
	History     cli.HistoryCmd     `cmd:"" help:"Print the reconciled activity feed."`
	Exercises   cli.ExercisesCmd   `cmd:"" help:"List the exercise catalog or your stats."`
	Devices     cli.DevicesCmd     `cmd:"" help:"List registered sensor devices."`
	Doctor      cli.DoctorCmd      `cmd:"" help:"Run connectivity and storage diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Wellness dashboard for Envira environment sensors"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	configDir := CLI.Config
	if configDir == "" {
		var err error
		configDir, err = config.Dir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else if err := os.MkdirAll(configDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := session.NewStore(configDir)
	appCtx := &cli.Context{
		Config:    cfg,
		ConfigDir: configDir,
		Client:    api.NewClient(cfg.BaseURL, store),
		Session:   store,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
