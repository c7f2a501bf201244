package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/indaco/nmsearch/internal/commands/discover"
	"github.com/indaco/nmsearch/internal/commands/doctor"
	"github.com/indaco/nmsearch/internal/commands/initialize"
	"github.com/indaco/nmsearch/internal/commands/search"
	"github.com/indaco/nmsearch/internal/config"
	"github.com/indaco/nmsearch/internal/printer"
	"github.com/indaco/nmsearch/internal/tui"
	"github.com/indaco/nmsearch/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// New builds and returns the root CLI command. Running it without a
// subcommand starts a search. cfg is updated in place when --config names
// another configuration file.
func New(cfg *config.Config) *urfavecli.Command {
	flags := []urfavecli.Flag{
		&urfavecli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output",
		},
		&urfavecli.BoolFlag{
			Name:  "verbose",
			Usage: "Log discovery and browsing steps to stderr",
		},
		&urfavecli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file",
			Sources: urfavecli.EnvVars("NMSEARCH_CONFIG"),
		},
	}

	return &urfavecli.Command{
		Name:                  "nmsearch",
		Version:               fmt.Sprintf("v%s", strings.TrimPrefix(version.GetVersion(), "v")),
		Usage:                 "Browse and open files inside node_modules",
		ArgsUsage:             "[workspace...]",
		EnableShellCompletion: true,
		Flags:                 append(flags, search.Flags()...),
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(cmd.Bool("no-color"))
			if file := cmd.String("config"); file != "" {
				loaded, err := config.LoadFrom(file)
				if err != nil {
					return ctx, err
				}
				*cfg = *loaded
			}
			tui.SetTheme(cfg.Theme)
			return ctx, nil
		},
		Action: search.Action(cfg),
		Commands: []*urfavecli.Command{
			search.Run(cfg),
			discover.RunPackages(cfg),
			discover.RunScan(cfg),
			initialize.Run(),
			doctor.Run(cfg),
		},
		// Exit codes are decided by main.
		ExitErrHandler: func(context.Context, *urfavecli.Command, error) {},
	}
}
