package discover

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/indaco/nmsearch/internal/config"
	"github.com/indaco/nmsearch/internal/core"
	"github.com/indaco/nmsearch/internal/discovery"
	"github.com/indaco/nmsearch/internal/logging"
	"github.com/indaco/nmsearch/internal/selector"
	"github.com/indaco/nmsearch/internal/tui"
	"github.com/urfave/cli/v3"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: text, json, table",
		Value:   "text",
	}
}

// RunPackages returns the "packages" command.
func RunPackages(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "packages",
		Usage:     "List the packages declared by the monorepo manifest",
		ArgsUsage: "[workspace]",
		UsageText: `nmsearch packages [options] [workspace]

Reads lerna.json, pnpm-workspace.yaml or the "workspaces" field of
package.json and lists the package folders offered for browsing.`,
		Flags: []cli.Flag{formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDiscoverCmd(ctx, cmd, cfg, config.StrategyManifest)
		},
	}
}

// RunScan returns the "scan" command.
func RunScan(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "Find every package folder that has a dependency folder",
		ArgsUsage: "[workspace]",
		UsageText: `nmsearch scan [options] [workspace]

Walks the workspace and lists every folder containing both package.json
and the dependency folder. Dependency folders themselves are not entered.`,
		Flags: []cli.Flag{formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDiscoverCmd(ctx, cmd, cfg, config.StrategyRecursive)
		},
	}
}

func runDiscoverCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config, strategy string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	d := &Discoverer{
		Config:  cfg,
		FS:      core.NewOSFileSystem(),
		Logger:  logging.New(cmd.Bool("verbose")),
		Out:     os.Stdout,
		Spinner: tui.IsTTY(),
	}
	return d.Run(ctx, Options{
		Workspace: cmd.Args().First(),
		Cwd:       cwd,
		Strategy:  strategy,
		Format:    ParseOutputFormat(cmd.String("format")),
	})
}

// Options are the per-invocation inputs of a discover command.
type Options struct {
	Workspace string
	Cwd       string
	Strategy  string
	Format    OutputFormat
}

// Discoverer runs one discovery strategy and prints the report.
type Discoverer struct {
	Config  *config.Config
	FS      core.FileSystem
	Logger  *log.Logger
	Out     io.Writer
	Spinner bool
}

// Run discovers packages in the requested workspace and prints them.
func (d *Discoverer) Run(ctx context.Context, opts Options) error {
	var paths []string
	if opts.Workspace != "" {
		paths = []string{opts.Workspace}
	}
	workspaces, err := selector.Workspaces(ctx, d.FS, paths, d.Config, opts.Cwd)
	if err != nil {
		return err
	}
	ws := workspaces[0]

	logger := d.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	svc := discovery.NewService(d.FS, d.Config, discovery.WithLogger(logger), discovery.WithStrategy(opts.Strategy))

	var result *discovery.Result
	discover := func(ctx context.Context) error {
		var err error
		result, err = svc.Discover(ctx, ws.Path)
		return err
	}
	if d.Spinner && opts.Format == FormatText {
		err = tui.RunWithSpinner(ctx, "Discovering packages in "+ws.Name, discover)
	} else {
		err = discover(ctx)
	}
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	report, err := BuildReport(ctx, d.FS, d.Config, ws, result)
	if err != nil {
		return err
	}

	out, err := NewFormatter(opts.Format).FormatReport(report)
	if err != nil {
		return err
	}
	_, err = io.WriteString(d.Out, out)
	return err
}
