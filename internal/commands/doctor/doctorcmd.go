package doctor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/indaco/nmsearch/internal/config"
	"github.com/indaco/nmsearch/internal/core"
	"github.com/indaco/nmsearch/internal/printer"
	"github.com/indaco/nmsearch/internal/tui"
	"github.com/urfave/cli/v3"
)

// Run returns the "doctor" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "doctor",
		Usage:     "Check the configuration against a workspace folder",
		ArgsUsage: "[workspace]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root := cmd.Args().First()
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get current directory: %w", err)
				}
				root = wd
			}
			return Check(ctx, core.NewOSFileSystem(), cfg, root, os.Stdout)
		},
	}
}

// Check validates cfg against root and prints one line per check. It fails
// when any check is an error.
func Check(ctx context.Context, fs core.FileSystem, cfg *config.Config, root string, w io.Writer) error {
	results := config.NewValidator(fs, cfg, root, tui.ValidThemes).Validate(ctx)

	for _, r := range results {
		var status string
		switch {
		case !r.Passed:
			status = printer.Error("✗")
		case r.Warning:
			status = printer.Warning("⚠")
		default:
			status = printer.Success("✓")
		}
		fmt.Fprintf(w, "%s %s: %s\n", status, printer.Bold(r.Category), r.Message)
	}

	errCount := config.ErrorCount(results)
	warnCount := config.WarningCount(results)
	fmt.Fprintf(w, "\n%s\n", printer.Faint(fmt.Sprintf("%d error(s), %d warning(s)", errCount, warnCount)))

	if errCount > 0 {
		return fmt.Errorf("configuration has %d error(s)", errCount)
	}
	return nil
}
