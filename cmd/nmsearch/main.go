package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/indaco/nmsearch/internal/cli"
	"github.com/indaco/nmsearch/internal/config"
	"github.com/indaco/nmsearch/internal/printer"
	urfavecli "github.com/urfave/cli/v3"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		os.Exit(exitCode(err))
	}
}

// runCLI loads the configuration and runs the command line. Errors are
// printed here, except exit errors without a message, which were already
// reported to the user.
func runCLI(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfigFn()
	if err != nil {
		printer.PrintError(err.Error())
		return err
	}

	err = cli.New(cfg).Run(ctx, args)
	if err != nil && err.Error() != "" {
		printer.PrintError(err.Error())
	}
	return err
}

func exitCode(err error) int {
	var exitErr urfavecli.ExitCoder
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
