package search

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/indaco/nmsearch/internal/browse"
	"github.com/indaco/nmsearch/internal/config"
	"github.com/indaco/nmsearch/internal/core"
	"github.com/indaco/nmsearch/internal/discovery"
	"github.com/indaco/nmsearch/internal/logging"
	"github.com/indaco/nmsearch/internal/opener"
	"github.com/indaco/nmsearch/internal/printer"
	"github.com/indaco/nmsearch/internal/selector"
	"github.com/indaco/nmsearch/internal/tui"
	"github.com/urfave/cli/v3"
)

// ErrNotInteractive is returned when no terminal is available for pickers.
var ErrNotInteractive = errors.New("nmsearch needs an interactive terminal")

// Flags returns the flags of the search command. They are shared with the
// root command, which runs a search when no subcommand is given.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "last",
			Aliases: []string{"l"},
			Usage:   "Reopen the folder of the last opened file",
		},
		&cli.StringFlag{
			Name:  "path",
			Usage: "Dependency folder name",
		},
		&cli.BoolFlag{
			Name:  "print",
			Usage: "Print the chosen file path instead of opening it",
		},
		&cli.StringFlag{
			Name:  "strategy",
			Usage: "Discovery strategy: manifest, recursive, auto",
		},
	}
}

// Run returns the "search" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Browse dependency folders and open a file",
		ArgsUsage: "[workspace...]",
		Flags:     Flags(),
		Action:    Action(cfg),
	}
}

// Action runs a search for cmd with the production collaborators.
func Action(cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if !tui.IsInteractive() {
			return ErrNotInteractive
		}

		effective, err := applyFlags(cfg, cmd)
		if err != nil {
			return err
		}

		logger := logging.New(cmd.Bool("verbose"))
		fs := core.NewOSFileSystem()
		open, err := opener.New(opener.Options{
			Editor:     effective.Editor,
			PrintPath:  cmd.Bool("print"),
			FileSystem: fs,
		})
		if err != nil {
			return err
		}

		s := &Searcher{
			Config:   effective,
			FS:       fs,
			Picker:   tui.NewPicker(),
			Opener:   open,
			Notifier: printer.NewNotifier(),
			Store:    StoreFor(effective),
			Getwd:    os.Getwd,
			Logger:   logger,
		}

		res, err := s.Search(ctx, Options{
			Workspaces: cmd.Args().Slice(),
			Last:       cmd.Bool("last"),
			Strategy:   cmd.String("strategy"),
		})
		if err != nil {
			return err
		}
		if res.Err != nil {
			// Already shown by the notifier.
			return cli.Exit("", 1)
		}
		return nil
	}
}

// applyFlags returns a copy of cfg with command-line overrides applied.
func applyFlags(cfg *config.Config, cmd *cli.Command) (*config.Config, error) {
	effective := *cfg
	if p := cmd.String("path"); p != "" {
		clean, err := config.CleanDependencyFolder(p)
		if err != nil {
			return nil, fmt.Errorf("invalid --path: %w", err)
		}
		effective.Path = clean
	}
	return &effective, nil
}

// StoreFor returns the LastVisited store for cfg: a file store at
// cfg.StatePath(), or the in-memory store when no cache directory exists.
func StoreFor(cfg *config.Config) browse.Store {
	if file := cfg.StatePath(); file != "" {
		return browse.NewFileStore(file)
	}
	return browse.DefaultStore()
}

// Options are the per-invocation inputs of a search.
type Options struct {
	// Workspaces are workspace folders given on the command line.
	Workspaces []string

	// Last reopens the last visited folder even when useLastFolder is off.
	Last bool

	// Strategy overrides discovery.strategy when set.
	Strategy string
}

// Searcher wires selection and browsing together.
type Searcher struct {
	Config   *config.Config
	FS       core.FileSystem
	Picker   core.Picker
	Opener   browse.Opener
	Notifier browse.Notifier
	Store    browse.Store
	Getwd    func() (string, error)
	Logger   *log.Logger
}

// Search resumes the last visited folder when enabled, otherwise selects a
// workspace and package and browses its dependency folder.
func (s *Searcher) Search(ctx context.Context, opts Options) (browse.Result, error) {
	logger := s.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	session := browse.NewSession(browse.Options{
		FileSystem: s.FS,
		Picker:     s.Picker,
		Opener:     s.Opener,
		Notifier:   s.Notifier,
		Store:      s.Store,
		Config:     s.Config,
		Logger:     logger,
	})

	if st, ok := session.Resume(s.Config.UseLastFolder || opts.Last); ok {
		logger.Debug("resuming last folder", "workspace", st.WorkspaceName, "folder", st.Folder)
		return session.Run(ctx, st)
	}

	cwd, err := s.Getwd()
	if err != nil {
		return browse.Result{}, fmt.Errorf("failed to get current directory: %w", err)
	}

	workspaces, err := selector.Workspaces(ctx, s.FS, opts.Workspaces, s.Config, cwd)
	if err != nil {
		return browse.Result{}, err
	}

	discoveryOpts := []discovery.Option{discovery.WithLogger(logger)}
	if opts.Strategy != "" {
		discoveryOpts = append(discoveryOpts, discovery.WithStrategy(opts.Strategy))
	}
	svc := discovery.NewService(s.FS, s.Config, discoveryOpts...)

	pkg, ok, err := selector.New(s.FS, s.Picker, svc, s.Config, logger).Resolve(ctx, workspaces)
	if err != nil {
		return browse.Result{}, err
	}
	if !ok {
		return browse.Result{Phase: browse.Cancelled}, nil
	}

	logger.Debug("package selected", "name", pkg.Name, "path", pkg.Path)
	return session.Run(ctx, session.Start(pkg.Name, pkg.Path))
}
