package selector

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/indaco/nmsearch/internal/config"
	"github.com/indaco/nmsearch/internal/core"
	"github.com/indaco/nmsearch/internal/discovery"
	"github.com/indaco/nmsearch/internal/logging"
	"github.com/indaco/nmsearch/internal/pathutil"
	"golang.org/x/sync/errgroup"
)

// ErrNoWorkspace is returned when no workspace folder is available.
var ErrNoWorkspace = errors.New("you must have a workspace opened")

// Workspace is a top-level project folder.
type Workspace struct {
	Name string
	Path string
}

// PackageLabel returns the picker label of a candidate: the workspace name
// for the root, else the workspace name and the package folder name.
func (ws Workspace) PackageLabel(rel string) string {
	if rel == discovery.Root {
		return ws.Name
	}
	return ws.Name + "/" + filepath.Base(rel)
}

// Package is the resolved starting point of a browse session: a display
// name and the folder the dependency folder is looked up in.
type Package struct {
	Name string
	Path string
}

// Discoverer finds candidate package folders in a workspace.
type Discoverer interface {
	Discover(ctx context.Context, root string) (*discovery.Result, error)
}

// Selector drives workspace and package selection.
type Selector struct {
	fs         core.FileSystem
	picker     core.Picker
	discoverer Discoverer
	cfg        *config.Config
	logger     *log.Logger
}

// New creates a Selector.
func New(fs core.FileSystem, picker core.Picker, discoverer Discoverer, cfg *config.Config, logger *log.Logger) *Selector {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Selector{
		fs:         fs,
		picker:     picker,
		discoverer: discoverer,
		cfg:        cfg,
		logger:     logger,
	}
}

// Workspaces builds the workspace list from explicit paths, falling back to
// the configured workspaces and then to cwd. Paths that are not directories
// are skipped; an empty result is ErrNoWorkspace.
func Workspaces(ctx context.Context, fs core.FileSystem, paths []string, cfg *config.Config, cwd string) ([]Workspace, error) {
	if len(paths) == 0 && cfg != nil {
		paths = cfg.Workspaces
	}
	if len(paths) == 0 && cwd != "" {
		paths = []string{cwd}
	}

	seen := make(map[string]bool)
	workspaces := make([]Workspace, 0, len(paths))
	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(cwd, p)
		}
		abs = filepath.Clean(abs)
		if seen[abs] || !core.IsDir(ctx, fs, abs) {
			continue
		}
		seen[abs] = true
		workspaces = append(workspaces, Workspace{Name: filepath.Base(abs), Path: abs})
	}

	if len(workspaces) == 0 {
		return nil, ErrNoWorkspace
	}
	return workspaces, nil
}

// Resolve selects a workspace and then a package within it.
// ok is false when the user cancelled one of the pickers.
func (s *Selector) Resolve(ctx context.Context, workspaces []Workspace) (Package, bool, error) {
	ws, ok, err := s.SelectWorkspace(ctx, workspaces)
	if err != nil || !ok {
		return Package{}, false, err
	}
	return s.SelectPackage(ctx, ws)
}

// SelectWorkspace returns the only workspace, or asks the user to choose.
func (s *Selector) SelectWorkspace(ctx context.Context, workspaces []Workspace) (Workspace, bool, error) {
	switch len(workspaces) {
	case 0:
		return Workspace{}, false, ErrNoWorkspace
	case 1:
		return workspaces[0], true, nil
	}

	choices := make([]core.Choice, len(workspaces))
	for i, ws := range workspaces {
		choices[i] = core.Choice{Label: ws.Name, Value: ws.Path}
	}

	value, ok, err := s.picker.Pick(ctx, "Select workspace folder", choices)
	if err != nil || !ok {
		return Workspace{}, false, err
	}

	for _, ws := range workspaces {
		if ws.Path == value {
			return ws, true, nil
		}
	}
	return Workspace{}, false, nil
}

// SelectPackage runs discovery on ws and resolves the package to browse.
// With only the root candidate no picker is shown.
func (s *Selector) SelectPackage(ctx context.Context, ws Workspace) (Package, bool, error) {
	result, err := s.discoverer.Discover(ctx, ws.Path)
	if err != nil {
		return Package{}, false, err
	}

	candidates, err := s.filterCandidates(ctx, ws, discovery.WithRoot(result.Candidates))
	if err != nil {
		return Package{}, false, err
	}
	s.logger.Debug("package candidates", "workspace", ws.Name, "strategy", result.Strategy, "count", len(candidates))

	if len(candidates) == 1 {
		return Package{Name: ws.Name, Path: ws.Path}, true, nil
	}

	choices := make([]core.Choice, len(candidates))
	for i, rel := range candidates {
		choices[i] = core.Choice{Label: ws.PackageLabel(rel), Value: rel}
	}

	rel, ok, err := s.picker.Pick(ctx, "Select package", choices)
	if err != nil || !ok {
		return Package{}, false, err
	}

	return s.resolve(ws, rel), true, nil
}

func (s *Selector) resolve(ws Workspace, rel string) Package {
	if rel == discovery.Root {
		return Package{
			Name: pathutil.Label(ws.Name, s.cfg.DependencyFolder()),
			Path: ws.Path,
		}
	}
	return Package{
		Name: filepath.Base(rel),
		Path: filepath.Join(ws.Path, rel),
	}
}

// filterCandidates drops packages without a dependency folder when the
// configuration asks for it. The checks run concurrently; order is kept.
func (s *Selector) filterCandidates(ctx context.Context, ws Workspace, candidates []string) ([]string, error) {
	if !s.cfg.RequireDependencyFolder() {
		return candidates, nil
	}

	keep := make([]bool, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	for i, rel := range candidates {
		if rel == discovery.Root {
			keep[i] = true
			continue
		}
		g.Go(func() error {
			keep[i] = core.IsDir(gctx, s.fs, filepath.Join(ws.Path, rel, s.cfg.DependencyFolder()))
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	filtered := make([]string, 0, len(candidates))
	for i, rel := range candidates {
		if keep[i] {
			filtered = append(filtered, rel)
		}
	}
	return filtered, nil
}
