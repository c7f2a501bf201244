package discover

import (
	"context"
	"path/filepath"

	"github.com/indaco/nmsearch/internal/config"
	"github.com/indaco/nmsearch/internal/core"
	"github.com/indaco/nmsearch/internal/discovery"
	"github.com/indaco/nmsearch/internal/selector"
	"golang.org/x/sync/errgroup"
)

// OutputFormat controls how discovery results are displayed.
type OutputFormat string

const (
	// FormatText outputs human-readable text.
	FormatText OutputFormat = "text"

	// FormatJSON outputs machine-readable JSON.
	FormatJSON OutputFormat = "json"

	// FormatTable outputs tabular data.
	FormatTable OutputFormat = "table"
)

// ParseOutputFormat converts a string to OutputFormat.
func ParseOutputFormat(s string) OutputFormat {
	switch s {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// PackageInfo is one discovered package folder.
type PackageInfo struct {
	Label               string
	RelPath             string
	Path                string
	HasDependencyFolder bool
}

// Report is what the discover commands print.
type Report struct {
	Workspace        selector.Workspace
	Strategy         string
	Manifest         string
	DependencyFolder string
	Packages         []PackageInfo
}

// MissingDependencyFolders counts packages without a dependency folder.
func (r *Report) MissingDependencyFolders() int {
	n := 0
	for _, p := range r.Packages {
		if !p.HasDependencyFolder {
			n++
		}
	}
	return n
}

// BuildReport describes result for ws, checking each candidate for a
// dependency folder concurrently.
func BuildReport(ctx context.Context, fs core.FileSystem, cfg *config.Config, ws selector.Workspace, result *discovery.Result) (*Report, error) {
	depFolder := cfg.DependencyFolder()
	candidates := discovery.WithRoot(result.Candidates)

	report := &Report{
		Workspace:        ws,
		Strategy:         result.Strategy,
		Manifest:         result.Manifest,
		DependencyFolder: depFolder,
		Packages:         make([]PackageInfo, len(candidates)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.GetDiscoveryConfig().MaxConcurrency)
	for i, rel := range candidates {
		path := filepath.Join(ws.Path, rel)
		report.Packages[i] = PackageInfo{Label: ws.PackageLabel(rel), RelPath: rel, Path: path}
		g.Go(func() error {
			report.Packages[i].HasDependencyFolder = core.IsDir(gctx, fs, filepath.Join(path, depFolder))
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}
