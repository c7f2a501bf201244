package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/indaco/nmsearch/internal/pathutil"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Scan runs the recursive-scan strategy. It returns every directory below
// root (root included) that holds both a package.json and the dependency
// folder, sorted. The root is only present when it qualifies itself.
//
// Dependency folders are never descended into. Subdirectories are scanned
// concurrently; at most maxConcurrency listings are in flight at once.
func (s *Service) Scan(ctx context.Context, root string) ([]string, error) {
	entries, err := s.fs.ReadDir(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace folder %q: %w", root, err)
	}

	sc := &scanner{
		svc:  s,
		root: root,
		sem:  semaphore.NewWeighted(int64(s.maxConcurrency)),
	}

	g, gctx := errgroup.WithContext(ctx)
	sc.visit(gctx, g, root, entries)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.Sort(sc.found)
	s.logger.Debug("recursive scan", "root", root, "candidates", len(sc.found))
	return sc.found, nil
}

type scanner struct {
	svc  *Service
	root string
	sem  *semaphore.Weighted

	mu    sync.Mutex
	found []string
}

// visit records dir if it qualifies and schedules its subdirectories.
func (sc *scanner) visit(ctx context.Context, g *errgroup.Group, dir string, entries []fs.DirEntry) {
	hasManifest, hasDeps := false, false

	for _, entry := range entries {
		name := entry.Name()
		isDir := entry.IsDir() || entry.Type()&fs.ModeSymlink != 0

		switch {
		case name == PackageManifest && !entry.IsDir():
			hasManifest = true
		case name == sc.svc.depFolder && isDir:
			hasDeps = true
		}

		if !entry.IsDir() || name == sc.svc.depFolder || sc.excluded(name) {
			continue
		}

		child := filepath.Join(dir, name)
		g.Go(func() error {
			return sc.scanDir(ctx, g, child)
		})
	}

	if hasManifest && hasDeps {
		rel, err := pathutil.Rel(sc.root, dir)
		if err != nil {
			return
		}
		sc.mu.Lock()
		sc.found = append(sc.found, rel)
		sc.mu.Unlock()
	}
}

func (sc *scanner) scanDir(ctx context.Context, g *errgroup.Group, dir string) error {
	if err := sc.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	entries, err := sc.svc.fs.ReadDir(ctx, dir)
	sc.sem.Release(1)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		sc.svc.logger.Debug("skipping unreadable directory", "dir", dir, "error", err)
		return nil
	}

	sc.visit(ctx, g, dir, entries)
	return nil
}

// excluded reports whether a directory name matches a configured exclude pattern.
func (sc *scanner) excluded(name string) bool {
	for _, pattern := range sc.svc.exclude {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}
