package discovery

import (
	"context"
	"errors"
	"path"
	"path/filepath"
	"strings"

	"github.com/indaco/nmsearch/internal/core"
	"github.com/indaco/nmsearch/internal/parser"
	"github.com/indaco/nmsearch/internal/pathutil"
)

// FindModuleDirs runs the manifest-driven strategy. The result always starts
// with the root candidate; without a monorepo manifest it is exactly [""].
func (s *Service) FindModuleDirs(ctx context.Context, root string) ([]string, error) {
	dirs, _, err := s.findModuleDirs(ctx, root)
	return dirs, err
}

func (s *Service) findModuleDirs(ctx context.Context, root string) ([]string, string, error) {
	manifest, patterns, err := s.readManifest(ctx, root)
	if err != nil {
		return nil, "", err
	}
	if manifest == "" {
		return []string{Root}, "", nil
	}

	dirs := []string{Root}
	seen := map[string]bool{Root: true}

	for _, pattern := range patterns {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		matches, err := s.expandPattern(ctx, root, pattern)
		if err != nil {
			return nil, "", err
		}

		for _, match := range matches {
			rel, err := pathutil.Rel(root, filepath.Dir(match))
			if err != nil || pathutil.IsOutside(rel) || seen[rel] {
				continue
			}
			seen[rel] = true
			dirs = append(dirs, rel)
		}
	}

	s.logger.Debug("manifest discovery", "root", root, "manifest", manifest, "candidates", len(dirs))
	return dirs, manifest, nil
}

// expandPattern globs root/pattern/package.json. Recursive and negated
// patterns match nothing.
func (s *Service) expandPattern(ctx context.Context, root, pattern string) ([]string, error) {
	if pathutil.HasRecursiveWildcard(pattern) || strings.HasPrefix(pattern, "!") {
		s.logger.Debug("skipping unsupported package pattern", "pattern", pattern)
		return nil, nil
	}

	glob := path.Join(path.Clean(filepath.ToSlash(pattern)), PackageManifest)
	if strings.HasPrefix(glob, "/") || glob == ".." || strings.HasPrefix(glob, "../") {
		s.logger.Debug("skipping package pattern outside the workspace", "pattern", pattern)
		return nil, nil
	}

	matches, err := s.fs.Glob(ctx, root, glob)
	if err != nil {
		// A bad pattern contributes nothing, like a pattern matching nothing.
		s.logger.Debug("invalid package pattern", "pattern", pattern, "error", err)
		return nil, nil
	}
	return matches, nil
}

// readManifest returns the first configured monorepo manifest present at the
// root with its package globs. An empty name means no manifest was found.
func (s *Service) readManifest(ctx context.Context, root string) (string, []string, error) {
	known := KnownManifests()

	for _, name := range s.manifests {
		m, ok := known[name]
		if !ok {
			continue
		}

		manifestPath := filepath.Join(root, m.Filename)
		if !core.Exists(ctx, s.fs, manifestPath) {
			continue
		}

		patterns, found, err := s.readPatterns(ctx, manifestPath, m)
		if err != nil {
			// A package.json only signals a monorepo through its field, so
			// one that does not parse is treated as an ordinary package.
			if m.RequireField && errors.Is(err, parser.ErrMalformed) {
				s.logger.Debug("ignoring unparsable manifest", "manifest", manifestPath, "error", err)
				continue
			}
			return "", nil, &ManifestError{Path: manifestPath, Err: err}
		}
		if !found && m.RequireField {
			continue
		}
		return m.Filename, patterns, nil
	}

	return "", nil, nil
}

func (s *Service) readPatterns(ctx context.Context, manifestPath string, m MonorepoManifest) ([]string, bool, error) {
	for _, field := range m.Fields {
		patterns, err := s.parser.ReadList(ctx, parser.FileConfig{
			Path:   manifestPath,
			Format: m.Format(),
			Field:  field,
		})
		if errors.Is(err, parser.ErrFieldNotFound) {
			continue
		}
		if err != nil {
			return nil, false, err
		}
		return patterns, true, nil
	}
	return nil, false, nil
}
