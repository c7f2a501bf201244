package discovery

import (
	"errors"
	"fmt"

	"github.com/indaco/nmsearch/internal/parser"
)

// Root is the candidate denoting the workspace root itself.
const Root = ""

// PackageManifest is the per-package manifest file matched by package globs
// and required by the recursive scan.
const PackageManifest = "package.json"

// ErrManifestParse is wrapped by every ManifestError.
var ErrManifestParse = errors.New("unable to parse monorepo manifest")

// ManifestError reports a monorepo manifest that exists but cannot be read.
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrManifestParse, e.Path, e.Err)
}

func (e *ManifestError) Unwrap() []error {
	return []error{ErrManifestParse, e.Err}
}

// Result is the outcome of Service.Discover.
type Result struct {
	// Strategy is the strategy that produced the candidates.
	Strategy string

	// Manifest is the monorepo manifest used, empty when none was found.
	Manifest string

	// Candidates are directories relative to the workspace root, the root
	// being "". Duplicates are never present.
	Candidates []string
}

// HasPackages reports whether anything besides the root was discovered.
func (r *Result) HasPackages() bool {
	for _, c := range r.Candidates {
		if c != Root {
			return true
		}
	}
	return false
}

// MonorepoManifest describes a known monorepo manifest file.
type MonorepoManifest struct {
	// Filename is the manifest file name at the workspace root.
	Filename string

	// Fields are dot-notation paths tried in order for the package globs.
	Fields []string

	// RequireField makes the manifest count only when one of Fields exists.
	// A package.json without "workspaces" is an ordinary package.
	RequireField bool
}

// Format returns the file format of the manifest.
func (m MonorepoManifest) Format() parser.Format {
	return parser.FormatFromPath(m.Filename)
}

// KnownManifests returns the supported monorepo manifests keyed by file name.
func KnownManifests() map[string]MonorepoManifest {
	return map[string]MonorepoManifest{
		"lerna.json": {
			Filename: "lerna.json",
			Fields:   []string{"packages"},
		},
		"pnpm-workspace.yaml": {
			Filename: "pnpm-workspace.yaml",
			Fields:   []string{"packages"},
		},
		"package.json": {
			Filename:     "package.json",
			Fields:       []string{"workspaces.packages", "workspaces"},
			RequireField: true,
		},
	}
}

// WithRoot returns candidates with the root first and exactly once, keeping
// the relative order of everything else and dropping duplicates.
func WithRoot(candidates []string) []string {
	out := make([]string, 0, len(candidates)+1)
	out = append(out, Root)
	seen := map[string]bool{Root: true}
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
