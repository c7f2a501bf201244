// Package pathutil holds the pure path helpers shared by discovery and the
// browse session. Nothing here touches the filesystem.
package pathutil

import (
	"path/filepath"
	"strings"
)

// Join joins path elements and cleans the result. Unlike filepath.Join, a
// join that collapses to the current directory returns "" so relative
// folders compare equal to the workspace-root candidate.
func Join(elem ...string) string {
	joined := filepath.Join(elem...)
	if joined == "." {
		return ""
	}
	return joined
}

// Rel returns target relative to base, with "" meaning base itself.
func Rel(base, target string) (string, error) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return "", nil
	}
	return rel, nil
}

// Dir returns the containing folder of a relative path, "" at the top.
func Dir(rel string) string {
	d := filepath.Dir(rel)
	if d == "." {
		return ""
	}
	return d
}

// Label joins a display prefix and a relative path with forward slashes, the
// way labels are shown in pickers regardless of platform.
func Label(prefix, rel string) string {
	return filepath.ToSlash(Join(prefix, rel))
}

// IsOutside reports whether a cleaned relative path climbs above its base.
func IsOutside(rel string) bool {
	rel = Join(rel)
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// HasRecursiveWildcard reports whether a glob pattern contains a "**" segment.
func HasRecursiveWildcard(pattern string) bool {
	return strings.Contains(pattern, "**")
}
