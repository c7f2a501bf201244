package core

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// FileSystem abstracts the read-only filesystem queries used by discovery
// and browsing, so both can run against an in-memory tree in tests.
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Stat(ctx context.Context, path string) (os.FileInfo, error)
	ReadDir(ctx context.Context, path string) ([]os.DirEntry, error)

	// Glob expands pattern (slash separated, relative to root) and returns
	// the absolute paths of matching files.
	Glob(ctx context.Context, root, pattern string) ([]string, error)
}

// OSFileSystem is the production FileSystem backed by the os package.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (o *OSFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (o *OSFileSystem) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Stat(path)
}

func (o *OSFileSystem) ReadDir(ctx context.Context, path string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadDir(path)
}

func (o *OSFileSystem) Glob(ctx context.Context, root, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return globFS(os.DirFS(root), root, pattern)
}

// globFS runs a doublestar glob over fsys and joins the matches back onto root.
func globFS(fsys fs.FS, root, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(root, filepath.FromSlash(m)))
	}
	return paths, nil
}

// Exists reports whether path can be stat'ed. Any error counts as absent.
func Exists(ctx context.Context, fsys FileSystem, path string) bool {
	_, err := fsys.Stat(ctx, path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(ctx context.Context, fsys FileSystem, path string) bool {
	info, err := fsys.Stat(ctx, path)
	return err == nil && info.IsDir()
}

// IsNotExist reports whether err means a missing file or directory.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
