package core

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"testing/fstest"
)

// MockFileSystem is an in-memory FileSystem for tests. Absolute paths such as
// "/project/package.json" are stored without the leading slash; parent
// directories are implied by the files below them.
type MockFileSystem struct {
	mu        sync.RWMutex
	files     fstest.MapFS
	readDirFn map[string]error
	statFn    map[string]error
}

// NewMockFileSystem creates an empty MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:     fstest.MapFS{},
		readDirFn: make(map[string]error),
		statFn:    make(map[string]error),
	}
}

// SetFile adds a regular file with the given content.
func (m *MockFileSystem) SetFile(p string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key(p)] = &fstest.MapFile{Data: data, Mode: 0o644}
}

// SetDir adds an explicit (possibly empty) directory.
func (m *MockFileSystem) SetDir(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key(p)] = &fstest.MapFile{Mode: fs.ModeDir | 0o755}
}

// SetReadDirError makes ReadDir on p fail with err.
func (m *MockFileSystem) SetReadDirError(p string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readDirFn[key(p)] = err
}

// SetStatError makes Stat on p fail with err.
func (m *MockFileSystem) SetStatError(p string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statFn[key(p)] = err
}

func (m *MockFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files.ReadFile(key(p))
}

func (m *MockFileSystem) Stat(ctx context.Context, p string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err, ok := m.statFn[key(p)]; ok {
		return nil, &fs.PathError{Op: "stat", Path: p, Err: err}
	}
	return m.files.Stat(key(p))
}

func (m *MockFileSystem) ReadDir(ctx context.Context, p string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err, ok := m.readDirFn[key(p)]; ok {
		return nil, &fs.PathError{Op: "readdir", Path: p, Err: err}
	}
	return m.files.ReadDir(key(p))
}

func (m *MockFileSystem) Glob(ctx context.Context, root, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, err := fs.Sub(m.files, key(root))
	if err != nil {
		return nil, err
	}
	return globFS(sub, root, pattern)
}

// key converts an OS path into a MapFS key.
func key(p string) string {
	k := strings.TrimPrefix(path.Clean(filepath.ToSlash(p)), "/")
	if k == "" {
		return "."
	}
	return k
}
