package discovery

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/indaco/nmsearch/internal/core"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
}

// recordingFS records every directory listed through it.
type recordingFS struct {
	core.FileSystem

	mu     sync.Mutex
	listed []string
}

func (r *recordingFS) ReadDir(ctx context.Context, path string) ([]os.DirEntry, error) {
	r.mu.Lock()
	r.listed = append(r.listed, path)
	r.mu.Unlock()
	return r.FileSystem.ReadDir(ctx, path)
}

func (r *recordingFS) wasListed(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.listed {
		if p == path {
			return true
		}
	}
	return false
}
