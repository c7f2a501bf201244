package browse

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/indaco/nmsearch/internal/core"
	"github.com/pelletier/go-toml/v2"
)

// LastVisited is the folder of the most recently opened file.
type LastVisited struct {
	WorkspaceName string `toml:"workspace_name"`
	WorkspaceRoot string `toml:"workspace_root"`
	Folder        string `toml:"folder"`
}

// IsZero reports whether nothing is remembered.
func (l LastVisited) IsZero() bool {
	return l == LastVisited{}
}

// State returns the browse state that reopens the remembered folder.
func (l LastVisited) State() State {
	return State{WorkspaceName: l.WorkspaceName, WorkspaceRoot: l.WorkspaceRoot, Folder: l.Folder}
}

// Store keeps the LastVisited value between browse sessions.
type Store interface {
	Load() (LastVisited, bool, error)
	Save(LastVisited) error
	Clear() error
}

// MemoryStore keeps LastVisited for the lifetime of the process.
type MemoryStore struct {
	mu   sync.Mutex
	last LastVisited
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var defaultStore = NewMemoryStore()

// DefaultStore returns the process-wide MemoryStore.
func DefaultStore() *MemoryStore {
	return defaultStore
}

func (m *MemoryStore) Load() (LastVisited, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, !m.last.IsZero(), nil
}

func (m *MemoryStore) Save(l LastVisited) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = l
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = LastVisited{}
	return nil
}

// FileStore keeps LastVisited in a TOML file so a new process can pick it up.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (LastVisited, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if core.IsNotExist(err) {
			return LastVisited{}, false, nil
		}
		return LastVisited{}, false, fmt.Errorf("failed to read state file %q: %w", f.path, err)
	}

	var l LastVisited
	if err := toml.Unmarshal(data, &l); err != nil {
		return LastVisited{}, false, fmt.Errorf("failed to parse state file %q: %w", f.path, err)
	}
	return l, !l.IsZero(), nil
}

func (f *FileStore) Save(l LastVisited) error {
	data, err := toml.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), core.PermDir); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, core.PermOwnerRW); err != nil {
		return fmt.Errorf("failed to write state file %q: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !core.IsNotExist(err) {
		return fmt.Errorf("failed to clear state file %q: %w", f.path, err)
	}
	return nil
}
