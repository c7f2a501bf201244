package browse

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/indaco/nmsearch/internal/config"
	"github.com/indaco/nmsearch/internal/core"
	"github.com/indaco/nmsearch/internal/logging"
	"github.com/indaco/nmsearch/internal/pathutil"
)

var (
	// ErrNoDependencyFolder is reported when the dependency folder itself cannot be listed.
	ErrNoDependencyFolder = errors.New("no dependency folder in this workspace")

	// ErrFolderUnreadable is reported when any other folder cannot be listed.
	ErrFolderUnreadable = errors.New("unable to open folder")
)

// FolderError is the listing failure that ended a session.
type FolderError struct {
	Kind   error
	Folder string
	Err    error
}

func (e *FolderError) Error() string {
	return fmt.Sprintf("%v %q: %v", e.Kind, e.Folder, e.Err)
}

func (e *FolderError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Opener displays a file to the user.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// Notifier surfaces a non-fatal message to the user.
type Notifier interface {
	Error(message string)
}

// Phase is a state of the browse state machine.
type Phase int

const (
	// Listing reads the current folder.
	Listing Phase = iota

	// Selecting waits for the user to pick an entry.
	Selecting

	// Resolved means a file was opened.
	Resolved

	// Cancelled means the session ended without opening a file.
	Cancelled
)

// String returns a human-readable representation of the phase.
func (p Phase) String() string {
	switch p {
	case Listing:
		return "Listing"
	case Selecting:
		return "Selecting"
	case Resolved:
		return "Resolved"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// State is the cursor of a browse session.
type State struct {
	WorkspaceName string
	WorkspaceRoot string

	// Folder is relative to WorkspaceRoot.
	Folder string
}

// Result is how a session ended.
type Result struct {
	// Phase is Resolved or Cancelled.
	Phase Phase

	// Path is the absolute path of the opened file when Resolved.
	Path string

	// Err is the listing failure already reported to the user, if any.
	// A nil Err with Phase Cancelled means the user dismissed a picker.
	Err error
}

// Session drives one browse interaction.
type Session struct {
	fs        core.FileSystem
	picker    core.Picker
	opener    Opener
	notifier  Notifier
	store     Store
	depFolder string
	logger    *log.Logger
}

// Options holds the collaborators of a Session. Store defaults to the
// process-wide MemoryStore and Logger to a no-op logger.
type Options struct {
	FileSystem core.FileSystem
	Picker     core.Picker
	Opener     Opener
	Notifier   Notifier
	Store      Store
	Config     *config.Config
	Logger     *log.Logger
}

// NewSession creates a Session.
func NewSession(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	store := opts.Store
	if store == nil {
		store = DefaultStore()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Session{
		fs:        opts.FileSystem,
		picker:    opts.Picker,
		opener:    opts.Opener,
		notifier:  opts.Notifier,
		store:     store,
		depFolder: cfg.DependencyFolder(),
		logger:    logger,
	}
}

// Start returns the state for a workspace package: its dependency folder.
func (s *Session) Start(workspaceName, workspaceRoot string) State {
	return State{WorkspaceName: workspaceName, WorkspaceRoot: workspaceRoot, Folder: s.depFolder}
}

// Resume returns the remembered state when useLastFolder is set and a
// folder was remembered.
func (s *Session) Resume(useLastFolder bool) (State, bool) {
	if !useLastFolder {
		return State{}, false
	}
	last, ok, err := s.store.Load()
	if err != nil {
		s.logger.Warn("ignoring last folder", "error", err)
		return State{}, false
	}
	if !ok {
		return State{}, false
	}
	return last.State(), true
}

// List returns the entries of st.Folder followed, outside the dependency
// folder, by the separator, dependency-folder and parent shortcuts.
func (s *Session) List(ctx context.Context, st State) ([]Entry, error) {
	dirEntries, err := s.fs.ReadDir(ctx, filepath.Join(st.WorkspaceRoot, st.Folder))
	if err != nil {
		kind := ErrFolderUnreadable
		if s.isDependencyFolder(st.Folder) {
			kind = ErrNoDependencyFolder
		}
		return nil, &FolderError{Kind: kind, Folder: st.Folder, Err: err}
	}

	entries := make([]Entry, 0, len(dirEntries)+3)
	for _, de := range dirEntries {
		entries = append(entries, Entry{Kind: EntryReal, Name: de.Name()})
	}
	if !s.isDependencyFolder(st.Folder) {
		entries = append(entries, shortcuts()...)
	}
	return entries, nil
}

// Run drives the session from st until a file is opened or the user cancels.
// Listing failures are reported through the Notifier and end the session
// with Result.Err set; other failures are returned as errors.
func (s *Session) Run(ctx context.Context, st State) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		s.logger.Debug("browse", "phase", Listing, "workspace", st.WorkspaceName, "folder", st.Folder)
		if err := s.store.Clear(); err != nil {
			s.logger.Warn("failed to clear last folder", "error", err)
		}

		entries, err := s.List(ctx, st)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Result{}, ctxErr
			}
			s.notifier.Error(s.listingMessage(err, st.Folder))
			return Result{Phase: Cancelled, Err: err}, nil
		}

		s.logger.Debug("browse", "phase", Selecting, "entries", len(entries))
		header := pathutil.Label(st.WorkspaceName, st.Folder)
		value, ok, err := s.picker.Pick(ctx, header, choices(entries, st.WorkspaceName, s.depFolder))
		if err != nil {
			return Result{}, err
		}
		if !ok {
			s.logger.Debug("browse", "phase", Cancelled)
			return Result{Phase: Cancelled}, nil
		}

		entry, found := entryFor(entries, value)
		if !found {
			return Result{}, fmt.Errorf("picker returned unknown choice %q", value)
		}

		if entry.Kind == EntryDependencyFolder {
			st.Folder = s.depFolder
			continue
		}

		selected := pathutil.Join(st.Folder, entry.Name)
		full := filepath.Join(st.WorkspaceRoot, selected)
		info, err := s.fs.Stat(ctx, full)
		if err != nil {
			return Result{}, fmt.Errorf("failed to stat %q: %w", full, err)
		}

		if info.IsDir() {
			st.Folder = selected
			continue
		}

		last := LastVisited{
			WorkspaceName: st.WorkspaceName,
			WorkspaceRoot: st.WorkspaceRoot,
			Folder:        pathutil.Dir(selected),
		}
		if err := s.store.Save(last); err != nil {
			s.logger.Warn("failed to remember last folder", "error", err)
		}

		s.logger.Debug("browse", "phase", Resolved, "file", full)
		if err := s.opener.Open(ctx, full); err != nil {
			return Result{}, fmt.Errorf("failed to open %q: %w", full, err)
		}
		return Result{Phase: Resolved, Path: full}, nil
	}
}

func (s *Session) isDependencyFolder(folder string) bool {
	return pathutil.Join(folder) == s.depFolder
}

func (s *Session) listingMessage(err error, folder string) string {
	if errors.Is(err, ErrNoDependencyFolder) {
		return fmt.Sprintf("No %s folder in this workspace.", s.depFolder)
	}
	return fmt.Sprintf("Unable to open folder %s", folder)
}
