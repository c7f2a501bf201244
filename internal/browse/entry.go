package browse

import (
	"strconv"

	"github.com/indaco/nmsearch/internal/core"
	"github.com/indaco/nmsearch/internal/pathutil"
)

// EntryKind tells real directory entries apart from the navigation entries
// added to a listing.
type EntryKind int

const (
	// EntryReal is a file or folder read from disk.
	EntryReal EntryKind = iota

	// EntrySeparator visually separates the real entries from the shortcuts.
	EntrySeparator

	// EntryDependencyFolder jumps back to the dependency folder.
	EntryDependencyFolder

	// EntryParent moves up one level.
	EntryParent
)

// String returns a human-readable representation of the kind.
func (k EntryKind) String() string {
	switch k {
	case EntryReal:
		return "Real"
	case EntrySeparator:
		return "Separator"
	case EntryDependencyFolder:
		return "DependencyFolder"
	case EntryParent:
		return "Parent"
	default:
		return "Unknown"
	}
}

// ParentName is the name used for the up-one-level entry.
const ParentName = ".."

// Entry is one item of a folder listing.
type Entry struct {
	Kind EntryKind

	// Name is the file or folder name for real entries, ".." for the parent
	// entry and empty otherwise.
	Name string
}

// Label returns the text shown for the entry. The dependency-folder shortcut
// is labelled with the workspace name joined to the dependency folder.
func (e Entry) Label(workspaceName, depFolder string) string {
	switch e.Kind {
	case EntryDependencyFolder:
		return pathutil.Label(workspaceName, depFolder)
	case EntrySeparator:
		return ""
	default:
		return e.Name
	}
}

// shortcuts returns the navigation entries appended outside the dependency folder.
func shortcuts() []Entry {
	return []Entry{
		{Kind: EntrySeparator},
		{Kind: EntryDependencyFolder},
		{Kind: EntryParent, Name: ParentName},
	}
}

// choices renders entries for the picker. Values are entry indexes, so two
// entries with the same label never resolve to each other.
func choices(entries []Entry, workspaceName, depFolder string) []core.Choice {
	out := make([]core.Choice, len(entries))
	for i, e := range entries {
		out[i] = core.Choice{
			Label:     e.Label(workspaceName, depFolder),
			Value:     strconv.Itoa(i),
			Separator: e.Kind == EntrySeparator,
		}
	}
	return out
}

// entryFor maps a picker value back to its entry.
func entryFor(entries []Entry, value string) (Entry, bool) {
	i, err := strconv.Atoi(value)
	if err != nil || i < 0 || i >= len(entries) {
		return Entry{}, false
	}
	return entries[i], true
}
