package browse

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/indaco/nmsearch/internal/core"
)

type recordingOpener struct {
	opened []string
	err    error
}

func (o *recordingOpener) Open(_ context.Context, path string) error {
	o.opened = append(o.opened, path)
	return o.err
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Error(message string) {
	n.messages = append(n.messages, message)
}

type fixture struct {
	fs       *core.MockFileSystem
	picker   *core.MockPicker
	opener   *recordingOpener
	notifier *recordingNotifier
	store    *MemoryStore
	session  *Session
}

// newFixture builds a session over a workspace at /ws containing
// node_modules/lodash/{package.json,fp/map.js} and src/index.js.
func newFixture(t *testing.T, responses ...func(string, []core.Choice) (string, bool, error)) *fixture {
	t.Helper()

	fs := core.NewMockFileSystem()
	fs.SetFile("/ws/package.json", []byte(`{}`))
	fs.SetFile("/ws/src/index.js", []byte(`export {}`))
	fs.SetFile("/ws/node_modules/lodash/package.json", []byte(`{}`))
	fs.SetFile("/ws/node_modules/lodash/fp/map.js", []byte(`module.exports = {}`))

	f := &fixture{
		fs:       fs,
		picker:   core.NewMockPicker(responses...),
		opener:   &recordingOpener{},
		notifier: &recordingNotifier{},
		store:    NewMemoryStore(),
	}
	f.session = NewSession(Options{
		FileSystem: fs,
		Picker:     f.picker,
		Opener:     f.opener,
		Notifier:   f.notifier,
		Store:      f.store,
	})
	return f
}

func (f *fixture) titles() []string {
	titles := make([]string, len(f.picker.Calls))
	for i, c := range f.picker.Calls {
		titles[i] = c.Title
	}
	return titles
}

func labels(choices []core.Choice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Label
	}
	return out
}

var wsRoot = filepath.FromSlash("/ws")
