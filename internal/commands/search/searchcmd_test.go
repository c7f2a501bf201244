package search

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/indaco/nmsearch/internal/browse"
	"github.com/indaco/nmsearch/internal/config"
	"github.com/indaco/nmsearch/internal/core"
	"github.com/indaco/nmsearch/internal/discovery"
	"github.com/indaco/nmsearch/internal/selector"
	"github.com/urfave/cli/v3"
)

type recordingOpener struct{ opened []string }

func (o *recordingOpener) Open(_ context.Context, path string) error {
	o.opened = append(o.opened, path)
	return nil
}

type recordingNotifier struct{ messages []string }

func (n *recordingNotifier) Error(message string) { n.messages = append(n.messages, message) }

type harness struct {
	fs       *core.MockFileSystem
	picker   *core.MockPicker
	opener   *recordingOpener
	notifier *recordingNotifier
	store    *browse.MemoryStore
	searcher *Searcher
}

func newHarness(cfg *config.Config, responses ...func(string, []core.Choice) (string, bool, error)) *harness {
	if cfg == nil {
		cfg = config.Default()
	}
	h := &harness{
		fs:       core.NewMockFileSystem(),
		picker:   core.NewMockPicker(responses...),
		opener:   &recordingOpener{},
		notifier: &recordingNotifier{},
		store:    browse.NewMemoryStore(),
	}
	h.searcher = &Searcher{
		Config:   cfg,
		FS:       h.fs,
		Picker:   h.picker,
		Opener:   h.opener,
		Notifier: h.notifier,
		Store:    h.store,
		Getwd:    func() (string, error) { return filepath.FromSlash("/ws"), nil },
	}
	return h
}

func (h *harness) titles() []string {
	out := make([]string, len(h.picker.Calls))
	for i, c := range h.picker.Calls {
		out[i] = c.Title
	}
	return out
}

func TestSearch_SinglePackage(t *testing.T) {
	h := newHarness(nil, core.PickLabel("lodash"), core.PickLabel("index.js"))
	h.fs.SetFile("/ws/package.json", []byte(`{"name":"app"}`))
	h.fs.SetFile("/ws/node_modules/lodash/index.js", []byte("x"))

	res, err := h.searcher.Search(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	want := filepath.FromSlash("/ws/node_modules/lodash/index.js")
	if res.Phase != browse.Resolved || res.Path != want {
		t.Errorf("Result = %+v", res)
	}
	if got := h.titles(); !reflect.DeepEqual(got, []string{"ws/node_modules", "ws/node_modules/lodash"}) {
		t.Errorf("titles = %q, no package picker expected", got)
	}
}

func TestSearch_Monorepo(t *testing.T) {
	h := newHarness(nil, core.PickLabel("ws/foo"), core.PickLabel("react"))
	h.fs.SetFile("/ws/lerna.json", []byte(`{"packages":["packages/*"]}`))
	h.fs.SetFile("/ws/packages/foo/package.json", []byte(`{}`))
	h.fs.SetFile("/ws/packages/foo/node_modules/react/package.json", []byte(`{}`))

	if _, err := h.searcher.Search(context.Background(), Options{}); err != nil {
		t.Fatalf("Search: %v", err)
	}

	pkgCall := h.picker.Calls[0]
	if pkgCall.Title != "Select package" {
		t.Fatalf("first picker = %q", pkgCall.Title)
	}
	var labels []string
	for _, c := range pkgCall.Choices {
		labels = append(labels, c.Label)
	}
	if !reflect.DeepEqual(labels, []string{"ws", "ws/foo"}) {
		t.Errorf("package labels = %q", labels)
	}
	if got := h.titles(); !reflect.DeepEqual(got, []string{"Select package", "foo/node_modules", "foo/node_modules/react"}) {
		t.Errorf("titles = %q", got)
	}
}

func TestSearch_MonorepoRootPackage(t *testing.T) {
	h := newHarness(nil, core.PickLabel("ws"), core.PickCancel())
	h.fs.SetFile("/ws/lerna.json", []byte(`{"packages":["packages/*"]}`))
	h.fs.SetFile("/ws/packages/foo/package.json", []byte(`{}`))
	h.fs.SetFile("/ws/node_modules/lerna/package.json", []byte(`{}`))

	if _, err := h.searcher.Search(context.Background(), Options{}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := h.titles(); len(got) != 2 || got[1] != "ws/node_modules/node_modules" {
		t.Errorf("titles = %q", got)
	}
}

func TestSearch_ResumeLastFolder(t *testing.T) {
	cfg := config.Default()
	cfg.UseLastFolder = true
	h := newHarness(cfg, core.PickLabel("map.js"))
	h.fs.SetFile("/ws/node_modules/lodash/fp/map.js", []byte("x"))
	h.searcher.Getwd = func() (string, error) { return "", errors.New("should not be called") }
	_ = h.store.Save(browse.LastVisited{
		WorkspaceName: "ws",
		WorkspaceRoot: filepath.FromSlash("/ws"),
		Folder:        filepath.FromSlash("node_modules/lodash/fp"),
	})

	res, err := h.searcher.Search(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := h.titles(); !reflect.DeepEqual(got, []string{"ws/node_modules/lodash/fp"}) {
		t.Errorf("titles = %q", got)
	}
	if res.Phase != browse.Resolved {
		t.Errorf("Phase = %v", res.Phase)
	}
}

func TestSearch_LastFlag(t *testing.T) {
	h := newHarness(nil, core.PickCancel())
	h.fs.SetFile("/ws/node_modules/a/index.js", []byte("x"))
	_ = h.store.Save(browse.LastVisited{WorkspaceName: "ws", WorkspaceRoot: filepath.FromSlash("/ws"), Folder: filepath.FromSlash("node_modules/a")})

	if _, err := h.searcher.Search(context.Background(), Options{Last: true}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := h.titles(); len(got) != 1 || got[0] != "ws/node_modules/a" {
		t.Errorf("titles = %q", got)
	}
}

func TestSearch_LastFolderIgnoredWhenDisabled(t *testing.T) {
	h := newHarness(nil, core.PickCancel())
	h.fs.SetFile("/ws/node_modules/a/index.js", []byte("x"))
	_ = h.store.Save(browse.LastVisited{WorkspaceName: "ws", WorkspaceRoot: filepath.FromSlash("/ws"), Folder: filepath.FromSlash("node_modules/a")})

	if _, err := h.searcher.Search(context.Background(), Options{}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := h.titles(); len(got) != 1 || got[0] != "ws/node_modules" {
		t.Errorf("titles = %q, want the dependency folder", got)
	}
}

func TestSearch_NoWorkspace(t *testing.T) {
	h := newHarness(nil)
	h.searcher.Getwd = func() (string, error) { return "", nil }

	if _, err := h.searcher.Search(context.Background(), Options{}); !errors.Is(err, selector.ErrNoWorkspace) {
		t.Errorf("err = %v, want ErrNoWorkspace", err)
	}

	if _, err := h.searcher.Search(context.Background(), Options{Workspaces: []string{"/missing"}}); !errors.Is(err, selector.ErrNoWorkspace) {
		t.Errorf("err = %v, want ErrNoWorkspace for a missing folder", err)
	}
}

func TestSearch_NoDependencyFolder(t *testing.T) {
	h := newHarness(nil)
	h.fs.SetFile("/ws/readme.md", []byte("x"))

	res, err := h.searcher.Search(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !errors.Is(res.Err, browse.ErrNoDependencyFolder) {
		t.Errorf("Result.Err = %v", res.Err)
	}
	if len(h.notifier.messages) != 1 {
		t.Errorf("messages = %q", h.notifier.messages)
	}
}

func TestSearch_MalformedManifest(t *testing.T) {
	h := newHarness(nil)
	h.fs.SetFile("/ws/lerna.json", []byte(`{"packages":`))

	_, err := h.searcher.Search(context.Background(), Options{})
	if !errors.Is(err, discovery.ErrManifestParse) {
		t.Errorf("err = %v, want ErrManifestParse", err)
	}
}

func TestSearch_CancelPackagePicker(t *testing.T) {
	h := newHarness(nil, core.PickCancel())
	h.fs.SetFile("/ws/lerna.json", []byte(`{"packages":["packages/*"]}`))
	h.fs.SetFile("/ws/packages/foo/package.json", []byte(`{}`))

	res, err := h.searcher.Search(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Phase != browse.Cancelled || res.Err != nil {
		t.Errorf("Result = %+v, want silent cancel", res)
	}
	if len(h.picker.Calls) != 1 {
		t.Errorf("browse should not start, got %d picker calls", len(h.picker.Calls))
	}
}

func TestSearch_StrategyOverride(t *testing.T) {
	h := newHarness(nil, core.PickCancel())
	h.fs.SetFile("/ws/a/package.json", []byte(`{}`))
	h.fs.SetFile("/ws/a/node_modules/dep/package.json", []byte(`{}`))

	if _, err := h.searcher.Search(context.Background(), Options{Strategy: config.StrategyRecursive}); err != nil {
		t.Fatalf("Search: %v", err)
	}

	var labels []string
	for _, c := range h.picker.Calls[0].Choices {
		labels = append(labels, c.Label)
	}
	if !reflect.DeepEqual(labels, []string{"ws", "ws/a"}) {
		t.Errorf("labels = %q", labels)
	}
}

func TestSearch_MultipleWorkspaces(t *testing.T) {
	h := newHarness(nil, core.PickLabel("second"), core.PickCancel())
	h.fs.SetFile("/first/node_modules/a/index.js", []byte("x"))
	h.fs.SetFile("/second/node_modules/b/index.js", []byte("x"))

	_, err := h.searcher.Search(context.Background(), Options{Workspaces: []string{"/first", "/second"}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := h.titles(); !reflect.DeepEqual(got, []string{"Select workspace folder", "second/node_modules"}) {
		t.Errorf("titles = %q", got)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"no override", []string{"search"}, "node_modules", false},
		{"override", []string{"search", "--path", "bower_components/"}, "bower_components", false},
		{"outside workspace", []string{"search", "--path", "../x"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			var got *config.Config
			var applyErr error
			cmd := &cli.Command{
				Name:  "search",
				Flags: Flags(),
				Action: func(_ context.Context, cmd *cli.Command) error {
					got, applyErr = applyFlags(cfg, cmd)
					return nil
				},
			}
			if err := cmd.Run(context.Background(), tt.args); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if (applyErr != nil) != tt.wantErr {
				t.Fatalf("applyFlags error = %v, wantErr %v", applyErr, tt.wantErr)
			}
			if applyErr == nil && got.Path != tt.want {
				t.Errorf("Path = %q, want %q", got.Path, tt.want)
			}
			if cfg.Path != "node_modules" {
				t.Error("applyFlags must not modify the shared config")
			}
		})
	}
}

func TestStoreFor(t *testing.T) {
	cfg := config.Default()
	cfg.State.File = filepath.Join(t.TempDir(), "last.toml")
	if _, ok := StoreFor(cfg).(*browse.FileStore); !ok {
		t.Error("expected a file store when state.file is set")
	}
}

func TestSearch_LastFolderAcrossRuns(t *testing.T) {
	cfg := config.Default()
	cfg.State.File = filepath.Join(t.TempDir(), "last.toml")

	first := newHarness(cfg, core.PickLabel("lodash"), core.PickLabel("index.js"))
	first.searcher.Store = StoreFor(cfg)
	first.fs.SetFile("/ws/package.json", []byte(`{"name":"app"}`))
	first.fs.SetFile("/ws/node_modules/lodash/index.js", []byte("x"))
	if _, err := first.searcher.Search(context.Background(), Options{}); err != nil {
		t.Fatalf("first Search: %v", err)
	}

	// A new process only shares the state file with the previous one.
	second := newHarness(cfg, core.PickCancel())
	second.searcher.Store = StoreFor(cfg)
	second.fs = first.fs
	second.searcher.FS = first.fs
	if _, err := second.searcher.Search(context.Background(), Options{Last: true}); err != nil {
		t.Fatalf("second Search: %v", err)
	}
	if got := second.titles(); !reflect.DeepEqual(got, []string{"ws/node_modules/lodash"}) {
		t.Errorf("titles = %q, want the last visited folder", got)
	}
}

func TestSearch_UnparsablePackageJSON(t *testing.T) {
	h := newHarness(nil, core.PickLabel("lodash"), core.PickLabel("index.js"))
	h.fs.SetFile("/ws/package.json", []byte(`{"name": "app",}`))
	h.fs.SetFile("/ws/node_modules/lodash/index.js", []byte("x"))

	res, err := h.searcher.Search(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Phase != browse.Resolved {
		t.Errorf("Phase = %v, want Resolved", res.Phase)
	}
}
