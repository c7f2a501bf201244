package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/nmsearch/internal/config"
	urfavecli "github.com/urfave/cli/v3"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old

	data, _ := io.ReadAll(r)
	return string(data)
}

func TestRunCLI_InvalidConfig(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, config.DefaultConfigFile), []byte("unknownKey: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	chdir(t, tmp)
	t.Setenv("NMSEARCH_CONFIG", "")

	if err := runCLI([]string{"nmsearch", "doctor"}); err == nil {
		t.Fatal("expected error for an unknown config key")
	}
}

func TestRunCLI_Packages(t *testing.T) {
	tmp := t.TempDir()
	files := map[string]string{
		"lerna.json":                     `{"packages": ["packages/*"]}`,
		"packages/foo/package.json":      `{}`,
		"packages/bar/package.json":      `{}`,
		"packages/bar/node_modules/x.js": ``,
	}
	for name, content := range files {
		path := filepath.Join(tmp, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	chdir(t, tmp)
	t.Setenv("NMSEARCH_CONFIG", "")

	var runErr error
	out := captureStdout(t, func() {
		runErr = runCLI([]string{"nmsearch", "packages", "--format", "table"})
	})
	if runErr != nil {
		t.Fatalf("runCLI: %v", runErr)
	}
	for _, want := range []string{"PACKAGE", "/bar", "/foo", "Found: 3 package(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunCLI_InitThenDoctor(t *testing.T) {
	tmp := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmp, "node_modules"), 0o755); err != nil {
		t.Fatal(err)
	}
	chdir(t, tmp)
	t.Setenv("NMSEARCH_CONFIG", "")

	captureStdout(t, func() {
		if err := runCLI([]string{"nmsearch", "init", "--template", "monorepo"}); err != nil {
			t.Errorf("init: %v", err)
		}
	})
	if _, err := os.Stat(filepath.Join(tmp, config.DefaultConfigFile)); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	out := captureStdout(t, func() {
		if err := runCLI([]string{"nmsearch", "doctor"}); err != nil {
			t.Errorf("doctor: %v", err)
		}
	})
	if !strings.Contains(out, "0 error(s)") {
		t.Errorf("doctor output = %q", out)
	}
}

func TestRunCLI_SearchNeedsTerminal(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("NMSEARCH_CONFIG", "")
	t.Setenv("CI", "true")

	if err := runCLI([]string{"nmsearch"}); err == nil || !strings.Contains(err.Error(), "interactive terminal") {
		t.Errorf("err = %v, want interactive terminal error", err)
	}
}

func TestExitCode(t *testing.T) {
	if got := exitCode(errors.New("boom")); got != 1 {
		t.Errorf("exitCode(plain) = %d, want 1", got)
	}
	if got := exitCode(urfavecli.Exit("", 3)); got != 3 {
		t.Errorf("exitCode(exit 3) = %d, want 3", got)
	}
}
