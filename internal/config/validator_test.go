package config

import (
	"context"
	"errors"
	"testing"

	"github.com/indaco/nmsearch/internal/core"
)

func TestValidator_Validate(t *testing.T) {
	themes := []string{"nmsearch", "dracula"}

	t.Run("defaults with dependency folder present", func(t *testing.T) {
		fs := core.NewMockFileSystem()
		fs.SetDir("/ws/node_modules")

		results := NewValidator(fs, Default(), "/ws", themes).Validate(context.Background())
		if HasErrors(results) {
			t.Errorf("unexpected errors: %+v", results)
		}
		if WarningCount(results) != 0 {
			t.Errorf("unexpected warnings: %+v", results)
		}
	})

	t.Run("missing dependency folder is a warning", func(t *testing.T) {
		fs := core.NewMockFileSystem()
		fs.SetDir("/ws")

		results := NewValidator(fs, Default(), "/ws", themes).Validate(context.Background())
		if HasErrors(results) {
			t.Errorf("unexpected errors: %+v", results)
		}
		if WarningCount(results) != 1 {
			t.Errorf("WarningCount = %d, want 1", WarningCount(results))
		}
	})

	t.Run("invalid settings", func(t *testing.T) {
		fs := core.NewMockFileSystem()
		fs.SetDir("/ws/node_modules")

		cfg := Default()
		cfg.Theme = "neon"
		cfg.Discovery.Strategy = "bfs"
		cfg.Discovery.Manifests = []string{"rush.json"}
		cfg.Discovery.Exclude = []string{"[unclosed"}
		cfg.State.File = "/nowhere/state.toml"

		results := NewValidator(fs, cfg, "/ws", themes).Validate(context.Background())
		if got := ErrorCount(results); got != 4 {
			t.Errorf("ErrorCount = %d, want 4: %+v", got, results)
		}
		if got := WarningCount(results); got != 1 {
			t.Errorf("WarningCount = %d, want 1: %+v", got, results)
		}
	})

	t.Run("dependency folder outside the workspace", func(t *testing.T) {
		cfg := Default()
		cfg.Path = "../shared"

		results := NewValidator(core.NewMockFileSystem(), cfg, "/ws", themes).Validate(context.Background())
		if !HasErrors(results) {
			t.Error("expected an error for a path leaving the workspace")
		}
	})

	t.Run("last folder reuse without a cache directory", func(t *testing.T) {
		orig := userCacheDir
		t.Cleanup(func() { userCacheDir = orig })
		userCacheDir = func() (string, error) { return "", errors.New("$HOME is not defined") }

		fs := core.NewMockFileSystem()
		fs.SetDir("/ws/node_modules")

		cfg := Default()
		results := NewValidator(fs, cfg, "/ws", themes).Validate(context.Background())
		if WarningCount(results) != 0 {
			t.Errorf("unexpected warnings with reuse off: %+v", results)
		}

		cfg.UseLastFolder = true
		results = NewValidator(fs, cfg, "/ws", themes).Validate(context.Background())
		if WarningCount(results) != 1 {
			t.Errorf("WarningCount = %d, want 1: %+v", WarningCount(results), results)
		}
	})

	t.Run("absolute dependency folder", func(t *testing.T) {
		cfg := Default()
		cfg.Path = "/abs/node_modules"

		results := NewValidator(core.NewMockFileSystem(), cfg, "/ws", themes).Validate(context.Background())
		if !HasErrors(results) {
			t.Error("expected an error for an absolute path")
		}
	})
}
