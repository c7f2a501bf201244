package config

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/indaco/nmsearch/internal/core"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Dependency Folder", "Discovery").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator validates configuration settings against a workspace folder.
type Validator struct {
	fs          core.FileSystem
	cfg         *Config
	rootDir     string
	themes      []string
	validations []ValidationResult
}

// NewValidator creates a new configuration validator. themes lists the picker
// theme names the caller supports.
func NewValidator(fs core.FileSystem, cfg *Config, rootDir string, themes []string) *Validator {
	return &Validator{
		fs:      fs,
		cfg:     cfg,
		rootDir: rootDir,
		themes:  themes,
	}
}

// Validate runs all validation checks and returns the results.
func (v *Validator) Validate(ctx context.Context) []ValidationResult {
	v.validations = make([]ValidationResult, 0)

	v.validateDependencyFolder(ctx)
	v.validateDiscovery()
	v.validateTheme()
	v.validateState(ctx)

	return v.validations
}

func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

func (v *Validator) validateDependencyFolder(ctx context.Context) {
	folder, err := CleanDependencyFolder(v.cfg.DependencyFolder())
	if err != nil {
		v.addValidation("Dependency Folder", false, err.Error(), false)
		return
	}

	full := filepath.Join(v.rootDir, folder)
	if !core.IsDir(ctx, v.fs, full) {
		v.addValidation("Dependency Folder", true, fmt.Sprintf("%q not found in %s", folder, v.rootDir), true)
		return
	}
	v.addValidation("Dependency Folder", true, fmt.Sprintf("%q found", folder), false)
}

func (v *Validator) validateDiscovery() {
	d := v.cfg.GetDiscoveryConfig()

	switch d.Strategy {
	case StrategyManifest, StrategyRecursive, StrategyAuto:
		v.addValidation("Discovery", true, fmt.Sprintf("strategy %q", d.Strategy), false)
	default:
		v.addValidation("Discovery", false, fmt.Sprintf("unknown strategy %q (want manifest, recursive or auto)", d.Strategy), false)
	}

	known := DefaultManifests()
	for _, m := range d.Manifests {
		if !slices.Contains(known, m) {
			v.addValidation("Discovery", false, fmt.Sprintf("unsupported manifest %q", m), false)
		}
	}

	for _, pattern := range d.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			v.addValidation("Discovery", false, fmt.Sprintf("invalid exclude pattern %q", pattern), false)
		}
	}
}

func (v *Validator) validateTheme() {
	if v.cfg.Theme == "" || slices.Contains(v.themes, v.cfg.Theme) {
		return
	}
	v.addValidation("Theme", true, fmt.Sprintf("unknown theme %q, the default theme will be used", v.cfg.Theme), true)
}

func (v *Validator) validateState(ctx context.Context) {
	if file := v.cfg.StateFile(); file != "" {
		dir := filepath.Dir(file)
		if !core.IsDir(ctx, v.fs, dir) {
			v.addValidation("State", false, fmt.Sprintf("state file directory %q does not exist", dir), false)
			return
		}
	}

	file := v.cfg.StatePath()
	if file == "" {
		// Warn only when last-folder reuse is on.
		v.addValidation("State", true, "no user cache directory, the last folder is forgotten on exit; set state.file to keep it", v.cfg.UseLastFolder)
		return
	}
	v.addValidation("State", true, fmt.Sprintf("last folder stored in %s", file), false)
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	return ErrorCount(results) > 0
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func WarningCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.Warning {
			count++
		}
	}
	return count
}
