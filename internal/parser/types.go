package parser

import (
	"errors"
	"path/filepath"
	"strings"
)

// Format represents the supported manifest file formats.
type Format string

const (
	// FormatJSON is for JSON files (lerna.json, package.json).
	FormatJSON Format = "json"

	// FormatYAML is for YAML files (pnpm-workspace.yaml).
	FormatYAML Format = "yaml"
)

var (
	// ErrMalformed is returned when a manifest cannot be parsed.
	ErrMalformed = errors.New("malformed manifest")

	// ErrFieldNotFound is returned when the requested field is absent.
	ErrFieldNotFound = errors.New("field not found")

	// ErrNotList is returned when the field exists but is not a list of strings.
	ErrNotList = errors.New("field is not a list of strings")
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// FileConfig describes which field to read from which file.
type FileConfig struct {
	// Path is the file path (absolute or relative).
	Path string

	// Format specifies the file format. Empty means infer from Path.
	Format Format

	// Field is the dot-notation path to the list field.
	// Example: "packages", "workspaces.packages"
	Field string
}
