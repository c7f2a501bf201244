package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/nmsearch/internal/core"
	"github.com/tidwall/gjson"
)

// Reader reads list fields from manifest files.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a new Reader with the given filesystem.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// ReadList reads the string list stored at cfg.Field.
//
// A missing or null field yields ErrFieldNotFound, a field of another type ErrNotList,
// and unparsable content ErrMalformed. All are wrapped with the file path.
func (r *Reader) ReadList(ctx context.Context, cfg FileConfig) ([]string, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file path is required")
	}
	if cfg.Field == "" {
		return nil, fmt.Errorf("field is required")
	}

	format := cfg.Format
	if format == "" {
		format = FormatFromPath(cfg.Path)
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("invalid format: %s", format)
	}

	data, err := r.fs.ReadFile(ctx, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", cfg.Path, err)
	}

	switch format {
	case FormatYAML:
		return readYAML(data, cfg.Path, cfg.Field)
	default:
		return readJSON(data, cfg.Path, cfg.Field)
	}
}

// readJSON extracts a string list from JSON data. gjson paths already use
// dot notation, so the field is passed through as-is.
func readJSON(data []byte, path, field string) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse JSON in %q: %w", path, ErrMalformed)
	}

	value := gjson.GetBytes(data, field)
	if !value.Exists() || value.Type == gjson.Null {
		return nil, fmt.Errorf("field %q in %q: %w", field, path, ErrFieldNotFound)
	}
	if !value.IsArray() {
		return nil, fmt.Errorf("field %q in %q: %w", field, path, ErrNotList)
	}

	items := value.Array()
	list := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("field %q in %q: %w", field, path, ErrNotList)
		}
		list = append(list, item.String())
	}
	return list, nil
}

// readYAML extracts a string list from YAML data.
func readYAML(data []byte, path, field string) ([]string, error) {
	var obj map[string]any
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse YAML in %q: %w: %v", path, ErrMalformed, err)
	}

	value, err := getNestedValue(obj, field)
	if err != nil {
		return nil, fmt.Errorf("in file %q: %w", path, err)
	}
	if value == nil {
		return nil, fmt.Errorf("field %q in %q: %w", field, path, ErrFieldNotFound)
	}

	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("field %q in %q: %w", field, path, ErrNotList)
	}

	list := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("field %q in %q: %w", field, path, ErrNotList)
		}
		list = append(list, s)
	}
	return list, nil
}

// getNestedValue retrieves a value from a nested map using dot notation.
// Example: "workspaces.packages" accesses obj["workspaces"]["packages"]
func getNestedValue(obj map[string]any, field string) (any, error) {
	parts := strings.Split(field, ".")
	current := any(obj)

	for i, part := range parts {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object at path %q: %w", strings.Join(parts[:i], "."), part, ErrNotList)
		}

		value, exists := currentMap[part]
		if !exists {
			return nil, fmt.Errorf("field %q: %w", field, ErrFieldNotFound)
		}

		current = value
	}

	return current, nil
}
