package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/nmsearch/internal/core"
)

// DefaultConfigFile is the configuration file looked up in the working directory.
const DefaultConfigFile = ".nmsearch.yaml"

// DefaultDependencyFolder is the dependency-storage folder used when none is configured.
const DefaultDependencyFolder = "node_modules"

// DefaultStateFile is the name of the last-folder file in the user cache directory.
const DefaultStateFile = "last.toml"

// Discovery strategies.
const (
	StrategyManifest  = "manifest"
	StrategyRecursive = "recursive"
	StrategyAuto      = "auto"
)

// DiscoveryConfig controls how dependency roots are discovered.
type DiscoveryConfig struct {
	Strategy       string   `yaml:"strategy,omitempty"`
	Manifests      []string `yaml:"manifests,omitempty"`
	Exclude        []string `yaml:"exclude,omitempty"`
	MaxConcurrency int      `yaml:"maxConcurrency,omitempty"`
}

// PackagesConfig controls package selection.
type PackagesConfig struct {
	RequireDependencyFolder bool `yaml:"requireDependencyFolder"`
}

// StateConfig controls where the last visited folder is kept.
type StateConfig struct {
	File string `yaml:"file,omitempty"`
}

// Config is the main configuration structure for nmsearch.
type Config struct {
	UseLastFolder bool             `yaml:"useLastFolder"`
	Path          string           `yaml:"path"`
	Theme         string           `yaml:"theme,omitempty"`
	Editor        string           `yaml:"editor,omitempty"`
	Workspaces    []string         `yaml:"workspaces,omitempty"`
	Discovery     *DiscoveryConfig `yaml:"discovery,omitempty"`
	Packages      *PackagesConfig  `yaml:"packages,omitempty"`
	State         *StateConfig     `yaml:"state,omitempty"`
}

// DefaultManifests lists the monorepo manifests checked by the manifest strategy.
func DefaultManifests() []string {
	return []string{"lerna.json", "pnpm-workspace.yaml", "package.json"}
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Path: DefaultDependencyFolder,
		Discovery: &DiscoveryConfig{
			Strategy:       StrategyAuto,
			Manifests:      DefaultManifests(),
			MaxConcurrency: core.DefaultMaxConcurrency,
		},
		Packages: &PackagesConfig{},
		State:    &StateConfig{},
	}
}

// GetDiscoveryConfig returns the discovery settings with defaults filled in.
func (c *Config) GetDiscoveryConfig() DiscoveryConfig {
	d := DiscoveryConfig{}
	if c.Discovery != nil {
		d = *c.Discovery
	}
	if d.Strategy == "" {
		d.Strategy = StrategyAuto
	}
	if len(d.Manifests) == 0 {
		d.Manifests = DefaultManifests()
	}
	if d.MaxConcurrency <= 0 {
		d.MaxConcurrency = core.DefaultMaxConcurrency
	}
	return d
}

// DependencyFolder returns the configured dependency-storage folder, cleaned.
func (c *Config) DependencyFolder() string {
	if c.Path == "" {
		return DefaultDependencyFolder
	}
	return filepath.Clean(c.Path)
}

// RequireDependencyFolder reports whether packages without a dependency
// folder are hidden from package selection.
func (c *Config) RequireDependencyFolder() bool {
	return c.Packages != nil && c.Packages.RequireDependencyFolder
}

// StateFile returns the configured state file, or "" when none is set.
func (c *Config) StateFile() string {
	if c.State == nil {
		return ""
	}
	return c.State.File
}

// userCacheDir locates the per-user cache directory.
var userCacheDir = os.UserCacheDir

// StatePath returns the file the last visited folder is kept in: state.file
// when set, else last.toml under the user cache directory. It is "" when no
// cache directory is available.
func (c *Config) StatePath() string {
	if file := c.StateFile(); file != "" {
		return file
	}
	dir, err := userCacheDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "nmsearch", DefaultStateFile)
}

// LoadConfigFn is the loader used by the CLI; tests may replace it.
var LoadConfigFn = Load

// Load reads configuration from NMSEARCH_CONFIG or .nmsearch.yaml and
// applies environment overrides. A missing file yields Default().
func Load() (*Config, error) {
	file := DefaultConfigFile
	if envFile := os.Getenv("NMSEARCH_CONFIG"); envFile != "" {
		file = envFile
	}
	return LoadFrom(file)
}

// LoadFrom reads configuration from the given file and applies environment
// overrides. A missing file yields Default().
func LoadFrom(file string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
		if err := decoder.Decode(cfg); err != nil && !isEmptyDocument(data) {
			return nil, fmt.Errorf("failed to parse config %q: %w", file, err)
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return nil, fmt.Errorf("failed to read config %q: %w", file, err)
	}

	if cfg.Path == "" {
		cfg.Path = DefaultDependencyFolder
	}
	cleanPath, err := CleanDependencyFolder(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid path in config %q: %w", file, err)
	}
	cfg.Path = cleanPath

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv applies NMSEARCH_* environment overrides on top of cfg.
func applyEnv(cfg *Config) error {
	if envPath := os.Getenv("NMSEARCH_PATH"); envPath != "" {
		cleanPath, err := CleanDependencyFolder(envPath)
		if err != nil {
			return fmt.Errorf("invalid NMSEARCH_PATH: %w", err)
		}
		cfg.Path = cleanPath
	}

	if envLast := os.Getenv("NMSEARCH_USE_LAST_FOLDER"); envLast != "" {
		v, err := strconv.ParseBool(envLast)
		if err != nil {
			return fmt.Errorf("invalid NMSEARCH_USE_LAST_FOLDER %q: %w", envLast, err)
		}
		cfg.UseLastFolder = v
	}

	return nil
}

// CleanDependencyFolder cleans a dependency folder setting and rejects paths
// that are absolute, name the workspace folder itself or leave it.
func CleanDependencyFolder(p string) (string, error) {
	clean := filepath.Clean(p)
	if clean == "." {
		return "", fmt.Errorf("%q must name a folder inside the workspace folder", p)
	}
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q must be relative to the workspace folder", p)
	}
	return clean, nil
}

func isEmptyDocument(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0
}

// Marshaler abstracts serialization so ConfigSaver can be tested.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}

// FileWriter abstracts file writing operations for testability.
type FileWriter interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// yamlMarshaler is the production Marshaler.
type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// osFileWriter is the production FileWriter.
type osFileWriter struct{}

func (w *osFileWriter) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// ConfigSaver writes configuration files with injected dependencies.
type ConfigSaver struct {
	marshaler Marshaler
	writer    FileWriter
}

// NewConfigSaver creates a ConfigSaver. Nil dependencies use production defaults.
func NewConfigSaver(marshaler Marshaler, writer FileWriter) *ConfigSaver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &ConfigSaver{marshaler: marshaler, writer: writer}
}

// SaveTo writes cfg to configFile.
func (s *ConfigSaver) SaveTo(cfg *Config, configFile string) error {
	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", configFile, err)
	}

	if err := s.writer.WriteFile(configFile, data, core.PermOwnerRW); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}

	return nil
}
