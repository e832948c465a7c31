// Package config loads heir configuration from TOML, YAML, or JSON files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for heir.
type Config struct {
	// Analysis settings applied to every session.
	Analysis AnalysisConfig `koanf:"analysis" toml:"analysis"`

	// Batch settings for namespace analysis.
	Batch BatchConfig `koanf:"batch" toml:"batch"`

	// Python source scanning settings.
	Python PythonConfig `koanf:"python" toml:"python"`

	// Output settings.
	Output OutputConfig `koanf:"output" toml:"output"`
}

// AnalysisConfig controls hierarchy traversal.
type AnalysisConfig struct {
	// Ignore prunes classes matching this regular expression, along with
	// their entire subtrees.
	Ignore string `koanf:"ignore" toml:"ignore"`

	// UniversalRoot, when enabled, substitutes UniversalRootName for an
	// empty parent list so every path converges on one synthetic root.
	UniversalRoot     bool   `koanf:"universal_root" toml:"universal_root"`
	UniversalRootName string `koanf:"universal_root_name" toml:"universal_root_name"`
}

// BatchConfig controls concurrent namespace analysis.
type BatchConfig struct {
	Workers int `koanf:"workers" toml:"workers"` // 0 = one per CPU
}

// PythonConfig controls the tree-sitter source provider.
type PythonConfig struct {
	MaxFileSize    int64 `koanf:"max_file_size" toml:"max_file_size"`
	IncludePrivate bool  `koanf:"include_private" toml:"include_private"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			UniversalRootName: "UNIVERSAL",
		},
		Batch: BatchConfig{
			Workers: 0,
		},
		Python: PythonConfig{
			MaxFileSize: 5 * 1024 * 1024,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault tries standard config locations and falls back to
// defaults.
func LoadOrDefault() *Config {
	names := []string{
		"heir.toml",
		"heir.yaml",
		"heir.yml",
		"heir.json",
		".heir.toml",
		".heir.yaml",
		".heir.yml",
		".heir.json",
	}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}
	return DefaultConfig()
}
