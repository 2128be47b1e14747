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

	"github.com/debtlens/debtlens/pkg/analyzer/score"
)

// Config holds all configuration options for debtlens.
type Config struct {
	// Scoring policy: weights, ceilings and the assessment cutoff.
	Scoring score.Policy `koanf:"scoring"`

	// Detector enablement and thresholds.
	Detectors DetectorConfig `koanf:"detectors"`

	// HTTP server settings.
	Server ServerConfig `koanf:"server"`

	// Output settings.
	Output OutputConfig `koanf:"output"`

	// File exclusion patterns for directory scans.
	Exclude ExcludeConfig `koanf:"exclude"`
}

// DetectorConfig controls which smell detectors run and their thresholds.
type DetectorConfig struct {
	// Disabled lists detector names to skip (e.g. "Feature Envy").
	Disabled []string `koanf:"disabled"`

	Thresholds DetectorThresholds `koanf:"thresholds"`
}

// DetectorThresholds lifts every detection threshold into a named,
// documented field. Defaults mirror the classic smell-catalog values.
type DetectorThresholds struct {
	MethodLines       int     `koanf:"method_lines"`        // Long Method: body lines above this
	Parameters        int     `koanf:"parameters"`          // Long Parameter List: parameters above this
	ClassLines        int     `koanf:"class_lines"`         // Large Class: body lines above this
	FieldUses         int     `koanf:"field_uses"`          // Temporary Field: fewer uses than this
	ExtendsLimit      int     `koanf:"extends_limit"`       // Parallel Inheritance: extends count above this
	CommentRatio      float64 `koanf:"comment_ratio"`       // Comments: comment spans over this share of lines
	DuplicateWindow   int     `koanf:"duplicate_window"`    // Duplicate Code: consecutive lines per window
	DuplicateMinChars int     `koanf:"duplicate_min_chars"` // Duplicate Code: minimum joined window length
	ReceiverCalls     int     `koanf:"receiver_calls"`      // Feature Envy: receiver calls above this
}

// IsDisabled reports whether a detector name is switched off.
func (d DetectorConfig) IsDisabled(name string) bool {
	for _, n := range d.Disabled {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// ServerConfig controls the HTTP analysis endpoint.
type ServerConfig struct {
	Addr string `koanf:"addr"`

	// MaxBodyBytes caps the request size. The engine's duplicate scan is
	// quadratic in line count, so the boundary imposes the input limit.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// OutputConfig controls CLI output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// ExcludeConfig defines file exclusion rules for directory scans.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns"`
	Extensions []string `koanf:"extensions"`
	Dirs       []string `koanf:"dirs"`
	Gitignore  bool     `koanf:"gitignore"`
}

// DefaultConfig returns a config with documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: score.DefaultPolicy(),
		Detectors: DetectorConfig{
			Thresholds: DefaultDetectorThresholds(),
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.min.js",
				"*.min.css",
			},
			Extensions: []string{
				".lock",
				".sum",
			},
			Dirs: []string{
				"vendor",
				"node_modules",
				".git",
				"dist",
				"build",
			},
			Gitignore: true,
		},
	}
}

// DefaultDetectorThresholds returns the default smell thresholds.
func DefaultDetectorThresholds() DetectorThresholds {
	return DetectorThresholds{
		MethodLines:       20,
		Parameters:        4,
		ClassLines:        100,
		FieldUses:         3,
		ExtendsLimit:      2,
		CommentRatio:      0.3,
		DuplicateWindow:   3,
		DuplicateMinChars: 50,
		ReceiverCalls:     5,
	}
}

// Load loads configuration from a file, layered over defaults.
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

	cfg.Scoring = cfg.Scoring.Normalize()
	return cfg, nil
}

// LoadOrDefault tries standard locations and falls back to defaults.
func LoadOrDefault() *Config {
	names := []string{
		"debtlens.toml",
		"debtlens.yaml",
		"debtlens.yml",
		"debtlens.json",
		".debtlens.toml",
		".debtlens.yaml",
		".debtlens.yml",
		".debtlens.json",
	}

	for _, dir := range []string{".", ".debtlens"} {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				if cfg, err := Load(path); err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// ShouldExclude checks if a path should be excluded from a directory scan.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	ext := filepath.Ext(path)
	for _, excludeExt := range c.Exclude.Extensions {
		if ext == excludeExt {
			return true
		}
	}

	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}
