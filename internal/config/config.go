// Package config loads the optional csvtable configuration file.
//
// The file lives at ~/.config/csvtable/config.toml by default. A path ending
// in .yaml or .yml is decoded as YAML, anything else as TOML. A missing file
// is not an error and yields an empty Config.
//
// Example:
//
//	preset  = "professional"
//	formats = ["png", "svg"]
//	scale   = 2
//	dpi     = 300
//	jpeg_quality    = 90
//	svg_font_family = "Inter, sans-serif"
//
//	[cache]
//	dir = "/var/cache/csvtable"
//
//	[themes.brand]
//	base      = "large"
//	header_bg = "#c0392b"
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/csvtable/pkg/errors"
	"github.com/matzehuels/csvtable/pkg/render/table"
)

// Config holds user defaults. Zero values mean "not set".
type Config struct {
	Preset     string   `toml:"preset,omitempty" yaml:"preset,omitempty"`
	Formats    []string `toml:"formats,omitempty" yaml:"formats,omitempty"`
	Scale      float64  `toml:"scale,omitempty" yaml:"scale,omitempty"`
	DPI        int      `toml:"dpi,omitempty" yaml:"dpi,omitempty"`
	FontPath   string   `toml:"font_path,omitempty" yaml:"font_path,omitempty"`
	FontFamily string   `toml:"font_family,omitempty" yaml:"font_family,omitempty"`

	JPEGQuality   int    `toml:"jpeg_quality,omitempty" yaml:"jpeg_quality,omitempty"`
	SVGFontFamily string `toml:"svg_font_family,omitempty" yaml:"svg_font_family,omitempty"`

	Cache CacheConfig `toml:"cache,omitempty" yaml:"cache,omitempty"`

	// Themes are named overrides on top of a built-in preset.
	Themes map[string]table.Theme `toml:"themes,omitempty" yaml:"themes,omitempty"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Disabled bool   `toml:"disabled,omitempty" yaml:"disabled,omitempty"`
	Dir      string `toml:"dir,omitempty" yaml:"dir,omitempty"`
	RedisURL string `toml:"redis_url,omitempty" yaml:"redis_url,omitempty"`
}

// pathFunc returns the default config path. Tests replace it.
var pathFunc = defaultPath

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "csvtable", "config.toml"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	return pathFunc()
}

// Load reads the config file at the default path.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return &Config{}, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates the config file at path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}

	cfg, err := Parse(data, isYAML(path))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config file %s", path)
	}
	return cfg, nil
}

// Parse decodes and validates config data as YAML or TOML.
func Parse(data []byte, asYAML bool) (*Config, error) {
	var cfg Config
	if asYAML {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return nil, err
		}
	} else {
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks theme names and resolves every theme once so that a bad
// override is reported at load time rather than at render time.
func (c *Config) Validate() error {
	if c.JPEGQuality < 0 || c.JPEGQuality > 100 {
		return errors.New(errors.ErrCodeInvalidConfig, "jpeg_quality must be between 1 and 100, got %d", c.JPEGQuality)
	}
	for _, name := range c.ThemeNames() {
		if err := errors.ValidateThemeName(name); err != nil {
			return err
		}
		if _, err := table.Lookup(name, c.Themes); err != nil {
			return err
		}
	}
	if c.Preset != "" {
		if _, err := table.Lookup(c.Preset, c.Themes); err != nil {
			return err
		}
	}
	return nil
}

// ThemeNames returns the custom theme names in sorted order.
func (c *Config) ThemeNames() []string {
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save writes c to path, as YAML or TOML depending on the extension.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if isYAML(path) {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		_ = enc.Close()
	} else if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
