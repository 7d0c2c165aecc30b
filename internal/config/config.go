// Package config loads the YAML configuration of the contentparts CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contentparts/pkg/compat"
)

// Template engines selectable with Config.Engine.
const (
	EnginePongo2     = "pongo2"
	EngineGoTemplate = "go-template"
)

// Config is the CLI configuration file.
type Config struct {
	// Mode is "strict" or "best-effort".
	Mode string `yaml:"mode"`
	// Engine is "pongo2" or "go-template".
	Engine     string            `yaml:"engine"`
	RecipesDir string            `yaml:"recipes_dir"`
	Locale     string            `yaml:"locale"`
	Roles      []string          `yaml:"roles"`
	Shortcodes map[string]string `yaml:"shortcodes,omitempty"`
	// Captions maps locale to menu caption translations.
	Captions  map[string]map[string]string `yaml:"captions,omitempty"`
	Sanitizer SanitizerConfig              `yaml:"sanitizer"`
	Logging   LoggingConfig                `yaml:"logging"`
}

// SanitizerConfig toggles optional sanitizer allowances.
type SanitizerConfig struct {
	Enabled  bool `yaml:"enabled"`
	AllowSVG bool `yaml:"allow_svg"`
}

// LoggingConfig selects the CLI logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
	File   string `yaml:"file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Mode:      compat.ModeStrict.String(),
		Engine:    EnginePongo2,
		Locale:    "en",
		Roles:     []string{"Administrator", "Editor", "Author", "Contributor"},
		Sanitizer: SanitizerConfig{Enabled: true},
		Logging:   LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// CONTENTPARTS_MODE and CONTENTPARTS_LOG_LEVEL override the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if _, err := compat.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Engine {
	case "", EnginePongo2, EngineGoTemplate:
	default:
		return fmt.Errorf("config: unknown template engine %q", c.Engine)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "console", "text", "json":
	default:
		return fmt.Errorf("config: unknown logging format %q", c.Logging.Format)
	}
	return nil
}

// ResolverMode returns the parsed Mode.
func (c *Config) ResolverMode() compat.Mode {
	mode, _ := compat.ParseMode(c.Mode)
	return mode
}

func (c *Config) applyEnvOverrides() {
	if mode := os.Getenv("CONTENTPARTS_MODE"); mode != "" {
		c.Mode = mode
	}
	if level := os.Getenv("CONTENTPARTS_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}
