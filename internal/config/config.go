package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/JPM1118/imgbind/internal/provider"
)

// Source kinds.
const (
	SourceFilepath    = "filepath"
	SourcePlaceholder = "placeholder"
)

// Config holds all configuration for imgbind.
type Config struct {
	Source       SourceConfig      `yaml:"source"`
	Replacements ReplacementConfig `yaml:"replacements"`
	Placeholder  PlaceholderConfig `yaml:"placeholder"`
	Watch        WatchConfig       `yaml:"watch"`
}

// SourceConfig selects the image source used for assets without a
// replacement.
type SourceConfig struct {
	Kind string `yaml:"kind" env:"IMGBIND_SOURCE_KIND"`
	// Dir is the filepath source's base directory. Empty means the
	// animation document's directory.
	Dir string `yaml:"dir" env:"IMGBIND_SOURCE_DIR"`
}

// ReplacementConfig maps asset names to locally stored replacement files.
type ReplacementConfig struct {
	// Dir overrides the replacement directory. Empty means the default
	// data directory.
	Dir    string            `yaml:"dir" env:"IMGBIND_REPLACEMENT_DIR"`
	Images map[string]string `yaml:"images"`
}

// PlaceholderConfig controls the placeholder source.
type PlaceholderConfig struct {
	Color string `yaml:"color" env:"IMGBIND_PLACEHOLDER_COLOR"`
}

// WatchConfig controls how the inspector notices edited replacement files.
type WatchConfig struct {
	// Interval between checks. Zero disables watching.
	Interval time.Duration `yaml:"interval" env:"IMGBIND_WATCH_INTERVAL"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Source: SourceConfig{
			Kind: SourceFilepath,
		},
		Replacements: ReplacementConfig{
			Images: map[string]string{},
		},
		Placeholder: PlaceholderConfig{
			Color: "#808080",
		},
		Watch: WatchConfig{
			Interval: 2 * time.Second,
		},
	}
}

// Load reads the config file, merges with defaults and applies environment
// overrides. Missing file is not an error; defaults are used silently.
func Load() (Config, error) {
	return LoadFrom(configPath())
}

// LoadFrom reads config from a specific path.
func LoadFrom(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Defaults(), fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Defaults(), fmt.Errorf("parse env: %w", err)
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return Defaults(), fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Source.Kind = strings.ToLower(strings.TrimSpace(c.Source.Kind))
	if c.Source.Kind == "" {
		c.Source.Kind = SourceFilepath
	}
	if c.Replacements.Images == nil {
		c.Replacements.Images = map[string]string{}
	}
}

func (c Config) validate() error {
	switch c.Source.Kind {
	case SourceFilepath, SourcePlaceholder:
	default:
		return fmt.Errorf("source.kind must be %q or %q, got %q", SourceFilepath, SourcePlaceholder, c.Source.Kind)
	}

	if _, err := provider.ParseHexColor(c.Placeholder.Color); err != nil {
		return fmt.Errorf("placeholder.color: %w", err)
	}

	if c.Watch.Interval < 0 {
		return fmt.Errorf("watch.interval must not be negative, got %s", c.Watch.Interval)
	}

	for name, file := range c.Replacements.Images {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("replacements.images: empty asset name")
		}
		if strings.TrimSpace(file) == "" {
			return fmt.Errorf("replacements.images[%s]: empty file name", name)
		}
	}
	return nil
}

func configPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "imgbind", "config.yml")
}
