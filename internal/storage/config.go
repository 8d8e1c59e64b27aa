package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// userConfigFile is the name of the per-directory configuration file.
	userConfigFile = ".cbconfig.yaml"

	// envPrefix is the prefix for environment overrides (CB_FILE, CB_COLOR, ...).
	envPrefix = "CB"

	// Default configuration values
	DefaultColor    = "auto"
	DefaultLogLevel = "warn"
)

// Config represents user configuration from .cbconfig.yaml and CB_* variables.
// This file is user-managed and never written by cb.
type Config struct {
	// File is the path of the contacts file.
	File string `mapstructure:"file"`

	// Color controls colored output: auto, always or never.
	Color string `mapstructure:"color"`

	// LogLevel is the minimum level for diagnostics on stderr.
	LogLevel string `mapstructure:"log_level"`

	// Source is the config file that was read, empty if none.
	Source string `mapstructure:"-"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		File:     DefaultFile,
		Color:    DefaultColor,
		LogLevel: DefaultLogLevel,
	}
}

// ConfigPaths returns the candidate config files in lookup order:
// .cbconfig.yaml in dir, then $XDG_CONFIG_HOME/cb/config.yaml
// (falling back to ~/.config/cb/config.yaml).
func ConfigPaths(dir string) []string {
	paths := []string{filepath.Join(dir, userConfigFile)}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "cb", "config.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "cb", "config.yaml"))
	}
	return paths
}

// LoadConfig loads the first config file found for dir, if any, and applies
// CB_* environment overrides. Missing keys keep their defaults.
func LoadConfig(dir string) (*Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("file", def.File)
	v.SetDefault("color", def.Color)
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var source string
	for _, path := range ConfigPaths(dir) {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		source = path
		break
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Source = source

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color %q: must be auto, always or never", c.Color)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", c.LogLevel)
	}

	if strings.TrimSpace(c.File) == "" {
		c.File = DefaultFile
	}
	return nil
}
