// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/remora-debug/remora/internal/constants"
)

// Loader handles loading and saving the configuration file.
type Loader struct {
	baseDir string
}

// NewLoader creates a config loader. The base directory is resolved in
// this order:
//  1. REMORA_CONFIG environment variable.
//  2. User home directory (~/).
//  3. /tmp/remora-fallback (containerized environments without a home dir).
//
// In minimal containers where no home directory exists, the fallback
// ensures Load still returns defaults with env var overrides applied.
func NewLoader() *Loader {
	if baseDir := os.Getenv("REMORA_CONFIG"); baseDir != "" {
		return &Loader{baseDir: baseDir}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		return &Loader{baseDir: homeDir}
	}

	// Config files won't exist here, so Load returns defaults + env
	// overrides.
	return &Loader{baseDir: "/tmp/remora-fallback"}
}

// Dir returns the remora config directory.
func (l *Loader) Dir() string {
	return filepath.Join(l.baseDir, constants.DefaultDir)
}

// ConfigPath returns the path to the config file.
func (l *Loader) ConfigPath() string {
	return filepath.Join(l.baseDir, constants.DefaultDir, constants.ConfigFile)
}

// HistoryPath returns the path to the interactive shell's history file.
func (l *Loader) HistoryPath() string {
	return filepath.Join(l.baseDir, constants.DefaultDir, constants.HistoryFile)
}

// Load loads the configuration. Returns the default config if the file
// doesn't exist. Environment variable overrides are applied on top of
// whatever was loaded, then the result is validated.
func (l *Loader) Load() (*Config, error) {
	path := l.ConfigPath()

	var config *Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		config = DefaultConfig()
	} else {
		//nolint:gosec // G304: Path is from trusted config directory.
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := MergeFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("invalid config at %s: %w", path, err)
	}

	return config, nil
}

// Save writes the configuration file, creating the config directory if
// needed.
func (l *Loader) Save(config *Config) error {
	if err := Validate(config); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}

	path := l.ConfigPath()

	//nolint:gosec // G301: Directory needs standard permissions for traversal
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Config holds no secrets, 0644 is fine.
	//nolint:gosec // G306: Config file is not sensitive
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks a config for values the rest of the tool cannot act
// on. Unknown logging levels are tolerated (the logger falls back to
// info) but byte order, color mode and enum tables must be coherent.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	switch cfg.Render.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid render color mode %q (want auto, always or never)", cfg.Render.Color)
	}

	switch cfg.Decode.ByteOrder {
	case "", "little", "big":
	default:
		return fmt.Errorf("invalid byte_order %q (want little or big)", cfg.Decode.ByteOrder)
	}

	for i, table := range cfg.Enums {
		if err := table.validate(); err != nil {
			return fmt.Errorf("enum table %d: %w", i, err)
		}
	}

	return nil
}
