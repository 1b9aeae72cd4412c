package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors Config with optional fields so a file can
// override exactly the keys it names. Absent keys keep their
// defaults; a present list replaces the default list wholesale.
type fileConfig struct {
	Binding             *string       `toml:"binding"`
	UnbindCompanion     *bool         `toml:"unbind_companion"`
	Rings               []RingBinding `toml:"rings"`
	Keymaps             []KeymapSpec  `toml:"keymaps"`
	LegacyInstanceHooks *bool         `toml:"legacy_instance_hooks"`
	HistorySize         *int          `toml:"history_size"`
	LogLevel            *string       `toml:"log_level"`
	Script              *string       `toml:"script"`
}

func (fc *fileConfig) apply(cfg *Config) {
	if fc.Binding != nil {
		cfg.Binding = *fc.Binding
	}
	if fc.UnbindCompanion != nil {
		cfg.UnbindCompanion = *fc.UnbindCompanion
	}
	if fc.Rings != nil {
		cfg.Rings = fc.Rings
	}
	if fc.Keymaps != nil {
		cfg.Keymaps = fc.Keymaps
	}
	if fc.LegacyInstanceHooks != nil {
		cfg.LegacyInstanceHooks = *fc.LegacyInstanceHooks
	}
	if fc.HistorySize != nil {
		cfg.HistorySize = *fc.HistorySize
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.Script != nil {
		cfg.Script = *fc.Script
	}
}

// Load builds a configuration from the TOML file at path, overlaid on
// the defaults. A missing file is not an error: the defaults are
// returned. An empty path skips file loading entirely.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := overlay(path, data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadReader builds a configuration from TOML read from r, overlaid
// on the defaults.
func LoadReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := overlay("<reader>", data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overlay(source string, data []byte, cfg *Config) error {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}

	fc.apply(cfg)
	return nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
