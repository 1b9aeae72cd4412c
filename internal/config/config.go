// Package config holds the recall configuration. A Config is built
// once at startup, validated, and passed by pointer; nothing mutates
// it afterwards.
package config

import (
	"errors"
	"fmt"

	"github.com/histkit/recall/internal/editor"
	"github.com/histkit/recall/internal/key"
)

// ErrInvalid reports a configuration that fails validation.
var ErrInvalid = errors.New("invalid configuration")

// DefaultHistorySize is the capacity of rings the host creates.
const DefaultHistorySize = 100

// RingBinding maps a context kind to a named history store. The order
// of bindings matters: history resolution uses the first binding whose
// kind matches and whose store is present.
type RingBinding struct {
	Kind  string `toml:"kind"`
	Store string `toml:"store"`
}

// KeymapSpec names a feature and the keymap that receives the
// insertion binding when the feature loads.
type KeymapSpec struct {
	Feature string `toml:"feature"`
	Keymap  string `toml:"keymap"`
}

// Config is the full recall configuration.
type Config struct {
	// Binding is the chord bound to the insertion command.
	Binding string `toml:"binding"`

	// UnbindCompanion disables the companion chord (Meta+s) in each
	// configured keymap so it stops falling through to parent maps.
	UnbindCompanion bool `toml:"unbind_companion"`

	// Rings is the ordered (context kind, store) list consulted when
	// resolving history for non-prompt contexts.
	Rings []RingBinding `toml:"rings"`

	// Keymaps lists the (feature, keymap) pairs to install the
	// binding into.
	Keymaps []KeymapSpec `toml:"keymaps"`

	// LegacyInstanceHooks selects per-instance hook registration for
	// hosts without one-shot feature-load notification.
	LegacyInstanceHooks bool `toml:"legacy_instance_hooks"`

	// HistorySize is the capacity of host-created rings.
	HistorySize int `toml:"history_size"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Script is the path of an optional Lua init script.
	Script string `toml:"script"`
}

// Default returns the stock configuration: Meta+r bound in the
// prompt, shell, repl and terminal keymaps, with each non-prompt kind
// reading its conventional store.
func Default() *Config {
	return &Config{
		Binding:         "Meta+r",
		UnbindCompanion: true,
		Rings: []RingBinding{
			{Kind: "shell", Store: "shell-history"},
			{Kind: "repl", Store: "repl-history"},
			{Kind: "terminal", Store: "terminal-history"},
		},
		Keymaps: []KeymapSpec{
			{Feature: "prompt", Keymap: "prompt-edit"},
			{Feature: "shell", Keymap: "shell-mode"},
			{Feature: "repl", Keymap: "repl-mode"},
			{Feature: "terminal", Keymap: "terminal-mode"},
		},
		HistorySize: DefaultHistorySize,
		LogLevel:    "info",
	}
}

// BindingChord returns the parsed insertion chord.
func (c *Config) BindingChord() (key.Chord, error) {
	return key.Parse(c.Binding)
}

// Validate checks the configuration for problems that would otherwise
// surface as broken behavior much later.
func (c *Config) Validate() error {
	if _, err := key.Parse(c.Binding); err != nil {
		return fmt.Errorf("%w: binding %q: %v", ErrInvalid, c.Binding, err)
	}

	if c.HistorySize <= 0 {
		return fmt.Errorf("%w: history_size must be positive, got %d", ErrInvalid, c.HistorySize)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalid, c.LogLevel)
	}

	for i, rb := range c.Rings {
		if _, ok := editor.KindFromName(rb.Kind); !ok {
			return fmt.Errorf("%w: rings[%d]: unknown context kind %q", ErrInvalid, i, rb.Kind)
		}
		if rb.Store == "" {
			return fmt.Errorf("%w: rings[%d]: store name must not be empty", ErrInvalid, i)
		}
	}

	for i, ks := range c.Keymaps {
		if ks.Feature == "" {
			return fmt.Errorf("%w: keymaps[%d]: feature must not be empty", ErrInvalid, i)
		}
		if ks.Keymap == "" {
			return fmt.Errorf("%w: keymaps[%d]: keymap must not be empty", ErrInvalid, i)
		}
	}

	return nil
}
