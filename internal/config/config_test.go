package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/histkit/recall/internal/key"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Binding != "Meta+r" {
		t.Errorf("Binding = %q, want Meta+r", cfg.Binding)
	}
	if !cfg.UnbindCompanion {
		t.Error("UnbindCompanion should default to true")
	}
	if len(cfg.Rings) != 3 || cfg.Rings[0].Kind != "shell" {
		t.Errorf("Rings = %+v", cfg.Rings)
	}
	if len(cfg.Keymaps) != 4 {
		t.Errorf("Keymaps = %+v", cfg.Keymaps)
	}
}

func TestBindingChord(t *testing.T) {
	cfg := Default()

	chord, err := cfg.BindingChord()
	if err != nil {
		t.Fatalf("BindingChord() error = %v", err)
	}
	if chord != key.MustParse("Meta+r") {
		t.Errorf("chord = %+v", chord)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad binding", func(c *Config) { c.Binding = "NotAKey++" }},
		{"zero history size", func(c *Config) { c.HistorySize = 0 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"unknown kind", func(c *Config) { c.Rings = []RingBinding{{Kind: "spreadsheet", Store: "x"}} }},
		{"empty store", func(c *Config) { c.Rings = []RingBinding{{Kind: "shell", Store: ""}} }},
		{"empty feature", func(c *Config) { c.Keymaps = []KeymapSpec{{Feature: "", Keymap: "m"}} }},
		{"empty keymap", func(c *Config) { c.Keymaps = []KeymapSpec{{Feature: "f", Keymap: ""}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Binding != "Meta+r" {
		t.Errorf("Binding = %q, want default", cfg.Binding)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.HistorySize != DefaultHistorySize {
		t.Errorf("HistorySize = %d", cfg.HistorySize)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recall.toml")
	content := `
binding = "Meta+p"
unbind_companion = false

[[rings]]
kind = "shell"
store = "my-shell"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Binding != "Meta+p" {
		t.Errorf("Binding = %q, want Meta+p", cfg.Binding)
	}
	if cfg.UnbindCompanion {
		t.Error("UnbindCompanion should have been overridden to false")
	}
	if len(cfg.Rings) != 1 || cfg.Rings[0].Store != "my-shell" {
		t.Errorf("Rings = %+v, want the file's list to replace defaults", cfg.Rings)
	}
	// Untouched keys keep their defaults.
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if len(cfg.Keymaps) != 4 {
		t.Errorf("Keymaps = %+v, want defaults preserved", cfg.Keymaps)
	}
}

func TestLoadReaderParseError(t *testing.T) {
	_, err := LoadReader(strings.NewReader("binding = ["))
	if err == nil {
		t.Fatal("expected parse error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("error = %T, want *ParseError", err)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	_, err := LoadReader(strings.NewReader(`binding = "Hyper+x"`))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("error = %v, want ErrInvalid", err)
	}
}
