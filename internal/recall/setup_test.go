package recall

import (
	"errors"
	"testing"

	"github.com/histkit/recall/internal/config"
	"github.com/histkit/recall/internal/feature"
	"github.com/histkit/recall/internal/key"
	"github.com/histkit/recall/internal/keymap"
)

func setupConfig(specs ...config.KeymapSpec) *config.Config {
	cfg := config.Default()
	cfg.Keymaps = specs
	return cfg
}

func TestSetupDefersUntilFeatureAvailable(t *testing.T) {
	cfg := setupConfig(config.KeymapSpec{Feature: "shell", Keymap: "shell-mode"})

	maps := keymap.NewRegistry()
	if _, err := maps.Define("shell-mode", ""); err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	features := feature.NewRegistry()

	if err := Setup(cfg, maps, features); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	km, err := maps.Get("shell-mode")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	chord := key.MustParse(cfg.Binding)

	if action, ok := km.Lookup(chord); ok {
		t.Fatalf("Lookup(%v) = %q before feature load, want no binding", chord, action)
	}

	features.Provide("shell")

	action, ok := km.Lookup(chord)
	if !ok || action != ActionInsertItem {
		t.Errorf("Lookup(%v) = %q, %v, want %q", chord, action, ok, ActionInsertItem)
	}

	entry, ok := km.Entry(key.MustParse(CompanionChord))
	if !ok || !entry.Disabled {
		t.Errorf("Entry(%s) = %+v, %v, want disabled entry", CompanionChord, entry, ok)
	}
}

func TestSetupInstallsImmediatelyWhenAvailable(t *testing.T) {
	cfg := setupConfig(config.KeymapSpec{Feature: "repl", Keymap: "repl-mode"})

	maps := keymap.NewRegistry()
	if _, err := maps.Define("repl-mode", ""); err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	features := feature.NewRegistry()
	features.Provide("repl")

	if err := Setup(cfg, maps, features); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	km, _ := maps.Get("repl-mode")
	if action, ok := km.Lookup(key.MustParse(cfg.Binding)); !ok || action != ActionInsertItem {
		t.Errorf("Lookup() = %q, %v, want %q", action, ok, ActionInsertItem)
	}
}

func TestSetupCompanionMasksParentBinding(t *testing.T) {
	cfg := setupConfig(config.KeymapSpec{Feature: "shell", Keymap: "shell-mode"})

	maps := keymap.NewRegistry()
	base, err := maps.Define("base", "")
	if err != nil {
		t.Fatalf("Define(base) error = %v", err)
	}
	companion := key.MustParse(CompanionChord)
	base.Bind(companion, "host.save")

	if _, err := maps.Define("shell-mode", "base"); err != nil {
		t.Fatalf("Define(shell-mode) error = %v", err)
	}

	features := feature.NewRegistry()
	features.Provide("shell")
	if err := Setup(cfg, maps, features); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	km, _ := maps.Get("shell-mode")
	if action, ok := km.Lookup(companion); ok {
		t.Errorf("Lookup(%s) = %q, want the inherited binding masked", CompanionChord, action)
	}
}

func TestSetupKeepsCompanionWhenConfigured(t *testing.T) {
	cfg := setupConfig(config.KeymapSpec{Feature: "shell", Keymap: "shell-mode"})
	cfg.UnbindCompanion = false

	maps := keymap.NewRegistry()
	if _, err := maps.Define("shell-mode", ""); err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	features := feature.NewRegistry()
	features.Provide("shell")

	if err := Setup(cfg, maps, features); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	km, _ := maps.Get("shell-mode")
	if _, ok := km.Entry(key.MustParse(CompanionChord)); ok {
		t.Errorf("Entry(%s) present, want untouched chord", CompanionChord)
	}
}

func TestSetupLegacyInstanceHooks(t *testing.T) {
	cfg := setupConfig(config.KeymapSpec{Feature: "terminal", Keymap: "terminal-mode"})
	cfg.LegacyInstanceHooks = true

	maps := keymap.NewRegistry()
	if _, err := maps.Define("terminal-mode", ""); err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	features := feature.NewRegistry()

	if err := Setup(cfg, maps, features); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	km, _ := maps.Get("terminal-mode")
	chord := key.MustParse(cfg.Binding)

	// Availability alone is not enough on the legacy path.
	features.Provide("terminal")
	if action, ok := km.Lookup(chord); ok {
		t.Fatalf("Lookup() = %q after Provide, want no binding", action)
	}

	features.NewInstance("terminal")
	if action, ok := km.Lookup(chord); !ok || action != ActionInsertItem {
		t.Errorf("Lookup() = %q, %v, want %q", action, ok, ActionInsertItem)
	}

	// Each new instance runs the install again.
	km.Unbind(chord)
	features.NewInstance("terminal")
	if action, ok := km.Lookup(chord); !ok || action != ActionInsertItem {
		t.Errorf("Lookup() after second instance = %q, %v, want %q", action, ok, ActionInsertItem)
	}
}

func TestSetupReportsInstallErrors(t *testing.T) {
	// The keymap is never defined; the install callback fails when
	// the feature loads and the error reaches the reporter.
	cfg := setupConfig(config.KeymapSpec{Feature: "shell", Keymap: "missing-mode"})

	maps := keymap.NewRegistry()
	features := feature.NewRegistry()

	var gotFeature string
	var gotErr error
	features.SetReporter(func(name string, err error) {
		gotFeature = name
		gotErr = err
	})

	if err := Setup(cfg, maps, features); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	features.Provide("shell")

	if gotFeature != "shell" {
		t.Errorf("reported feature = %q, want %q", gotFeature, "shell")
	}
	if !errors.Is(gotErr, keymap.ErrUnknownKeymap) {
		t.Errorf("reported error = %v, want ErrUnknownKeymap", gotErr)
	}
}

func TestSetupRejectsUnparseableBinding(t *testing.T) {
	cfg := setupConfig(config.KeymapSpec{Feature: "shell", Keymap: "shell-mode"})
	cfg.Binding = "Hyper+r"

	maps := keymap.NewRegistry()
	features := feature.NewRegistry()

	if err := Setup(cfg, maps, features); err == nil {
		t.Fatal("Setup() error = nil, want parse failure")
	}
}
