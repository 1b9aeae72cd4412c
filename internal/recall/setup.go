package recall

import (
	"fmt"

	"github.com/histkit/recall/internal/config"
	"github.com/histkit/recall/internal/feature"
	"github.com/histkit/recall/internal/key"
	"github.com/histkit/recall/internal/keymap"
)

// CompanionChord is the chord disabled alongside the insertion
// binding when the configuration asks for it, so a host default on
// that chord stops shadowing the keymap chain.
const CompanionChord = "Meta+s"

// Setup installs the insertion binding into every configured keymap.
// Installation is deferred until the keymap's feature is available;
// on hosts that only expose instance-creation hooks it runs again for
// every new instance instead.
//
// Setup fails only when the configured binding itself cannot be
// parsed. Errors raised while installing into a keymap are reported
// through the feature registry's reporter, not returned here.
func Setup(cfg *config.Config, maps *keymap.Registry, features *feature.Registry) error {
	chord, err := cfg.BindingChord()
	if err != nil {
		return fmt.Errorf("recall setup: %w", err)
	}
	companion := key.MustParse(CompanionChord)

	for _, spec := range cfg.Keymaps {
		install := installFunc(spec, chord, companion, cfg.UnbindCompanion, maps)
		if cfg.LegacyInstanceHooks {
			features.OnInstance(spec.Feature, install)
		} else {
			features.OnAvailable(spec.Feature, install)
		}
	}
	return nil
}

// installFunc builds the deferred callback that binds the insertion
// action in one keymap.
func installFunc(spec config.KeymapSpec, chord, companion key.Chord, unbindCompanion bool, maps *keymap.Registry) feature.Callback {
	return func() error {
		km, err := maps.Get(spec.Keymap)
		if err != nil {
			return fmt.Errorf("installing %s binding: %w", spec.Feature, err)
		}
		km.Bind(chord, ActionInsertItem)
		if unbindCompanion {
			km.Disable(companion)
		}
		return nil
	}
}
