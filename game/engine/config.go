package engine

import "fmt"

// GameConfig is the immutable per-session setup. A zero Seed means a
// random seed is chosen at engine construction.
type GameConfig struct {
	Name string `json:"name"`
	Seed int64  `json:"seed,omitempty"`

	// Mode selects the full phase machine or the reduced quick mode.
	Mode GameMode `json:"mode"`

	// Modules lists the enabled expansion modules by name.
	Modules []string `json:"modules,omitempty"`

	// ExtendedRestaurants doubles the restaurant cap, the optional rule
	// that usually comes with the reserve module.
	ExtendedRestaurants bool `json:"extended_restaurants,omitempty"`

	// AggressiveSetup starts the competition track at Warm instead of
	// Neutral, for a harder opening.
	AggressiveSetup bool `json:"aggressive_setup,omitempty"`

	// AggressiveRestructuring makes every competition event draw from the
	// warm deck regardless of the track's current level.
	AggressiveRestructuring bool `json:"aggressive_restructuring,omitempty"`

	// JournalDepth caps the undo journal. Zero means the default.
	JournalDepth int `json:"journal_depth,omitempty"`
}

// DefaultJournalDepth is the undo history kept per session.
const DefaultJournalDepth = 20

// DefaultConfig returns a base-game full-mode setup.
func DefaultConfig() GameConfig {
	return GameConfig{
		Name: "default",
		Mode: ModeFull,
	}
}

// ValidateGameConfig rejects malformed setups before an engine is built.
func ValidateGameConfig(cfg GameConfig) error {
	switch cfg.Mode {
	case ModeFull, ModeQuick:
	case "":
		return fmt.Errorf("%w: mode is required", ErrValidation)
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrValidation, cfg.Mode)
	}
	for _, m := range cfg.Modules {
		if !knownModules[m] {
			return fmt.Errorf("%w: unknown module %q", ErrValidation, m)
		}
	}
	if cfg.JournalDepth < 0 {
		return fmt.Errorf("%w: journal depth cannot be negative", ErrValidation)
	}
	return nil
}
