package engine

import "fmt"

// Known expansion module names, matching the strings used in the card
// catalog's module gates.
const (
	ModuleSushi          = "sushi"
	ModuleNoodle         = "noodle"
	ModuleCoffee         = "coffee"
	ModuleKimchi         = "kimchi"
	ModuleGourmet        = "gourmet"
	ModuleMassMarketeer  = "mass_marketeer"
	ModuleRuralMarketeer = "rural_marketeer"
	ModuleNightShift     = "night_shift"
	ModuleKetchup        = "ketchup"
	ModuleFryChefs       = "fry_chefs"
	ModuleMovieStars     = "movie_stars"
	ModuleReservePrices  = "reserve_prices"
	ModuleLobbyists      = "lobbyists"
	ModuleNewDistricts   = "new_districts"
	ModuleMilestones     = "milestones"
)

var knownModules = map[string]bool{
	ModuleSushi:          true,
	ModuleNoodle:         true,
	ModuleCoffee:         true,
	ModuleKimchi:         true,
	ModuleGourmet:        true,
	ModuleMassMarketeer:  true,
	ModuleRuralMarketeer: true,
	ModuleNightShift:     true,
	ModuleKetchup:        true,
	ModuleFryChefs:       true,
	ModuleMovieStars:     true,
	ModuleReservePrices:  true,
	ModuleLobbyists:      true,
	ModuleNewDistricts:   true,
	ModuleMilestones:     true,
}

// moduleForItem maps module-gated food kinds to the module that unlocks
// them. Core items are absent.
var moduleForItem = map[FoodItem]string{
	FoodSushi:  ModuleSushi,
	FoodNoodle: ModuleNoodle,
	FoodCoffee: ModuleCoffee,
	FoodKimchi: ModuleKimchi,
}

// ModuleGate answers whether a card instruction's module requirement is
// satisfied by the session's enabled module set. It is pure: Resolve never
// mutates anything.
type ModuleGate struct {
	Enabled map[string]bool `json:"enabled"`
}

// NewModuleGate builds a gate from the enabled module list. Unknown module
// names are rejected.
func NewModuleGate(modules []string) (*ModuleGate, error) {
	g := &ModuleGate{Enabled: make(map[string]bool, len(modules))}
	for _, m := range modules {
		if !knownModules[m] {
			return nil, fmt.Errorf("%w: unknown module %q", ErrValidation, m)
		}
		g.Enabled[m] = true
	}
	return g, nil
}

// Active reports whether the named module is enabled. The empty name means
// no requirement and is always active.
func (g *ModuleGate) Active(module string) bool {
	if module == "" {
		return true
	}
	return g.Enabled[module]
}

// Resolve picks between a gated item and its fallback. When the item's
// module is off and no fallback exists, ok is false and the instruction is
// skipped entirely.
func (g *ModuleGate) Resolve(item FoodItem, module string, fallback FoodItem) (FoodItem, bool) {
	if g.Active(module) {
		return item, true
	}
	if fallback != "" {
		return fallback, true
	}
	return "", false
}

// ItemAvailable reports whether a food kind can appear at all under the
// enabled module set.
func (g *ModuleGate) ItemAvailable(item FoodItem) bool {
	if item.IsCore() {
		return true
	}
	return g.Active(moduleForItem[item])
}

// List returns the enabled module names in no particular order.
func (g *ModuleGate) List() []string {
	out := make([]string, 0, len(g.Enabled))
	for m := range g.Enabled {
		out = append(out, m)
	}
	return out
}
