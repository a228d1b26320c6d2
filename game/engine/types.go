package engine

// Phase identifies a step in the automa's turn cycle.
type Phase string

const (
	PhaseRestructuring Phase = "restructuring"
	PhaseRecruitTrain  Phase = "recruit_train"
	PhaseGetFood       Phase = "get_food"
	PhaseMarketing     Phase = "marketing"
	PhaseDevelop       Phase = "develop"
	PhaseLobby         Phase = "lobby"
	PhaseExpandChain   Phase = "expand_chain"
	PhaseDinnertime    Phase = "dinnertime"
	PhaseCleanup       Phase = "cleanup"
	PhaseGameOver      Phase = "game_over"

	// PhaseWaiting is orthogonal to the cycle: a phase handler that needs
	// player-supplied data parks the machine here and resumes at the stored
	// resume point once input arrives.
	PhaseWaiting Phase = "waiting_for_input"
)

// phaseOrder is the required cyclic order of the turn phases.
var phaseOrder = []Phase{
	PhaseRestructuring,
	PhaseRecruitTrain,
	PhaseGetFood,
	PhaseMarketing,
	PhaseDevelop,
	PhaseLobby,
	PhaseExpandChain,
	PhaseDinnertime,
	PhaseCleanup,
}

// Next returns the phase that follows p in the turn cycle. Cleanup wraps
// to restructuring; terminal and orthogonal phases return themselves.
func (p Phase) Next() Phase {
	for i, ph := range phaseOrder {
		if ph == p {
			if i == len(phaseOrder)-1 {
				return PhaseRestructuring
			}
			return phaseOrder[i+1]
		}
	}
	return p
}

// CompetitionLevel is the five-step Cold..Hot competition track value.
type CompetitionLevel int

const (
	CompetitionCold CompetitionLevel = iota
	CompetitionCool
	CompetitionNeutral
	CompetitionWarm
	CompetitionHot
)

// String returns the board label for the level.
func (c CompetitionLevel) String() string {
	switch c {
	case CompetitionCold:
		return "Cold"
	case CompetitionCool:
		return "Cool"
	case CompetitionNeutral:
		return "Neutral"
	case CompetitionWarm:
		return "Warm"
	case CompetitionHot:
		return "Hot"
	default:
		return "Unknown"
	}
}

// CardType distinguishes the three draw piles.
type CardType string

const (
	CardAction CardType = "action"
	CardWarm   CardType = "warm"
	CardCool   CardType = "cool"
)

// DemandKind describes how the left food box on a card back resolves.
type DemandKind string

const (
	DemandMost     DemandKind = "most_demand"
	DemandAll      DemandKind = "all_demand"
	DemandSpecific DemandKind = "specific"
	DemandChoice   DemandKind = "choice"
)

// FoodItem is a food or drink kind tracked by the inventory ledger.
type FoodItem string

const (
	FoodBurger    FoodItem = "burger"
	FoodPizza     FoodItem = "pizza"
	FoodBeer      FoodItem = "beer"
	FoodLemonade  FoodItem = "lemonade"
	FoodSoftdrink FoodItem = "softdrink"
	FoodSushi     FoodItem = "sushi"
	FoodNoodle    FoodItem = "noodle"
	FoodCoffee    FoodItem = "coffee"
	FoodKimchi    FoodItem = "kimchi"
)

// AllFoodItems lists every food kind in canonical order. Serialization and
// field emission iterate this slice so output order is deterministic.
var AllFoodItems = []FoodItem{
	FoodBurger, FoodPizza, FoodBeer, FoodLemonade, FoodSoftdrink,
	FoodSushi, FoodNoodle, FoodCoffee, FoodKimchi,
}

// coreFoodItems are always available; the rest require their expansion module.
var coreFoodItems = map[FoodItem]bool{
	FoodBurger:    true,
	FoodPizza:     true,
	FoodBeer:      true,
	FoodLemonade:  true,
	FoodSoftdrink: true,
}

// IsCore reports whether the item is part of the base game.
func (f FoodItem) IsCore() bool { return coreFoodItems[f] }

// GameMode selects between the full phase machine and the reduced quick mode.
type GameMode string

const (
	ModeFull  GameMode = "full"
	ModeQuick GameMode = "quick"
)

// SlotActionType is the kind of instruction printed on a card-front action slot.
type SlotActionType string

const (
	SlotRecruitMarketeer SlotActionType = "recruit_marketeer"
	SlotRecruitEmployee  SlotActionType = "recruit_employee"
	SlotMoveDistance     SlotActionType = "move_distance"
	SlotMoveWaitress     SlotActionType = "move_waitress"
	SlotClaimMilestone   SlotActionType = "claim_milestone"
	SlotGetFood          SlotActionType = "get_food"
)

// ActionSlot is one of the four instruction slots on a card front.
// Slots are processed in fixed ascending index order. A starred slot, when
// executed, records a pending restaurant expansion for the expand_chain
// phase.
type ActionSlot struct {
	Slot           int            `json:"slot" yaml:"slot"`
	Type           SlotActionType `json:"type" yaml:"type"`
	Target         string         `json:"target" yaml:"target"`
	RequiresModule string         `json:"requires_module,omitempty" yaml:"module,omitempty"`
	FallbackFood   []FoodItem     `json:"fallback_food,omitempty" yaml:"fallback,omitempty"`
	Star           bool           `json:"star,omitempty" yaml:"star,omitempty"`
}

// CompetitionMarker is the face-up symbol on an action card front. The
// symbol-to-delta mapping is catalog data, not a derived formula; Event
// marks cards that additionally trigger a competition card draw.
type CompetitionMarker struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Delta  int    `json:"delta" yaml:"delta"`
	Event  bool   `json:"event,omitempty" yaml:"event,omitempty"`
}

// CardFront is the recruit & train side of an action card.
type CardFront struct {
	Actions    []ActionSlot      `json:"actions" yaml:"actions"`
	MarketItem FoodItem          `json:"market_item,omitempty" yaml:"market,omitempty"`
	Marker     CompetitionMarker `json:"marker" yaml:"marker"`
}

// FoodBox is the left (demand-based) food box on a card back.
type FoodBox struct {
	Demand     DemandKind `json:"demand" yaml:"demand"`
	Items      []FoodItem `json:"items,omitempty" yaml:"items,omitempty"`
	Multiplier int        `json:"multiplier" yaml:"multiply"`
}

// ModuleFoodBox is the right (module-gated) food box on a card back.
type ModuleFoodBox struct {
	Item       FoodItem `json:"item,omitempty" yaml:"item,omitempty"`
	Module     string   `json:"module,omitempty" yaml:"module,omitempty"`
	Fallback   FoodItem `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Multiplier int      `json:"multiplier" yaml:"multiply"`
}

// CleanupDeltas holds the five track adjustments printed on a card back,
// in fixed order: kimchi bonus, price/distance, waitresses, inventory
// drop flag, recruit & train.
type CleanupDeltas struct {
	Kimchi        int `json:"kimchi" yaml:"kimchi"`
	PriceDistance int `json:"price_distance" yaml:"price_distance"`
	Waitresses    int `json:"waitresses" yaml:"waitresses"`
	InventoryDrop int `json:"inventory_drop" yaml:"inventory_drop"`
	RecruitTrain  int `json:"recruit_train" yaml:"recruit_train"`
}

// DevelopInstruction is the house/garden placement on a card back.
type DevelopInstruction struct {
	Kind string `json:"kind" yaml:"kind"` // "house" or "garden"
	Size string `json:"size" yaml:"size"`
}

// LobbyInstruction is the road/park placement on a card back. Size is
// optional; absence means the fixed default size.
type LobbyInstruction struct {
	Kind string `json:"kind" yaml:"kind"` // "road" or "park"
	Size string `json:"size,omitempty" yaml:"size,omitempty"`
}

// CardBack is the get food & drinks / cleanup side of an action card.
type CardBack struct {
	Left    FoodBox             `json:"left" yaml:"left"`
	Right   ModuleFoodBox       `json:"right" yaml:"right"`
	Cleanup CleanupDeltas       `json:"cleanup" yaml:"cleanup"`
	Develop *DevelopInstruction `json:"develop,omitempty" yaml:"develop,omitempty"`
	Lobby   *LobbyInstruction   `json:"lobby,omitempty" yaml:"lobby,omitempty"`
}

// MapTiles are the four tile numbers printed on an action card, one per
// tile category.
type MapTiles struct {
	ExpandChain  int `json:"expand_chain" yaml:"expand_chain"`
	Market       int `json:"market" yaml:"market"`
	CoffeeShop   int `json:"coffee_shop" yaml:"coffee_shop"`
	DevelopLobby int `json:"develop_lobby" yaml:"develop_lobby"`
}

// CompetitionEffectType enumerates the headline effect of a competition card.
type CompetitionEffectType string

const (
	EffectExpandChain        CompetitionEffectType = "expand_chain"
	EffectCoffeeShopOrExpand CompetitionEffectType = "coffee_shop_or_expand"
	EffectBonusCash          CompetitionEffectType = "bonus_cash"
	EffectNoDriveIns         CompetitionEffectType = "no_driveins"
	EffectFireEmployees      CompetitionEffectType = "fire_employees"
	EffectPayPerEmployee     CompetitionEffectType = "pay_per_employee"
	EffectLossItems          CompetitionEffectType = "loss_items"
	EffectDrop               CompetitionEffectType = "drop"
)

// FoodAdjustment is one food gain on a competition card, optionally
// module-gated with a fallback.
type FoodAdjustment struct {
	Item       FoodItem   `json:"item,omitempty" yaml:"item,omitempty"`
	Demand     DemandKind `json:"demand,omitempty" yaml:"demand,omitempty"`
	Multiplier int        `json:"multiplier" yaml:"multiply"`
	Module     string     `json:"module,omitempty" yaml:"module,omitempty"`
	Fallback   FoodItem   `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// TrackAdjustment is one track delta on a competition card.
type TrackAdjustment struct {
	Track TrackID `json:"track" yaml:"track"`
	Delta int     `json:"delta" yaml:"delta"`
}

// CompetitionEffect is the full effect block of a warm or cool card.
type CompetitionEffect struct {
	Type           CompetitionEffectType `json:"type" yaml:"type"`
	Foods          []FoodAdjustment      `json:"foods,omitempty" yaml:"foods,omitempty"`
	Tracks         []TrackAdjustment     `json:"tracks,omitempty" yaml:"tracks,omitempty"`
	InventoryBoost bool                  `json:"inventory_boost,omitempty" yaml:"boost,omitempty"`
	InventoryDrop  bool                  `json:"inventory_drop,omitempty" yaml:"drop,omitempty"`
	LossItems      []FoodItem            `json:"loss_items,omitempty" yaml:"loss_items,omitempty"`
	MapTile        int                   `json:"map_tile" yaml:"map_tile"`
}

// Card is a single card. Cards are read-only after catalog load and are
// shared by reference between decks, state and snapshots.
type Card struct {
	ID     int                `json:"id"`
	Type   CardType           `json:"card_type"`
	Number int                `json:"card_number"`
	Front  *CardFront         `json:"front,omitempty"`
	Back   *CardBack          `json:"back,omitempty"`
	Tiles  MapTiles           `json:"map_tiles"`
	Effect *CompetitionEffect `json:"competition_effect,omitempty"`
}

// CardRef is the minimal serialized identity of a card, resolved against
// the catalog on restore.
type CardRef struct {
	Type   CardType `json:"card_type"`
	Number int      `json:"card_number"`
}

// Ref returns the card's serializable identity.
func (c *Card) Ref() CardRef { return CardRef{Type: c.Type, Number: c.Number} }
