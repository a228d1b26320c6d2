package engine

import "fmt"

// Resume step identifiers. A suspended phase stores which internal step it
// parked at so SubmitInput continues from there instead of restarting the
// handler.
const (
	stepGetFoodDemand   = "get_food_demand"
	stepGetFoodTiebreak = "get_food_tiebreak"
	stepExpandPlace     = "expand_place"
	stepDinnerSold      = "dinner_sold"
	stepDinnerEarnings  = "dinner_earnings"
)

// pendingInput is the stored partial progress of a suspended phase.
type pendingInput struct {
	Phase   Phase         `json:"phase"`
	Step    string        `json:"step"`
	Request *InputRequest `json:"request"`

	// Scratch carried between steps of one suspension chain.
	Demand     map[FoodItem]int `json:"demand,omitempty"`
	Tied       []FoodItem       `json:"tied,omitempty"`
	TargetTile int              `json:"target_tile,omitempty"`
	UnitsSold  int              `json:"units_sold,omitempty"`
	Revenue    int              `json:"revenue,omitempty"`
}

// BoardPlacement is one house/garden/road/park placed by the automa.
type BoardPlacement struct {
	Kind string `json:"kind"`
	Size string `json:"size"`
	Tile int    `json:"tile"`
}

// defaultLobbySize is used when a lobby instruction carries no size.
const defaultLobbySize = "small"

// TurnState is the mutable per-turn aggregate. The engine owns exactly
// one; snapshots copy it wholesale.
type TurnState struct {
	Turn  int   `json:"turn"`
	Phase Phase `json:"phase"`

	// Card in play this turn.
	CurrentCard *Card `json:"-"`

	// Competition card drawn by the latest event marker, kept visible
	// until the next restructuring.
	CompetitionCard *Card `json:"-"`

	// PendingExpansion is set when a starred slot executes and consumed
	// by the expand_chain phase.
	PendingExpansion bool `json:"pending_expansion"`

	Pending *pendingInput `json:"pending,omitempty"`

	Cash        int              `json:"cash"`
	BankBreaks  int              `json:"bank_breaks"`
	MovieStar   string           `json:"movie_star,omitempty"`
	CoffeeShops []int            `json:"coffee_shops,omitempty"`
	Placements  []BoardPlacement `json:"placements,omitempty"`

	GameOverReason string `json:"game_over_reason,omitempty"`

	ActionLog []string `json:"action_log"`
}

// newTurnState returns the state for a fresh game.
func newTurnState() *TurnState {
	return &TurnState{
		Turn:  1,
		Phase: PhaseRestructuring,
	}
}

// log appends one line to the action log.
func (t *TurnState) log(format string, args ...interface{}) {
	t.ActionLog = append(t.ActionLog, fmt.Sprintf(format, args...))
}

// Waiting reports whether the machine is suspended on player input.
func (t *TurnState) Waiting() bool { return t.Pending != nil }

// Over reports whether the game has ended.
func (t *TurnState) Over() bool { return t.Phase == PhaseGameOver }

// VisiblePhase returns the externally observable phase: the orthogonal
// waiting state masks the suspended phase.
func (t *TurnState) VisiblePhase() Phase {
	if t.Waiting() {
		return PhaseWaiting
	}
	return t.Phase
}
