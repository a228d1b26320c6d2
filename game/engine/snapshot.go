package engine

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the complete serialized game state. Card identities are
// stored as refs and resolved against the catalog on restore, so a
// snapshot stays valid across processes.
type Snapshot struct {
	Config GameConfig `json:"config"`
	Seed   int64      `json:"seed"`

	Turn             int           `json:"turn"`
	Phase            Phase         `json:"phase"`
	CurrentCard      *CardRef      `json:"current_card,omitempty"`
	CompetitionCard  *CardRef      `json:"competition_card,omitempty"`
	PendingExpansion bool          `json:"pending_expansion"`
	Pending          *pendingInput `json:"pending,omitempty"`

	Tracks      Tracks           `json:"tracks"`
	Inventory   *Inventory       `json:"inventory"`
	Marketeers  *MarketeerPool   `json:"marketeers"`
	Employees   *EmployeePool    `json:"employees"`
	Restaurants *RestaurantSet   `json:"restaurants"`
	Milestones  *MilestoneSet    `json:"milestones"`
	Cash        int              `json:"cash"`
	BankBreaks  int              `json:"bank_breaks"`
	MovieStar   string           `json:"movie_star,omitempty"`
	CoffeeShops []int            `json:"coffee_shops,omitempty"`
	Placements  []BoardPlacement `json:"placements,omitempty"`

	ActionDraw    []CardRef `json:"action_draw"`
	ActionDiscard []CardRef `json:"action_discard"`
	WarmDraw      []CardRef `json:"warm_draw"`
	WarmDiscard   []CardRef `json:"warm_discard"`
	CoolDraw      []CardRef `json:"cool_draw"`
	CoolDiscard   []CardRef `json:"cool_discard"`

	GameOverReason string   `json:"game_over_reason,omitempty"`
	ActionLog      []string `json:"action_log"`
}

// Snapshot captures the full current state.
func (e *Engine) Snapshot() *Snapshot {
	s := &Snapshot{
		Config:           e.cfg,
		Seed:             e.seed,
		Turn:             e.state.Turn,
		Phase:            e.state.Phase,
		PendingExpansion: e.state.PendingExpansion,
		Tracks:           *e.Tracks,
		Inventory:        e.Inventory.Clone(),
		Marketeers:       e.Marketeers.Clone(),
		Employees:        e.Employees.Clone(),
		Restaurants:      e.Restaurants.Clone(),
		Milestones:       e.Milestones.Clone(),
		Cash:             e.state.Cash,
		BankBreaks:       e.state.BankBreaks,
		MovieStar:        e.state.MovieStar,
		CoffeeShops:      append([]int(nil), e.state.CoffeeShops...),
		Placements:       append([]BoardPlacement(nil), e.state.Placements...),
		GameOverReason:   e.state.GameOverReason,
		ActionLog:        append([]string(nil), e.state.ActionLog...),
	}
	if e.state.CurrentCard != nil {
		ref := e.state.CurrentCard.Ref()
		s.CurrentCard = &ref
	}
	if e.state.CompetitionCard != nil {
		ref := e.state.CompetitionCard.Ref()
		s.CompetitionCard = &ref
	}
	if e.state.Pending != nil {
		p := *e.state.Pending
		s.Pending = &p
	}
	s.ActionDraw, s.ActionDiscard = e.decks.Action.Refs()
	s.WarmDraw, s.WarmDiscard = e.decks.Warm.Refs()
	s.CoolDraw, s.CoolDiscard = e.decks.Cool.Refs()
	return s
}

// RestoreSnapshot replaces the engine's entire state with the snapshot's.
func (e *Engine) RestoreSnapshot(s *Snapshot) error {
	action, err := restoreDeck(e.catalog, s.ActionDraw, s.ActionDiscard)
	if err != nil {
		return fmt.Errorf("restoring action deck: %w", err)
	}
	warm, err := restoreDeck(e.catalog, s.WarmDraw, s.WarmDiscard)
	if err != nil {
		return fmt.Errorf("restoring warm deck: %w", err)
	}
	cool, err := restoreDeck(e.catalog, s.CoolDraw, s.CoolDiscard)
	if err != nil {
		return fmt.Errorf("restoring cool deck: %w", err)
	}

	var current, competition *Card
	if s.CurrentCard != nil {
		if current, err = e.catalog.Lookup(*s.CurrentCard); err != nil {
			return err
		}
	}
	if s.CompetitionCard != nil {
		if competition, err = e.catalog.Lookup(*s.CompetitionCard); err != nil {
			return err
		}
	}

	e.cfg = s.Config
	e.seed = s.Seed
	e.decks = &DeckManager{Action: action, Warm: warm, Cool: cool}
	tracks := s.Tracks
	e.Tracks = &tracks
	e.Inventory = s.Inventory.Clone()
	e.Marketeers = s.Marketeers.Clone()
	if s.Employees != nil {
		e.Employees = s.Employees.Clone()
	} else {
		e.Employees = NewEmployeePool()
	}
	e.Restaurants = s.Restaurants.Clone()
	e.Milestones = s.Milestones.Clone()
	e.state = &TurnState{
		Turn:             s.Turn,
		Phase:            s.Phase,
		CurrentCard:      current,
		CompetitionCard:  competition,
		PendingExpansion: s.PendingExpansion,
		Cash:             s.Cash,
		BankBreaks:       s.BankBreaks,
		MovieStar:        s.MovieStar,
		CoffeeShops:      append([]int(nil), s.CoffeeShops...),
		Placements:       append([]BoardPlacement(nil), s.Placements...),
		GameOverReason:   s.GameOverReason,
		ActionLog:        append([]string(nil), s.ActionLog...),
	}
	if s.Pending != nil {
		p := *s.Pending
		e.state.Pending = &p
	}
	return nil
}

// MarshalSnapshot serializes a snapshot to JSON.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot parses a serialized snapshot.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &s, nil
}

// journal is the bounded undo stack of serialized snapshots.
type journal struct {
	depth   int
	entries [][]byte
}

func newJournal(depth int) *journal {
	if depth <= 0 {
		depth = DefaultJournalDepth
	}
	return &journal{depth: depth}
}

// push records a snapshot, evicting the oldest entry at capacity.
func (j *journal) push(s *Snapshot) error {
	data, err := MarshalSnapshot(s)
	if err != nil {
		return err
	}
	j.entries = append(j.entries, data)
	if len(j.entries) > j.depth {
		j.entries = j.entries[1:]
	}
	return nil
}

// pop removes and returns the most recent snapshot.
func (j *journal) pop() (*Snapshot, error) {
	if len(j.entries) == 0 {
		return nil, ErrNoHistory
	}
	data := j.entries[len(j.entries)-1]
	j.entries = j.entries[:len(j.entries)-1]
	return UnmarshalSnapshot(data)
}

func (j *journal) size() int { return len(j.entries) }
