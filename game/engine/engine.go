package engine

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Engine runs one automa game. It is not safe for concurrent use; callers
// serialize access (the session manager does this).
type Engine struct {
	cfg     GameConfig
	catalog *Catalog
	rng     *rand.Rand
	seed    int64

	Tracks      *Tracks
	Inventory   *Inventory
	Marketeers  *MarketeerPool
	Employees   *EmployeePool
	Restaurants *RestaurantSet
	Milestones  *MilestoneSet

	gate  *ModuleGate
	decks *DeckManager

	state   *TurnState
	journal *journal
}

// AdvanceResult describes what one advance or input submission did.
type AdvanceResult struct {
	Phase           Phase         `json:"phase"`
	Turn            int           `json:"turn"`
	CurrentCard     *Card         `json:"current_card,omitempty"`
	CompetitionCard *Card         `json:"competition_card,omitempty"`
	InputRequest    *InputRequest `json:"input_request,omitempty"`
	Events          []string      `json:"events,omitempty"`
	GameOver        bool          `json:"game_over"`
	GameOverReason  string        `json:"game_over_reason,omitempty"`
}

// NewEngine builds an engine from a validated config and the shared card
// catalog. The first restaurant is placed from the top action card's
// expansion tile before the first turn begins.
func NewEngine(cfg GameConfig, catalog *Catalog) (*Engine, error) {
	if err := ValidateGameConfig(cfg); err != nil {
		return nil, err
	}
	gate, err := NewModuleGate(cfg.Modules)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		var buf [8]byte
		if _, err := cryptorand.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("seeding rng: %w", err)
		}
		seed = int64(binary.LittleEndian.Uint64(buf[:]))
	}
	rng := rand.New(rand.NewSource(seed))

	restaurants := NewRestaurantSet(cfg.ExtendedRestaurants)

	tracks := NewTracks()
	if cfg.AggressiveSetup {
		tracks.Competition = CompetitionWarm
	}

	e := &Engine{
		cfg:         cfg,
		catalog:     catalog,
		rng:         rng,
		seed:        seed,
		Tracks:      tracks,
		Inventory:   NewInventory(),
		Marketeers:  NewMarketeerPool(),
		Employees:   NewEmployeePool(),
		Restaurants: restaurants,
		Milestones:  NewMilestoneSet(),
		gate:        gate,
		decks:       NewDeckManager(catalog, rng),
		state:       newTurnState(),
		journal:     newJournal(cfg.JournalDepth),
	}

	if top, ok := e.decks.Action.Peek(); ok {
		e.Restaurants.Place(top.Tiles.ExpandChain, false)
		e.state.log("opening restaurant placed on tile %d", top.Tiles.ExpandChain)
	}
	return e, nil
}

// Seed returns the seed the engine's rng was built from.
func (e *Engine) Seed() int64 { return e.seed }

// Config returns the session setup.
func (e *Engine) Config() GameConfig { return e.cfg }

// State returns the current turn state. Callers must not mutate it.
func (e *Engine) State() *TurnState { return e.state }

// Gate returns the module gate.
func (e *Engine) Gate() *ModuleGate { return e.gate }

// Decks returns the deck manager.
func (e *Engine) Decks() *DeckManager { return e.decks }

// JournalSize returns how many undo entries are held.
func (e *Engine) JournalSize() int { return e.journal.size() }

// result builds an AdvanceResult from the current state, appending the
// log lines produced since mark.
func (e *Engine) result(mark int) *AdvanceResult {
	r := &AdvanceResult{
		Phase:           e.state.VisiblePhase(),
		Turn:            e.state.Turn,
		CurrentCard:     e.state.CurrentCard,
		CompetitionCard: e.state.CompetitionCard,
		GameOver:        e.state.Over(),
		GameOverReason:  e.state.GameOverReason,
	}
	if e.state.Pending != nil {
		r.InputRequest = e.state.Pending.Request
	}
	if mark < len(e.state.ActionLog) {
		r.Events = append([]string(nil), e.state.ActionLog[mark:]...)
	}
	return r
}

// Advance runs the current phase handler and moves to the next phase, or
// parks the machine waiting for input. A journal entry is committed
// before any mutation.
func (e *Engine) Advance() (*AdvanceResult, error) {
	if e.cfg.Mode == ModeQuick {
		return nil, fmt.Errorf("%w: advance is unavailable in quick mode", ErrIllegalState)
	}
	if e.state.Over() {
		return nil, ErrGameOver
	}
	if e.state.Waiting() {
		return nil, ErrAwaitingInput
	}

	if err := e.journal.push(e.Snapshot()); err != nil {
		return nil, err
	}
	mark := len(e.state.ActionLog)
	if err := e.runPhase(); err != nil {
		return nil, err
	}
	return e.result(mark), nil
}

// SubmitInput resumes a suspended phase with player-supplied data and then
// proceeds exactly as Advance would.
func (e *Engine) SubmitInput(in *PlayerInput) (*AdvanceResult, error) {
	if e.state.Over() {
		return nil, ErrGameOver
	}
	if !e.state.Waiting() {
		return nil, ErrNoInputPending
	}
	if err := validateInput(e.state.Pending.Request, in); err != nil {
		return nil, err
	}

	if err := e.journal.push(e.Snapshot()); err != nil {
		return nil, err
	}
	mark := len(e.state.ActionLog)
	if err := e.resumePhase(in); err != nil {
		return nil, err
	}
	return e.result(mark), nil
}

// Undo rolls back to the snapshot taken before the last commit point.
func (e *Engine) Undo() error {
	s, err := e.journal.pop()
	if err != nil {
		return err
	}
	return e.RestoreSnapshot(s)
}

// QuickDraw draws the next action card without resolving any of its
// instructions. Quick mode only; the draw pile recycles from the discard
// instead of ending the game.
func (e *Engine) QuickDraw() (*Card, error) {
	if e.cfg.Mode != ModeQuick {
		return nil, fmt.Errorf("%w: quick draw requires quick mode", ErrIllegalState)
	}
	if err := e.journal.push(e.Snapshot()); err != nil {
		return nil, err
	}
	if e.decks.Action.Remaining() == 0 {
		e.decks.Action.Recycle(e.rng)
	}
	c, ok := e.decks.Action.DrawCard(e.rng)
	if !ok {
		return nil, fmt.Errorf("%w: action deck is empty", ErrIllegalState)
	}
	e.decks.Action.DiscardCard(c)
	e.state.CurrentCard = c
	e.state.log("quick draw: action card #%d", c.Number)
	return c, nil
}

// QuickSetTrack writes a track position directly, still range-checked.
// Available in both modes as a board correction.
func (e *Engine) QuickSetTrack(id TrackID, pos int) error {
	if err := e.journal.push(e.Snapshot()); err != nil {
		return err
	}
	if err := e.Tracks.Set(id, pos); err != nil {
		// Drop the journal entry for a rejected write.
		_, _ = e.journal.pop()
		return err
	}
	e.state.log("track %s set to %d", id, pos)
	return nil
}

// RecordBankBreak notes that the bank broke. The second break ends the
// game at once.
func (e *Engine) RecordBankBreak() (*AdvanceResult, error) {
	if e.state.Over() {
		return nil, ErrGameOver
	}
	if err := e.journal.push(e.Snapshot()); err != nil {
		return nil, err
	}
	mark := len(e.state.ActionLog)
	e.state.BankBreaks++
	e.state.log("bank break %d recorded", e.state.BankBreaks)
	if e.state.BankBreaks >= 2 {
		e.gameOver("second bank break")
	}
	return e.result(mark), nil
}

func (e *Engine) gameOver(reason string) {
	e.state.Phase = PhaseGameOver
	e.state.GameOverReason = reason
	e.state.Pending = nil
	e.state.log("game over: %s", reason)
}
