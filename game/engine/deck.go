package engine

import (
	"fmt"
	"math/rand"
)

// Deck is one draw pile with its discard. Cards move draw -> discard; an
// empty draw pile refills from the discard with a shuffle.
type Deck struct {
	Draw    []*Card `json:"-"`
	Discard []*Card `json:"-"`
}

// NewDeck builds a deck over the given cards and shuffles it.
func NewDeck(cards []*Card, rng *rand.Rand) *Deck {
	d := &Deck{Draw: make([]*Card, len(cards))}
	copy(d.Draw, cards)
	d.shuffle(rng, 0)
	return d
}

// shuffle randomizes the draw pile from index keep onward; cards above the
// boundary stay where they are.
func (d *Deck) shuffle(rng *rand.Rand, keep int) {
	if keep < 0 || keep >= len(d.Draw) {
		if keep > 0 {
			return
		}
		keep = 0
	}
	tail := d.Draw[keep:]
	rng.Shuffle(len(tail), func(i, j int) {
		tail[i], tail[j] = tail[j], tail[i]
	})
}

// shuffleKeepTop is the boundary used when the discard is folded back into
// the draw pile mid-game: the already-visible top cards stay in place.
const shuffleKeepTop = 3

// DrawCard removes and returns the top card, refilling from the discard
// when the draw pile is empty. ok is false only when both piles are empty.
func (d *Deck) DrawCard(rng *rand.Rand) (*Card, bool) {
	if len(d.Draw) == 0 {
		if len(d.Discard) == 0 {
			return nil, false
		}
		d.Draw = d.Discard
		d.Discard = nil
		d.shuffle(rng, 0)
	}
	c := d.Draw[0]
	d.Draw = d.Draw[1:]
	return c, true
}

// Peek returns the top card without removing it.
func (d *Deck) Peek() (*Card, bool) {
	if len(d.Draw) == 0 {
		return nil, false
	}
	return d.Draw[0], true
}

// DiscardCard places a drawn card on the discard pile.
func (d *Deck) DiscardCard(c *Card) {
	d.Discard = append(d.Discard, c)
}

// Recycle folds the discard back under the visible top of the draw pile
// and shuffles everything below the keep boundary.
func (d *Deck) Recycle(rng *rand.Rand) {
	if len(d.Discard) == 0 {
		return
	}
	d.Draw = append(d.Draw, d.Discard...)
	d.Discard = nil
	d.shuffle(rng, shuffleKeepTop)
}

// Exhausted reports whether both piles are empty.
func (d *Deck) Exhausted() bool {
	return len(d.Draw) == 0 && len(d.Discard) == 0
}

// Remaining returns the draw pile size.
func (d *Deck) Remaining() int { return len(d.Draw) }

// Refs returns the serializable order of both piles.
func (d *Deck) Refs() (draw, discard []CardRef) {
	draw = make([]CardRef, len(d.Draw))
	for i, c := range d.Draw {
		draw[i] = c.Ref()
	}
	discard = make([]CardRef, len(d.Discard))
	for i, c := range d.Discard {
		discard[i] = c.Ref()
	}
	return draw, discard
}

// DeckManager owns the three draw piles and resolves which competition
// deck is live at the current competition level.
type DeckManager struct {
	Action *Deck
	Warm   *Deck
	Cool   *Deck
}

// NewDeckManager builds and shuffles the three decks from the catalog.
func NewDeckManager(cat *Catalog, rng *rand.Rand) *DeckManager {
	return &DeckManager{
		Action: NewDeck(cat.ActionCards(), rng),
		Warm:   NewDeck(cat.WarmCards(), rng),
		Cool:   NewDeck(cat.CoolCards(), rng),
	}
}

// ActiveCompetitionDeck returns the competition deck matching the level.
// Neutral reads the cool deck.
func (m *DeckManager) ActiveCompetitionDeck(level CompetitionLevel) *Deck {
	if level >= CompetitionWarm {
		return m.Warm
	}
	return m.Cool
}

// DrawAction draws the next action card. An exhausted action deck means
// the game ends at the next cleanup, so ok is surfaced to the caller
// rather than treated as an error.
func (m *DeckManager) DrawAction(rng *rand.Rand) (*Card, bool) {
	return m.Action.DrawCard(rng)
}

// DrawCompetition draws from the deck live at the given level. The
// competition decks always recycle, so this cannot run dry.
func (m *DeckManager) DrawCompetition(level CompetitionLevel, rng *rand.Rand) (*Card, error) {
	d := m.ActiveCompetitionDeck(level)
	c, ok := d.DrawCard(rng)
	if !ok {
		return nil, fmt.Errorf("%w: competition deck empty", ErrIllegalState)
	}
	return c, nil
}

// deckFor maps a card type to its deck.
func (m *DeckManager) deckFor(t CardType) (*Deck, error) {
	switch t {
	case CardAction:
		return m.Action, nil
	case CardWarm:
		return m.Warm, nil
	case CardCool:
		return m.Cool, nil
	default:
		return nil, fmt.Errorf("%w: unknown card type %q", ErrValidation, t)
	}
}

// restoreDeck rebuilds a deck's piles from serialized refs against the
// catalog.
func restoreDeck(cat *Catalog, draw, discard []CardRef) (*Deck, error) {
	d := &Deck{}
	for _, ref := range draw {
		c, err := cat.Lookup(ref)
		if err != nil {
			return nil, err
		}
		d.Draw = append(d.Draw, c)
	}
	for _, ref := range discard {
		c, err := cat.Lookup(ref)
		if err != nil {
			return nil, err
		}
		d.Discard = append(d.Discard, c)
	}
	return d, nil
}
