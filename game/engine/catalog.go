package engine

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed cards.yaml
var cardsYAML []byte

// Expected deck sizes. The catalog validator enforces these so a bad edit
// to the card data fails fast at startup.
const (
	actionDeckSize      = 20
	competitionDeckSize = 12
	slotsPerCard        = 4
)

// cardSpec is the YAML shape of one card in cards.yaml.
type cardSpec struct {
	Number int                `yaml:"number"`
	Front  *CardFront         `yaml:"front,omitempty"`
	Back   *CardBack          `yaml:"back,omitempty"`
	Tiles  MapTiles           `yaml:"tiles"`
	Effect *CompetitionEffect `yaml:"effect,omitempty"`
}

type catalogFile struct {
	ActionCards []cardSpec `yaml:"action_cards"`
	WarmCards   []cardSpec `yaml:"warm_cards"`
	CoolCards   []cardSpec `yaml:"cool_cards"`
}

// Catalog is the immutable set of all cards, indexed by (type, number).
type Catalog struct {
	cards map[CardRef]*Card

	action []*Card
	warm   []*Card
	cool   []*Card
}

// LoadCatalog parses and validates the embedded card data.
func LoadCatalog() (*Catalog, error) {
	return parseCatalog(cardsYAML)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing card data: %w", err)
	}

	cat := &Catalog{cards: make(map[CardRef]*Card)}
	id := 0
	add := func(spec cardSpec, t CardType) error {
		id++
		c := &Card{
			ID:     id,
			Type:   t,
			Number: spec.Number,
			Front:  spec.Front,
			Back:   spec.Back,
			Tiles:  spec.Tiles,
			Effect: spec.Effect,
		}
		ref := c.Ref()
		if _, dup := cat.cards[ref]; dup {
			return fmt.Errorf("duplicate card %s #%d", t, spec.Number)
		}
		cat.cards[ref] = c
		switch t {
		case CardAction:
			cat.action = append(cat.action, c)
		case CardWarm:
			cat.warm = append(cat.warm, c)
		case CardCool:
			cat.cool = append(cat.cool, c)
		}
		return nil
	}
	for _, spec := range file.ActionCards {
		if err := add(spec, CardAction); err != nil {
			return nil, err
		}
	}
	for _, spec := range file.WarmCards {
		if err := add(spec, CardWarm); err != nil {
			return nil, err
		}
	}
	for _, spec := range file.CoolCards {
		if err := add(spec, CardCool); err != nil {
			return nil, err
		}
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// Lookup resolves a serialized card reference.
func (c *Catalog) Lookup(ref CardRef) (*Card, error) {
	card, ok := c.cards[ref]
	if !ok {
		return nil, fmt.Errorf("%w: unknown card %s #%d", ErrValidation, ref.Type, ref.Number)
	}
	return card, nil
}

// ActionCards returns the action cards in catalog order.
func (c *Catalog) ActionCards() []*Card { return c.action }

// WarmCards returns the warm competition cards in catalog order.
func (c *Catalog) WarmCards() []*Card { return c.warm }

// CoolCards returns the cool competition cards in catalog order.
func (c *Catalog) CoolCards() []*Card { return c.cool }

// Validate checks deck sizes and per-card structural invariants.
func (c *Catalog) Validate() error {
	if len(c.action) != actionDeckSize {
		return fmt.Errorf("expected %d action cards, got %d", actionDeckSize, len(c.action))
	}
	if len(c.warm) != competitionDeckSize {
		return fmt.Errorf("expected %d warm cards, got %d", competitionDeckSize, len(c.warm))
	}
	if len(c.cool) != competitionDeckSize {
		return fmt.Errorf("expected %d cool cards, got %d", competitionDeckSize, len(c.cool))
	}
	for _, card := range c.action {
		if card.Front == nil || card.Back == nil {
			return fmt.Errorf("action card #%d missing a face", card.Number)
		}
		if len(card.Front.Actions) != slotsPerCard {
			return fmt.Errorf("action card #%d has %d slots, want %d", card.Number, len(card.Front.Actions), slotsPerCard)
		}
		for i, slot := range card.Front.Actions {
			if slot.Slot != i+1 {
				return fmt.Errorf("action card #%d slot %d numbered %d", card.Number, i+1, slot.Slot)
			}
		}
		if card.Front.Marker.Delta < -1 || card.Front.Marker.Delta > 1 {
			return fmt.Errorf("action card #%d marker delta %d out of range", card.Number, card.Front.Marker.Delta)
		}
		if card.Back.Left.Multiplier < 1 {
			return fmt.Errorf("action card #%d left food box multiplier %d", card.Number, card.Back.Left.Multiplier)
		}
	}
	for _, card := range append(append([]*Card{}, c.warm...), c.cool...) {
		if card.Effect == nil {
			return fmt.Errorf("%s card #%d has no effect", card.Type, card.Number)
		}
		if card.Effect.Type == "" {
			return fmt.Errorf("%s card #%d effect has no type", card.Type, card.Number)
		}
	}
	return nil
}
