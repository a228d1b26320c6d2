package engine

import "fmt"

// inventorySlotCap is the per-slot stock limit for most items. Coffee is
// exempt: coffee shops brew on demand, so the top slot holds any amount.
const inventorySlotCap = 5

// ItemStock is the two-slot ledger for one food kind. Newly produced units
// land in Top; at cleanup units age one generation, so anything still in
// Bottom when aging runs is discarded.
type ItemStock struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// Total returns the sellable stock across both slots.
func (s ItemStock) Total() int { return s.Top + s.Bottom }

// Inventory tracks per-item fresh and aging stock.
type Inventory struct {
	Items map[FoodItem]*ItemStock `json:"items"`
}

// NewInventory returns an empty inventory with ledger rows for every item.
func NewInventory() *Inventory {
	inv := &Inventory{Items: make(map[FoodItem]*ItemStock, len(AllFoodItems))}
	for _, item := range AllFoodItems {
		inv.Items[item] = &ItemStock{}
	}
	return inv
}

func (inv *Inventory) stock(item FoodItem) *ItemStock {
	s, ok := inv.Items[item]
	if !ok {
		s = &ItemStock{}
		inv.Items[item] = s
	}
	return s
}

// Add places n freshly produced units of item into the top slot, clamping
// at the slot cap. Coffee has no cap. It returns how many units actually
// entered the slot.
func (inv *Inventory) Add(item FoodItem, n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: cannot add %d units of %s", ErrValidation, n, item)
	}
	s := inv.stock(item)
	if item == FoodCoffee {
		s.Top += n
		return n, nil
	}
	room := inventorySlotCap - s.Top
	if room < 0 {
		room = 0
	}
	added := n
	if added > room {
		added = room
	}
	s.Top += added
	return added, nil
}

// Consume removes n units of item, oldest stock first. It returns how many
// units were actually removed.
func (inv *Inventory) Consume(item FoodItem, n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: cannot consume %d units of %s", ErrValidation, n, item)
	}
	s := inv.stock(item)
	taken := 0
	if s.Bottom > 0 {
		take := n
		if take > s.Bottom {
			take = s.Bottom
		}
		s.Bottom -= take
		taken += take
	}
	if taken < n && s.Top > 0 {
		take := n - taken
		if take > s.Top {
			take = s.Top
		}
		s.Top -= take
		taken += take
	}
	return taken, nil
}

// Age advances every item one generation: bottom stock expires, top stock
// moves to bottom, top empties. It returns the discarded units per item.
func (inv *Inventory) Age() map[FoodItem]int {
	expired := make(map[FoodItem]int)
	for item, s := range inv.Items {
		if s.Bottom > 0 {
			expired[item] = s.Bottom
		}
		s.Bottom = s.Top
		s.Top = 0
	}
	return expired
}

// Drop empties every top slot, discarding the fresh stock. Competition
// cards with a drop effect call this.
func (inv *Inventory) Drop() map[FoodItem]int {
	dropped := make(map[FoodItem]int)
	for item, s := range inv.Items {
		if s.Top > 0 {
			dropped[item] = s.Top
			s.Top = 0
		}
	}
	return dropped
}

// Boost refills the top slot to the cap for every item that already has
// stock anywhere in its ledger. Coffee is boosted by the cap amount since
// it has no ceiling.
func (inv *Inventory) Boost() map[FoodItem]int {
	gained := make(map[FoodItem]int)
	for item, s := range inv.Items {
		if s.Total() == 0 {
			continue
		}
		if item == FoodCoffee {
			s.Top += inventorySlotCap
			gained[item] = inventorySlotCap
			continue
		}
		if s.Top < inventorySlotCap {
			gained[item] = inventorySlotCap - s.Top
			s.Top = inventorySlotCap
		}
	}
	return gained
}

// ClearItem removes all stock of the named item from both slots.
func (inv *Inventory) ClearItem(item FoodItem) int {
	s := inv.stock(item)
	removed := s.Total()
	s.Top, s.Bottom = 0, 0
	return removed
}

// Count returns the sellable stock of item.
func (inv *Inventory) Count(item FoodItem) int {
	return inv.stock(item).Total()
}

// TotalUnits returns the sellable stock across all items.
func (inv *Inventory) TotalUnits() int {
	total := 0
	for _, s := range inv.Items {
		total += s.Total()
	}
	return total
}

// Clone returns a deep copy of the inventory.
func (inv *Inventory) Clone() *Inventory {
	out := &Inventory{Items: make(map[FoodItem]*ItemStock, len(inv.Items))}
	for item, s := range inv.Items {
		cp := *s
		out.Items[item] = &cp
	}
	return out
}
