// Command analyze prints quick, human-readable statistics about the embedded
// card catalog. It summarizes deck sizes, the competition marker distribution
// on action card fronts, starred expansion slots, slot action types, market
// items, and the effect spread of the warm and cool competition decks. It is
// a development aid for sanity-checking catalog edits.
package main

import (
	"fmt"
	"sort"

	"github.com/tablemind/chain-automa/game/engine"
)

func main() {
	catalog, err := engine.LoadCatalog()
	if err != nil {
		fmt.Printf("Error loading catalog: %v\n", err)
		return
	}

	fmt.Println("=== Deck sizes ===")
	fmt.Printf("Action: %d\n", len(catalog.ActionCards()))
	fmt.Printf("Warm:   %d\n", len(catalog.WarmCards()))
	fmt.Printf("Cool:   %d\n", len(catalog.CoolCards()))

	analyzeFronts(catalog.ActionCards())
	analyzeBacks(catalog.ActionCards())
	analyzeCompetition("Warm", catalog.WarmCards())
	analyzeCompetition("Cool", catalog.CoolCards())
}

// analyzeFronts summarizes the recruit & train side of the action deck.
func analyzeFronts(cards []*engine.Card) {
	markers := map[string]int{}
	events := 0
	stars := 0
	slotTypes := map[engine.SlotActionType]int{}
	marketItems := map[engine.FoodItem]int{}

	for _, card := range cards {
		if card.Front == nil {
			continue
		}
		markers[card.Front.Marker.Symbol]++
		if card.Front.Marker.Event {
			events++
		}
		if card.Front.MarketItem != "" {
			marketItems[card.Front.MarketItem]++
		}
		for _, slot := range card.Front.Actions {
			slotTypes[slot.Type]++
			if slot.Star {
				stars++
			}
		}
	}

	fmt.Println("\n=== Action card fronts ===")
	fmt.Println("Competition markers:")
	for _, symbol := range sortedKeys(markers) {
		fmt.Printf("  %-8s %d\n", symbol, markers[symbol])
	}
	fmt.Printf("Event markers: %d\n", events)
	fmt.Printf("Starred slots: %d\n", stars)

	fmt.Println("Slot action types:")
	slotNames := make([]string, 0, len(slotTypes))
	for t := range slotTypes {
		slotNames = append(slotNames, string(t))
	}
	sort.Strings(slotNames)
	for _, name := range slotNames {
		fmt.Printf("  %-20s %d\n", name, slotTypes[engine.SlotActionType(name)])
	}

	fmt.Println("Market items:")
	for _, item := range engine.AllFoodItems {
		if n := marketItems[item]; n > 0 {
			fmt.Printf("  %-8s %d\n", item, n)
		}
	}
}

// analyzeBacks summarizes the cleanup side of the action deck, flagging
// cards whose cleanup deltas are all zero since those are almost always a
// catalog mistake.
func analyzeBacks(cards []*engine.Card) {
	develop := map[string]int{}
	lobby := map[string]int{}
	drops := 0
	var flatCards []int

	for _, card := range cards {
		if card.Back == nil {
			continue
		}
		if card.Back.Develop != nil {
			develop[card.Back.Develop.Kind]++
		}
		if card.Back.Lobby != nil {
			lobby[card.Back.Lobby.Kind]++
		}
		c := card.Back.Cleanup
		if c.InventoryDrop != 0 {
			drops++
		}
		if c.Kimchi == 0 && c.PriceDistance == 0 && c.Waitresses == 0 && c.InventoryDrop == 0 && c.RecruitTrain == 0 {
			flatCards = append(flatCards, card.Number)
		}
	}

	fmt.Println("\n=== Action card backs ===")
	fmt.Println("Develop placements:")
	for _, kind := range sortedKeys(develop) {
		fmt.Printf("  %-8s %d\n", kind, develop[kind])
	}
	fmt.Println("Lobby placements:")
	for _, kind := range sortedKeys(lobby) {
		fmt.Printf("  %-8s %d\n", kind, lobby[kind])
	}
	fmt.Printf("Inventory drop cleanups: %d\n", drops)

	if len(flatCards) > 0 {
		fmt.Printf("⚠️  WARNING: %d cards have all-zero cleanup deltas: %v\n", len(flatCards), flatCards)
	} else {
		fmt.Println("✅ Every card back carries at least one cleanup delta")
	}
}

// analyzeCompetition summarizes the effect spread of one competition deck.
func analyzeCompetition(label string, cards []*engine.Card) {
	effects := map[engine.CompetitionEffectType]int{}
	missing := 0

	for _, card := range cards {
		if card.Effect == nil {
			missing++
			continue
		}
		effects[card.Effect.Type]++
	}

	fmt.Printf("\n=== %s competition deck ===\n", label)
	names := make([]string, 0, len(effects))
	for t := range effects {
		names = append(names, string(t))
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-22s %d\n", name, effects[engine.CompetitionEffectType(name)])
	}

	if missing > 0 {
		fmt.Printf("⚠️  CRITICAL: %d %s cards have no effect block!\n", missing, label)
	} else {
		fmt.Printf("✅ All %s cards carry an effect block\n", label)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
