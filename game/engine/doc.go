// Package engine provides the core automa logic for the solo mode.
//
// The engine package implements the automa mechanics including:
//   - The nine-phase turn state machine with suspension and resume
//   - The three card decks (action, warm and cool competition)
//   - Board tracks (competition, recruit & train, price/distance, waitresses)
//   - The two-slot aging inventory ledger
//   - Marketeer campaigns, restaurants and milestones
//   - Snapshots and the bounded undo journal
//
// Core Types:
//
// Engine owns one running game and exposes Advance, SubmitInput and Undo.
// TurnState is the aggregate the phase handlers mutate. Catalog holds the
// immutable card data embedded in the binary. GameConfig selects seed,
// mode and expansion modules.
//
// Usage:
//
//	catalog, err := engine.LoadCatalog()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng, err := engine.NewEngine(engine.DefaultConfig(), catalog)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := eng.Advance()
//	if res.InputRequest != nil {
//		// collect player data, then eng.SubmitInput(...)
//	}
//
// Turn Flow:
//
// Each turn the automa draws an action card, adjusts the competition level
// from the card's marker, works the card's recruit & train slots, produces
// food, runs marketing, develops the board, expands its chain and sells at
// dinnertime. Phases that need information only the human player can see
// (demand on the board, placement results, the player's earnings) suspend
// the machine with a typed input request and resume exactly where they
// stopped once the answer arrives.
package engine
