package main

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// foodKinds covers every food the engine accepts, module items included.
// Reporting demand for a disabled module's food is harmless since the
// engine ignores kinds outside the session's enabled set.
var foodKinds = []string{
	"burger", "pizza", "beer", "lemonade", "softdrink",
	"sushi", "noodle", "coffee", "kimchi",
}

// TableStrategy plays the human side of the table. The automa engine asks
// about the physical board state it cannot see; the strategy answers with a
// plausible simulated board so a full game can run unattended.
type TableStrategy struct {
	rng    *rand.Rand
	demand map[string]int
}

func NewTableStrategy(seed int64) *TableStrategy {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &TableStrategy{
		rng:    rand.New(rand.NewSource(seed)),
		demand: make(map[string]int),
	}
	for _, kind := range foodKinds {
		s.demand[kind] = s.rng.Intn(4)
	}
	return s
}

// Answer builds a submission for the state's pending input request.
func (s *TableStrategy) Answer(state *GameState) *PlayerInput {
	req := state.InputRequest

	switch req.Kind {
	case "demand_info":
		return s.answerDemand()
	case "demand_tiebreak":
		return s.answerTiebreak(req)
	case "place_restaurant":
		return s.answerPlacement(req)
	case "sold_items":
		return s.answerSold(state)
	case "earnings":
		return s.answerEarnings(state)
	default:
		// Unknown kind: submit an empty value set and let the server
		// reject it with a useful validation message.
		return &PlayerInput{Kind: req.Kind, Values: map[string]interface{}{}}
	}
}

// answerDemand drifts each food's demand a little and reports the board.
func (s *TableStrategy) answerDemand() *PlayerInput {
	demand := make(map[string]interface{}, len(s.demand))
	for _, kind := range foodKinds {
		s.demand[kind] += s.rng.Intn(3) - 1
		if s.demand[kind] < 0 {
			s.demand[kind] = 0
		}
		if s.demand[kind] > 9 {
			s.demand[kind] = 9
		}
		demand[kind] = s.demand[kind]
	}
	return &PlayerInput{
		Kind:   "demand_info",
		Values: map[string]interface{}{"demand": demand},
	}
}

// answerTiebreak picks the tied food with the highest simulated demand.
func (s *TableStrategy) answerTiebreak(req *InputRequest) *PlayerInput {
	choice := ""
	best := -1
	for _, option := range req.Options {
		if s.demand[option] > best {
			best = s.demand[option]
			choice = option
		}
	}
	if choice == "" && len(req.Options) > 0 {
		choice = req.Options[0]
	}
	return &PlayerInput{
		Kind:   "demand_tiebreak",
		Values: map[string]interface{}{"item": choice},
	}
}

// answerPlacement reports the restaurant landing on the requested tile,
// recovered from the prompt, with an occasional drive-in.
func (s *TableStrategy) answerPlacement(req *InputRequest) *PlayerInput {
	tile := parseTile(req.Prompt)
	return &PlayerInput{
		Kind: "place_restaurant",
		Values: map[string]interface{}{
			"tile":     tile,
			"drive_in": s.rng.Intn(3) == 0,
		},
	}
}

// answerSold reports selling the lesser of fresh stock and demand per food.
func (s *TableStrategy) answerSold(state *GameState) *PlayerInput {
	sold := make(map[string]interface{})
	if state.Inventory != nil {
		for kind, stock := range state.Inventory.Items {
			have := stock.Top + stock.Bottom
			want := s.demand[kind]
			n := have
			if want < n {
				n = want
			}
			if n > 0 {
				sold[kind] = n
			}
		}
	}
	return &PlayerInput{
		Kind:   "sold_items",
		Values: map[string]interface{}{"sold": sold},
	}
}

// answerEarnings reports a modest income scaled by the waitress track.
func (s *TableStrategy) answerEarnings(state *GameState) *PlayerInput {
	amount := 5 + state.Tracks.Waitresses*2 + s.rng.Intn(10)
	return &PlayerInput{
		Kind:   "earnings",
		Values: map[string]interface{}{"amount": amount},
	}
}

// parseTile pulls the first number out of a placement prompt. Falls back
// to tile 1 when the prompt carries none.
func parseTile(prompt string) int {
	fields := strings.FieldsFunc(prompt, func(r rune) bool {
		return r < '0' || r > '9'
	})
	for _, f := range fields {
		if n, err := strconv.Atoi(f); err == nil {
			return n
		}
	}
	return 1
}
