package engine

import (
	"errors"
	"testing"
)

func testEngine(t *testing.T, cfg GameConfig) *Engine {
	t.Helper()
	cat := testCatalog(t)
	eng, err := NewEngine(cfg, cat)
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	return eng
}

func fullConfig(seed int64) GameConfig {
	return GameConfig{Name: "test", Seed: seed, Mode: ModeFull}
}

// answer replies to an input request with plausible player data.
func answer(t *testing.T, eng *Engine, req *InputRequest) *AdvanceResult {
	t.Helper()
	in := &PlayerInput{Kind: req.Kind, Values: map[string]interface{}{}}
	switch req.Kind {
	case InputDemandInfo:
		in.Values["demand"] = map[string]interface{}{"burger": float64(2), "pizza": float64(1)}
	case InputDemandTiebreak:
		in.Values["item"] = string(req.Options[0])
	case InputPlaceRestaurant:
		in.Values["tile"] = float64(5)
		in.Values["drive_in"] = false
	case InputSoldItems:
		in.Values["sold"] = map[string]interface{}{"burger": float64(1)}
	case InputEarnings:
		in.Values["amount"] = float64(0)
	default:
		t.Fatalf("unexpected input kind %s", req.Kind)
	}
	res, err := eng.SubmitInput(in)
	if err != nil {
		t.Fatalf("submitting %s input: %v", req.Kind, err)
	}
	return res
}

// playTurn drives the engine through one full turn, answering every
// suspension, and returns the last result.
func playTurn(t *testing.T, eng *Engine) *AdvanceResult {
	t.Helper()
	start := eng.State().Turn
	var res *AdvanceResult
	for i := 0; i < 50; i++ {
		var err error
		if eng.State().Waiting() {
			res = answer(t, eng, eng.State().Pending.Request)
		} else {
			res, err = eng.Advance()
			if err != nil {
				t.Fatalf("advance: %v", err)
			}
		}
		if res.GameOver || eng.State().Turn > start {
			return res
		}
	}
	t.Fatal("turn did not complete within 50 steps")
	return nil
}

func TestNewEnginePlacesOpeningRestaurant(t *testing.T) {
	eng := testEngine(t, fullConfig(11))
	if eng.Restaurants.Count() != 1 {
		t.Errorf("expected 1 opening restaurant, got %d", eng.Restaurants.Count())
	}
	if eng.State().Phase != PhaseRestructuring {
		t.Errorf("expected restructuring start, got %s", eng.State().Phase)
	}
	if eng.State().Turn != 1 {
		t.Errorf("expected turn 1, got %d", eng.State().Turn)
	}
}

func TestAggressiveSetupStartsWarm(t *testing.T) {
	cfg := fullConfig(11)
	cfg.AggressiveSetup = true
	eng := testEngine(t, cfg)
	if eng.Tracks.Competition != CompetitionWarm {
		t.Errorf("expected Warm start, got %s", eng.Tracks.Competition)
	}

	// Default setup starts at Neutral.
	if eng := testEngine(t, fullConfig(11)); eng.Tracks.Competition != CompetitionNeutral {
		t.Errorf("expected Neutral start, got %s", eng.Tracks.Competition)
	}
}

func TestAggressiveRestructuringPinsWarmDeck(t *testing.T) {
	cfg := fullConfig(11)
	cfg.AggressiveRestructuring = true
	eng := testEngine(t, cfg)
	eng.Tracks.Competition = CompetitionCold
	if got := eng.competitionDrawLevel(); got != CompetitionWarm {
		t.Errorf("expected warm draw level, got %s", got)
	}

	eng = testEngine(t, fullConfig(11))
	eng.Tracks.Competition = CompetitionCold
	if got := eng.competitionDrawLevel(); got != CompetitionCold {
		t.Errorf("expected cold draw level, got %s", got)
	}
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	cat := testCatalog(t)
	_, err := NewEngine(GameConfig{Name: "x", Mode: "turbo"}, cat)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestEngineIsSeedDeterministic(t *testing.T) {
	a := testEngine(t, fullConfig(99))
	b := testEngine(t, fullConfig(99))

	resA, err := a.Advance()
	if err != nil {
		t.Fatalf("advance a: %v", err)
	}
	resB, err := b.Advance()
	if err != nil {
		t.Fatalf("advance b: %v", err)
	}
	if resA.CurrentCard.Number != resB.CurrentCard.Number {
		t.Errorf("same seed drew different cards: #%d vs #%d",
			resA.CurrentCard.Number, resB.CurrentCard.Number)
	}
}

func TestRestructuringDrawsCardAndAdvances(t *testing.T) {
	eng := testEngine(t, fullConfig(21))
	res, err := eng.Advance()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if res.CurrentCard == nil {
		t.Fatal("expected a drawn card")
	}
	if res.Phase != PhaseRecruitTrain {
		t.Errorf("expected recruit_train next, got %s", res.Phase)
	}
}

func TestFullTurnCycle(t *testing.T) {
	eng := testEngine(t, fullConfig(33))
	res := playTurn(t, eng)
	if res.GameOver {
		t.Fatalf("game over on turn 1: %s", res.GameOverReason)
	}
	if eng.State().Turn != 2 {
		t.Errorf("expected turn 2 after a full cycle, got %d", eng.State().Turn)
	}
	if eng.State().Phase != PhaseRestructuring {
		t.Errorf("expected wrap to restructuring, got %s", eng.State().Phase)
	}
}

func TestRestructuringFeedsDiscardPile(t *testing.T) {
	eng := testEngine(t, fullConfig(7))
	for i := 0; i < 5; i++ {
		playTurn(t, eng)
	}
	draw, discard := eng.Decks().Action.Refs()
	if len(draw)+len(discard) != 20 {
		t.Fatalf("cards leaked from the action deck: draw=%d discard=%d", len(draw), len(discard))
	}
}

func TestActionDeckRecyclesAcrossPasses(t *testing.T) {
	eng := testEngine(t, fullConfig(55))
	for i := 0; i < 25; i++ {
		res := playTurn(t, eng)
		if res.GameOver {
			t.Fatalf("game ended on turn %d: %s", eng.State().Turn, res.GameOverReason)
		}
	}
	if eng.State().Turn < 26 {
		t.Errorf("expected play past a full deck pass, got turn %d", eng.State().Turn)
	}
}

func TestAdvanceWhileWaitingFails(t *testing.T) {
	eng := testEngine(t, fullConfig(44))
	for i := 0; i < 20 && !eng.State().Waiting(); i++ {
		if _, err := eng.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if !eng.State().Waiting() {
		t.Skip("seed produced no suspension in the first turn")
	}
	if _, err := eng.Advance(); !errors.Is(err, ErrAwaitingInput) {
		t.Errorf("expected ErrAwaitingInput, got %v", err)
	}
	if got := eng.State().VisiblePhase(); got != PhaseWaiting {
		t.Errorf("expected waiting_for_input visible phase, got %s", got)
	}
}

func TestSubmitInputWithoutPendingFails(t *testing.T) {
	eng := testEngine(t, fullConfig(44))
	in := &PlayerInput{Kind: InputEarnings, Values: map[string]interface{}{"amount": float64(3)}}
	if _, err := eng.SubmitInput(in); !errors.Is(err, ErrNoInputPending) {
		t.Errorf("expected ErrNoInputPending, got %v", err)
	}
}

func TestSubmitInputValidatesShape(t *testing.T) {
	eng := testEngine(t, fullConfig(44))
	for i := 0; i < 20 && !eng.State().Waiting(); i++ {
		if _, err := eng.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if !eng.State().Waiting() {
		t.Skip("seed produced no suspension in the first turn")
	}
	kind := eng.State().Pending.Request.Kind
	in := &PlayerInput{Kind: kind, Values: map[string]interface{}{}}
	if _, err := eng.SubmitInput(in); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for empty submission, got %v", err)
	}
}

func TestUndoRestoresPreviousState(t *testing.T) {
	eng := testEngine(t, fullConfig(66))
	if err := eng.Undo(); !errors.Is(err, ErrNoHistory) {
		t.Fatalf("expected ErrNoHistory at game start, got %v", err)
	}

	if _, err := eng.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if eng.State().CurrentCard == nil {
		t.Fatal("expected a card in play")
	}
	if err := eng.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if eng.State().Phase != PhaseRestructuring {
		t.Errorf("expected restructuring after undo, got %s", eng.State().Phase)
	}
	if eng.State().CurrentCard != nil {
		t.Error("expected no card in play after undo")
	}
}

func TestUndoJournalDepthIsBounded(t *testing.T) {
	eng := testEngine(t, GameConfig{Name: "t", Seed: 8, Mode: ModeFull, JournalDepth: 2})
	playTurn(t, eng)
	if eng.JournalSize() > 2 {
		t.Errorf("journal exceeded its depth: %d", eng.JournalSize())
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	eng := testEngine(t, fullConfig(77))
	playTurn(t, eng)

	snap := eng.Snapshot()
	data, err := MarshalSnapshot(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	parsed, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored := testEngine(t, fullConfig(1))
	if err := restored.RestoreSnapshot(parsed); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.State().Turn != eng.State().Turn {
		t.Errorf("turn differs: %d vs %d", restored.State().Turn, eng.State().Turn)
	}
	if restored.State().Phase != eng.State().Phase {
		t.Errorf("phase differs: %s vs %s", restored.State().Phase, eng.State().Phase)
	}
	if *restored.Tracks != *eng.Tracks {
		t.Errorf("tracks differ: %+v vs %+v", restored.Tracks, eng.Tracks)
	}
	if restored.Inventory.TotalUnits() != eng.Inventory.TotalUnits() {
		t.Errorf("inventory differs: %d vs %d",
			restored.Inventory.TotalUnits(), eng.Inventory.TotalUnits())
	}
	aDraw, _ := restored.Decks().Action.Refs()
	bDraw, _ := eng.Decks().Action.Refs()
	if len(aDraw) != len(bDraw) {
		t.Fatalf("deck sizes differ: %d vs %d", len(aDraw), len(bDraw))
	}
	for i := range aDraw {
		if aDraw[i] != bDraw[i] {
			t.Errorf("deck order differs at %d", i)
		}
	}
}

func TestRecordBankBreakEndsGameOnSecond(t *testing.T) {
	eng := testEngine(t, fullConfig(88))
	res, err := eng.RecordBankBreak()
	if err != nil {
		t.Fatalf("first break: %v", err)
	}
	if res.GameOver {
		t.Fatal("game should survive the first bank break")
	}
	res, err = eng.RecordBankBreak()
	if err != nil {
		t.Fatalf("second break: %v", err)
	}
	if !res.GameOver {
		t.Fatal("expected game over on the second bank break")
	}
}

func TestQuickModeOperations(t *testing.T) {
	eng := testEngine(t, GameConfig{Name: "q", Seed: 5, Mode: ModeQuick})

	if _, err := eng.Advance(); !errors.Is(err, ErrIllegalState) {
		t.Errorf("expected advance to be rejected in quick mode, got %v", err)
	}

	card, err := eng.QuickDraw()
	if err != nil {
		t.Fatalf("quick draw: %v", err)
	}
	if card == nil || card.Type != CardAction {
		t.Fatalf("expected an action card, got %+v", card)
	}

	if err := eng.QuickSetTrack(TrackPriceDistance, 7); err != nil {
		t.Fatalf("set track: %v", err)
	}
	if eng.Tracks.PriceDistance != 7 {
		t.Errorf("expected price/distance 7, got %d", eng.Tracks.PriceDistance)
	}
	if err := eng.QuickSetTrack(TrackPriceDistance, 3); !errors.Is(err, ErrValidation) {
		t.Errorf("expected range check on quick set, got %v", err)
	}
}

func TestQuickDrawRejectedInFullMode(t *testing.T) {
	eng := testEngine(t, fullConfig(12))
	if _, err := eng.QuickDraw(); !errors.Is(err, ErrIllegalState) {
		t.Errorf("expected ErrIllegalState, got %v", err)
	}
}

// actionCard fetches an action card from the engine's catalog by number.
func actionCard(t *testing.T, eng *Engine, number int) *Card {
	t.Helper()
	c, err := eng.catalog.Lookup(CardRef{Type: CardAction, Number: number})
	if err != nil {
		t.Fatalf("lookup action card #%d: %v", number, err)
	}
	return c
}

func TestDinnertimeAsksEarningsBeforeSales(t *testing.T) {
	eng := testEngine(t, fullConfig(42))
	eng.Inventory.Add(FoodBurger, 5)
	eng.Tracks.PriceDistance = 8
	eng.state.Phase = PhaseDinnertime

	res, err := eng.Advance()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if res.InputRequest == nil || res.InputRequest.Kind != InputEarnings {
		t.Fatalf("expected the earnings prompt first, got %+v", res.InputRequest)
	}

	// One restaurant, no waitresses: capacity 1, so the automa earns 8.
	in := &PlayerInput{Kind: InputEarnings, Values: map[string]interface{}{"amount": float64(50)}}
	res, err = eng.SubmitInput(in)
	if err != nil {
		t.Fatalf("submit earnings: %v", err)
	}
	if eng.state.Cash != 8 {
		t.Errorf("expected automa cash 8, got %d", eng.state.Cash)
	}
	if res.InputRequest == nil || res.InputRequest.Kind != InputSoldItems {
		t.Fatalf("expected the sold items prompt after earnings, got %+v", res.InputRequest)
	}

	in = &PlayerInput{Kind: InputSoldItems, Values: map[string]interface{}{
		"sold": map[string]interface{}{"burger": float64(1)},
	}}
	if _, err := eng.SubmitInput(in); err != nil {
		t.Fatalf("submit sold: %v", err)
	}
	if eng.Inventory.Count(FoodBurger) != 4 {
		t.Errorf("expected 4 burgers left, got %d", eng.Inventory.Count(FoodBurger))
	}
	if eng.state.Phase != PhaseCleanup {
		t.Errorf("expected cleanup after dinnertime, got %s", eng.state.Phase)
	}
}

func TestDinnertimeSkipsSalesWhenAutomaEarnedNothing(t *testing.T) {
	eng := testEngine(t, fullConfig(42))
	eng.state.Phase = PhaseDinnertime

	if _, err := eng.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	in := &PlayerInput{Kind: InputEarnings, Values: map[string]interface{}{"amount": float64(10)}}
	if _, err := eng.SubmitInput(in); err != nil {
		t.Fatalf("submit earnings: %v", err)
	}
	if eng.State().Waiting() {
		t.Error("no sold items prompt expected with empty shelves")
	}
	if eng.state.Phase != PhaseCleanup {
		t.Errorf("expected cleanup, got %s", eng.state.Phase)
	}
}

func TestDinnertimeComparisonMovesCompetitionOneStep(t *testing.T) {
	// Player ahead warms the competition one step.
	eng := testEngine(t, fullConfig(42))
	eng.Inventory.Add(FoodBurger, 5)
	eng.Tracks.PriceDistance = 8
	eng.state.Phase = PhaseDinnertime
	if _, err := eng.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	in := &PlayerInput{Kind: InputEarnings, Values: map[string]interface{}{"amount": float64(50)}}
	if _, err := eng.SubmitInput(in); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if eng.Tracks.Competition != CompetitionWarm {
		t.Errorf("expected Warm after the player pulls ahead, got %s", eng.Tracks.Competition)
	}

	// Automa ahead cools it one step.
	eng = testEngine(t, fullConfig(42))
	eng.Inventory.Add(FoodBurger, 5)
	eng.Tracks.PriceDistance = 8
	eng.state.Phase = PhaseDinnertime
	if _, err := eng.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	in = &PlayerInput{Kind: InputEarnings, Values: map[string]interface{}{"amount": float64(0)}}
	if _, err := eng.SubmitInput(in); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if eng.Tracks.Competition != CompetitionCool {
		t.Errorf("expected Cool after the automa pulls ahead, got %s", eng.Tracks.Competition)
	}
}

func TestUndoWhileWaitingClearsSuspension(t *testing.T) {
	eng := testEngine(t, fullConfig(42))
	eng.Inventory.Add(FoodBurger, 3)
	eng.state.Phase = PhaseDinnertime
	if _, err := eng.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !eng.State().Waiting() {
		t.Fatal("expected a suspension")
	}
	if err := eng.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if eng.State().Waiting() {
		t.Error("still waiting after undo")
	}
	if eng.state.Phase != PhaseDinnertime {
		t.Errorf("expected dinnertime restored, got %s", eng.state.Phase)
	}
}

func TestGetFoodMultipliesBoxByRecruitRow(t *testing.T) {
	eng := testEngine(t, fullConfig(42))
	eng.state.CurrentCard = actionCard(t, eng, 7) // specific demand, multiplier 2
	eng.state.Phase = PhaseGetFood
	eng.Tracks.RecruitTrain = 1 // row multiplier 2

	if _, err := eng.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if got := eng.Inventory.Count(FoodPizza); got != 4 {
		t.Errorf("expected 4 pizza (2x2), got %d", got)
	}
	if got := eng.Inventory.Count(FoodSoftdrink); got != 4 {
		t.Errorf("expected 4 softdrink (2x2), got %d", got)
	}
}

func TestExpandTriggerDroppedAtRestaurantCap(t *testing.T) {
	eng := testEngine(t, fullConfig(42))
	for tile := 10; !eng.Restaurants.Full(); tile++ {
		eng.Restaurants.Place(tile, false)
	}
	eng.state.CurrentCard = actionCard(t, eng, 1)
	eng.state.PendingExpansion = true
	eng.state.Phase = PhaseExpandChain

	if _, err := eng.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if eng.State().Waiting() {
		t.Error("no placement prompt expected at the cap")
	}
	if eng.state.PendingExpansion {
		t.Error("expected the trigger to be consumed")
	}
	if eng.Restaurants.Count() != eng.Restaurants.Cap {
		t.Errorf("restaurant count changed: %d", eng.Restaurants.Count())
	}
}

func TestStarRecordedOnFallbackSlot(t *testing.T) {
	eng := testEngine(t, fullConfig(42))
	slot := ActionSlot{
		Slot:           1,
		Type:           SlotGetFood,
		Target:         string(FoodSushi),
		RequiresModule: ModuleSushi,
		FallbackFood:   []FoodItem{FoodPizza},
		Star:           true,
	}
	row := recruitTrainRow{Slots: 1, Multiplier: 2}
	if err := eng.execSlot(slot, row); err != nil {
		t.Fatalf("exec slot: %v", err)
	}
	if !eng.state.PendingExpansion {
		t.Error("expected the star to arm an expansion on the fallback path")
	}
	if eng.Inventory.Count(FoodPizza) != 2 {
		t.Errorf("expected 2 fallback pizza, got %d", eng.Inventory.Count(FoodPizza))
	}
}

func TestRecruitEmployeeRouting(t *testing.T) {
	eng := testEngine(t, fullConfig(42))
	eng.state.CurrentCard = actionCard(t, eng, 1)
	row := recruitTrainRow{Slots: 4, Multiplier: 2}

	if err := eng.execSlot(ActionSlot{Slot: 1, Type: SlotRecruitEmployee, Target: EmployeeBurgerChef}, row); err != nil {
		t.Fatalf("exec slot: %v", err)
	}
	if !eng.Employees.Has(EmployeeBurgerChef) {
		t.Error("expected the burger chef in the employee pile")
	}

	// A Brand Director takes a marketeer slot instead of the pile.
	if err := eng.execSlot(ActionSlot{Slot: 2, Type: SlotRecruitEmployee, Target: MarketeerBrandDirector}, row); err != nil {
		t.Fatalf("exec slot: %v", err)
	}
	if eng.Employees.Has(MarketeerBrandDirector) {
		t.Error("brand director should not land in the employee pile")
	}
	if eng.Marketeers.Count() != 1 {
		t.Errorf("expected 1 campaign, got %d", eng.Marketeers.Count())
	}
}

func TestFullWaitressTrackSignsMovieStars(t *testing.T) {
	cfg := fullConfig(42)
	cfg.Modules = []string{ModuleMovieStars}
	eng := testEngine(t, cfg)
	eng.Tracks.Waitresses = 3
	row := recruitTrainRow{Slots: 4, Multiplier: 2}

	if err := eng.execSlot(ActionSlot{Slot: 1, Type: SlotMoveWaitress, Target: "1"}, row); err != nil {
		t.Fatalf("exec slot: %v", err)
	}
	if eng.state.MovieStar != "B" {
		t.Errorf("expected movie star B first, got %q", eng.state.MovieStar)
	}
	if !eng.Employees.Has("Movie Star B") {
		t.Error("movie star missing from the staff")
	}

	// The track clamps at the top; the next full-track move signs the
	// next rank down.
	if err := eng.execSlot(ActionSlot{Slot: 2, Type: SlotMoveWaitress, Target: "1"}, row); err != nil {
		t.Fatalf("exec slot: %v", err)
	}
	if eng.state.MovieStar != "C" {
		t.Errorf("expected movie star C next, got %q", eng.state.MovieStar)
	}
}

func TestMovieStarNeedsModule(t *testing.T) {
	eng := testEngine(t, fullConfig(42))
	eng.Tracks.Waitresses = 3
	row := recruitTrainRow{Slots: 1, Multiplier: 2}
	if err := eng.execSlot(ActionSlot{Slot: 1, Type: SlotMoveWaitress, Target: "1"}, row); err != nil {
		t.Fatalf("exec slot: %v", err)
	}
	if eng.state.MovieStar != "" {
		t.Errorf("unexpected movie star without the module: %q", eng.state.MovieStar)
	}
}

func TestPayPerEmployeeCountsStaffAndMarketeers(t *testing.T) {
	eng := testEngine(t, fullConfig(42))
	eng.Employees.Add(EmployeeBurgerChef)
	eng.Employees.Add(EmployeeZeppelin)
	eng.Marketeers.Launch(MarketeerTrainee, FoodBurger, 3)

	card := &Card{Effect: &CompetitionEffect{Type: EffectPayPerEmployee}}
	if err := eng.applyCompetitionEffect(card); err != nil {
		t.Fatalf("apply effect: %v", err)
	}
	if eng.state.Cash != -30 {
		t.Errorf("expected -30 cash for 3 staff at 10 each, got %d", eng.state.Cash)
	}
}

func TestFireEmployeesClearsBothPools(t *testing.T) {
	eng := testEngine(t, fullConfig(42))
	eng.Employees.Add(EmployeeBurgerChef)
	eng.Marketeers.Launch(MarketeerRural, FoodPizza, 2)

	card := &Card{Effect: &CompetitionEffect{Type: EffectFireEmployees}}
	if err := eng.applyCompetitionEffect(card); err != nil {
		t.Fatalf("apply effect: %v", err)
	}
	if eng.Employees.Count() != 0 {
		t.Errorf("employee pile not cleared: %d", eng.Employees.Count())
	}
	if eng.Marketeers.Count() != 0 {
		t.Errorf("marketeer slots not cleared: %d", eng.Marketeers.Count())
	}
}

func TestCleanupKimchiNeedsMasterOnStaff(t *testing.T) {
	cfg := fullConfig(42)
	cfg.Modules = []string{ModuleKimchi}

	// No kimchi master: the cleanup bonus is skipped.
	eng := testEngine(t, cfg)
	eng.state.CurrentCard = actionCard(t, eng, 8) // cleanup kimchi bonus 1
	eng.state.Phase = PhaseCleanup
	if _, err := eng.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if got := eng.Inventory.Count(FoodKimchi); got != 0 {
		t.Errorf("expected no kimchi without a master, got %d", got)
	}

	// With the master hired the bonus lands.
	eng = testEngine(t, cfg)
	eng.Employees.Add(EmployeeKimchiMaster)
	eng.state.CurrentCard = actionCard(t, eng, 8)
	eng.state.Phase = PhaseCleanup
	if _, err := eng.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if got := eng.Inventory.Count(FoodKimchi); got != 1 {
		t.Errorf("expected 1 kimchi with the master hired, got %d", got)
	}
}

func TestQuickDrawRecyclesDeck(t *testing.T) {
	eng := testEngine(t, GameConfig{Name: "q", Seed: 5, Mode: ModeQuick, JournalDepth: 50})
	seen := make(map[int]bool)
	for i := 0; i < 25; i++ {
		card, err := eng.QuickDraw()
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		seen[card.Number] = true
	}
	if len(seen) != 20 {
		t.Errorf("expected full deck coverage across recycles, got %d cards", len(seen))
	}
}
