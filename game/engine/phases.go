package engine

import (
	"fmt"
	"strconv"
)

// Cash amounts used by competition card effects.
const (
	bonusCashFactor    = 2
	payPerEmployeeCost = 10
)

// runPhase executes the handler for the current phase. Handlers either
// advance Phase to the next step of the cycle or park the machine by
// setting state.Pending.
func (e *Engine) runPhase() error {
	switch e.state.Phase {
	case PhaseRestructuring:
		return e.phaseRestructuring()
	case PhaseRecruitTrain:
		return e.phaseRecruitTrain()
	case PhaseGetFood:
		return e.phaseGetFood()
	case PhaseMarketing:
		return e.phaseMarketing()
	case PhaseDevelop:
		return e.phaseDevelop()
	case PhaseLobby:
		return e.phaseLobby()
	case PhaseExpandChain:
		return e.phaseExpandChain()
	case PhaseDinnertime:
		return e.phaseDinnertime()
	case PhaseCleanup:
		return e.phaseCleanup()
	default:
		return fmt.Errorf("%w: no handler for phase %s", ErrIllegalState, e.state.Phase)
	}
}

// resumePhase continues a suspended handler at its stored step.
func (e *Engine) resumePhase(in *PlayerInput) error {
	p := e.state.Pending
	switch p.Step {
	case stepGetFoodDemand:
		return e.resumeGetFoodDemand(in)
	case stepGetFoodTiebreak:
		return e.resumeGetFoodTiebreak(in)
	case stepExpandPlace:
		return e.resumeExpandPlace(in)
	case stepDinnerSold:
		return e.resumeDinnerSold(in)
	case stepDinnerEarnings:
		return e.resumeDinnerEarnings(in)
	default:
		return fmt.Errorf("%w: unknown resume step %q", ErrIllegalState, p.Step)
	}
}

// competitionDrawLevel is the level competition draws read. Aggressive
// restructuring pins it to the warm deck.
func (e *Engine) competitionDrawLevel() CompetitionLevel {
	if e.cfg.AggressiveRestructuring {
		return CompetitionWarm
	}
	return e.Tracks.Competition
}

func (e *Engine) phaseRestructuring() error {
	e.state.CompetitionCard = nil
	e.state.PendingExpansion = false

	card, ok := e.decks.DrawAction(e.rng)
	if !ok {
		e.gameOver("action deck exhausted")
		return nil
	}
	e.state.CurrentCard = card
	e.decks.Action.DiscardCard(card)
	e.state.log("turn %d: drew action card #%d", e.state.Turn, card.Number)

	marker := card.Front.Marker
	if marker.Delta != 0 {
		pos, _, err := e.Tracks.Move(TrackCompetition, marker.Delta)
		if err != nil {
			return err
		}
		e.state.log("competition marker %s: level now %s", marker.Symbol, CompetitionLevel(pos))
	}
	if marker.Event {
		level := e.competitionDrawLevel()
		comp, err := e.decks.DrawCompetition(level, e.rng)
		if err != nil {
			return err
		}
		e.state.CompetitionCard = comp
		e.state.log("event: drew %s competition card #%d", comp.Type, comp.Number)
		if err := e.applyCompetitionEffect(comp); err != nil {
			return err
		}
		e.decks.ActiveCompetitionDeck(level).DiscardCard(comp)
	}

	e.state.Phase = e.state.Phase.Next()
	return nil
}

func (e *Engine) phaseRecruitTrain() error {
	card := e.state.CurrentCard
	row := e.Tracks.RecruitRow()
	for i := 0; i < row.Slots && i < len(card.Front.Actions); i++ {
		if err := e.execSlot(card.Front.Actions[i], row); err != nil {
			return err
		}
	}
	e.state.Phase = e.state.Phase.Next()
	return nil
}

func (e *Engine) execSlot(slot ActionSlot, row recruitTrainRow) error {
	// The star counts for every executed slot, even one resolved through
	// its fallback.
	if slot.Star {
		e.state.PendingExpansion = true
		e.state.log("slot %d: star icon, expansion pending", slot.Slot)
	}

	if !e.gate.Active(slot.RequiresModule) {
		if len(slot.FallbackFood) > 0 {
			item := slot.FallbackFood[0]
			added, err := e.Inventory.Add(item, row.Multiplier)
			if err != nil {
				return err
			}
			e.state.log("slot %d: module %s inactive, fallback %d %s", slot.Slot, slot.RequiresModule, added, item)
		} else {
			e.state.log("slot %d: skipped, module %s inactive", slot.Slot, slot.RequiresModule)
		}
		return nil
	}

	switch slot.Type {
	case SlotRecruitMarketeer:
		camp, ok, err := e.Marketeers.Launch(slot.Target, e.state.CurrentCard.Front.MarketItem, e.state.CurrentCard.Tiles.Market)
		if err != nil {
			return err
		}
		if ok {
			e.state.log("slot %d: %s campaign for %s in slot %d", slot.Slot, camp.Rank, camp.Item, camp.Slot)
		} else {
			e.state.log("slot %d: all marketeer slots busy", slot.Slot)
		}
	case SlotRecruitEmployee:
		// A Brand Director runs a campaign instead of joining the pile.
		if slot.Target == MarketeerBrandDirector {
			camp, ok, err := e.Marketeers.Launch(slot.Target, e.state.CurrentCard.Front.MarketItem, e.state.CurrentCard.Tiles.Market)
			if err != nil {
				return err
			}
			if ok {
				e.state.log("slot %d: %s campaign for %s in slot %d", slot.Slot, camp.Rank, camp.Item, camp.Slot)
			} else {
				e.state.log("slot %d: all marketeer slots busy", slot.Slot)
			}
			break
		}
		e.Employees.Add(slot.Target)
		e.state.log("slot %d: hired %s", slot.Slot, slot.Target)
	case SlotMoveDistance:
		n, _ := strconv.Atoi(slot.Target)
		pos, _, err := e.Tracks.Move(TrackPriceDistance, n)
		if err != nil {
			return err
		}
		e.state.log("slot %d: price/distance now %d", slot.Slot, pos)
	case SlotMoveWaitress:
		n, _ := strconv.Atoi(slot.Target)
		pos, _, err := e.Tracks.Move(TrackWaitresses, n)
		if err != nil {
			return err
		}
		e.state.log("slot %d: waitresses now %d", slot.Slot, pos)
		if pos == waitressesMax && e.gate.Active(ModuleMovieStars) {
			if rank, ok := e.signMovieStar(); ok {
				e.state.log("slot %d: waitress track full, movie star %s signed", slot.Slot, rank)
			}
		}
	case SlotClaimMilestone:
		if e.Milestones.Claim(slot.Target) {
			e.state.log("slot %d: claimed milestone %s", slot.Slot, slot.Target)
		}
	case SlotGetFood:
		item := FoodItem(slot.Target)
		if !e.gate.ItemAvailable(item) && len(slot.FallbackFood) > 0 {
			item = slot.FallbackFood[0]
		}
		if e.gate.ItemAvailable(item) {
			added, err := e.Inventory.Add(item, row.Multiplier)
			if err != nil {
				return err
			}
			e.state.log("slot %d: produced %d %s", slot.Slot, added, item)
		}
	default:
		return fmt.Errorf("%w: unknown slot action %q", ErrValidation, slot.Type)
	}
	return nil
}

// signMovieStar hires the best movie star rank still unsigned. Each rank
// signs at most once per game.
func (e *Engine) signMovieStar() (string, bool) {
	for _, rank := range movieStarRanks {
		name := "Movie Star " + rank
		if e.Employees.Has(name) {
			continue
		}
		e.Employees.Add(name)
		e.state.MovieStar = rank
		return rank, true
	}
	return "", false
}

func (e *Engine) phaseGetFood() error {
	box := e.state.CurrentCard.Back.Left
	switch box.Demand {
	case DemandSpecific:
		row := e.Tracks.RecruitRow()
		for _, item := range box.Items {
			if !e.gate.ItemAvailable(item) {
				continue
			}
			added, err := e.Inventory.Add(item, box.Multiplier*row.Multiplier)
			if err != nil {
				return err
			}
			e.state.log("food: produced %d %s", added, item)
		}
		return e.finishGetFood()
	case DemandChoice:
		options := e.availableItems(box.Items)
		if len(options) == 0 {
			return e.finishGetFood()
		}
		if len(options) == 1 {
			return e.applyLeftBoxItem(options[0])
		}
		e.state.Pending = &pendingInput{
			Phase:   PhaseGetFood,
			Step:    stepGetFoodTiebreak,
			Request: newDemandTiebreakRequest(options),
			Tied:    options,
		}
		return nil
	case DemandMost, DemandAll:
		e.state.Pending = &pendingInput{
			Phase:   PhaseGetFood,
			Step:    stepGetFoodDemand,
			Request: newDemandInfoRequest(),
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown demand kind %q", ErrValidation, box.Demand)
	}
}

// availableItems filters a food list to what the module gate allows.
func (e *Engine) availableItems(items []FoodItem) []FoodItem {
	var out []FoodItem
	for _, item := range items {
		if e.gate.ItemAvailable(item) {
			out = append(out, item)
		}
	}
	return out
}

func (e *Engine) resumeGetFoodDemand(in *PlayerInput) error {
	box := e.state.CurrentCard.Back.Left
	row := e.Tracks.RecruitRow()
	demand := foodCountsField(in, "demand")
	e.state.Pending = nil

	if box.Demand == DemandAll {
		for _, item := range AllFoodItems {
			if demand[item] <= 0 || !e.gate.ItemAvailable(item) {
				continue
			}
			added, err := e.Inventory.Add(item, box.Multiplier*row.Multiplier)
			if err != nil {
				return err
			}
			e.state.log("food: produced %d %s (in demand)", added, item)
		}
		return e.finishGetFood()
	}

	// Most demanded: find the peak, suspend again on a tie.
	best := -1
	var tied []FoodItem
	for _, item := range AllFoodItems {
		n := demand[item]
		if n <= 0 || !e.gate.ItemAvailable(item) {
			continue
		}
		if n > best {
			best = n
			tied = []FoodItem{item}
		} else if n == best {
			tied = append(tied, item)
		}
	}
	if len(tied) == 0 {
		e.state.log("food: no demand reported")
		return e.finishGetFood()
	}
	if len(tied) > 1 {
		e.state.Pending = &pendingInput{
			Phase:   PhaseGetFood,
			Step:    stepGetFoodTiebreak,
			Request: newDemandTiebreakRequest(tied),
			Tied:    tied,
		}
		return nil
	}
	return e.applyLeftBoxItem(tied[0])
}

func (e *Engine) resumeGetFoodTiebreak(in *PlayerInput) error {
	tied := e.state.Pending.Tied
	item := foodField(in, "item")
	found := false
	for _, t := range tied {
		if t == item {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s is not one of the offered options", ErrValidation, item)
	}
	e.state.Pending = nil
	return e.applyLeftBoxItem(item)
}

// applyLeftBoxItem credits the resolved left box food and completes the
// phase.
func (e *Engine) applyLeftBoxItem(item FoodItem) error {
	box := e.state.CurrentCard.Back.Left
	row := e.Tracks.RecruitRow()
	added, err := e.Inventory.Add(item, box.Multiplier*row.Multiplier)
	if err != nil {
		return err
	}
	e.state.log("food: produced %d %s", added, item)
	return e.finishGetFood()
}

// finishGetFood applies the right box and leaves the phase.
func (e *Engine) finishGetFood() error {
	box := e.state.CurrentCard.Back.Right
	row := e.Tracks.RecruitRow()
	if box.Item != "" {
		if item, ok := e.gate.Resolve(box.Item, box.Module, box.Fallback); ok {
			added, err := e.Inventory.Add(item, box.Multiplier*row.Multiplier)
			if err != nil {
				return err
			}
			e.state.log("food: produced %d %s", added, item)
		}
	}
	e.state.Phase = e.state.Phase.Next()
	return nil
}

func (e *Engine) phaseMarketing() error {
	card := e.state.CurrentCard
	item := card.Front.MarketItem
	if item == "" || card.Tiles.Market == 0 || !e.gate.ItemAvailable(item) {
		e.state.Phase = e.state.Phase.Next()
		return nil
	}
	camp, ok, err := e.Marketeers.Launch(MarketeerTrainee, item, card.Tiles.Market)
	if err != nil {
		return err
	}
	if ok {
		e.state.log("marketing: %s campaign for %s on tile %d", camp.Rank, camp.Item, camp.Tile)
	} else {
		e.state.log("marketing: all marketeer slots busy")
	}
	e.state.Phase = e.state.Phase.Next()
	return nil
}

func (e *Engine) phaseDevelop() error {
	d := e.state.CurrentCard.Back.Develop
	if d != nil {
		tile := e.state.CurrentCard.Tiles.DevelopLobby
		e.state.Placements = append(e.state.Placements, BoardPlacement{Kind: d.Kind, Size: d.Size, Tile: tile})
		e.state.log("develop: %s %s on tile %d", d.Size, d.Kind, tile)
	}
	e.state.Phase = e.state.Phase.Next()
	return nil
}

func (e *Engine) phaseLobby() error {
	l := e.state.CurrentCard.Back.Lobby
	if l != nil {
		size := l.Size
		if size == "" {
			size = defaultLobbySize
		}
		tile := e.state.CurrentCard.Tiles.DevelopLobby
		e.state.Placements = append(e.state.Placements, BoardPlacement{Kind: l.Kind, Size: size, Tile: tile})
		e.state.log("lobby: %s %s on tile %d", size, l.Kind, tile)
	}
	e.state.Phase = e.state.Phase.Next()
	return nil
}

func (e *Engine) phaseExpandChain() error {
	if !e.state.PendingExpansion || e.Restaurants.Full() {
		if e.state.PendingExpansion && e.Restaurants.Full() {
			e.state.log("expand: at restaurant cap, trigger dropped")
		}
		e.state.PendingExpansion = false
		e.state.Phase = e.state.Phase.Next()
		return nil
	}
	tile := e.state.CurrentCard.Tiles.ExpandChain
	e.state.Pending = &pendingInput{
		Phase:      PhaseExpandChain,
		Step:       stepExpandPlace,
		Request:    newPlaceRestaurantRequest(tile),
		TargetTile: tile,
	}
	return nil
}

func (e *Engine) resumeExpandPlace(in *PlayerInput) error {
	tile := intField(in, "tile")
	drive := boolField(in, "drive_in")
	e.state.Pending = nil
	e.state.PendingExpansion = false
	if e.Restaurants.Place(tile, drive) {
		e.state.log("expand: restaurant placed on tile %d", tile)
	} else {
		e.state.log("expand: at restaurant cap, placement dropped")
	}
	e.state.Phase = e.state.Phase.Next()
	return nil
}

func (e *Engine) phaseDinnertime() error {
	units := e.Inventory.TotalUnits()
	if cap := e.sellCapacity(); units > cap {
		units = cap
	}
	revenue := units * e.Tracks.PriceDistance
	if revenue == 0 {
		e.state.log("dinnertime: nothing to sell")
	}
	e.state.Pending = &pendingInput{
		Phase:   PhaseDinnertime,
		Step:    stepDinnerEarnings,
		Request: newEarningsRequest(),
		Revenue: revenue,
	}
	return nil
}

// sellCapacity is how many units the automa can serve this dinnertime.
func (e *Engine) sellCapacity() int {
	return e.Restaurants.Count() * (1 + e.Tracks.Waitresses)
}

func (e *Engine) resumeDinnerEarnings(in *PlayerInput) error {
	player := intField(in, "amount")
	automa := e.state.Pending.Revenue
	e.state.Pending = nil

	e.state.Cash += automa
	e.state.log("dinnertime: automa earned %d", automa)
	switch {
	case player > automa:
		pos, _, err := e.Tracks.Move(TrackCompetition, 1)
		if err != nil {
			return err
		}
		e.state.log("dinnertime: player ahead (%d vs %d), competition now %s", player, automa, CompetitionLevel(pos))
	case player < automa:
		pos, _, err := e.Tracks.Move(TrackCompetition, -1)
		if err != nil {
			return err
		}
		e.state.log("dinnertime: automa ahead (%d vs %d), competition now %s", automa, player, CompetitionLevel(pos))
	default:
		e.state.log("dinnertime: earnings tied at %d", player)
	}

	// The sale prompt only follows earnings the automa actually made.
	if automa > 0 {
		e.state.Pending = &pendingInput{
			Phase:   PhaseDinnertime,
			Step:    stepDinnerSold,
			Request: newSoldItemsRequest(),
		}
		return nil
	}
	e.state.Phase = e.state.Phase.Next()
	return nil
}

func (e *Engine) resumeDinnerSold(in *PlayerInput) error {
	sold := foodCountsField(in, "sold")
	e.state.Pending = nil
	capacity := e.sellCapacity()
	units := 0
	for _, item := range AllFoodItems {
		want := sold[item]
		if want <= 0 {
			continue
		}
		if units+want > capacity {
			want = capacity - units
		}
		if want <= 0 {
			break
		}
		taken, err := e.Inventory.Consume(item, want)
		if err != nil {
			return err
		}
		units += taken
	}
	e.state.log("dinnertime: %d units left the shelves", units)
	e.state.Phase = e.state.Phase.Next()
	return nil
}

func (e *Engine) phaseCleanup() error {
	cb := e.state.CurrentCard.Back.Cleanup

	if cb.Kimchi > 0 && e.gate.Active(ModuleKimchi) && e.Employees.Has(EmployeeKimchiMaster) {
		added, err := e.Inventory.Add(FoodKimchi, cb.Kimchi)
		if err != nil {
			return err
		}
		e.state.log("cleanup: gained %d kimchi", added)
	}
	if cb.PriceDistance != 0 {
		pos, _, err := e.Tracks.Move(TrackPriceDistance, cb.PriceDistance)
		if err != nil {
			return err
		}
		e.state.log("cleanup: price/distance now %d", pos)
	}
	if cb.Waitresses != 0 {
		pos, _, err := e.Tracks.Move(TrackWaitresses, cb.Waitresses)
		if err != nil {
			return err
		}
		e.state.log("cleanup: waitresses now %d", pos)
	}
	if cb.InventoryDrop > 0 {
		for item, n := range e.Inventory.Drop() {
			e.state.log("cleanup: dropped %d fresh %s", n, item)
		}
	}
	if cb.RecruitTrain != 0 {
		pos, crossed := e.Tracks.MoveRecruitTrain(cb.RecruitTrain)
		e.state.log("cleanup: recruit/train now %d", pos)
		if crossed {
			e.decks.Action.Recycle(e.rng)
			e.state.log("cleanup: shuffle boundary crossed, action deck reshuffled")
		}
	}

	for item, n := range e.Inventory.Age() {
		e.state.log("cleanup: %d %s expired", n, item)
	}
	for _, camp := range e.Marketeers.Tick() {
		e.state.log("cleanup: %s campaign for %s ended", camp.Rank, camp.Item)
	}

	e.state.Turn++
	if e.decks.Action.Exhausted() {
		e.gameOver("action deck exhausted")
		return nil
	}
	e.state.Phase = PhaseRestructuring
	return nil
}

// applyCompetitionEffect resolves a drawn warm or cool card against the
// board.
func (e *Engine) applyCompetitionEffect(card *Card) error {
	eff := card.Effect

	switch eff.Type {
	case EffectExpandChain:
		if e.Restaurants.Place(eff.MapTile, false) {
			e.state.log("competition: restaurant placed on tile %d", eff.MapTile)
		} else {
			e.state.log("competition: at restaurant cap, expansion dropped")
		}
	case EffectCoffeeShopOrExpand:
		if e.gate.Active(ModuleCoffee) {
			e.state.CoffeeShops = append(e.state.CoffeeShops, eff.MapTile)
			e.state.log("competition: coffee shop opened on tile %d", eff.MapTile)
		} else if e.Restaurants.Place(eff.MapTile, false) {
			e.state.log("competition: restaurant placed on tile %d", eff.MapTile)
		}
	case EffectBonusCash:
		bonus := e.Tracks.PriceDistance * bonusCashFactor
		e.state.Cash += bonus
		e.state.log("competition: bonus cash %d", bonus)
	case EffectNoDriveIns:
		if n := e.Restaurants.StripDriveIns(); n > 0 {
			e.state.log("competition: removed %d drive-ins", n)
		}
	case EffectFireEmployees:
		fired := len(e.Marketeers.FireAll()) + len(e.Employees.FireAll())
		if fired > 0 {
			e.state.log("competition: fired %d employees", fired)
		}
	case EffectPayPerEmployee:
		cost := (e.Employees.Count() + e.Marketeers.Count()) * payPerEmployeeCost
		e.state.Cash -= cost
		e.state.log("competition: paid %d for employees", cost)
	case EffectLossItems, EffectDrop:
		// Data-driven below.
	default:
		return fmt.Errorf("%w: unknown competition effect %q", ErrValidation, eff.Type)
	}

	for _, item := range eff.LossItems {
		if n := e.Inventory.ClearItem(item); n > 0 {
			e.state.log("competition: lost %d %s", n, item)
		}
	}
	if eff.InventoryDrop {
		for item, n := range e.Inventory.Drop() {
			e.state.log("competition: dropped %d fresh %s", n, item)
		}
	}
	if eff.InventoryBoost {
		for item, n := range e.Inventory.Boost() {
			e.state.log("competition: restocked %d %s", n, item)
		}
	}
	for _, adj := range eff.Foods {
		item := adj.Item
		if adj.Demand != "" {
			item = e.bestStockedItem()
		} else {
			var ok bool
			if item, ok = e.gate.Resolve(adj.Item, adj.Module, adj.Fallback); !ok {
				continue
			}
		}
		added, err := e.Inventory.Add(item, adj.Multiplier)
		if err != nil {
			return err
		}
		e.state.log("competition: gained %d %s", added, item)
	}
	for _, adj := range eff.Tracks {
		if adj.Track == TrackRecruitTrain {
			pos, crossed := e.Tracks.MoveRecruitTrain(adj.Delta)
			e.state.log("competition: track %s now %d", adj.Track, pos)
			if crossed {
				e.decks.Action.Recycle(e.rng)
				e.state.log("competition: shuffle boundary crossed, action deck reshuffled")
			}
			continue
		}
		pos, _, err := e.Tracks.Move(adj.Track, adj.Delta)
		if err != nil {
			return err
		}
		e.state.log("competition: track %s now %d", adj.Track, pos)
	}
	return nil
}

// bestStockedItem returns the food the automa holds the most of, burger
// when the shelves are empty.
func (e *Engine) bestStockedItem() FoodItem {
	best := FoodBurger
	bestN := 0
	for _, item := range AllFoodItems {
		if n := e.Inventory.Count(item); n > bestN {
			best, bestN = item, n
		}
	}
	return best
}
