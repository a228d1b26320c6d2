package engine

import "fmt"

// TrackID names one of the bounded numeric tracks on the automa board.
type TrackID string

const (
	TrackCompetition   TrackID = "competition"
	TrackRecruitTrain  TrackID = "recruit_train"
	TrackPriceDistance TrackID = "price_distance"
	TrackWaitresses    TrackID = "waitresses"
)

// Track bounds. Moves past either end clamp; callers that care whether a
// move was clamped check the return of Move.
const (
	recruitTrainMin  = 1
	recruitTrainMax  = 4
	priceDistanceMin = 6
	priceDistanceMax = 10
	waitressesMin    = 0
	waitressesMax    = 4
	competitionMin   = int(CompetitionCold)
	competitionMax   = int(CompetitionHot)
)

// recruitTrainRow is one row of the recruit & train lookup table: how many
// card slots execute and what the food multiplier is at that position.
type recruitTrainRow struct {
	Slots      int
	Multiplier int
}

var recruitTrainTable = map[int]recruitTrainRow{
	1: {Slots: 1, Multiplier: 2},
	2: {Slots: 2, Multiplier: 3},
	3: {Slots: 3, Multiplier: 4},
	4: {Slots: 4, Multiplier: 5},
}

// Tracks holds the automa's four board tracks.
type Tracks struct {
	Competition   CompetitionLevel `json:"competition"`
	RecruitTrain  int              `json:"recruit_train"`
	PriceDistance int              `json:"price_distance"`
	Waitresses    int              `json:"waitresses"`
}

// NewTracks returns tracks at their game-start positions.
func NewTracks() *Tracks {
	return &Tracks{
		Competition:   CompetitionNeutral,
		RecruitTrain:  recruitTrainMin,
		PriceDistance: priceDistanceMax,
		Waitresses:    waitressesMin,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Move shifts the named track by delta, clamping at its bounds. It returns
// the new position and whether the full delta was applied.
func (t *Tracks) Move(id TrackID, delta int) (int, bool, error) {
	switch id {
	case TrackCompetition:
		want := int(t.Competition) + delta
		got := clamp(want, competitionMin, competitionMax)
		t.Competition = CompetitionLevel(got)
		return got, got == want, nil
	case TrackRecruitTrain:
		want := t.RecruitTrain + delta
		t.RecruitTrain = clamp(want, recruitTrainMin, recruitTrainMax)
		return t.RecruitTrain, t.RecruitTrain == want, nil
	case TrackPriceDistance:
		want := t.PriceDistance + delta
		t.PriceDistance = clamp(want, priceDistanceMin, priceDistanceMax)
		return t.PriceDistance, t.PriceDistance == want, nil
	case TrackWaitresses:
		want := t.Waitresses + delta
		t.Waitresses = clamp(want, waitressesMin, waitressesMax)
		return t.Waitresses, t.Waitresses == want, nil
	default:
		return 0, false, fmt.Errorf("%w: unknown track %q", ErrValidation, id)
	}
}

// The recruit & train marker crossing between these positions forces an
// action deck reshuffle.
const (
	shuffleBoundaryLow  = 2
	shuffleBoundaryHigh = 3
)

// MoveRecruitTrain shifts the recruit & train track like Move and also
// reports whether the marker crossed the shuffle boundary, in either
// direction.
func (t *Tracks) MoveRecruitTrain(delta int) (int, bool) {
	old := t.RecruitTrain
	t.RecruitTrain = clamp(old+delta, recruitTrainMin, recruitTrainMax)
	crossed := (old <= shuffleBoundaryLow && t.RecruitTrain >= shuffleBoundaryHigh) ||
		(old >= shuffleBoundaryHigh && t.RecruitTrain <= shuffleBoundaryLow)
	return t.RecruitTrain, crossed
}

// Set places the named track at an absolute position. Out-of-range
// positions are rejected rather than clamped.
func (t *Tracks) Set(id TrackID, pos int) error {
	switch id {
	case TrackCompetition:
		if pos < competitionMin || pos > competitionMax {
			return fmt.Errorf("%w: competition position %d out of range [%d,%d]", ErrValidation, pos, competitionMin, competitionMax)
		}
		t.Competition = CompetitionLevel(pos)
	case TrackRecruitTrain:
		if pos < recruitTrainMin || pos > recruitTrainMax {
			return fmt.Errorf("%w: recruit_train position %d out of range [%d,%d]", ErrValidation, pos, recruitTrainMin, recruitTrainMax)
		}
		t.RecruitTrain = pos
	case TrackPriceDistance:
		if pos < priceDistanceMin || pos > priceDistanceMax {
			return fmt.Errorf("%w: price_distance position %d out of range [%d,%d]", ErrValidation, pos, priceDistanceMin, priceDistanceMax)
		}
		t.PriceDistance = pos
	case TrackWaitresses:
		if pos < waitressesMin || pos > waitressesMax {
			return fmt.Errorf("%w: waitresses position %d out of range [%d,%d]", ErrValidation, pos, waitressesMin, waitressesMax)
		}
		t.Waitresses = pos
	default:
		return fmt.Errorf("%w: unknown track %q", ErrValidation, id)
	}
	return nil
}

// RecruitRow returns the active recruit & train table row for the current
// track position.
func (t *Tracks) RecruitRow() recruitTrainRow {
	return recruitTrainTable[t.RecruitTrain]
}
