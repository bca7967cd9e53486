package game

// Stage is a phase of the hand in the fixed Texas Hold'em sequence.
type Stage int

const (
	PostBlinds Stage = iota
	DealPocketCards
	PreFlopBetting
	DealFlop
	FlopBetting
	DealTurn
	TurnBetting
	DealRiver
	RiverBetting
	Showdown
	EndOfHand
)

var stageNames = [...]string{
	"post_blinds",
	"deal_pocket_cards",
	"pre_flop_betting",
	"deal_flop",
	"flop_betting",
	"deal_turn",
	"turn_betting",
	"deal_river",
	"river_betting",
	"showdown",
	"end_of_hand",
}

func (s Stage) String() string {
	if s < PostBlinds || s > EndOfHand {
		return "unknown"
	}
	return stageNames[s]
}

// IsBetting reports whether players act during s.
func (s Stage) IsBetting() bool {
	switch s {
	case PreFlopBetting, FlopBetting, TurnBetting, RiverBetting:
		return true
	}
	return false
}

// IsDeal reports whether s waits for cards.
func (s Stage) IsDeal() bool {
	switch s {
	case DealPocketCards, DealFlop, DealTurn, DealRiver:
		return true
	}
	return false
}

// CardsToDeal is the number of cards a deal stage consumes: two per seat
// for pocket cards, three for the flop and one each for turn and river.
func (s Stage) CardsToDeal() int {
	switch s {
	case DealPocketCards:
		return 2
	case DealFlop:
		return 3
	case DealTurn, DealRiver:
		return 1
	}
	return 0
}

// Next returns the stage that follows s in the fixed sequence.
func (s Stage) Next() Stage {
	if s >= EndOfHand {
		return EndOfHand
	}
	return s + 1
}

var bettingStages = []Stage{PreFlopBetting, FlopBetting, TurnBetting, RiverBetting}
