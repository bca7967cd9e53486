package game

import (
	"github.com/lox/holdemtable/poker"
)

// PlayerState is a read-only copy of one seat.
type PlayerState struct {
	Seat           int
	Name           string
	Stack          int
	Contribution   int
	Folded         bool
	SittingOut     bool
	AllIn          bool
	ActedThisRound bool
	MayAct         bool
	AmountToCall   int
	HoleCards      poker.Hand // zero when unknown
}

// Snapshot is a deep copy of the table, safe to keep and hand to other
// goroutines while the table moves on.
type Snapshot struct {
	HandNumber   int
	Stage        Stage
	Pot          int
	BetToCall    int
	Dealer       int
	ActingPlayer int // -1 outside betting stages
	SmallBlind   int
	BigBlind     int
	Board        []poker.Card
	Players      []PlayerState
	History      []ActionRecord
}

// Snapshot copies the current table state.
func (t *Table) Snapshot() Snapshot {
	s := Snapshot{
		HandNumber:   t.handNumber,
		Stage:        t.stage,
		Pot:          t.pot,
		BetToCall:    t.betToCall,
		Dealer:       t.dealer,
		ActingPlayer: t.ActingPlayer(),
		SmallBlind:   t.smallBlind,
		BigBlind:     t.bigBlind,
		Board:        t.Board(),
		Players:      make([]PlayerState, len(t.players)),
		History:      t.History(),
	}
	for i := range t.players {
		p := &t.players[i]
		s.Players[i] = PlayerState{
			Seat:           i,
			Name:           p.name,
			Stack:          p.stack,
			Contribution:   p.contribution,
			Folded:         p.folded,
			SittingOut:     p.sittingOut,
			AllIn:          p.isAllIn(),
			ActedThisRound: p.actedThisRound,
			MayAct:         t.mayAct(i),
			AmountToCall:   t.AmountToCall(i),
			HoleCards:      p.holeCards,
		}
	}
	return s
}

// BoardHand returns the board as a card set.
func (s Snapshot) BoardHand() poker.Hand {
	return poker.NewHand(s.Board...)
}

// ActiveSeats returns the seats that have not folded, in seat order.
func (s Snapshot) ActiveSeats() []int {
	var seats []int
	for _, p := range s.Players {
		if !p.Folded {
			seats = append(seats, p.Seat)
		}
	}
	return seats
}

// KnownCards returns the board plus every recorded hole card.
func (s Snapshot) KnownCards() poker.Hand {
	known := s.BoardHand()
	for _, p := range s.Players {
		known |= p.HoleCards
	}
	return known
}
