package game

import (
	"github.com/lox/holdemtable/poker"
)

// Seat is the starting configuration of one seat at the table.
type Seat struct {
	Name  string
	Stack int
}

// player is the per-seat record. It is only mutated by Table methods.
type player struct {
	name           string
	stack          int
	contribution   int // chips committed this hand, across all rounds
	folded         bool
	sittingOut     bool
	actedThisRound bool
	holeCards      poker.Hand // zero when unknown
}

func (p *player) isAllIn() bool {
	return p.stack == 0 && !p.folded
}

// canAct reports whether the seat can still take betting decisions this hand.
func (p *player) canAct() bool {
	return !p.folded && !p.isAllIn()
}

func (p *player) owes(betToCall int) int {
	if betToCall > p.contribution {
		return betToCall - p.contribution
	}
	return 0
}

func (p *player) mayAct(betToCall int) bool {
	return p.canAct() && (!p.actedThisRound || p.owes(betToCall) > 0)
}

// commit moves amount from the stack into the pot contribution. Both sides
// always change together.
func (p *player) commit(amount int) {
	p.stack -= amount
	p.contribution += amount
}

// resetForHand clears per-hand state. Seats without chips sit the hand out
// and count as folded so they can neither act nor win.
func (p *player) resetForHand() {
	p.contribution = 0
	p.actedThisRound = false
	p.holeCards = 0
	p.sittingOut = p.stack == 0
	p.folded = p.sittingOut
}
