package game

import (
	"fmt"
	"slices"
)

// SplitPot is one slice of the pot carved at a contribution tier, and how it
// was paid out. Payouts[i] went to seat Participants[i].
type SplitPot struct {
	Amount       int
	Participants []int
	Payouts      []int
}

// ExecuteShowdown pays the pot to winners, a set of tied best hands. Winners
// that were all-in for less than others only share the tiers they covered;
// chips above the winners' reach go to the remaining un-folded seats as one
// tied group, and anything no live seat matched returns to its owner.
//
// The remaining seats are never ranked against each other, so when more than
// one seat may be all-in, rank every live seat and call SettleRanked instead.
func (t *Table) ExecuteShowdown(winners []int) ([]SplitPot, error) {
	if err := t.checkSettlement("ExecuteShowdown", [][]int{winners}); err != nil {
		return nil, err
	}

	ranking := [][]int{slices.Clone(winners)}
	var rest []int
	for i := range t.players {
		if !t.players[i].folded && !slices.Contains(winners, i) {
			rest = append(rest, i)
		}
	}
	if len(rest) > 0 {
		ranking = append(ranking, rest)
	}
	return t.settle(ranking), nil
}

// SettleRanked pays the pot to ranking, groups of tied seats ordered from the
// best hand down. Each group takes every tier its members covered that a
// better group did not already take. Seats left out of ranking are treated as
// losers.
func (t *Table) SettleRanked(ranking [][]int) ([]SplitPot, error) {
	if err := t.checkSettlement("SettleRanked", ranking); err != nil {
		return nil, err
	}
	groups := make([][]int, 0, len(ranking))
	for _, g := range ranking {
		if len(g) > 0 {
			groups = append(groups, slices.Clone(g))
		}
	}
	return t.settle(groups), nil
}

func (t *Table) checkSettlement(op string, ranking [][]int) error {
	if err := t.requireStage(op, Showdown); err != nil {
		return err
	}

	seen := make(map[int]bool)
	for _, group := range ranking {
		for _, seat := range group {
			switch {
			case !t.validSeat(seat):
				return fmt.Errorf("%w: seat %d out of range", ErrInvalidWinnerSet, seat)
			case t.players[seat].folded:
				return fmt.Errorf("%w: seat %d has folded", ErrInvalidWinnerSet, seat)
			case seen[seat]:
				return fmt.Errorf("%w: seat %d listed twice", ErrInvalidWinnerSet, seat)
			}
			seen[seat] = true
		}
	}
	if len(seen) == 0 {
		return fmt.Errorf("%w: no winners", ErrInvalidWinnerSet)
	}

	if t.activeCount() > 1 && len(t.board) < 5 {
		return fmt.Errorf("%w: %d board cards with %d seats contesting", ErrIncompleteBoard, len(t.board), t.activeCount())
	}
	return nil
}

func (t *Table) settle(ranking [][]int) []SplitPot {
	var pots []SplitPot

	if t.activeCount() == 1 {
		for i := range t.players {
			if !t.players[i].folded {
				pots = append(pots, t.award(t.pot, []int{i}))
			}
		}
		t.finishSettlement(pots)
		return pots
	}

	covered := 0
	for _, group := range ranking {
		for _, limit := range t.tiers(group, covered) {
			amount := 0
			for i := range t.players {
				if c := t.players[i].contribution; c > covered {
					amount += min(limit, c) - covered
				}
			}
			var participants []int
			for _, seat := range group {
				if t.players[seat].contribution >= limit {
					participants = append(participants, seat)
				}
			}
			slices.Sort(participants)
			pots = append(pots, t.award(amount, participants))
			covered = limit
		}
	}

	// Chips beyond every ranked seat's reach go back to whoever put them in.
	for i := range t.players {
		if c := t.players[i].contribution; c > covered {
			pots = append(pots, t.award(c-covered, []int{i}))
		}
	}

	t.finishSettlement(pots)
	return pots
}

// tiers returns the distinct contributions of group above covered, ascending.
func (t *Table) tiers(group []int, covered int) []int {
	var limits []int
	for _, seat := range group {
		if c := t.players[seat].contribution; c > covered && !slices.Contains(limits, c) {
			limits = append(limits, c)
		}
	}
	slices.Sort(limits)
	return limits
}

// award splits amount evenly between participants (ascending seats) and
// credits their stacks. Odd chips go one each to the participants closest
// to the left of the dealer.
func (t *Table) award(amount int, participants []int) SplitPot {
	n := len(t.players)
	share := amount / len(participants)
	remainder := amount % len(participants)

	payouts := make([]int, len(participants))
	for i := range payouts {
		payouts[i] = share
	}

	order := make([]int, len(participants))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return (participants[a]-t.dealer-1+n)%n - (participants[b]-t.dealer-1+n)%n
	})
	for _, idx := range order[:remainder] {
		payouts[idx]++
	}

	for i, seat := range participants {
		t.players[seat].stack += payouts[i]
	}
	return SplitPot{Amount: amount, Participants: participants, Payouts: payouts}
}

func (t *Table) finishSettlement(pots []SplitPot) {
	for _, sp := range pots {
		t.logger.Debug("pot awarded", "hand", t.handNumber, "amount", sp.Amount,
			"seats", sp.Participants, "payouts", sp.Payouts)
	}
	t.setStage(EndOfHand)
}
