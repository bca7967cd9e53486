package game

import (
	"fmt"

	"github.com/lox/holdemtable/poker"
)

// SetPocketCards records the hole cards of seat. It may be called in any
// stage, for any seat, including folded ones and after the hand has ended.
// While the table waits for pocket cards, the first call completes the deal
// and opens pre-flop betting.
func (t *Table) SetPocketCards(seat int, cards [2]poker.Card) error {
	if !t.validSeat(seat) {
		return fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	t.players[seat].holeCards = poker.NewHand(cards[0], cards[1])
	t.logger.Debug("pocket cards set", "seat", seat)

	if t.stage == DealPocketCards {
		t.enterBetting(PreFlopBetting)
	}
	return nil
}

// SetFlop deals the first three board cards.
func (t *Table) SetFlop(cards [3]poker.Card) error {
	if err := t.requireStage("SetFlop", DealFlop); err != nil {
		return err
	}
	t.board = append(t.board, cards[:]...)
	t.logger.Debug("flop dealt", "board", poker.FormatCards(t.board))
	t.enterBetting(FlopBetting)
	return nil
}

// SetTurn deals the fourth board card.
func (t *Table) SetTurn(card poker.Card) error {
	if err := t.requireStage("SetTurn", DealTurn); err != nil {
		return err
	}
	t.board = append(t.board, card)
	t.logger.Debug("turn dealt", "board", poker.FormatCards(t.board))
	t.enterBetting(TurnBetting)
	return nil
}

// SetRiver deals the fifth board card.
func (t *Table) SetRiver(card poker.Card) error {
	if err := t.requireStage("SetRiver", DealRiver); err != nil {
		return err
	}
	t.board = append(t.board, card)
	t.logger.Debug("river dealt", "board", poker.FormatCards(t.board))
	t.enterBetting(RiverBetting)
	return nil
}
