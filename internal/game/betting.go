package game

import (
	"fmt"
)

// ApplyAction applies a for the acting seat, then hands the turn to the next
// seat that may act or closes the betting round.
//
// A Raise puts the call plus Amount into the pot, capped by the stack. Only
// the part above the call counts as a raise: when the seat cannot get beyond
// the call the action is treated as a (possibly short all-in) call and nobody
// is asked to act again.
func (t *Table) ApplyAction(a Action) error {
	if !t.stage.IsBetting() {
		return &StageError{Op: "ApplyAction", Stage: t.stage, Required: bettingStages, Err: ErrIllegalAction}
	}

	pos := t.acting
	p := &t.players[pos]
	record := ActionRecord{Seat: pos, Stage: t.stage, Action: a}

	switch a := a.(type) {
	case Fold:
		p.folded = true

	case CheckOrCall:
		record.Amount = min(p.stack, p.owes(t.betToCall))
		t.commit(pos, record.Amount)
		p.actedThisRound = true

	case Raise:
		if a.Amount < 0 {
			return fmt.Errorf("%w: negative raise %d", ErrIllegalAction, a.Amount)
		}
		call := p.owes(t.betToCall)
		record.Amount = min(p.stack, call+a.Amount)
		raised := record.Amount - call
		t.commit(pos, record.Amount)
		p.actedThisRound = true

		if raised > 0 {
			t.betToCall += raised
			t.reopenAction(pos)
			record.Action = Raise{Amount: raised}
		} else {
			record.Action = CheckOrCall{}
		}

	default:
		return fmt.Errorf("%w: unknown action %T", ErrIllegalAction, a)
	}

	t.history = append(t.history, record)
	t.logger.Debug("action", "hand", t.handNumber, "seat", pos, "player", p.name,
		"action", record.Action, "amount", record.Amount, "pot", t.pot, "to_call", t.betToCall)

	if t.activeCount() < 2 || !t.electNextActor() {
		t.closeBettingRound()
	}
	return nil
}

// reopenAction clears the acted flag of every other seat still able to bet,
// so a live raise has to be answered.
func (t *Table) reopenAction(raiser int) {
	for i := range t.players {
		if i == raiser {
			continue
		}
		if t.players[i].canAct() {
			t.players[i].actedThisRound = false
		}
	}
}
