package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIllegalStageTransition is returned when a dealing or settlement
	// mutator is called outside the stage it requires.
	ErrIllegalStageTransition = errors.New("illegal stage transition")
	// ErrIllegalAction is returned when a betting action cannot be applied.
	ErrIllegalAction = errors.New("illegal action")
	// ErrInvalidWinnerSet is returned when settlement is asked to pay an
	// empty, out of range or folded set of seats.
	ErrInvalidWinnerSet = errors.New("invalid winner set")
	// ErrIncompleteBoard is returned when a contested showdown is settled
	// before all five board cards are known.
	ErrIncompleteBoard = errors.New("incomplete board")
	// ErrInvalidSetup is returned when seats, dealer or blinds cannot form a table.
	ErrInvalidSetup = errors.New("invalid table setup")
	// ErrInvalidSeat is returned for a seat index outside the table, or a
	// seat that cannot take part in the requested operation.
	ErrInvalidSeat = errors.New("invalid seat")
	// ErrNotEnoughPlayers is returned by NextHand when fewer than two seats
	// have chips.
	ErrNotEnoughPlayers = errors.New("not enough players with chips")
)

// StageError reports a mutator called from the wrong stage.
type StageError struct {
	Op       string
	Stage    Stage
	Required []Stage
	Err      error
}

func (e *StageError) Error() string {
	required := make([]string, len(e.Required))
	for i, s := range e.Required {
		required[i] = s.String()
	}
	return fmt.Sprintf("%s: %v: called in stage %s, requires %s",
		e.Op, e.Err, e.Stage, strings.Join(required, " or "))
}

func (e *StageError) Unwrap() error { return e.Err }
