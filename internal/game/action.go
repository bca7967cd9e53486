package game

import "fmt"

// Action is one of Fold, CheckOrCall or Raise.
type Action interface {
	isAction()
	fmt.Stringer
}

// Fold gives up the hand.
type Fold struct{}

// CheckOrCall matches the current bet, or checks when nothing is owed.
// A player without enough chips calls all-in for less.
type CheckOrCall struct{}

// Raise calls and then puts Amount more chips on top of the call.
type Raise struct {
	Amount int
}

func (Fold) isAction()        {}
func (CheckOrCall) isAction() {}
func (Raise) isAction()       {}

func (Fold) String() string        { return "fold" }
func (CheckOrCall) String() string { return "check or call" }
func (r Raise) String() string     { return fmt.Sprintf("raise %d", r.Amount) }

// ActionRecord is one entry in the hand's action log. Action is the action as
// it took effect: a raise that could not exceed the call is logged as a call.
type ActionRecord struct {
	Seat   int
	Stage  Stage
	Action Action
	Amount int // chips moved into the pot
}

func (r ActionRecord) String() string {
	return fmt.Sprintf("seat %d %s (%d) during %s", r.Seat, r.Action, r.Amount, r.Stage)
}
