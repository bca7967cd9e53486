// Package game implements the table state machine for one no-limit Texas
// Hold'em hand at a time: blinds, turn order, betting and side-pot settlement.
//
// The main type is Table. It owns every seat's money and is only changed
// through its mutators; an orchestrator drives it by reading the current
// stage and feeding it cards or actions.
//
// # Basic Usage
//
//	t, err := game.NewTable([]game.Seat{
//	    {Name: "Alice", Stack: 1000},
//	    {Name: "Bob", Stack: 1000},
//	    {Name: "Charlie", Stack: 1000},
//	}, 0, 5, 10)
//	// Blinds are posted, the table waits for pocket cards.
//	t.SetPocketCards(0, [2]poker.Card{poker.MustParseCard("As"), poker.MustParseCard("Kd")})
//	// Betting: the acting seat responds.
//	t.ApplyAction(game.Raise{Amount: 20})
//	t.ApplyAction(game.CheckOrCall{})
//	t.ApplyAction(game.Fold{})
//	// Deal the board as the stages ask for it.
//	t.SetFlop(...)
//	// At Showdown, settle with the winning seats.
//	pots, err := t.ExecuteShowdown([]int{0})
//
// # Stages
//
// A hand walks PostBlinds, DealPocketCards, PreFlopBetting, DealFlop,
// FlopBetting, DealTurn, TurnBetting, DealRiver, RiverBetting, Showdown and
// EndOfHand. When all but one seat fold the table jumps to Showdown; when
// nobody is left to bet the remaining betting stages are skipped and only the
// board is dealt.
//
// # Errors
//
// Calling a mutator in the wrong stage returns a *StageError wrapping
// ErrIllegalStageTransition (or ErrIllegalAction for ApplyAction). Failed
// calls never change the table.
package game
