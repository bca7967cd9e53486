package game

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lox/holdemtable/poker"
)

func TestCheckAroundClosesRound(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, 0, 1000, 1000, 1000)
	dealBoard(t, tbl)

	// UTG calls, small blind completes, big blind checks.
	mustApply(t, tbl, CheckOrCall{}, CheckOrCall{}, CheckOrCall{})

	if tbl.Stage() != DealFlop {
		t.Fatalf("expected DealFlop, got %s", tbl.Stage())
	}
	if tbl.Pot() != 30 {
		t.Errorf("expected pot 30, got %d", tbl.Pot())
	}
	for seat := range 3 {
		if !tbl.MayAct(seat) {
			t.Errorf("flags should be cleared for the next round, seat %d cannot act", seat)
		}
	}

	dealBoard(t, tbl)
	if tbl.Stage() != FlopBetting {
		t.Fatalf("expected FlopBetting, got %s", tbl.Stage())
	}
	if tbl.ActingPlayer() != 1 {
		t.Errorf("first seat after the dealer should open the flop, got %d", tbl.ActingPlayer())
	}
}

func TestRaiseReopensAction(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, 0, 1000, 1000, 1000)
	dealBoard(t, tbl)

	mustApply(t, tbl, CheckOrCall{})
	// Small blind owes 5 and raises 20 on top.
	mustApply(t, tbl, Raise{Amount: 20})

	if tbl.BetToCall() != 30 {
		t.Errorf("expected bet to call 30, got %d", tbl.BetToCall())
	}
	snap := tbl.Snapshot()
	for _, seat := range []int{0, 2} {
		if snap.Players[seat].ActedThisRound {
			t.Errorf("seat %d should have to act again after a live raise", seat)
		}
		if !snap.Players[seat].MayAct {
			t.Errorf("seat %d should be allowed to act", seat)
		}
	}
	if !snap.Players[1].ActedThisRound {
		t.Error("raiser keeps its acted flag")
	}
	if tbl.ActingPlayer() != 2 {
		t.Errorf("expected big blind to act next, got %d", tbl.ActingPlayer())
	}

	mustApply(t, tbl, CheckOrCall{}, CheckOrCall{})
	if tbl.Stage() != DealFlop {
		t.Fatalf("expected DealFlop after calls, got %s", tbl.Stage())
	}
	if tbl.Pot() != 90 {
		t.Errorf("expected pot 90, got %d", tbl.Pot())
	}
}

func TestShortAllInRaiseDoesNotReopen(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, 0, 1000, 1000, 25)
	dealBoard(t, tbl)

	mustApply(t, tbl, Raise{Amount: 40}) // seat 0 to 50
	mustApply(t, tbl, CheckOrCall{})     // seat 1 calls

	// Seat 2 has 15 behind and owes 40: its raise is only an all-in call.
	mustApply(t, tbl, Raise{Amount: 100})

	history := tbl.History()
	last := history[len(history)-1]
	if _, ok := last.Action.(CheckOrCall); !ok {
		t.Errorf("short all-in raise should be logged as a call, got %v", last.Action)
	}
	if last.Amount != 15 {
		t.Errorf("expected 15 chips moved, got %d", last.Amount)
	}
	if tbl.BetToCall() != 50 {
		t.Errorf("bet to call should stay 50, got %d", tbl.BetToCall())
	}
	// Nobody had to respond, so the round is over.
	if tbl.Stage() != DealFlop {
		t.Fatalf("expected DealFlop, got %s", tbl.Stage())
	}
	if tbl.Pot() != 125 {
		t.Errorf("expected pot 125, got %d", tbl.Pot())
	}
}

func TestAllInRaiseAboveCallReopens(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, 0, 1000, 1000, 60)
	dealBoard(t, tbl)

	mustApply(t, tbl, Raise{Amount: 20}) // seat 0 to 30
	mustApply(t, tbl, CheckOrCall{})     // seat 1 calls 25
	mustApply(t, tbl, Raise{Amount: 500})

	// Seat 2 had 50 behind, 20 to call: 30 is a live raise.
	if tbl.BetToCall() != 60 {
		t.Fatalf("expected bet to call 60, got %d", tbl.BetToCall())
	}
	if !tbl.MayAct(0) || !tbl.MayAct(1) {
		t.Error("both callers should have to act again")
	}
	if tbl.MayAct(2) {
		t.Error("all-in raiser cannot act")
	}
	if tbl.ActingPlayer() != 0 {
		t.Errorf("expected seat 0 to act next, got %d", tbl.ActingPlayer())
	}
}

func TestShortCallGoesAllIn(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, 0, 1000, 1000, 100)
	dealBoard(t, tbl)

	mustApply(t, tbl, Raise{Amount: 290}) // seat 0 to 300
	mustApply(t, tbl, Fold{})
	mustApply(t, tbl, CheckOrCall{}) // seat 2 calls all-in for 90 more

	snap := tbl.Snapshot()
	if !snap.Players[2].AllIn || snap.Players[2].Contribution != 100 {
		t.Errorf("seat 2 should be all-in for 100, got %+v", snap.Players[2])
	}
	if tbl.Pot() != 405 {
		t.Errorf("expected pot 405, got %d", tbl.Pot())
	}
	if tbl.ActingCapablePlayerCount() != 1 {
		t.Errorf("expected one seat able to act, got %d", tbl.ActingCapablePlayerCount())
	}
}

func TestFoldToOneEndsBetting(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, 0, 1000, 1000, 1000)
	dealBoard(t, tbl)
	mustApply(t, tbl, CheckOrCall{}, CheckOrCall{}, CheckOrCall{})
	dealBoard(t, tbl)

	mustApply(t, tbl, Raise{Amount: 50}, Fold{}, Fold{})

	if tbl.Stage() != Showdown {
		t.Fatalf("expected Showdown, got %s", tbl.Stage())
	}
	if tbl.ActivePlayerCount() != 1 {
		t.Errorf("expected 1 active seat, got %d", tbl.ActivePlayerCount())
	}
	if tbl.ActingPlayer() != -1 {
		t.Errorf("nobody acts at showdown, got %d", tbl.ActingPlayer())
	}
}

func TestAllInSkipsRemainingBetting(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, 0, 1000, 200, 200)
	dealBoard(t, tbl)
	mustApply(t, tbl, CheckOrCall{}, CheckOrCall{}, CheckOrCall{})
	dealBoard(t, tbl)

	// On the flop seat 1 shoves, seat 2 calls all-in, seat 0 calls.
	mustApply(t, tbl, Raise{Amount: 190}, CheckOrCall{}, CheckOrCall{})
	if tbl.Stage() != DealTurn {
		t.Fatalf("expected DealTurn, got %s", tbl.Stage())
	}

	if err := tbl.SetTurn(poker.MustParseCard("Js")); err != nil {
		t.Fatal(err)
	}
	if tbl.Stage() != DealRiver {
		t.Fatalf("turn betting should be skipped, got %s", tbl.Stage())
	}
	if err := tbl.SetRiver(poker.MustParseCard("3d")); err != nil {
		t.Fatal(err)
	}
	if tbl.Stage() != Showdown {
		t.Fatalf("river betting should be skipped, got %s", tbl.Stage())
	}
	if tbl.Pot() != 600 {
		t.Errorf("expected pot 600, got %d", tbl.Pot())
	}
}

func TestApplyActionOutsideBetting(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, 0, 1000, 1000, 1000)
	before := tbl.Snapshot()

	err := tbl.ApplyAction(CheckOrCall{})
	if !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("expected ErrIllegalAction, got %v", err)
	}
	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("expected *StageError, got %T", err)
	}
	if stageErr.Stage != DealPocketCards {
		t.Errorf("error should name the current stage, got %s", stageErr.Stage)
	}
	if !reflect.DeepEqual(before, tbl.Snapshot()) {
		t.Error("failed action changed the table")
	}
}

func TestNegativeRaiseRejected(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, 0, 1000, 1000, 1000)
	dealBoard(t, tbl)
	before := tbl.Snapshot()

	if err := tbl.ApplyAction(Raise{Amount: -5}); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("expected ErrIllegalAction, got %v", err)
	}
	if !reflect.DeepEqual(before, tbl.Snapshot()) {
		t.Error("failed action changed the table")
	}
}

func TestZeroRaiseIsACall(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, 0, 1000, 1000, 1000)
	dealBoard(t, tbl)

	mustApply(t, tbl, Raise{Amount: 0})
	history := tbl.History()
	last := history[len(history)-1]
	if _, ok := last.Action.(CheckOrCall); !ok {
		t.Errorf("raise of 0 should be logged as a call, got %v", last.Action)
	}
	if tbl.BetToCall() != 10 {
		t.Errorf("bet to call should stay 10, got %d", tbl.BetToCall())
	}
}

func TestElectedActorMayAct(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, 2, 500, 1000, 40, 1000, 1000)
	dealBoard(t, tbl)

	script := []Action{
		Raise{Amount: 30}, CheckOrCall{}, Raise{Amount: 100}, Fold{}, CheckOrCall{},
		CheckOrCall{}, CheckOrCall{},
	}
	for _, a := range script {
		if !tbl.Stage().IsBetting() {
			break
		}
		acting := tbl.ActingPlayer()
		if !tbl.MayAct(acting) {
			t.Fatalf("elected seat %d may not act", acting)
		}
		mustApply(t, tbl, a)
		if tbl.Pot() != contributionSum(tbl) {
			t.Fatalf("pot %d != contributions %d", tbl.Pot(), contributionSum(tbl))
		}
	}
}
