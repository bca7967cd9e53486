package game

import (
	"testing"

	"github.com/lox/holdemtable/internal/randutil"
	"github.com/lox/holdemtable/poker"
)

// TestRandomHandsConserveChips plays many hands with random actions and
// checks the table invariants between every step.
func TestRandomHandsConserveChips(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 20; seed++ {
		rng := randutil.New(seed)
		stacks := []int{200, 350, 80, 1000, 45, 600}[:2+rng.IntN(5)]
		tbl, err := NewTable(seats(stacks...), rng.IntN(len(stacks)), 5, 10)
		if err != nil {
			t.Fatalf("seed %d: NewTable failed: %v", seed, err)
		}
		total := tbl.TotalChips()

		for hand := 0; hand < 30; hand++ {
			deck := poker.NewDeck(rng)
			for steps := 0; tbl.Stage() != EndOfHand; steps++ {
				if steps > 1000 {
					t.Fatalf("seed %d hand %d: stuck in %s", seed, hand, tbl.Stage())
				}

				switch stage := tbl.Stage(); {
				case stage == DealPocketCards:
					for seat := range tbl.NumSeats() {
						if !tbl.Snapshot().Players[seat].SittingOut {
							c := deck.Deal(2)
							if err := tbl.SetPocketCards(seat, [2]poker.Card{c[0], c[1]}); err != nil {
								t.Fatal(err)
							}
						}
					}
				case stage == DealFlop:
					c := deck.Deal(3)
					if err := tbl.SetFlop([3]poker.Card{c[0], c[1], c[2]}); err != nil {
						t.Fatal(err)
					}
				case stage == DealTurn:
					if err := tbl.SetTurn(deck.DealOne()); err != nil {
						t.Fatal(err)
					}
				case stage == DealRiver:
					if err := tbl.SetRiver(deck.DealOne()); err != nil {
						t.Fatal(err)
					}
				case stage.IsBetting():
					acting := tbl.ActingPlayer()
					if !tbl.MayAct(acting) {
						t.Fatalf("seed %d: elected seat %d may not act", seed, acting)
					}
					if err := tbl.ApplyAction(randomAction(rng.IntN(10), rng.IntN(120))); err != nil {
						t.Fatal(err)
					}
				case stage == Showdown:
					active := tbl.Snapshot().ActiveSeats()
					if len(active) > 1 && len(tbl.Board()) != 5 {
						t.Fatalf("seed %d: contested showdown with %d board cards", seed, len(tbl.Board()))
					}
					winners := active[:1+rng.IntN(len(active))]
					pot := tbl.Pot()
					pots, err := tbl.ExecuteShowdown(winners)
					if err != nil {
						t.Fatal(err)
					}
					if _, paid := sumPayouts(pots); paid != pot {
						t.Fatalf("seed %d: paid %d of pot %d", seed, paid, pot)
					}
				}

				if tbl.Pot() != contributionSum(tbl) {
					t.Fatalf("seed %d: pot %d != contributions %d", seed, tbl.Pot(), contributionSum(tbl))
				}
				if tbl.TotalChips() != total {
					t.Fatalf("seed %d: total chips %d, started with %d", seed, tbl.TotalChips(), total)
				}
				for _, p := range tbl.Snapshot().Players {
					if p.Stack < 0 {
						t.Fatalf("seed %d: seat %d has negative stack %d", seed, p.Seat, p.Stack)
					}
				}
			}

			if err := tbl.NextHand(); err != nil {
				break
			}
		}
	}
}

func randomAction(kind, amount int) Action {
	switch {
	case kind == 0:
		return Fold{}
	case kind < 7:
		return CheckOrCall{}
	default:
		return Raise{Amount: amount}
	}
}
