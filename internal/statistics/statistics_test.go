package statistics

import (
	"context"
	"math"
	"testing"

	"github.com/lox/holdemtable/internal/engine"
	"github.com/lox/holdemtable/internal/game"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}
	stats.Add(1.0, false)
	stats.Add(-2.0, true)
	stats.Add(3.0, true)
	stats.Add(0.0, false)
	stats.Add(-1.0, false)

	if stats.Hands != 5 {
		t.Errorf("Expected 5 hands, got %d", stats.Hands)
	}
	if math.Abs(stats.Mean()-0.2) > 1e-9 {
		t.Errorf("Expected mean of 0.2, got %f", stats.Mean())
	}
	// squares sum to 15, so (15 - 5*0.04) / 4
	if math.Abs(stats.Variance()-3.7) > 1e-9 {
		t.Errorf("Expected variance of 3.7, got %f", stats.Variance())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0, got %f", stats.Median())
	}
	if stats.ShowdownWins != 1 || stats.NonShowdownWins != 1 {
		t.Errorf("Expected 1 showdown and 1 non-showdown win, got %d and %d", stats.ShowdownWins, stats.NonShowdownWins)
	}
	if stats.ShowdownBB != 1.0 || stats.NonShowdownBB != 0.0 {
		t.Errorf("Expected 1.0 showdown and 0.0 non-showdown bb, got %f and %f", stats.ShowdownBB, stats.NonShowdownBB)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{5, 1, 4, 2, 3} {
		stats.Add(v, false)
	}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.25, 2},
		{0.5, 3},
		{0.9, 4.6},
		{1, 5},
	}
	for _, tt := range tests {
		if got := stats.Percentile(tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Percentile(%v) = %f, want %f", tt.p, got, tt.want)
		}
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := &Statistics{}
	for i := range 100 {
		stats.Add(float64(i%2)*2-1, false)
	}

	low, high := stats.ConfidenceInterval95()
	if low >= 0 || high <= 0 {
		t.Errorf("Expected interval around 0, got [%f, %f]", low, high)
	}
	if math.Abs((high-low)/2-1.96*stats.StdError()) > 1e-9 {
		t.Errorf("Expected half width of 1.96 standard errors, got %f", (high-low)/2)
	}
}

func playFoldOut(t *testing.T) *engine.HandResult {
	t.Helper()
	tbl, err := game.NewTable([]game.Seat{
		{Name: "alice", Stack: 1000},
		{Name: "bob", Stack: 1000},
		{Name: "carol", Stack: 1000},
	}, 0, 5, 10)
	if err != nil {
		t.Fatal(err)
	}
	fold := engine.FoldAgent{}
	e, err := engine.New(tbl, engine.NewScriptedSource(engine.Script{
		Holes: map[int]string{0: "7c2d"},
	}), []engine.Agent{fold, fold, fold})
	if err != nil {
		t.Fatal(err)
	}
	result, err := e.PlayHand(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestSession_Add(t *testing.T) {
	session := NewSession(3, 10)
	session.Add(playFoldOut(t))

	want := []float64{0, -0.5, 0.5}
	for seat, st := range session.Seats {
		if st.Hands != 1 {
			t.Errorf("seat %d: expected 1 hand, got %d", seat, st.Hands)
		}
		if st.SumBB != want[seat] {
			t.Errorf("seat %d: expected %.1f bb, got %f", seat, want[seat], st.SumBB)
		}
		if st.ShowdownBB != 0 {
			t.Errorf("seat %d: expected no showdown result, got %f", seat, st.ShowdownBB)
		}
	}
	if session.Seats[2].NonShowdownWins != 1 {
		t.Errorf("Expected the big blind to win without showdown, got %d", session.Seats[2].NonShowdownWins)
	}
	if session.MaxPot != 15 {
		t.Errorf("Expected max pot of 15, got %d", session.MaxPot)
	}
	if err := session.Validate(); err != nil {
		t.Errorf("Expected valid session, got %v", err)
	}
}

func TestSession_SkipsEmptySeats(t *testing.T) {
	session := NewSession(3, 10)
	session.Add(&engine.HandResult{
		StartingStacks: []int{100, 0, 100},
		Stacks:         []int{110, 0, 90},
	})

	if session.Seats[1].Hands != 0 {
		t.Errorf("Expected an empty seat to be skipped, got %d hands", session.Seats[1].Hands)
	}
	if session.Seats[0].SumBB != 1 || session.Seats[2].SumBB != -1 {
		t.Errorf("Expected +1/-1 bb, got %f/%f", session.Seats[0].SumBB, session.Seats[2].SumBB)
	}
}

func TestSession_Validate(t *testing.T) {
	t.Run("not zero sum", func(t *testing.T) {
		session := NewSession(2, 10)
		session.Seats[0].Add(1, false)
		if err := session.Validate(); err == nil {
			t.Error("Expected an error for a session that gained chips")
		}
	})

	t.Run("ledger mismatch", func(t *testing.T) {
		session := NewSession(2, 10)
		session.Seats[0].Add(1, false)
		session.Seats[1].Add(-1, true)
		session.Seats[1].ShowdownBB = 0
		if err := session.Validate(); err == nil {
			t.Error("Expected an error for a ledger mismatch")
		}
	})

	t.Run("too many wins", func(t *testing.T) {
		session := NewSession(1, 10)
		session.Seats[0].ShowdownWins = 1
		if err := session.Validate(); err == nil {
			t.Error("Expected an error for wins without hands")
		}
	})
}
