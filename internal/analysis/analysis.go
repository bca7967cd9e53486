// Package analysis annotates a decision for the acting seat with its equity
// against the other live hands and the price of calling. It never changes
// what the seat is allowed to do.
package analysis

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdemtable/internal/evaluator"
	"github.com/lox/holdemtable/internal/game"
	"github.com/lox/holdemtable/poker"
)

// Oracle returns win probabilities for hands, aligned by index. A zero hand
// is an unknown hand.
type Oracle interface {
	Equities(ctx context.Context, hands []poker.Hand, board poker.Hand) ([]float64, error)
}

// Analysis is what a decision maker is shown before acting.
type Analysis struct {
	Seat         int
	Equities     []float64 // per seat, zero for folded seats
	Equity       float64
	AmountToCall int
	PotOdds      float64                // share of the final pot the call would be
	PotEquity    float64                // equity times the pot after calling, in chips
	Hand         string                 // hand class once five cards are known
	Category     poker.HoleCardCategory // pre-flop only
	Elapsed      time.Duration
}

// Profitable reports whether the seat's equity covers the price of calling.
func (a Analysis) Profitable() bool {
	return a.Equity >= a.PotOdds
}

// Analyzer runs the oracle for table snapshots.
type Analyzer struct {
	oracle  Oracle
	clock   quartz.Clock
	timeout time.Duration
	logger  *log.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock replaces the real clock, for tests.
func WithClock(clock quartz.Clock) Option {
	return func(a *Analyzer) { a.clock = clock }
}

// WithTimeout bounds each oracle call. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) { a.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// New returns an analyzer backed by oracle.
func New(oracle Oracle, opts ...Option) *Analyzer {
	a := &Analyzer{
		oracle: oracle,
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze computes the analysis for seat. Every un-folded seat is passed to
// the oracle, with unknown hole cards standing for random hands.
func (a *Analyzer) Analyze(ctx context.Context, s game.Snapshot, seat int) (Analysis, error) {
	if seat < 0 || seat >= len(s.Players) {
		return Analysis{}, fmt.Errorf("%w: %d", game.ErrInvalidSeat, seat)
	}
	if s.Players[seat].Folded {
		return Analysis{}, fmt.Errorf("%w: seat %d has folded", game.ErrInvalidSeat, seat)
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		timer := a.clock.AfterFunc(a.timeout, cancel)
		defer timer.Stop()
	}

	active := s.ActiveSeats()
	hands := make([]poker.Hand, len(active))
	for i, p := range active {
		hands[i] = s.Players[p].HoleCards
	}

	start := a.clock.Now()
	equities, err := a.oracle.Equities(ctx, hands, s.BoardHand())
	if err != nil {
		return Analysis{}, fmt.Errorf("equities for seat %d: %w", seat, err)
	}
	elapsed := a.clock.Since(start)

	result := Analysis{
		Seat:         seat,
		Equities:     make([]float64, len(s.Players)),
		AmountToCall: s.Players[seat].AmountToCall,
		Hand:         evaluator.Describe(s.Players[seat].HoleCards, s.Board),
		Elapsed:      elapsed,
	}
	for i, p := range active {
		result.Equities[p] = equities[i]
	}
	result.Equity = result.Equities[seat]
	if len(s.Board) == 0 {
		result.Category = s.Players[seat].HoleCards.Category()
	}
	result.PotOdds = PotOdds(s.Pot, result.AmountToCall)
	result.PotEquity = result.Equity * float64(s.Pot+result.AmountToCall)

	a.logger.Debug("analysis", "seat", seat, "equity", result.Equity,
		"pot_odds", result.PotOdds, "elapsed", elapsed)
	return result, nil
}

// PotOdds returns call/(pot+call): the share of the pot a call pays for.
func PotOdds(pot, call int) float64 {
	if pot+call == 0 {
		return 0
	}
	return float64(call) / float64(pot+call)
}
