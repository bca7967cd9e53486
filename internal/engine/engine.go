// Package engine drives a game.Table through whole hands. It asks a
// CardSource for cards at each deal stage and the acting seat's Agent for
// each betting decision, ranks the live hands at showdown and settles the
// pot. The table itself never sees where cards or decisions come from.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemtable/internal/analysis"
	"github.com/lox/holdemtable/internal/evaluator"
	"github.com/lox/holdemtable/internal/game"
	"github.com/lox/holdemtable/poker"
)

var (
	// ErrInvalidCards is returned by sources and by card validation when
	// the cards offered for a deal cannot be used. Errors wrapping it are
	// retried up to the engine's attempt limit.
	ErrInvalidCards = errors.New("invalid cards")
	// ErrNoPocketCards is returned when the source knows no seat's hole
	// cards, so the hand cannot leave the pocket card stage.
	ErrNoPocketCards = errors.New("no pocket cards dealt")
	// ErrChipsNotConserved means settlement created or destroyed chips.
	ErrChipsNotConserved = errors.New("chips not conserved")
)

// Rejecter is implemented by sources and agents that want to hear why their
// input was refused before they are asked again.
type Rejecter interface {
	Reject(err error)
}

// HandResult summarises a finished hand.
type HandResult struct {
	HandNumber     int
	Dealer         int
	StartingStacks []int // before blinds
	Stacks         []int
	HoleCards      []poker.Hand // zero when never revealed
	Board          []poker.Card
	Pots           []game.SplitPot
	Ranking        [][]int
	Winners        []int
	History        []game.ActionRecord
}

// Winnings returns the chips each seat took from the pot.
func (r *HandResult) Winnings() []int {
	won := make([]int, len(r.Stacks))
	for _, pot := range r.Pots {
		for i, seat := range pot.Participants {
			won[seat] += pot.Payouts[i]
		}
	}
	return won
}

// Showdown reports whether more than one seat contested the pot at the end.
func (r *HandResult) Showdown() bool {
	return len(r.Ranking) > 1 || len(r.Winners) > 1
}

// Engine plays hands on one table.
type Engine struct {
	table    *game.Table
	cards    CardSource
	agents   []Agent
	hero     int
	analyzer *analysis.Analyzer
	attempts int
	observer func(game.Snapshot)
	logger   *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithHero shows analyzer output to seat before each of its decisions.
func WithHero(seat int, analyzer *analysis.Analyzer) Option {
	return func(e *Engine) {
		e.hero = seat
		e.analyzer = analyzer
	}
}

// WithCardAttempts sets how often a deal is retried after invalid cards.
// Default is 3.
func WithCardAttempts(n int) Option {
	return func(e *Engine) { e.attempts = n }
}

// WithObserver registers fn to receive a snapshot after every deal and
// every applied action.
func WithObserver(fn func(game.Snapshot)) Option {
	return func(e *Engine) { e.observer = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New returns an engine for table. agents must hold one agent per seat.
func New(table *game.Table, cards CardSource, agents []Agent, opts ...Option) (*Engine, error) {
	if len(agents) != table.NumSeats() {
		return nil, fmt.Errorf("%w: %d agents for %d seats", game.ErrInvalidSetup, len(agents), table.NumSeats())
	}
	e := &Engine{
		table:    table,
		cards:    cards,
		agents:   agents,
		hero:     -1,
		attempts: 3,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.attempts < 1 {
		return nil, fmt.Errorf("%w: card attempts must be at least 1", game.ErrInvalidSetup)
	}
	return e, nil
}

// Table returns the table being played.
func (e *Engine) Table() *game.Table { return e.table }

// Run plays up to hands hands, starting a new one whenever the table sits at
// EndOfHand. It stops early once fewer than two seats have chips.
func (e *Engine) Run(ctx context.Context, hands int) ([]*HandResult, error) {
	var results []*HandResult
	for range hands {
		if e.table.Stage() == game.EndOfHand {
			if err := e.table.NextHand(); err != nil {
				if errors.Is(err, game.ErrNotEnoughPlayers) {
					e.logger.Info("table finished", "reason", err)
					break
				}
				return results, err
			}
		}
		result, err := e.PlayHand(ctx)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// PlayHand plays the current hand to EndOfHand.
func (e *Engine) PlayHand(ctx context.Context) (*HandResult, error) {
	if e.table.Stage() == game.EndOfHand {
		return nil, &game.StageError{
			Op:       "PlayHand",
			Stage:    game.EndOfHand,
			Required: []game.Stage{game.DealPocketCards},
			Err:      game.ErrIllegalStageTransition,
		}
	}

	handNumber := e.table.HandNumber()
	chips := e.table.TotalChips()
	start := e.table.Snapshot()
	startingStacks := make([]int, len(start.Players))
	for i, p := range start.Players {
		startingStacks[i] = p.Stack + p.Contribution
	}
	if err := e.cards.StartHand(ctx, handNumber); err != nil {
		return nil, fmt.Errorf("hand %d: %w", handNumber, err)
	}
	e.logger.Debug("hand started", "hand", handNumber, "dealer", e.table.Dealer())

	var ranking [][]int
	var pots []game.SplitPot
	for e.table.Stage() != game.EndOfHand {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		switch stage := e.table.Stage(); {
		case stage == game.DealPocketCards:
			err = e.dealPocketCards(ctx)
		case stage.IsDeal():
			err = e.dealBoard(ctx, stage)
		case stage.IsBetting():
			err = e.takeAction(ctx)
		case stage == game.Showdown:
			ranking, pots, err = e.showdown(ctx)
		default:
			err = fmt.Errorf("hand %d: unexpected stage %s", handNumber, stage)
		}
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", handNumber, err)
		}
	}

	if got := e.table.TotalChips(); got != chips {
		return nil, fmt.Errorf("hand %d: %w: %d before, %d after", handNumber, ErrChipsNotConserved, chips, got)
	}

	end := e.table.Snapshot()
	result := &HandResult{
		HandNumber:     handNumber,
		Dealer:         end.Dealer,
		StartingStacks: startingStacks,
		Stacks:         e.table.Stacks(),
		HoleCards:      make([]poker.Hand, len(end.Players)),
		Board:          end.Board,
		Pots:           pots,
		Ranking:        ranking,
		Winners:        ranking[0],
		History:        end.History,
	}
	for i, p := range end.Players {
		result.HoleCards[i] = p.HoleCards
	}
	e.logger.Info("hand complete", "hand", handNumber, "winners", result.Winners, "pot", e.table.Pot())
	return result, nil
}

func (e *Engine) dealPocketCards(ctx context.Context) error {
	snap := e.table.Snapshot()
	known := snap.KnownCards()

	type deal struct {
		seat  int
		cards [2]poker.Card
	}
	var deals []deal
	for _, p := range snap.Players {
		if p.SittingOut {
			continue
		}
		cards, err := e.fetch(ctx, 2, known, true, func() ([]poker.Card, error) {
			return e.cards.HoleCards(ctx, p.Seat, snap)
		})
		if err != nil {
			return fmt.Errorf("seat %d hole cards: %w", p.Seat, err)
		}
		if cards == nil {
			continue
		}
		known |= poker.NewHand(cards...)
		deals = append(deals, deal{seat: p.Seat, cards: [2]poker.Card{cards[0], cards[1]}})
	}
	if len(deals) == 0 {
		return ErrNoPocketCards
	}

	for _, d := range deals {
		if err := e.table.SetPocketCards(d.seat, d.cards); err != nil {
			return err
		}
	}
	e.notify()
	return nil
}

func (e *Engine) dealBoard(ctx context.Context, stage game.Stage) error {
	snap := e.table.Snapshot()
	n := stage.CardsToDeal()
	cards, err := e.fetch(ctx, n, snap.KnownCards(), false, func() ([]poker.Card, error) {
		return e.cards.Board(ctx, stage, n, snap)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}

	switch stage {
	case game.DealFlop:
		err = e.table.SetFlop([3]poker.Card{cards[0], cards[1], cards[2]})
	case game.DealTurn:
		err = e.table.SetTurn(cards[0])
	case game.DealRiver:
		err = e.table.SetRiver(cards[0])
	}
	if err != nil {
		return err
	}
	e.notify()
	return nil
}

// fetch asks next for n cards until it offers usable ones or attempts run
// out. With optional set, a nil slice means the cards are unknown.
func (e *Engine) fetch(ctx context.Context, n int, known poker.Hand, optional bool, next func() ([]poker.Card, error)) ([]poker.Card, error) {
	var lastErr error
	for attempt := 1; attempt <= e.attempts; attempt++ {
		cards, err := next()
		if err == nil {
			if cards == nil && optional {
				return nil, nil
			}
			err = checkCards(cards, n, known)
		}
		if err == nil {
			return cards, nil
		}
		if !errors.Is(err, ErrInvalidCards) || ctx.Err() != nil {
			return nil, err
		}

		lastErr = err
		e.logger.Warn("cards rejected", "attempt", attempt, "error", err)
		if r, ok := e.cards.(Rejecter); ok {
			r.Reject(err)
		}
	}
	return nil, fmt.Errorf("gave up after %d attempts: %w", e.attempts, lastErr)
}

func checkCards(cards []poker.Card, n int, known poker.Hand) error {
	if len(cards) != n {
		return fmt.Errorf("%w: want %d cards, got %d", ErrInvalidCards, n, len(cards))
	}
	seen := known
	for _, c := range cards {
		if !c.Valid() {
			return fmt.Errorf("%w: not a card", ErrInvalidCards)
		}
		if seen.HasCard(c) {
			return fmt.Errorf("%w: %s already dealt", ErrInvalidCards, c)
		}
		seen.AddCard(c)
	}
	return nil
}

func (e *Engine) takeAction(ctx context.Context) error {
	seat := e.table.ActingPlayer()
	snap := e.table.Snapshot()
	agent := e.agents[seat]

	var advice *analysis.Analysis
	if seat == e.hero && e.analyzer != nil {
		a, err := e.analyzer.Analyze(ctx, snap, seat)
		switch {
		case err == nil:
			advice = &a
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			e.logger.Warn("analysis unavailable", "seat", seat, "error", err)
		}
	}

	for attempt := 1; ; attempt++ {
		action, err := agent.Act(ctx, snap, advice)
		if err != nil {
			return fmt.Errorf("seat %d: %w", seat, err)
		}
		err = e.table.ApplyAction(action)
		if err == nil {
			e.logger.Debug("action", "seat", seat, "name", snap.Players[seat].Name, "action", action)
			break
		}
		if !errors.Is(err, game.ErrIllegalAction) || attempt >= e.attempts {
			return fmt.Errorf("seat %d: %w", seat, err)
		}
		if r, ok := agent.(Rejecter); ok {
			r.Reject(err)
		}
	}
	e.notify()
	return nil
}

func (e *Engine) showdown(ctx context.Context) ([][]int, []game.SplitPot, error) {
	snap := e.table.Snapshot()
	if active := snap.ActiveSeats(); len(active) > 1 {
		known := snap.KnownCards()
		for _, seat := range active {
			if snap.Players[seat].HoleCards != 0 {
				continue
			}
			cards, err := e.fetch(ctx, 2, known, false, func() ([]poker.Card, error) {
				return e.cards.HoleCards(ctx, seat, snap)
			})
			if err != nil {
				return nil, nil, fmt.Errorf("revealing seat %d: %w", seat, err)
			}
			known |= poker.NewHand(cards...)
			if err := e.table.SetPocketCards(seat, [2]poker.Card{cards[0], cards[1]}); err != nil {
				return nil, nil, err
			}
		}
		snap = e.table.Snapshot()
	}

	ranking, err := evaluator.Rank(snap)
	if err != nil {
		return nil, nil, err
	}
	pots, err := e.table.SettleRanked(ranking)
	if err != nil {
		return nil, nil, err
	}
	e.notify()
	return ranking, pots, nil
}

func (e *Engine) notify() {
	if e.observer != nil {
		e.observer(e.table.Snapshot())
	}
}
