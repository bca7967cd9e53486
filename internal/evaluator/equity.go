package evaluator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"slices"

	"github.com/charmbracelet/log"
	cpoker "github.com/chehsunliu/poker"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdemtable/internal/randutil"
	"github.com/lox/holdemtable/poker"
)

const (
	// MaxHands is the largest number of hands Equities accepts.
	MaxHands = 6
	// DefaultSamples is the Monte Carlo sample count when none is configured.
	DefaultSamples = 20000
)

var (
	ErrNoHands       = errors.New("no hands to evaluate")
	ErrTooManyHands  = errors.New("too many hands")
	ErrInvalidHand   = errors.New("hand must hold exactly two cards")
	ErrInvalidBoard  = errors.New("board holds more than five cards")
	ErrDuplicateCard = errors.New("card used twice")
)

// Calculator estimates how often each hand wins. When every hand is known
// and at most two board cards are missing the result is exact; otherwise it
// is a Monte Carlo estimate spread over parallel workers.
type Calculator struct {
	samples int
	workers int
	seed    int64
	logger  *log.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithSamples sets the number of Monte Carlo samples.
func WithSamples(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.samples = n
		}
	}
}

// WithWorkers sets how many goroutines share the samples.
func WithWorkers(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithSeed makes sampling reproducible.
func WithSeed(seed int64) Option {
	return func(c *Calculator) {
		c.seed = seed
	}
}

// WithLogger sets the logger for timing and sample counts.
func WithLogger(logger *log.Logger) Option {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// NewCalculator returns a calculator with DefaultSamples, one worker per CPU
// (at most 8) and a time based seed unless configured otherwise.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		samples: DefaultSamples,
		workers: min(runtime.NumCPU(), 8),
		seed:    randutil.Seed(nil),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Equities returns each hand's share of the pot it would win against the
// others, aligned with hands. A zero hand stands for a random unknown hand.
// Ties split a win evenly, so the results sum to one.
func (c *Calculator) Equities(ctx context.Context, hands []poker.Hand, board poker.Hand) ([]float64, error) {
	if err := validate(hands, board); err != nil {
		return nil, err
	}

	dead := board
	unknown := 0
	for _, h := range hands {
		dead |= h
		if h == 0 {
			unknown++
		}
	}
	missing := 5 - board.CountCards()

	var (
		tally *showdown
		err   error
	)
	if unknown == 0 && missing <= 2 {
		tally = enumerate(hands, board, dead)
		c.logger.Debug("equities enumerated", "hands", len(hands), "boards", tally.trials)
	} else {
		tally, err = c.simulate(ctx, hands, board, dead)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("equities sampled", "hands", len(hands), "unknown", unknown, "samples", tally.trials)
	}

	equities := make([]float64, len(hands))
	for i, s := range tally.shares {
		equities[i] = s / float64(tally.trials)
	}
	return equities, nil
}

func validate(hands []poker.Hand, board poker.Hand) error {
	if len(hands) == 0 {
		return ErrNoHands
	}
	if len(hands) > MaxHands {
		return fmt.Errorf("%w: %d hands, at most %d", ErrTooManyHands, len(hands), MaxHands)
	}
	if board.CountCards() > 5 {
		return fmt.Errorf("%w: %s", ErrInvalidBoard, board)
	}
	seen := board
	for i, h := range hands {
		if h == 0 {
			continue
		}
		if h.CountCards() != 2 {
			return fmt.Errorf("%w: hand %d is %q", ErrInvalidHand, i, h)
		}
		if h&seen != 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, h&seen)
		}
		seen |= h
	}
	return nil
}

// showdown scores boards for a fixed set of hole cards and keeps the running
// pot shares. One instance per goroutine.
type showdown struct {
	holes     [][2]cpoker.Card
	scratch   []cpoker.Card
	strengths []int32
	shares    []float64
	trials    int
}

func newShowdown(hands []poker.Hand) *showdown {
	sd := &showdown{
		holes:     make([][2]cpoker.Card, len(hands)),
		scratch:   make([]cpoker.Card, 0, 7),
		strengths: make([]int32, len(hands)),
		shares:    make([]float64, len(hands)),
	}
	for i, h := range hands {
		if h != 0 {
			cards := h.Cards()
			sd.holes[i] = [2]cpoker.Card{toEval(cards[0]), toEval(cards[1])}
		}
	}
	return sd
}

func (sd *showdown) play(board []cpoker.Card) {
	best := int32(-1)
	winners := 0
	for i, hole := range sd.holes {
		sd.scratch = append(sd.scratch[:0], hole[0], hole[1])
		sd.scratch = append(sd.scratch, board...)
		s := cpoker.Evaluate(sd.scratch)
		sd.strengths[i] = s
		switch {
		case best < 0 || s < best:
			best, winners = s, 1
		case s == best:
			winners++
		}
	}
	share := 1 / float64(winners)
	for i, s := range sd.strengths {
		if s == best {
			sd.shares[i] += share
		}
	}
	sd.trials++
}

func (sd *showdown) merge(other *showdown) {
	for i := range sd.shares {
		sd.shares[i] += other.shares[i]
	}
	sd.trials += other.trials
}

// enumerate plays out every possible completion of the board.
func enumerate(hands []poker.Hand, board, dead poker.Hand) *showdown {
	sd := newShowdown(hands)
	full := toEvalCards(board.Cards())
	known := len(full)
	rest := toEvalCards(remaining(dead))

	switch 5 - known {
	case 0:
		sd.play(full)
	case 1:
		full = append(full, 0)
		for _, c := range rest {
			full[known] = c
			sd.play(full)
		}
	case 2:
		full = append(full, 0, 0)
		for i := range rest {
			for j := i + 1; j < len(rest); j++ {
				full[known], full[known+1] = rest[i], rest[j]
				sd.play(full)
			}
		}
	}
	return sd
}

// simulate deals the unknown hands and board cards at random, splitting the
// samples over c.workers goroutines with independent generators.
func (c *Calculator) simulate(ctx context.Context, hands []poker.Hand, board, dead poker.Hand) (*showdown, error) {
	workers := max(1, min(c.workers, c.samples))
	perWorker := c.samples / workers
	extra := c.samples % workers

	base := toEvalCards(board.Cards())
	deck := toEvalCards(remaining(dead))
	results := make([]*showdown, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := perWorker
		if w < extra {
			n++
		}
		g.Go(func() error {
			rng := randutil.Stream(c.seed, w)
			sd := newShowdown(hands)
			avail := slices.Clone(deck)
			full := make([]cpoker.Card, 5)
			copy(full, base)

			for i := range n {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				drawn := 0
				for h, hand := range hands {
					if hand == 0 {
						sd.holes[h][0] = draw(rng, avail, drawn)
						sd.holes[h][1] = draw(rng, avail, drawn+1)
						drawn += 2
					}
				}
				for b := len(base); b < 5; b++ {
					full[b] = draw(rng, avail, drawn)
					drawn++
				}
				sd.play(full)
			}
			results[w] = sd
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := newShowdown(hands)
	for _, sd := range results {
		total.merge(sd)
	}
	return total, nil
}

// draw does one step of a partial Fisher-Yates shuffle: it swaps a random
// card from avail[k:] into avail[k] and returns it.
func draw(rng *rand.Rand, avail []cpoker.Card, k int) cpoker.Card {
	j := k + rng.IntN(len(avail)-k)
	avail[k], avail[j] = avail[j], avail[k]
	return avail[k]
}
