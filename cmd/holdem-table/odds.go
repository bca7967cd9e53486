package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lox/holdemtable/internal/display"
	"github.com/lox/holdemtable/internal/evaluator"
	"github.com/lox/holdemtable/poker"
)

type OddsCmd struct {
	Hands   []string `arg:"" help:"Hole cards per player, e.g. AsKd QhQc; use ?? for a random hand"`
	Board   string   `short:"b" help:"Community cards, e.g. Td7s8h"`
	Samples int      `short:"i" help:"Monte Carlo samples (default from config)"`
	Seed    *int64   `help:"Sampling seed (default from config, else random)"`
}

func (c *OddsCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	hands, err := parseHands(c.Hands)
	if err != nil {
		return err
	}
	board, err := poker.ParseCards(c.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}

	opts := append(cfg.CalculatorOptions(), evaluator.WithLogger(newLogger(cfg)))
	if c.Samples > 0 {
		opts = append(opts, evaluator.WithSamples(c.Samples))
	}
	if c.Seed != nil {
		opts = append(opts, evaluator.WithSeed(*c.Seed))
	}

	ctx, cancel := signalContext()
	defer cancel()
	if timeout := cfg.EquityTimeout(); timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	equities, err := evaluator.NewCalculator(opts...).Equities(ctx, hands, poker.NewHand(board...))
	if err != nil {
		return err
	}
	fmt.Println(display.RenderEquities(c.Hands, equities, board, time.Since(start)))
	return nil
}

func parseHands(args []string) ([]poker.Hand, error) {
	hands := make([]poker.Hand, len(args))
	for i, arg := range args {
		if arg == "??" {
			continue
		}
		if n := poker.CountParsedCards(arg); n != 2 {
			return nil, fmt.Errorf("hand %d: %q must be exactly 2 cards", i+1, arg)
		}
		cards, err := poker.ParseCards(arg)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		hands[i] = poker.NewHand(cards...)
	}
	return hands, nil
}
