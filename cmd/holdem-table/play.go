package main

import (
	"errors"
	"os"

	"github.com/lox/holdemtable/internal/analysis"
	"github.com/lox/holdemtable/internal/display"
	"github.com/lox/holdemtable/internal/engine"
	"github.com/lox/holdemtable/internal/evaluator"
	"github.com/lox/holdemtable/internal/game"
)

type PlayCmd struct {
	Hands   int    `short:"n" help:"Hands to play (default from config)"`
	History string `type:"path" help:"Write every hand as a PHH file into this directory"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	hero := cfg.HeroSeat()
	if hero < 0 {
		return errors.New("play needs a hero seat in the table block")
	}
	hands := cfg.Table.Hands
	if c.Hands > 0 {
		hands = c.Hands
	}

	logger := newLogger(cfg)
	ctx, cancel := signalContext()
	defer cancel()

	tbl, err := game.NewTable(cfg.GameSeats(), cfg.Table.Dealer, cfg.Table.SmallBlind, cfg.Table.BigBlind,
		game.WithLogger(logger.WithPrefix("table")))
	if err != nil {
		return err
	}

	history, err := historyDir(c.History)
	if err != nil {
		return err
	}
	if history != "" {
		logger.Info("writing hand histories", "dir", history)
	}

	prompter := engine.NewPrompter(os.Stdin, os.Stdout)
	defer prompter.Close()
	agents := make([]engine.Agent, tbl.NumSeats())
	for i := range agents {
		agents[i] = engine.NewPromptAgent(prompter, display.RenderDecision)
	}

	calc := evaluator.NewCalculator(append(cfg.CalculatorOptions(), evaluator.WithLogger(logger))...)
	analyzer := analysis.New(calc,
		analysis.WithTimeout(cfg.EquityTimeout()),
		analysis.WithLogger(logger))

	e, err := engine.New(tbl, engine.NewPromptSource(prompter, hero), agents,
		engine.WithHero(hero, analyzer),
		engine.WithCardAttempts(cfg.Table.CardAttempts),
		engine.WithLogger(logger))
	if err != nil {
		return err
	}

	for range hands {
		results, err := e.Run(ctx, 1)
		if errors.Is(err, engine.ErrInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if len(results) == 0 {
			prompter.Say("%s", display.InfoStyle.Render("not enough players left"))
			return nil
		}
		snap := tbl.Snapshot()
		prompter.Say("%s", display.RenderResult(results[0], snap))
		if err := writeHistory(history, cfg.Table.Name, results[0], snap); err != nil {
			return err
		}
	}
	return nil
}
