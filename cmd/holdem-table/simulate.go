package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/lox/holdemtable/internal/display"
	"github.com/lox/holdemtable/internal/engine"
	"github.com/lox/holdemtable/internal/game"
	"github.com/lox/holdemtable/internal/randutil"
	"github.com/lox/holdemtable/internal/statistics"
)

type SimulateCmd struct {
	Hands   int    `short:"n" help:"Hands to play (default from config)"`
	Seed    *int64 `help:"Deck seed (default from config, else random)"`
	Agent   string `default:"random" enum:"random,passive,fold" help:"Agent for every seat (random|passive|fold)"`
	Verbose bool   `help:"Print every hand result"`
	History string `type:"path" help:"Write every hand as a PHH file into this directory"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	hands := cfg.Table.Hands
	if c.Hands > 0 {
		hands = c.Hands
	}
	seed := cfg.Table.Seed
	if c.Seed != nil {
		seed = c.Seed
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

	s := randutil.Seed(seed)
	logger.Info("simulating", "hands", hands, "seed", s, "agent", c.Agent)
	agents := make([]engine.Agent, tbl.NumSeats())
	for i := range agents {
		agents[i] = newAgent(c.Agent, randutil.Stream(s, i+1))
	}

	e, err := engine.New(tbl, engine.NewDeckSource(randutil.New(s)), agents,
		engine.WithCardAttempts(cfg.Table.CardAttempts),
		engine.WithLogger(logger))
	if err != nil {
		return err
	}

	results, err := e.Run(ctx, hands)
	if err != nil {
		return err
	}

	snap := tbl.Snapshot()
	session := statistics.NewSession(tbl.NumSeats(), cfg.Table.BigBlind)
	for _, r := range results {
		session.Add(r)
		if c.Verbose {
			fmt.Println(display.RenderResult(r, snap))
		}
		if err := writeHistory(history, cfg.Table.Name, r, snap); err != nil {
			return err
		}
	}
	if err := session.Validate(); err != nil {
		return err
	}

	fmt.Printf("%d hands played\n", len(results))
	fmt.Println(display.RenderSession(session, snap))
	return nil
}

func newAgent(kind string, rng *rand.Rand) engine.Agent {
	switch kind {
	case "passive":
		return engine.PassiveAgent{}
	case "fold":
		return engine.FoldAgent{}
	}
	return engine.NewRandomAgent(rng)
}
