// Package config loads the table definition from an HCL file:
//
//	table {
//	  name        = "main"
//	  small_blind = 5
//	  big_blind   = 10
//	  dealer      = 0
//	  hero        = "alice"
//	  seed        = 7
//	}
//
//	seat "alice" { stack = 1000 }
//	seat "bob"   { stack = 1000 }
//
//	equity {
//	  samples = 20000
//	  workers = 4
//	  seed    = 42
//	  timeout = "5s"
//	}
//
//	log { level = "info" }
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdemtable/internal/evaluator"
	"github.com/lox/holdemtable/internal/game"
)

// Config is the complete configuration of one table.
type Config struct {
	Table  TableSettings   `hcl:"table,block"`
	Seats  []SeatConfig    `hcl:"seat,block"`
	Equity *EquitySettings `hcl:"equity,block"`
	Log    *LogSettings    `hcl:"log,block"`
}

// TableSettings holds the blinds and positions.
type TableSettings struct {
	Name         string `hcl:"name,optional"`
	SmallBlind   int    `hcl:"small_blind"`
	BigBlind     int    `hcl:"big_blind"`
	Dealer       int    `hcl:"dealer,optional"`
	Hero         string `hcl:"hero,optional"`
	Hands        int    `hcl:"hands,optional"`
	CardAttempts int    `hcl:"card_attempts,optional"`
	Seed         *int64 `hcl:"seed,optional"` // deck shuffling
}

// SeatConfig is one seat, in table order.
type SeatConfig struct {
	Name  string `hcl:"name,label"`
	Stack int    `hcl:"stack"`
}

// EquitySettings configures the equity calculator.
type EquitySettings struct {
	Samples int    `hcl:"samples,optional"`
	Workers int    `hcl:"workers,optional"`
	Seed    *int64 `hcl:"seed,optional"`
	Timeout string `hcl:"timeout,optional"`
}

// LogSettings configures logging.
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// Default returns a heads-up table with 100 big blind stacks.
func Default() *Config {
	cfg := &Config{
		Table: TableSettings{
			SmallBlind: 5,
			BigBlind:   10,
			Hero:       "hero",
		},
		Seats: []SeatConfig{
			{Name: "hero", Stack: 1000},
			{Name: "villain", Stack: 1000},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration from filename. A missing file yields the
// default configuration.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Table.Hands == 0 {
		c.Table.Hands = 1
	}
	if c.Table.CardAttempts == 0 {
		c.Table.CardAttempts = 3
	}
	if c.Equity == nil {
		c.Equity = &EquitySettings{}
	}
	if c.Equity.Samples == 0 {
		c.Equity.Samples = evaluator.DefaultSamples
	}
	if c.Equity.Workers == 0 {
		c.Equity.Workers = 4
	}
	if c.Equity.Timeout == "" {
		c.Equity.Timeout = "10s"
	}
	if c.Log == nil {
		c.Log = &LogSettings{}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the configuration can seat a table.
func (c *Config) Validate() error {
	if len(c.Seats) < 2 || len(c.Seats) > 10 {
		return fmt.Errorf("between 2 and 10 seats must be configured, got %d", len(c.Seats))
	}

	names := make(map[string]bool, len(c.Seats))
	for _, s := range c.Seats {
		if names[s.Name] {
			return fmt.Errorf("seat %s: configured twice", s.Name)
		}
		names[s.Name] = true
		if s.Stack <= 0 {
			return fmt.Errorf("seat %s: stack must be positive", s.Name)
		}
	}

	if c.Table.SmallBlind <= 0 {
		return fmt.Errorf("table: small blind must be positive")
	}
	if c.Table.BigBlind <= c.Table.SmallBlind {
		return fmt.Errorf("table: big blind must be greater than small blind")
	}
	if c.Table.Dealer < 0 || c.Table.Dealer >= len(c.Seats) {
		return fmt.Errorf("table: dealer %d is not a seat", c.Table.Dealer)
	}
	if c.Table.Hero != "" && !names[c.Table.Hero] {
		return fmt.Errorf("table: hero %s is not a seat", c.Table.Hero)
	}
	if c.Table.Hands < 1 {
		return fmt.Errorf("table: hands must be at least 1")
	}
	if c.Table.CardAttempts < 1 {
		return fmt.Errorf("table: card_attempts must be at least 1")
	}

	if c.Equity.Samples < 1 || c.Equity.Workers < 1 {
		return fmt.Errorf("equity: samples and workers must be positive")
	}
	if _, err := time.ParseDuration(c.Equity.Timeout); err != nil {
		return fmt.Errorf("equity: invalid timeout: %w", err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// GameSeats returns the seats in table order.
func (c *Config) GameSeats() []game.Seat {
	seats := make([]game.Seat, len(c.Seats))
	for i, s := range c.Seats {
		seats[i] = game.Seat{Name: s.Name, Stack: s.Stack}
	}
	return seats
}

// HeroSeat returns the hero's seat index, or -1 without a hero.
func (c *Config) HeroSeat() int {
	for i, s := range c.Seats {
		if s.Name == c.Table.Hero {
			return i
		}
	}
	return -1
}

// EquityTimeout returns the parsed equity timeout. Call Validate first.
func (c *Config) EquityTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Equity.Timeout)
	return d
}

// LogLevel returns the parsed log level, defaulting to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// CalculatorOptions returns the evaluator options for the equity block.
func (c *Config) CalculatorOptions() []evaluator.Option {
	opts := []evaluator.Option{
		evaluator.WithSamples(c.Equity.Samples),
		evaluator.WithWorkers(c.Equity.Workers),
	}
	if c.Equity.Seed != nil {
		opts = append(opts, evaluator.WithSeed(*c.Equity.Seed))
	}
	return opts
}
