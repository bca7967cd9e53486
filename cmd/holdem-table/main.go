package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdemtable/internal/config"
	"github.com/lox/holdemtable/internal/engine"
	"github.com/lox/holdemtable/internal/game"
	"github.com/lox/holdemtable/internal/phh"
	"github.com/lox/holdemtable/internal/sessionid"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"holdem.hcl" type:"path" help:"Table configuration file"`
	LogLevel string `help:"Override the configured log level (debug|info|warn|error)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play hands, typing cards and actions at the prompt"`
	Simulate SimulateCmd      `cmd:"" help:"Deal and play hands between built-in agents"`
	Odds     OddsCmd          `cmd:"" help:"Compute equities for hands against each other"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem-table"),
		kong.Description("No-limit Texas Hold'em table"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// load reads and validates the configuration.
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", g.Config, err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           cfg.LogLevel(),
	})
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// historyDir returns a new directory under root, named by session id, for
// this run's hands. It returns "" when root is empty.
func historyDir(root string) (string, error) {
	if root == "" {
		return "", nil
	}
	id, err := sessionid.New()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, id), nil
}

// writeHistory exports r into dir, if one was given.
func writeHistory(dir, table string, r *engine.HandResult, snap game.Snapshot) error {
	if dir == "" {
		return nil
	}
	if err := phh.Write(dir, phh.FromResult(r, snap, table)); err != nil {
		return fmt.Errorf("hand %d: %w", r.HandNumber, err)
	}
	return nil
}
