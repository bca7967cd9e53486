package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemtable/internal/game"
)

const sample = `
table {
  name        = "high stakes"
  small_blind = 25
  big_blind   = 50
  dealer      = 2
  hero        = "bob"
  hands       = 10
  seed        = 7
}

seat "alice" { stack = 5000 }
seat "bob" { stack = 2500 }
seat "carol" { stack = 1000 }

equity {
  samples = 5000
  seed    = 42
  timeout = "2s"
}

log {
  level = "debug"
}
`

func TestParse(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(sample), "table.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "high stakes", cfg.Table.Name)
	assert.Equal(t, 25, cfg.Table.SmallBlind)
	assert.Equal(t, 50, cfg.Table.BigBlind)
	assert.Equal(t, 2, cfg.Table.Dealer)
	assert.Equal(t, 10, cfg.Table.Hands)
	assert.Equal(t, 3, cfg.Table.CardAttempts, "default applied")
	require.NotNil(t, cfg.Table.Seed)
	assert.Equal(t, int64(7), *cfg.Table.Seed)

	assert.Equal(t, []game.Seat{
		{Name: "alice", Stack: 5000},
		{Name: "bob", Stack: 2500},
		{Name: "carol", Stack: 1000},
	}, cfg.GameSeats())
	assert.Equal(t, 1, cfg.HeroSeat())

	assert.Equal(t, 5000, cfg.Equity.Samples)
	assert.Equal(t, 4, cfg.Equity.Workers, "default applied")
	require.NotNil(t, cfg.Equity.Seed)
	assert.Equal(t, int64(42), *cfg.Equity.Seed)
	assert.Equal(t, 2*time.Second, cfg.EquityTimeout())
	assert.Len(t, cfg.CalculatorOptions(), 3)

	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "syntax", src: `table {`},
		{name: "missing table block", src: `seat "a" { stack = 1 }`},
		{name: "missing big blind", src: `table { small_blind = 1 }`},
		{name: "unknown attribute", src: `table {
  small_blind = 1
  big_blind = 2
  ante = 1
}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "one seat", modify: func(c *Config) { c.Seats = c.Seats[:1] }},
		{name: "duplicate seat", modify: func(c *Config) { c.Seats[1].Name = c.Seats[0].Name }},
		{name: "empty stack", modify: func(c *Config) { c.Seats[0].Stack = 0 }},
		{name: "zero small blind", modify: func(c *Config) { c.Table.SmallBlind = 0 }},
		{name: "big blind not above small", modify: func(c *Config) { c.Table.BigBlind = c.Table.SmallBlind }},
		{name: "dealer off the table", modify: func(c *Config) { c.Table.Dealer = 2 }},
		{name: "unknown hero", modify: func(c *Config) { c.Table.Hero = "nobody" }},
		{name: "no samples", modify: func(c *Config) { c.Equity.Samples = -1 }},
		{name: "bad timeout", modify: func(c *Config) { c.Equity.Timeout = "soon" }},
		{name: "bad log level", modify: func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			require.NoError(t, cfg.Validate())
			tt.modify(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing file uses defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "table.hcl")
		require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Len(t, cfg.Seats, 3)
	})
}
