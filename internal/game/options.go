package game

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures a Table during creation.
type Option func(*tableConfig)

type tableConfig struct {
	logger     *log.Logger
	handNumber int
}

// WithLogger sets the logger used for stage changes and actions.
// By default nothing is logged.
func WithLogger(logger *log.Logger) Option {
	return func(c *tableConfig) {
		c.logger = logger
	}
}

// WithHandNumber sets the number of the first hand. Default is 1.
func WithHandNumber(n int) Option {
	return func(c *tableConfig) {
		c.handNumber = n
	}
}

func newTableConfig(opts []Option) *tableConfig {
	cfg := &tableConfig{handNumber: 1}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	return cfg
}
