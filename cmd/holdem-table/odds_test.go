package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemtable/internal/engine"
	"github.com/lox/holdemtable/internal/randutil"
	"github.com/lox/holdemtable/poker"
)

func TestParseHands(t *testing.T) {
	t.Parallel()

	hands, err := parseHands([]string{"AsKd", "??", "Qh Qc"})
	require.NoError(t, err)
	assert.Equal(t, []poker.Hand{
		poker.NewHand(poker.MustParseCards("AsKd")...),
		0,
		poker.NewHand(poker.MustParseCards("QhQc")...),
	}, hands)

	for _, bad := range []string{"As", "AsKdQh", "AsAs", "Zz9c"} {
		_, err := parseHands([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestNewAgent(t *testing.T) {
	t.Parallel()
	rng := randutil.New(1)

	assert.IsType(t, engine.PassiveAgent{}, newAgent("passive", rng))
	assert.IsType(t, engine.FoldAgent{}, newAgent("fold", rng))
	assert.IsType(t, &engine.RandomAgent{}, newAgent("random", rng))
}
