package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemtable/internal/game"
	"github.com/lox/holdemtable/internal/randutil"
)

func TestFoldAgentChecksWhenFree(t *testing.T) {
	t.Parallel()
	snap := preFlop(t)

	action, err := FoldAgent{}.Act(context.Background(), snap, nil)
	require.NoError(t, err)
	assert.Equal(t, game.Fold{}, action, "small blind owes 5")

	snap.Players[snap.ActingPlayer].AmountToCall = 0
	action, err = FoldAgent{}.Act(context.Background(), snap, nil)
	require.NoError(t, err)
	assert.Equal(t, game.CheckOrCall{}, action)
}

func TestRandomAgentStaysWithinStack(t *testing.T) {
	t.Parallel()
	snap := preFlop(t)
	agent := NewRandomAgent(randutil.New(1))
	p := snap.Players[snap.ActingPlayer]

	seen := map[string]bool{}
	for range 200 {
		action, err := agent.Act(context.Background(), snap, nil)
		require.NoError(t, err)
		switch a := action.(type) {
		case game.Raise:
			require.GreaterOrEqual(t, a.Amount, snap.BigBlind)
			require.LessOrEqual(t, a.Amount, p.Stack-p.AmountToCall)
			seen["raise"] = true
		case game.CheckOrCall:
			seen["call"] = true
		case game.Fold:
			seen["fold"] = true
		}
	}
	assert.Len(t, seen, 3)
}

func TestScriptedAgent(t *testing.T) {
	t.Parallel()
	snap := preFlop(t)
	agent := NewScriptedAgent(game.Fold{})

	action, err := agent.Act(context.Background(), snap, nil)
	require.NoError(t, err)
	assert.Equal(t, game.Fold{}, action)
	assert.Zero(t, agent.Remaining())

	_, err = agent.Act(context.Background(), snap, nil)
	require.ErrorIs(t, err, ErrScriptExhausted)
}
