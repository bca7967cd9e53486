package engine

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/lox/holdemtable/internal/analysis"
	"github.com/lox/holdemtable/internal/game"
)

// Agent decides for one seat. s.ActingPlayer is the seat to decide for.
// advice is nil unless the seat is the engine's hero and analysis succeeded.
type Agent interface {
	Act(ctx context.Context, s game.Snapshot, advice *analysis.Analysis) (game.Action, error)
}

// AgentFunc adapts a function to Agent.
type AgentFunc func(ctx context.Context, s game.Snapshot, advice *analysis.Analysis) (game.Action, error)

func (f AgentFunc) Act(ctx context.Context, s game.Snapshot, advice *analysis.Analysis) (game.Action, error) {
	return f(ctx, s, advice)
}

// PassiveAgent always checks or calls.
type PassiveAgent struct{}

func (PassiveAgent) Act(context.Context, game.Snapshot, *analysis.Analysis) (game.Action, error) {
	return game.CheckOrCall{}, nil
}

// FoldAgent checks when it can and folds to any bet.
type FoldAgent struct{}

func (FoldAgent) Act(_ context.Context, s game.Snapshot, _ *analysis.Analysis) (game.Action, error) {
	if s.Players[s.ActingPlayer].AmountToCall > 0 {
		return game.Fold{}, nil
	}
	return game.CheckOrCall{}, nil
}

// ScriptedAgent plays a fixed list of actions in order.
type ScriptedAgent struct {
	actions []game.Action
	next    int
}

// NewScriptedAgent returns an agent playing actions in order.
func NewScriptedAgent(actions ...game.Action) *ScriptedAgent {
	return &ScriptedAgent{actions: actions}
}

func (a *ScriptedAgent) Act(_ context.Context, s game.Snapshot, _ *analysis.Analysis) (game.Action, error) {
	if a.next >= len(a.actions) {
		return nil, fmt.Errorf("%w: no action for seat %d during %s", ErrScriptExhausted, s.ActingPlayer, s.Stage)
	}
	action := a.actions[a.next]
	a.next++
	return action, nil
}

// Remaining returns how many scripted actions have not been played.
func (a *ScriptedAgent) Remaining() int { return len(a.actions) - a.next }

// RandomAgent picks uniformly between folding (only when facing a bet),
// calling and raising between one big blind and its whole stack.
type RandomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent drawing from rng.
func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	return &RandomAgent{rng: rng}
}

func (a *RandomAgent) Act(_ context.Context, s game.Snapshot, _ *analysis.Analysis) (game.Action, error) {
	p := s.Players[s.ActingPlayer]
	choices := 2
	if p.AmountToCall > 0 {
		choices = 3
	}

	switch a.rng.IntN(choices) {
	case 0:
		return game.CheckOrCall{}, nil
	case 1:
		room := p.Stack - p.AmountToCall
		if room <= 0 {
			return game.CheckOrCall{}, nil
		}
		lo := min(s.BigBlind, room)
		return game.Raise{Amount: lo + a.rng.IntN(room-lo+1)}, nil
	default:
		return game.Fold{}, nil
	}
}
