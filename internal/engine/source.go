package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/lox/holdemtable/internal/game"
	"github.com/lox/holdemtable/poker"
)

// ErrScriptExhausted is returned by scripted sources and agents that have
// nothing left to play.
var ErrScriptExhausted = errors.New("script exhausted")

// CardSource supplies the cards of each hand.
type CardSource interface {
	// StartHand is called once before any card of a hand is requested.
	StartHand(ctx context.Context, handNumber int) error
	// HoleCards returns seat's two cards. During DealPocketCards a nil
	// slice means the cards are not known; at Showdown they are required.
	HoleCards(ctx context.Context, seat int, s game.Snapshot) ([]poker.Card, error)
	// Board returns the n cards for a flop, turn or river stage.
	Board(ctx context.Context, stage game.Stage, n int, s game.Snapshot) ([]poker.Card, error)
}

// DeckSource deals every card from a freshly shuffled deck per hand.
type DeckSource struct {
	rng  *rand.Rand
	deck *poker.Deck
}

// NewDeckSource returns a source shuffling with rng.
func NewDeckSource(rng *rand.Rand) *DeckSource {
	return &DeckSource{rng: rng}
}

func (d *DeckSource) StartHand(context.Context, int) error {
	d.deck = poker.NewDeck(d.rng)
	return nil
}

func (d *DeckSource) HoleCards(_ context.Context, _ int, _ game.Snapshot) ([]poker.Card, error) {
	return d.deal(2)
}

func (d *DeckSource) Board(_ context.Context, _ game.Stage, n int, _ game.Snapshot) ([]poker.Card, error) {
	return d.deal(n)
}

func (d *DeckSource) deal(n int) ([]poker.Card, error) {
	if d.deck == nil {
		return nil, errors.New("deck source used before StartHand")
	}
	cards := d.deck.Deal(n)
	if cards == nil {
		return nil, fmt.Errorf("deck has %d cards, need %d", d.deck.CardsRemaining(), n)
	}
	return cards, nil
}

// Script is the fixed deal of one hand. Holes maps seats to card strings
// such as "AsKd"; missing seats have unknown cards. Board lists up to five
// cards in dealing order.
type Script struct {
	Holes map[int]string
	Board string
}

// ScriptedSource replays one Script per hand.
type ScriptedSource struct {
	scripts []Script
	current int
	board   []poker.Card
	dealt   int
}

// NewScriptedSource returns a source playing scripts in order.
func NewScriptedSource(scripts ...Script) *ScriptedSource {
	return &ScriptedSource{scripts: scripts, current: -1}
}

func (s *ScriptedSource) StartHand(context.Context, int) error {
	if s.current+1 >= len(s.scripts) {
		return fmt.Errorf("%w: no deal for hand %d", ErrScriptExhausted, len(s.scripts)+1)
	}
	s.current++
	board, err := poker.ParseCards(s.scripts[s.current].Board)
	if err != nil {
		return fmt.Errorf("script %d board: %w", s.current, err)
	}
	s.board = board
	s.dealt = 0
	return nil
}

func (s *ScriptedSource) HoleCards(_ context.Context, seat int, _ game.Snapshot) ([]poker.Card, error) {
	hole, ok := s.scripts[s.current].Holes[seat]
	if !ok || strings.TrimSpace(hole) == "" {
		return nil, nil
	}
	cards, err := poker.ParseCards(hole)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCards, err)
	}
	return cards, nil
}

func (s *ScriptedSource) Board(_ context.Context, stage game.Stage, n int, _ game.Snapshot) ([]poker.Card, error) {
	if s.dealt+n > len(s.board) {
		return nil, fmt.Errorf("%w: board has no cards for %s", ErrScriptExhausted, stage)
	}
	cards := s.board[s.dealt : s.dealt+n]
	s.dealt += n
	return cards, nil
}
