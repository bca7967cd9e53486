package evaluator

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/lox/holdemtable/internal/game"
)

// ErrUnknownHoleCards is returned when a seat contesting the showdown has no
// recorded hole cards.
var ErrUnknownHoleCards = errors.New("unknown hole cards")

// Rank orders the un-folded seats of a table at showdown by hand strength,
// best first. Seats with equal hands share a group, in seat order. With a
// single seat left the board may be incomplete and no cards are needed.
func Rank(s game.Snapshot) ([][]int, error) {
	if s.Stage != game.Showdown {
		return nil, &game.StageError{
			Op:       "Rank",
			Stage:    s.Stage,
			Required: []game.Stage{game.Showdown},
			Err:      game.ErrIllegalStageTransition,
		}
	}

	active := s.ActiveSeats()
	switch {
	case len(active) == 0:
		return nil, fmt.Errorf("%w: no seat left in the hand", game.ErrInvalidWinnerSet)
	case len(active) == 1:
		return [][]int{active}, nil
	case len(s.Board) != 5:
		return nil, fmt.Errorf("%w: %d board cards", game.ErrIncompleteBoard, len(s.Board))
	}

	type scored struct {
		seat     int
		strength int32
	}
	hands := make([]scored, 0, len(active))
	for _, seat := range active {
		hole := s.Players[seat].HoleCards
		if hole.CountCards() != 2 {
			return nil, fmt.Errorf("%w: seat %d", ErrUnknownHoleCards, seat)
		}
		hands = append(hands, scored{seat: seat, strength: Strength(hole, s.Board)})
	}
	slices.SortFunc(hands, func(a, b scored) int {
		return cmp.Or(cmp.Compare(a.strength, b.strength), cmp.Compare(a.seat, b.seat))
	})

	var ranking [][]int
	for i, h := range hands {
		if i > 0 && h.strength == hands[i-1].strength {
			ranking[len(ranking)-1] = append(ranking[len(ranking)-1], h.seat)
			continue
		}
		ranking = append(ranking, []int{h.seat})
	}
	return ranking, nil
}

// Winners returns the seats holding the best hand at showdown.
func Winners(s game.Snapshot) ([]int, error) {
	ranking, err := Rank(s)
	if err != nil {
		return nil, err
	}
	return ranking[0], nil
}
