// Package phh exports finished hands in the Poker Hand History format
// (https://phh.readthedocs.io), one TOML document per hand.
//
// Players are numbered p1..pn clockwise starting left of the dealer, so the
// dealer is always the last player. Seats that sat the hand out are left out.
package phh

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdemtable/internal/engine"
	"github.com/lox/holdemtable/internal/fileutil"
	"github.com/lox/holdemtable/internal/game"
	"github.com/lox/holdemtable/poker"
)

// HandHistory is one hand in PHH form.
type HandHistory struct {
	Variant           string   `toml:"variant"`
	Table             string   `toml:"table,omitempty"`
	SeatCount         int      `toml:"seat_count"`
	Seats             []int    `toml:"seats"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []int    `toml:"blinds_or_straddles"`
	MinBet            int      `toml:"min_bet"`
	StartingStacks    []int    `toml:"starting_stacks"`
	FinishingStacks   []int    `toml:"finishing_stacks"`
	Winnings          []int    `toml:"winnings"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players"`
	Hand              int      `toml:"hand"`
}

// FromResult converts a finished hand. s supplies seat names and the big
// blind; any snapshot of the same table will do.
func FromResult(r *engine.HandResult, s game.Snapshot, table string) *HandHistory {
	n := len(r.StartingStacks)
	var order []int // seat of p1, p2, ...
	for i := 1; i <= n; i++ {
		seat := (r.Dealer + i) % n
		if r.StartingStacks[seat] > 0 {
			order = append(order, seat)
		}
	}
	player := make(map[int]int, len(order)) // seat -> 1 based player number
	for i, seat := range order {
		player[seat] = i + 1
	}

	h := &HandHistory{
		Variant:           "NT",
		Table:             table,
		SeatCount:         n,
		Antes:             make([]int, len(order)),
		BlindsOrStraddles: make([]int, len(order)),
		MinBet:            s.BigBlind,
		Hand:              r.HandNumber,
	}
	winnings := r.Winnings()
	for _, seat := range order {
		h.Seats = append(h.Seats, seat+1)
		h.Players = append(h.Players, s.Players[seat].Name)
		h.StartingStacks = append(h.StartingStacks, r.StartingStacks[seat])
		h.FinishingStacks = append(h.FinishingStacks, r.Stacks[seat])
		h.Winnings = append(h.Winnings, winnings[seat])
	}

	for _, seat := range order {
		h.Actions = append(h.Actions, fmt.Sprintf("d dh p%d %s", player[seat], holeString(r.HoleCards[seat])))
	}

	dealt := 0
	dealTo := func(count int) {
		for dealt < min(count, len(r.Board)) {
			next := dealt + 1
			if dealt == 0 {
				next = 3
			}
			h.Actions = append(h.Actions, "d db "+cardsString(r.Board[dealt:next]))
			dealt = next
		}
	}

	street := game.PostBlinds
	bets := make(map[int]int) // chips each seat has put in on this street
	for _, rec := range r.History {
		p := player[rec.Seat]
		if rec.Stage == game.PostBlinds {
			h.BlindsOrStraddles[p-1] += rec.Amount
			bets[rec.Seat] += rec.Amount
			continue
		}
		if rec.Stage != street && street != game.PostBlinds {
			clear(bets)
		}
		street = rec.Stage
		dealTo(boardSize(rec.Stage))

		bets[rec.Seat] += rec.Amount
		switch rec.Action.(type) {
		case game.Fold:
			h.Actions = append(h.Actions, fmt.Sprintf("p%d f", p))
		case game.CheckOrCall:
			h.Actions = append(h.Actions, fmt.Sprintf("p%d cc", p))
		case game.Raise:
			h.Actions = append(h.Actions, fmt.Sprintf("p%d cbr %d", p, bets[rec.Seat]))
		}
	}
	dealTo(len(r.Board))

	if r.Showdown() {
		for _, seat := range order {
			if contended(r.Ranking, seat) {
				h.Actions = append(h.Actions, fmt.Sprintf("p%d sm %s", player[seat], holeString(r.HoleCards[seat])))
			}
		}
	}
	return h
}

func boardSize(stage game.Stage) int {
	switch stage {
	case game.FlopBetting:
		return 3
	case game.TurnBetting:
		return 4
	case game.RiverBetting:
		return 5
	}
	return 0
}

func contended(ranking [][]int, seat int) bool {
	return slices.ContainsFunc(ranking, func(group []int) bool {
		return slices.Contains(group, seat)
	})
}

func holeString(h poker.Hand) string {
	if h.CountCards() != 2 {
		return "????"
	}
	return cardsString(h.Cards())
}

func cardsString(cards []poker.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}

// Encode writes the hand history as TOML.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// Filename is the name Write uses for hand.
func Filename(hand *HandHistory) string {
	return fmt.Sprintf("hand-%05d.phh", hand.Hand)
}

// Write stores hand in dir, replacing any earlier file for the same hand.
func Write(dir string, hand *HandHistory) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("phh: %w", err)
	}
	return fileutil.WriteAtomic(filepath.Join(dir, Filename(hand)), 0o644, func(w io.Writer) error {
		return Encode(w, hand)
	})
}
