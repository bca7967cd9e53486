// Package evaluator ranks hands and estimates equities. Seven card hand
// strength comes from github.com/chehsunliu/poker, where a lower value is a
// stronger hand.
package evaluator

import (
	cpoker "github.com/chehsunliu/poker"

	"github.com/lox/holdemtable/poker"
)

// evalCards maps bit index (suit*13+rank) to the evaluator's card encoding.
var evalCards [52]cpoker.Card

func init() {
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			c := poker.NewCard(rank, suit)
			evalCards[index(c)] = cpoker.NewCard(c.String())
		}
	}
}

func index(c poker.Card) int {
	return int(c.Suit())*13 + int(c.Rank())
}

func toEval(c poker.Card) cpoker.Card {
	return evalCards[index(c)]
}

func toEvalCards(cards []poker.Card) []cpoker.Card {
	out := make([]cpoker.Card, len(cards))
	for i, c := range cards {
		out[i] = toEval(c)
	}
	return out
}

// remaining lists the cards not in dead, in bit order.
func remaining(dead poker.Hand) []poker.Card {
	cards := make([]poker.Card, 0, 52-dead.CountCards())
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			if c := poker.NewCard(rank, suit); !dead.HasCard(c) {
				cards = append(cards, c)
			}
		}
	}
	return cards
}

// Strength evaluates the best five card hand out of hole and board. Lower is
// stronger. Together they must hold between five and seven cards.
func Strength(hole poker.Hand, board []poker.Card) int32 {
	cards := append(hole.Cards(), board...)
	return cpoker.Evaluate(toEvalCards(cards))
}

// Describe names the hand class of hole plus board, e.g. "Full House", or
// returns "" while fewer than five cards are known.
func Describe(hole poker.Hand, board []poker.Card) string {
	n := hole.CountCards() + len(board)
	if n < 5 || n > 7 {
		return ""
	}
	return cpoker.RankString(Strength(hole, board))
}
