package poker

// HoleCardCategory is a coarse pre-flop strength bucket for two hole cards.
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
	CategoryUnknown HoleCardCategory = "Unknown"
)

// Category buckets a two card hand:
//
//	Premium  JJ+, AK
//	Strong   TT, AQ, AJ
//	Medium   77-99, suited broadway
//	Weak     22-66, suited cards at most two ranks apart
//	Trash    everything else
//
// Hands that are not exactly two cards are Unknown.
func (h Hand) Category() HoleCardCategory {
	if h.CountCards() != 2 {
		return CategoryUnknown
	}
	cards := h.Cards()
	lo, hi := cards[0].Rank(), cards[1].Rank()
	if lo > hi {
		lo, hi = hi, lo
	}
	pair := lo == hi
	suited := cards[0].Suit() == cards[1].Suit()

	switch {
	case pair && lo >= Jack, lo == King && hi == Ace:
		return CategoryPremium
	case pair && lo == Ten, hi == Ace && (lo == Queen || lo == Jack):
		return CategoryStrong
	case pair && lo >= Seven, suited && lo >= Ten:
		return CategoryMedium
	case pair, suited && hi-lo <= 2:
		return CategoryWeak
	}
	return CategoryTrash
}
