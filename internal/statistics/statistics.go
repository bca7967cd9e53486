// Package statistics accumulates per-seat results over a session of hands,
// measured in big blinds.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"github.com/lox/holdemtable/internal/engine"
)

// Statistics tracks one seat's results.
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // sum of squares, for the variance
	Values []float64 // every result, for median and percentiles

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64 // won or lost in hands that reached showdown
	NonShowdownBB   float64
}

// Add records one hand's result.
func (s *Statistics) Add(netBB float64, showdown bool) {
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	if showdown {
		s.ShowdownBB += netBB
		if netBB > 0 {
			s.ShowdownWins++
		}
	} else {
		s.NonShowdownBB += netBB
		if netBB > 0 {
			s.NonShowdownWins++
		}
	}
}

// Mean returns the average result in big blinds per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval of the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean, margin := s.Mean(), 1.96*s.StdError()
	return mean - margin, mean + margin
}

func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile interpolates the p-th percentile, p in [0, 1].
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	if lower+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[lower+1]*weight
}

// Session holds the statistics of every seat at one table.
type Session struct {
	BigBlind int
	Seats    []Statistics
	MaxPot   int
}

// NewSession returns an empty session for seats seats.
func NewSession(seats, bigBlind int) *Session {
	return &Session{BigBlind: bigBlind, Seats: make([]Statistics, seats)}
}

// Add records a finished hand for every seat that was dealt in.
func (s *Session) Add(r *engine.HandResult) {
	pot := 0
	for _, p := range r.Pots {
		pot += p.Amount
	}
	s.MaxPot = max(s.MaxPot, pot)

	showdown := r.Showdown()
	for seat, start := range r.StartingStacks {
		if start == 0 {
			continue
		}
		net := float64(r.Stacks[seat]-start) / float64(s.BigBlind)
		s.Seats[seat].Add(net, showdown)
	}
}

// Validate checks the session's books: every seat's showdown and
// non-showdown results add up to its total, and the table as a whole
// neither gained nor lost chips.
func (s *Session) Validate() error {
	total := 0.0
	for i := range s.Seats {
		st := &s.Seats[i]
		if math.Abs(st.SumBB-st.ShowdownBB-st.NonShowdownBB) > 1e-6 {
			return fmt.Errorf("seat %d: ledger mismatch: total %.6f, showdown %.6f, non-showdown %.6f",
				i, st.SumBB, st.ShowdownBB, st.NonShowdownBB)
		}
		if st.ShowdownWins+st.NonShowdownWins > st.Hands {
			return fmt.Errorf("seat %d: %d wins in %d hands", i, st.ShowdownWins+st.NonShowdownWins, st.Hands)
		}
		total += st.SumBB
	}
	if math.Abs(total) > 1e-6 {
		return fmt.Errorf("session is not zero sum: %.6f bb", total)
	}
	return nil
}
