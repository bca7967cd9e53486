// Package display renders table snapshots, decision analysis and hand
// results as styled terminal text.
package display

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lox/holdemtable/internal/analysis"
	"github.com/lox/holdemtable/internal/engine"
	"github.com/lox/holdemtable/internal/game"
	"github.com/lox/holdemtable/internal/statistics"
	"github.com/lox/holdemtable/poker"
)

// Cards renders cards with red and black suits, or "--" for none.
func Cards(cards []poker.Card) string {
	if len(cards) == 0 {
		return InfoStyle.Render("--")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		if s := c.Suit(); s == poker.Hearts || s == poker.Diamonds {
			parts[i] = RedCardStyle.Render(c.String())
		} else {
			parts[i] = BlackCardStyle.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}

// RenderTable renders the whole table as seen by an observer who knows
// every recorded card.
func RenderTable(s game.Snapshot) string {
	var b strings.Builder
	fmt.Fprintln(&b, HeaderStyle.Render(fmt.Sprintf(" Hand #%d  %s ", s.HandNumber, s.Stage)))
	fmt.Fprintf(&b, "Board: %s\n", Cards(s.Board))
	fmt.Fprintf(&b, "Pot: %d  To call: %d  Blinds: %d/%d\n\n", s.Pot, s.BetToCall, s.SmallBlind, s.BigBlind)

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, p := range s.Players {
		marker := " "
		switch {
		case p.Seat == s.ActingPlayer:
			marker = ">"
		case p.Seat == s.Dealer:
			marker = "D"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
			marker, p.Name, p.Stack, p.Contribution, status(p), Cards(p.HoleCards.Cards()))
	}
	w.Flush()

	return PanelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func status(p game.PlayerState) string {
	switch {
	case p.SittingOut:
		return "out"
	case p.Folded:
		return "folded"
	case p.AllIn:
		return "all-in"
	}
	return "-"
}

// RenderAnalysis renders what a seat is told before it decides.
func RenderAnalysis(a analysis.Analysis) string {
	var b strings.Builder
	fmt.Fprintln(&b, HandInfoStyle.Render("Analysis"))
	fmt.Fprintf(&b, "Equity:     %.1f%%\n", a.Equity*100)
	switch {
	case a.Hand != "":
		fmt.Fprintf(&b, "Hand:       %s\n", a.Hand)
	case a.Category != "" && a.Category != poker.CategoryUnknown:
		fmt.Fprintf(&b, "Starting:   %s\n", a.Category)
	}
	if a.AmountToCall > 0 {
		fmt.Fprintf(&b, "Pot odds:   %.1f%% (%d to call)\n", a.PotOdds*100, a.AmountToCall)
		fmt.Fprintf(&b, "Pot equity: %.1f chips\n", a.PotEquity)
		if a.Profitable() {
			fmt.Fprintln(&b, SuccessStyle.Render("calling is profitable"))
		} else {
			fmt.Fprintln(&b, WarningStyle.Render("calling is not profitable"))
		}
	}
	b.WriteString(InfoStyle.Render(fmt.Sprintf("computed in %v", a.Elapsed.Truncate(time.Millisecond))))
	return b.String()
}

// RenderDecision renders the table and, when present, the analysis.
func RenderDecision(s game.Snapshot, advice *analysis.Analysis) string {
	out := RenderTable(s)
	if advice != nil {
		out += "\n" + RenderAnalysis(*advice)
	}
	return out
}

var _ engine.Renderer = RenderDecision

// RenderResult summarises a finished hand: every pot slice and the stacks
// afterwards. s supplies seat names.
func RenderResult(r *engine.HandResult, s game.Snapshot) string {
	var b strings.Builder
	fmt.Fprintln(&b, HeaderStyle.Render(fmt.Sprintf(" Hand #%d result ", r.HandNumber)))
	fmt.Fprintf(&b, "Board: %s\n", Cards(r.Board))

	for _, pot := range r.Pots {
		names := make([]string, len(pot.Participants))
		for i, seat := range pot.Participants {
			names[i] = fmt.Sprintf("%s +%d", s.Players[seat].Name, pot.Payouts[i])
		}
		fmt.Fprintf(&b, "Pot %d: %s\n", pot.Amount, SuccessStyle.Render(strings.Join(names, ", ")))
	}

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for seat, stack := range r.Stacks {
		fmt.Fprintf(w, "%s\t%d\n", s.Players[seat].Name, stack)
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// RenderEquities renders one row per hand with its share of the pot.
func RenderEquities(hands []string, equities []float64, board []poker.Card, elapsed time.Duration) string {
	var b strings.Builder
	if len(board) > 0 {
		fmt.Fprintf(&b, "%s %s\n\n", HandInfoStyle.Render("board"), Cards(board))
	}

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "hand\tequity")
	for i, h := range hands {
		fmt.Fprintf(w, "%s\t%.1f%%\n", h, equities[i]*100)
	}
	w.Flush()

	b.WriteString("\n" + InfoStyle.Render(fmt.Sprintf("computed in %v", elapsed.Truncate(time.Millisecond))))
	return b.String()
}

// RenderSession renders one row per seat with its results in big blinds.
// s supplies seat names and final stacks.
func RenderSession(session *statistics.Session, s game.Snapshot) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "seat\tstack\thands\tbb/hand\t95% CI\tshowdown\tno showdown")
	for i, st := range session.Seats {
		low, high := st.ConfidenceInterval95()
		fmt.Fprintf(w, "%s\t%d\t%d\t%+.2f\t[%+.2f, %+.2f]\t%+.1f\t%+.1f\n",
			s.Players[i].Name, s.Players[i].Stack, st.Hands, st.Mean(), low, high, st.ShowdownBB, st.NonShowdownBB)
	}
	w.Flush()
	b.WriteString(InfoStyle.Render(fmt.Sprintf("largest pot %d", session.MaxPot)))
	return b.String()
}
