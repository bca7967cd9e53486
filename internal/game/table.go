package game

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemtable/poker"
)

// Table holds the state of one hand: every seat's money and progress plus the
// shared pot, board, stage and turn pointer. Seat indices are stable for the
// lifetime of the table; seats are never added or removed mid-hand.
type Table struct {
	players    []player
	stage      Stage
	pot        int
	betToCall  int // contribution a seat must reach to stay in the hand
	board      []poker.Card
	acting     int
	dealer     int
	smallBlind int
	bigBlind   int
	handNumber int
	history    []ActionRecord
	logger     *log.Logger
}

// NewTable seats the players, posts the blinds and returns a table waiting
// for pocket cards. Blinds are posted by the two seats after the dealer, or
// by the dealer (small blind) and the other seat when heads-up.
func NewTable(seats []Seat, dealer, smallBlind, bigBlind int, opts ...Option) (*Table, error) {
	if len(seats) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 seats, got %d", ErrInvalidSetup, len(seats))
	}
	if dealer < 0 || dealer >= len(seats) {
		return nil, fmt.Errorf("%w: dealer position %d out of range for %d seats", ErrInvalidSetup, dealer, len(seats))
	}
	if smallBlind <= 0 {
		return nil, fmt.Errorf("%w: small blind must be positive, got %d", ErrInvalidSetup, smallBlind)
	}
	if smallBlind >= bigBlind {
		return nil, fmt.Errorf("%w: small blind %d must be less than big blind %d", ErrInvalidSetup, smallBlind, bigBlind)
	}
	for i, s := range seats {
		if s.Stack <= 0 {
			return nil, fmt.Errorf("%w: seat %d (%s) has no chips", ErrInvalidSetup, i, s.Name)
		}
	}

	cfg := newTableConfig(opts)
	t := &Table{
		players:    make([]player, len(seats)),
		dealer:     dealer,
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		handNumber: cfg.handNumber,
		logger:     cfg.logger,
	}
	for i, s := range seats {
		t.players[i] = player{name: s.Name, stack: s.Stack}
	}

	t.startHand()
	return t, nil
}

// NextHand starts a new hand once the current one has ended. Stacks carry
// over, the dealer button moves to the next seat holding chips and blinds are
// posted again. Seats without chips sit the new hand out.
func (t *Table) NextHand() error {
	if t.stage != EndOfHand {
		return &StageError{Op: "NextHand", Stage: t.stage, Required: []Stage{EndOfHand}, Err: ErrIllegalStageTransition}
	}

	withChips := 0
	for i := range t.players {
		if t.players[i].stack > 0 {
			withChips++
		}
	}
	if withChips < 2 {
		return fmt.Errorf("%w: %d seat(s) left", ErrNotEnoughPlayers, withChips)
	}

	n := len(t.players)
	for i := 1; i <= n; i++ {
		pos := (t.dealer + i) % n
		if t.players[pos].stack > 0 {
			t.dealer = pos
			break
		}
	}
	t.handNumber++
	t.startHand()
	return nil
}

func (t *Table) startHand() {
	t.stage = PostBlinds
	t.pot = 0
	t.betToCall = 0
	t.board = make([]poker.Card, 0, 5)
	t.history = nil
	for i := range t.players {
		t.players[i].resetForHand()
	}

	sb, bb := t.blindPositions()
	t.postBlind(sb, t.smallBlind)
	t.postBlind(bb, t.bigBlind)

	t.acting = bb
	if !t.electNextActor() {
		t.electAfterDealer()
	}

	t.logger.Debug("hand started", "hand", t.handNumber, "dealer", t.dealer,
		"small_blind", sb, "big_blind", bb, "pot", t.pot)
	t.setStage(DealPocketCards)
}

func (t *Table) blindPositions() (sb, bb int) {
	if t.dealtInCount() == 2 {
		return t.dealer, t.nextDealtIn(t.dealer)
	}
	sb = t.nextDealtIn(t.dealer)
	return sb, t.nextDealtIn(sb)
}

// postBlind commits a forced bet. A seat that cannot cover the blind posts
// its whole stack and is all-in.
func (t *Table) postBlind(pos, size int) {
	p := &t.players[pos]
	owed := p.owes(t.betToCall)
	amount := min(size, p.stack)
	t.commit(pos, amount)
	if p.contribution > t.betToCall {
		t.betToCall = p.contribution
	}
	t.history = append(t.history, ActionRecord{
		Seat:   pos,
		Stage:  PostBlinds,
		Action: Raise{Amount: max(amount-owed, 0)},
		Amount: amount,
	})
}

func (t *Table) commit(pos, amount int) {
	t.players[pos].commit(amount)
	t.pot += amount
}

func (t *Table) nextDealtIn(pos int) int {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		next := (pos + i) % n
		if !t.players[next].sittingOut {
			return next
		}
	}
	return pos
}

func (t *Table) dealtInCount() int {
	count := 0
	for i := range t.players {
		if !t.players[i].sittingOut {
			count++
		}
	}
	return count
}

func (t *Table) mayAct(pos int) bool {
	return t.players[pos].mayAct(t.betToCall)
}

// electNextActor scans clockwise from the current actor and hands the turn to
// the first seat that may act. It returns false when nobody may act, which
// closes the betting round.
func (t *Table) electNextActor() bool {
	n := len(t.players)
	for i := 1; i < n; i++ {
		pos := (t.acting + i) % n
		if t.mayAct(pos) {
			t.acting = pos
			return true
		}
	}
	return false
}

// electAfterDealer hands the turn to the first seat left of the dealer that
// may act. Every betting round after the first starts here.
func (t *Table) electAfterDealer() {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		pos := (t.dealer + i) % n
		if t.mayAct(pos) {
			t.acting = pos
			return
		}
	}
}

// bettingIsMoot reports whether a betting round would have nobody to ask:
// fewer than two seats can still act and none of them owes chips.
func (t *Table) bettingIsMoot() bool {
	capable := 0
	owing := false
	for i := range t.players {
		p := &t.players[i]
		if !p.canAct() {
			continue
		}
		capable++
		if p.owes(t.betToCall) > 0 {
			owing = true
		}
	}
	return capable == 0 || (capable == 1 && !owing)
}

// enterBetting moves to betting stage s once its cards are dealt. If the
// round would be moot the stage is skipped and the next deal (or the
// showdown after the river) follows directly.
func (t *Table) enterBetting(s Stage) {
	switch {
	case t.activeCount() < 2:
		t.setStage(Showdown)
	case t.bettingIsMoot():
		t.logger.Debug("skipping betting round", "stage", s)
		t.setStage(s.Next())
	default:
		t.setStage(s)
	}
}

func (t *Table) closeBettingRound() {
	for i := range t.players {
		t.players[i].actedThisRound = false
	}
	t.electAfterDealer()

	if t.activeCount() < 2 {
		t.setStage(Showdown)
		return
	}
	t.setStage(t.stage.Next())
}

func (t *Table) setStage(s Stage) {
	if s == t.stage {
		return
	}
	t.logger.Debug("stage change", "hand", t.handNumber, "from", t.stage, "to", s, "pot", t.pot)
	t.stage = s
}

func (t *Table) activeCount() int {
	count := 0
	for i := range t.players {
		if !t.players[i].folded {
			count++
		}
	}
	return count
}

func (t *Table) capableCount() int {
	count := 0
	for i := range t.players {
		if t.players[i].canAct() {
			count++
		}
	}
	return count
}

func (t *Table) requireStage(op string, want Stage) error {
	if t.stage != want {
		return &StageError{Op: op, Stage: t.stage, Required: []Stage{want}, Err: ErrIllegalStageTransition}
	}
	return nil
}

func (t *Table) validSeat(seat int) bool {
	return seat >= 0 && seat < len(t.players)
}

// Stage returns the current stage.
func (t *Table) Stage() Stage { return t.stage }

// Pot returns the chips committed by all seats this hand. The value is kept
// after settlement as a record of the hand.
func (t *Table) Pot() int { return t.pot }

// BetToCall returns the contribution a seat must reach to stay in the hand.
func (t *Table) BetToCall() int { return t.betToCall }

// Dealer returns the dealer seat.
func (t *Table) Dealer() int { return t.dealer }

// HandNumber returns the number of the current hand.
func (t *Table) HandNumber() int { return t.handNumber }

// SmallBlind returns the small blind size.
func (t *Table) SmallBlind() int { return t.smallBlind }

// BigBlind returns the big blind size.
func (t *Table) BigBlind() int { return t.bigBlind }

// NumSeats returns the number of seats.
func (t *Table) NumSeats() int { return len(t.players) }

// ActingPlayer returns the seat whose turn it is, or -1 outside betting stages.
func (t *Table) ActingPlayer() int {
	if !t.stage.IsBetting() {
		return -1
	}
	return t.acting
}

// Board returns a copy of the community cards.
func (t *Table) Board() []poker.Card {
	board := make([]poker.Card, len(t.board))
	copy(board, t.board)
	return board
}

// AmountToCall returns the chips seat must add to stay in, capped by its stack.
func (t *Table) AmountToCall(seat int) int {
	if !t.validSeat(seat) {
		return 0
	}
	p := &t.players[seat]
	return min(p.owes(t.betToCall), p.stack)
}

// MayAct reports whether seat still has to respond in the current round.
func (t *Table) MayAct(seat int) bool {
	return t.validSeat(seat) && t.mayAct(seat)
}

// ActivePlayerCount returns the number of seats that have not folded.
func (t *Table) ActivePlayerCount() int { return t.activeCount() }

// ActingCapablePlayerCount returns the number of seats that are neither
// folded nor all-in.
func (t *Table) ActingCapablePlayerCount() int { return t.capableCount() }

// Stacks returns every seat's current stack.
func (t *Table) Stacks() []int {
	stacks := make([]int, len(t.players))
	for i := range t.players {
		stacks[i] = t.players[i].stack
	}
	return stacks
}

// TotalChips returns stacks plus any chips still in the pot. It never changes
// over the life of a table.
func (t *Table) TotalChips() int {
	total := 0
	if t.stage != EndOfHand {
		total = t.pot
	}
	for i := range t.players {
		total += t.players[i].stack
	}
	return total
}

// History returns a copy of this hand's action log, blinds included.
func (t *Table) History() []ActionRecord {
	history := make([]ActionRecord, len(t.history))
	copy(history, t.history)
	return history
}
