package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/lox/holdemtable/internal/analysis"
	"github.com/lox/holdemtable/internal/game"
	"github.com/lox/holdemtable/poker"
)

var (
	// ErrInvalidAction is returned by ParseAction for unrecognised input.
	ErrInvalidAction = errors.New("invalid action")
	// ErrInputClosed is returned when the prompt input reaches EOF.
	ErrInputClosed = errors.New("input closed")
)

// Prompter reads answers through a Bubble Tea text input, from a terminal
// or any other reader. Output is printed above the input line.
type Prompter struct {
	program *tea.Program
	inbox   *inbox
	out     io.Writer
	done    chan struct{}
	err     error
}

// NewPrompter starts a prompter reading in and writing to out. Call Close
// to stop it and restore the terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{inbox: newInbox(), out: out, done: make(chan struct{})}

	input := in
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(f.Fd()) {
		input = &eofReader{r: in, atEOF: func() { p.program.Send(inputClosedMsg{}) }}
	}
	p.program = tea.NewProgram(newInputModel(p.inbox),
		tea.WithInput(input),
		tea.WithOutput(out),
		tea.WithoutSignalHandler())

	go func() {
		defer close(p.done)
		_, p.err = p.program.Run()
		p.inbox.close()
	}()
	return p
}

// Ask shows prompt and returns the next submitted line, trimmed. The
// question and its answer are echoed as one line.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.program.Send(questionMsg(prompt))

	line, err := p.inbox.next(ctx)
	if err != nil {
		return "", err
	}
	p.Say("%s%s", prompt, line)
	return line, nil
}

// Say writes one line of output.
func (p *Prompter) Say(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	select {
	case <-p.done:
		fmt.Fprintln(p.out, line)
	default:
		p.program.Send(tea.Println(line)())
	}
}

// Close stops the program, flushing pending output.
func (p *Prompter) Close() error {
	p.program.Quit()
	<-p.done
	return p.err
}

// ParseAction parses a typed decision:
//
//	f, fold           fold
//	c, call, k, check check or call
//	r N, raise N      raise N chips on top of the call
func ParseAction(s string) (game.Action, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidAction)
	}

	switch fields[0] {
	case "f", "fold":
		return game.Fold{}, nil
	case "c", "call", "k", "check":
		return game.CheckOrCall{}, nil
	case "r", "raise":
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: usage: raise <amount>", ErrInvalidAction)
		}
		amount, err := strconv.Atoi(fields[1])
		if err != nil || amount < 0 {
			return nil, fmt.Errorf("%w: invalid amount %q", ErrInvalidAction, fields[1])
		}
		return game.Raise{Amount: amount}, nil
	}
	return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidAction, fields[0])
}

// Renderer formats what a prompted seat sees before deciding.
type Renderer func(s game.Snapshot, advice *analysis.Analysis) string

// PromptAgent asks a person for the decision.
type PromptAgent struct {
	prompter *Prompter
	render   Renderer
}

// NewPromptAgent returns an agent asking through p. render may be nil.
func NewPromptAgent(p *Prompter, render Renderer) *PromptAgent {
	return &PromptAgent{prompter: p, render: render}
}

func (a *PromptAgent) Act(ctx context.Context, s game.Snapshot, advice *analysis.Analysis) (game.Action, error) {
	if a.render != nil {
		a.prompter.Say("%s", a.render(s, advice))
	}

	p := s.Players[s.ActingPlayer]
	prompt := fmt.Sprintf("%s to act, %d to call [f/c/r N]: ", p.Name, p.AmountToCall)
	for {
		line, err := a.prompter.Ask(ctx, prompt)
		if err != nil {
			return nil, err
		}
		action, err := ParseAction(line)
		if err == nil {
			return action, nil
		}
		a.prompter.Say("%v", err)
	}
}

func (a *PromptAgent) Reject(err error) {
	a.prompter.Say("rejected: %v", err)
}

// PromptSource asks for the hero's hole cards and the board, and for the
// cards of any other seat that reaches showdown.
type PromptSource struct {
	prompter *Prompter
	hero     int
}

// NewPromptSource returns a source asking through p.
func NewPromptSource(p *Prompter, hero int) *PromptSource {
	return &PromptSource{prompter: p, hero: hero}
}

func (s *PromptSource) StartHand(_ context.Context, handNumber int) error {
	s.prompter.Say("hand #%d", handNumber)
	return nil
}

func (s *PromptSource) HoleCards(ctx context.Context, seat int, snap game.Snapshot) ([]poker.Card, error) {
	if snap.Stage != game.Showdown && seat != s.hero {
		return nil, nil
	}
	return s.ask(ctx, fmt.Sprintf("hole cards for %s: ", snap.Players[seat].Name), 2)
}

func (s *PromptSource) Board(ctx context.Context, stage game.Stage, n int, _ game.Snapshot) ([]poker.Card, error) {
	name := strings.TrimPrefix(stage.String(), "deal_")
	return s.ask(ctx, fmt.Sprintf("%s (%d cards): ", name, n), n)
}

func (s *PromptSource) ask(ctx context.Context, prompt string, n int) ([]poker.Card, error) {
	line, err := s.prompter.Ask(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if got := poker.CountParsedCards(line); got != n {
		return nil, fmt.Errorf("%w: %q is not %d cards", ErrInvalidCards, line, n)
	}
	return poker.ParseCards(line)
}

func (s *PromptSource) Reject(err error) {
	s.prompter.Say("rejected: %v", err)
}
