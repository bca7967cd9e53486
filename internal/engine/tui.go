package engine

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type (
	// questionMsg replaces the prompt shown in front of the input.
	questionMsg string
	// inputClosedMsg arrives after the last key of a finite input.
	inputClosedMsg struct{}
)

// inputModel is the Bubble Tea model behind a Prompter: one text input whose
// submitted lines are queued until Ask takes them.
type inputModel struct {
	input textinput.Model
	inbox *inbox
}

func newInputModel(inbox *inbox) inputModel {
	ti := textinput.New()
	ti.Placeholder = "call, raise 50, fold, or cards like AsKd"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return inputModel{input: ti, inbox: inbox}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case questionMsg:
		m.input.Prompt = string(msg)
		return m, nil

	case inputClosedMsg:
		if line := strings.TrimSpace(m.input.Value()); line != "" {
			m.inbox.push(line)
		}
		m.inbox.close()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.inbox.close()
			return m, nil
		case tea.KeyEnter, tea.KeyCtrlJ: // piped input ends lines with \n
			m.inbox.push(strings.TrimSpace(m.input.Value()))
			m.input.Reset()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View is never empty, so lines printed above it are always flushed.
func (m inputModel) View() string {
	return m.input.View()
}

// inbox queues submitted lines between the program and Ask.
type inbox struct {
	mu     sync.Mutex
	lines  []string
	closed bool
	ready  chan struct{}
}

func newInbox() *inbox {
	return &inbox{ready: make(chan struct{}, 1)}
}

func (b *inbox) push(line string) {
	b.mu.Lock()
	b.lines = append(b.lines, line)
	b.mu.Unlock()
	b.signal()
}

func (b *inbox) close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.signal()
}

func (b *inbox) signal() {
	select {
	case b.ready <- struct{}{}:
	default:
	}
}

// next returns the oldest queued line. Lines queued before the input closed
// are still returned.
func (b *inbox) next(ctx context.Context) (string, error) {
	for {
		b.mu.Lock()
		if len(b.lines) > 0 {
			line := b.lines[0]
			b.lines = b.lines[1:]
			b.mu.Unlock()
			return line, nil
		}
		closed := b.closed
		b.mu.Unlock()

		if closed {
			return "", ErrInputClosed
		}
		select {
		case <-b.ready:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// eofReader calls atEOF when the wrapped reader is exhausted. Bubble Tea
// hands every key of one read to the program before reading again, so atEOF
// runs after the last key was delivered.
type eofReader struct {
	r     io.Reader
	atEOF func()
	err   error
}

func (e *eofReader) Read(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.finish()
	}
	n, err := e.r.Read(b)
	if err != nil {
		e.err = err
		if n > 0 {
			return n, nil
		}
		return 0, e.finish()
	}
	return n, nil
}

func (e *eofReader) finish() error {
	if errors.Is(e.err, io.EOF) && e.atEOF != nil {
		e.atEOF()
		e.atEOF = nil
	}
	return e.err
}
