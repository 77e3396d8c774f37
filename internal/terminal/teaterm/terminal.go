// Package teaterm implements ui.Terminal on top of a Bubble Tea program.
//
// The program runs in its own goroutine and owns the tty: it enters the
// alternate screen, decodes keys and repaints. The loop talks to it through
// two narrow channels: key events flow out through a buffered channel that
// Poll drains with a timeout, and frames flow in through a slot the program
// reads on every redraw tick.
package teaterm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/atomicstack/keymenu/internal/logging/events"
	"github.com/atomicstack/keymenu/internal/theme"
	"github.com/atomicstack/keymenu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const eventBuffer = 64

// Options configures the Bubble Tea terminal.
type Options struct {
	// Input is read for key presses. Nil opens the controlling tty so stdin
	// stays free for piped bindings.
	Input io.Reader
	// Output receives the rendered UI. Nil opens the controlling tty and
	// falls back to stderr when there is none.
	Output io.Writer
	// Width and Height pin the viewport; zero follows the terminal size.
	Width  int
	Height int
	// RedrawInterval controls how often the latest frame is repainted.
	RedrawInterval time.Duration
}

// openTTY opens the controlling terminal for drawing.
var openTTY = func() (*os.File, error) {
	return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
}

// Terminal is a ui.Terminal backed by Bubble Tea.
type Terminal struct {
	opts Options
	tty  *os.File

	program *tea.Program
	slot    *frameSlot
	events  chan ui.Event
	ready   chan struct{}
	done    chan struct{}
	runErr  error
}

// New returns a terminal that is not yet displayed; call Enter to start it.
func New(opts Options) *Terminal {
	return &Terminal{opts: opts}
}

// output returns the writer the UI is drawn on, opening the tty on first use
// when no Output was given.
func (t *Terminal) output() io.Writer {
	if t.opts.Output != nil {
		return t.opts.Output
	}
	if t.tty == nil {
		f, err := openTTY()
		if err != nil {
			events.Terminal.Fallback("stderr", err)
			return os.Stderr
		}
		t.tty = f
	}
	return t.tty
}

func (t *Terminal) closeTTY() {
	if t.tty != nil {
		_ = t.tty.Close()
		t.tty = nil
	}
}

// Enter starts the Bubble Tea program and waits until it has taken over the
// terminal.
func (t *Terminal) Enter() error {
	if t.program != nil {
		return errors.New("teaterm: already entered")
	}
	t.slot = &frameSlot{}
	t.events = make(chan ui.Event, eventBuffer)
	t.ready = make(chan struct{})
	t.done = make(chan struct{})
	t.runErr = nil

	out := t.output()
	m := newModel(t.slot, t.events, theme.New(lipgloss.NewRenderer(out)), t.opts)
	var once sync.Once
	ready := t.ready
	m.onReady = func() { once.Do(func() { close(ready) }) }

	options := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithOutput(out),
	}
	if t.opts.Input != nil {
		options = append(options, tea.WithInput(t.opts.Input))
	} else {
		options = append(options, tea.WithInputTTY())
	}
	t.program = tea.NewProgram(m, options...)

	program, done := t.program, t.done
	go func() {
		_, err := program.Run()
		t.runErr = err
		close(done)
	}()

	select {
	case <-t.ready:
		return nil
	case <-t.done:
		t.program = nil
		t.closeTTY()
		return fmt.Errorf("start bubbletea: %w", t.closedErr())
	}
}

// Leave stops the program, which restores the terminal.
func (t *Terminal) Leave() error {
	if t.program == nil {
		return nil
	}
	select {
	case <-t.done:
	default:
		t.program.Quit()
		<-t.done
	}
	t.program = nil
	t.closeTTY()
	if t.runErr != nil && !errors.Is(t.runErr, tea.ErrProgramKilled) {
		return t.runErr
	}
	return nil
}

// Poll waits up to timeout for the next key event.
func (t *Terminal) Poll(timeout time.Duration) (ui.Event, error) {
	if t.program == nil {
		return ui.Event{}, ui.ErrTerminalClosed
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev := <-t.events:
		return ev, nil
	case <-t.done:
		return ui.Event{}, t.closedErr()
	case <-timer.C:
		return ui.Event{Kind: ui.EventNone}, nil
	}
}

// Render publishes frame; the program paints it on its next redraw tick.
func (t *Terminal) Render(frame ui.Frame) error {
	if t.program == nil {
		return ui.ErrTerminalClosed
	}
	select {
	case <-t.done:
		return t.closedErr()
	default:
	}
	t.slot.store(frame)
	return nil
}

// closedErr must only be called after done is closed or before the program
// was started.
func (t *Terminal) closedErr() error {
	if t.runErr != nil {
		return fmt.Errorf("%w: %w", ui.ErrTerminalClosed, t.runErr)
	}
	return ui.ErrTerminalClosed
}
