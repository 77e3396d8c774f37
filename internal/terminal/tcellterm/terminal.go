// Package tcellterm implements ui.Terminal directly on a tcell screen.
package tcellterm

import (
	"errors"
	"sync"
	"time"

	"github.com/atomicstack/keymenu/internal/logging/events"
	"github.com/atomicstack/keymenu/internal/ui"
	"github.com/gdamore/tcell/v2"
)

const eventBuffer = 64

// Options configures the tcell terminal.
type Options struct {
	// Screen is used instead of the controlling terminal when set.
	Screen tcell.Screen
	// Width and Height clamp the drawn area; zero uses the screen size.
	Width  int
	Height int
}

// Terminal is a ui.Terminal backed by a tcell screen.
type Terminal struct {
	opts Options

	mu       sync.Mutex
	screen   tcell.Screen
	events   chan tcell.Event
	quit     chan struct{}
	pumpDone chan struct{}
}

// New returns a terminal that is not yet displayed; call Enter to start it.
func New(opts Options) *Terminal {
	return &Terminal{opts: opts}
}

// Enter initialises the screen and starts reading events from it.
func (t *Terminal) Enter() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.screen != nil {
		return errors.New("tcellterm: already entered")
	}
	screen := t.opts.Screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return err
		}
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.HideCursor()
	screen.Clear()

	t.screen = screen
	t.events = make(chan tcell.Event, eventBuffer)
	t.quit = make(chan struct{})
	t.pumpDone = make(chan struct{})
	go t.pump(screen, t.events, t.quit, t.pumpDone)
	return nil
}

func (t *Terminal) pump(screen tcell.Screen, out chan<- tcell.Event, quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-quit:
			return
		}
	}
}

// Leave finalises the screen, restoring the terminal.
func (t *Terminal) Leave() error {
	t.mu.Lock()
	screen := t.screen
	t.screen = nil
	t.mu.Unlock()

	if screen == nil {
		return nil
	}
	close(t.quit)
	screen.Fini()
	<-t.pumpDone
	return nil
}

// Poll waits up to timeout for the next input event.
func (t *Terminal) Poll(timeout time.Duration) (ui.Event, error) {
	t.mu.Lock()
	screen, in, done := t.screen, t.events, t.pumpDone
	t.mu.Unlock()
	if screen == nil {
		return ui.Event{}, ui.ErrTerminalClosed
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev := <-in:
		return t.convert(screen, ev), nil
	case <-done:
		return ui.Event{}, ui.ErrTerminalClosed
	case <-timer.C:
		return ui.Event{Kind: ui.EventNone}, nil
	}
}

func (t *Terminal) convert(screen tcell.Screen, ev tcell.Event) ui.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return convertKey(e)
	case *tcell.EventResize:
		w, h := e.Size()
		events.Terminal.Resize(w, h)
		screen.Sync()
	}
	return ui.Event{Kind: ui.EventNone}
}

func convertKey(e *tcell.EventKey) ui.Event {
	switch e.Key() {
	case tcell.KeyRune:
		if e.Modifiers()&(tcell.ModAlt|tcell.ModCtrl|tcell.ModMeta) != 0 {
			return ui.Event{Kind: ui.EventOther}
		}
		return ui.KeyEvent(e.Rune())
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ui.Event{Kind: ui.EventCancel}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ui.Event{Kind: ui.EventBackspace}
	}
	return ui.Event{Kind: ui.EventOther}
}

// Render draws frame and flushes it to the screen.
func (t *Terminal) Render(frame ui.Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.screen == nil {
		return ui.ErrTerminalClosed
	}

	width, height := t.screen.Size()
	if t.opts.Width > 0 && t.opts.Width < width {
		width = t.opts.Width
	}
	if t.opts.Height > 0 && t.opts.Height < height {
		height = t.opts.Height
	}

	t.screen.Clear()
	for y, line := range layout(frame, height) {
		if y >= height {
			break
		}
		drawLine(t.screen, y, width, line)
	}
	t.screen.Show()
	return nil
}
