package tcellterm

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/keymenu/internal/binding"
	"github.com/atomicstack/keymenu/internal/ui"
	"github.com/gdamore/tcell/v2"
)

func enterSimulation(t *testing.T, opts Options) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	opts.Screen = screen
	term := New(opts)
	if err := term.Enter(); err != nil {
		t.Fatalf("enter: %v", err)
	}
	screen.SetSize(60, 12)
	t.Cleanup(func() { _ = term.Leave() })
	return term, screen
}

// nextEvent polls until an event other than EventNone arrives.
func nextEvent(t *testing.T, term *Terminal) ui.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ev, err := term.Poll(20 * time.Millisecond)
		if err != nil {
			t.Fatalf("poll: %v", err)
		}
		if ev.Kind != ui.EventNone {
			return ev
		}
	}
	t.Fatalf("timed out waiting for event")
	return ui.Event{}
}

func screenLines(screen tcell.SimulationScreen) []string {
	cells, width, height := screen.GetContents()
	lines := make([]string, height)
	for y := 0; y < height; y++ {
		var b strings.Builder
		for x := 0; x < width; x++ {
			cell := cells[y*width+x]
			if len(cell.Runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(cell.Runes[0])
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

func sampleFrame(typed string) ui.Frame {
	table := binding.NewTable([]binding.Binding{
		{Keys: "gg", Output: "top"},
		{Keys: "ge", Output: "bottom"},
		{Keys: "x", Output: "cut"},
	})
	return ui.Frame{
		Title: "Matches",
		View:  ui.Project(table, typed),
		Total: table.Len(),
	}
}

func TestPollTranslatesKeys(t *testing.T) {
	term, screen := enterSimulation(t, Options{})

	screen.InjectKey(tcell.KeyRune, 'g', tcell.ModNone)
	if ev := nextEvent(t, term); ev != ui.KeyEvent('g') {
		t.Fatalf("expected key g, got %v", ev)
	}
	screen.InjectKey(tcell.KeyBackspace2, 0, tcell.ModNone)
	if ev := nextEvent(t, term); ev.Kind != ui.EventBackspace {
		t.Fatalf("expected backspace, got %v", ev)
	}
	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	if ev := nextEvent(t, term); ev.Kind != ui.EventOther {
		t.Fatalf("expected other, got %v", ev)
	}
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	if ev := nextEvent(t, term); ev.Kind != ui.EventCancel {
		t.Fatalf("expected cancel, got %v", ev)
	}
}

func TestPollTimesOut(t *testing.T) {
	term, _ := enterSimulation(t, Options{})
	// Drain anything the screen queued on init.
	for {
		ev, err := term.Poll(20 * time.Millisecond)
		if err != nil {
			t.Fatalf("poll: %v", err)
		}
		if ev.Kind == ui.EventNone {
			break
		}
	}
	start := time.Now()
	ev, err := term.Poll(30 * time.Millisecond)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if ev.Kind != ui.EventNone {
		t.Fatalf("expected no event, got %v", ev)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected poll to return promptly, took %v", elapsed)
	}
}

func TestConvertKeyModifiers(t *testing.T) {
	ev := convertKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt))
	if ev.Kind != ui.EventOther {
		t.Fatalf("expected alt+x to be ignored, got %v", ev)
	}
	ev = convertKey(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if ev.Kind != ui.EventCancel {
		t.Fatalf("expected ctrl+c to cancel, got %v", ev)
	}
	ev = convertKey(tcell.NewEventKey(tcell.KeyRune, 'É', tcell.ModShift))
	if ev != ui.KeyEvent('É') {
		t.Fatalf("expected shifted rune to be a key, got %v", ev)
	}
}

func TestRenderDrawsFrame(t *testing.T) {
	term, screen := enterSimulation(t, Options{})
	frame := sampleFrame("g")
	frame.ShowTyped = true
	frame.ShowFooter = true
	if err := term.Render(frame); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := screenLines(screen)
	if lines[0] != "» g" {
		t.Fatalf("expected typed line, got %q", lines[0])
	}
	if lines[1] != "Matches 2/3" {
		t.Fatalf("expected title line, got %q", lines[1])
	}
	if lines[2] != "KEYS  OUTPUT" {
		t.Fatalf("expected header, got %q", lines[2])
	}
	if lines[3] != "gg    top" || lines[4] != "ge    bottom" {
		t.Fatalf("unexpected rows %q %q", lines[3], lines[4])
	}
	if lines[6] != footerHelp {
		t.Fatalf("expected footer, got %q", lines[6])
	}
}

func TestRenderDeadEnd(t *testing.T) {
	term, screen := enterSimulation(t, Options{})
	if err := term.Render(sampleFrame("q")); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := screenLines(screen)
	if lines[1] != `No matches for "q"` {
		t.Fatalf("expected dead-end message, got %q", lines[1])
	}
}

func TestRenderClampsToOptions(t *testing.T) {
	term, screen := enterSimulation(t, Options{Width: 8, Height: 3})
	if err := term.Render(sampleFrame("")); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := screenLines(screen)
	if lines[0] != "Matches…" {
		t.Fatalf("expected truncated title, got %q", lines[0])
	}
	if lines[2] != ellipsis {
		t.Fatalf("expected ellipsis row, got %q", lines[2])
	}
	for y := 3; y < len(lines); y++ {
		if lines[y] != "" {
			t.Fatalf("expected row %d to be blank, got %q", y, lines[y])
		}
	}
}

func TestLeaveClosesTerminal(t *testing.T) {
	term, _ := enterSimulation(t, Options{})
	if err := term.Leave(); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if _, err := term.Poll(time.Millisecond); !errors.Is(err, ui.ErrTerminalClosed) {
		t.Fatalf("expected ErrTerminalClosed, got %v", err)
	}
	if err := term.Render(ui.Frame{}); !errors.Is(err, ui.ErrTerminalClosed) {
		t.Fatalf("expected ErrTerminalClosed, got %v", err)
	}
	if err := term.Leave(); err != nil {
		t.Fatalf("expected second leave to be a no-op, got %v", err)
	}
}

func TestEnterTwice(t *testing.T) {
	term, _ := enterSimulation(t, Options{})
	if err := term.Enter(); err == nil {
		t.Fatalf("expected error on second enter")
	}
}
