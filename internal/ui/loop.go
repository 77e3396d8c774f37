package ui

import (
	"fmt"
	"time"

	"github.com/atomicstack/keymenu/internal/binding"
	"github.com/atomicstack/keymenu/internal/engine"
	"github.com/atomicstack/keymenu/internal/logging/events"
)

// DefaultPollInterval bounds how long a single poll waits for input.
const DefaultPollInterval = 50 * time.Millisecond

const defaultTitle = "Matches"

// State is the lifecycle of a Loop.
type State int

const (
	Running State = iota
	Resolved
	Cancelled
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Resolved:
		return "resolved"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result is the terminal state of a run. Output is empty unless State is
// Resolved.
type Result struct {
	State  State
	Output string
}

// Options configures how a Loop renders and polls.
type Options struct {
	Title        string
	ShowTyped    bool
	ShowFooter   bool
	PollInterval time.Duration
}

// Loop owns the engine for one interactive selection.
type Loop struct {
	table  *binding.Table
	engine *engine.Engine
	term   Terminal
	opts   Options

	state  State
	output string
}

// NewLoop prepares a loop over table that draws to and reads from term.
func NewLoop(table *binding.Table, term Terminal, opts Options) *Loop {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Title == "" {
		opts.Title = defaultTitle
	}
	return &Loop{
		table:  table,
		engine: engine.New(table),
		term:   term,
		opts:   opts,
		state:  Running,
	}
}

// Run renders, polls and dispatches until the engine resolves or the user
// cancels. Terminal errors abort the run and are returned as-is, wrapped with
// the step that failed.
func (l *Loop) Run() (Result, error) {
	for l.state == Running {
		if err := l.term.Render(l.frame()); err != nil {
			return Result{State: l.state}, fmt.Errorf("render: %w", err)
		}
		ev, err := l.term.Poll(l.opts.PollInterval)
		if err != nil {
			return Result{State: l.state}, fmt.Errorf("poll input: %w", err)
		}
		l.apply(l.dispatch(ev))
	}
	return Result{State: l.state, Output: l.output}, nil
}

func (l *Loop) frame() Frame {
	return Frame{
		Title:            l.opts.Title,
		View:             Project(l.table, l.engine.Typed()),
		Total:            l.table.Len(),
		ShowTyped:        l.opts.ShowTyped,
		ShowFooter:       l.opts.ShowFooter,
		ShowDescriptions: l.table.HasDescriptions(),
	}
}

func (l *Loop) dispatch(ev Event) engine.Outcome {
	switch ev.Kind {
	case EventNone:
		return engine.Outcome{Kind: engine.Continue}
	case EventKey:
		out := l.engine.OnChar(ev.Rune)
		typed := l.engine.Typed()
		switch {
		case out.Kind == engine.Resolved:
			events.Keys.Resolve(typed, out.Output)
		case len(l.engine.Reachable()) == 0:
			events.Keys.DeadEnd(typed)
		default:
			events.Keys.Append(typed, len(l.engine.Reachable()))
		}
		return out
	case EventBackspace:
		out := l.engine.OnBackspace()
		events.Keys.Backspace(l.engine.Typed())
		return out
	case EventCancel:
		events.Keys.Cancel(l.engine.Typed())
		return l.engine.OnCancel()
	default:
		events.Keys.Ignored(ev.String())
		return l.engine.OnOther()
	}
}

func (l *Loop) apply(out engine.Outcome) {
	switch out.Kind {
	case engine.Resolved:
		l.state = Resolved
		l.output = out.Output
	case engine.Cancelled:
		l.state = Cancelled
		l.output = ""
	}
}
