package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atomicstack/keymenu/internal/binding"
	"github.com/atomicstack/keymenu/internal/clipboard"
	"github.com/atomicstack/keymenu/internal/logging"
	"github.com/atomicstack/keymenu/internal/logging/events"
	"github.com/atomicstack/keymenu/internal/terminal/tcellterm"
	"github.com/atomicstack/keymenu/internal/terminal/teaterm"
	"github.com/atomicstack/keymenu/internal/ui"
	"golang.org/x/term"
)

// Terminal backends selectable through Config.Backend.
const (
	BackendTea   = "tea"
	BackendTcell = "tcell"
)

// ErrInteractiveStdin is returned when bindings would be read from a
// terminal instead of a pipe or file.
var ErrInteractiveStdin = errors.New("no bindings: stdin is a terminal; pipe bindings in or pass a file")

// Config describes user-provided application options.
type Config struct {
	// Input names the bindings file; empty reads stdin.
	Input        string
	Title        string
	ShowTyped    bool
	ShowFooter   bool
	Backend      string
	PollInterval time.Duration
	Width        int
	Height       int
	Copy         bool
}

type deps struct {
	stdin       io.Reader
	stdinIsTTY  func() bool
	stdout      io.Writer
	newTerminal func(Config) (ui.Terminal, error)
	copy        func(string) (clipboard.Method, error)
}

func defaultDeps() deps {
	return deps{
		stdin:       os.Stdin,
		stdinIsTTY:  func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		stdout:      os.Stdout,
		newTerminal: newTerminal,
		copy:        clipboard.Copy,
	}
}

// Run loads the bindings, runs the selector and, once the terminal has been
// restored, writes the selected output to stdout.
func Run(cfg Config) error {
	return run(cfg, defaultDeps())
}

func run(cfg Config, d deps) error {
	table, err := loadBindings(cfg.Input, d)
	if err != nil {
		return err
	}

	t, err := d.newTerminal(cfg)
	if err != nil {
		return err
	}
	result, err := runLoop(table, t, cfg)
	if err != nil {
		events.App.Finish(result.State.String(), 0)
		return err
	}
	if result.State != ui.Resolved {
		events.App.Finish(result.State.String(), 0)
		return nil
	}

	n, err := io.WriteString(d.stdout, result.Output)
	events.App.Finish(result.State.String(), n)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if cfg.Copy {
		method, err := d.copy(result.Output)
		if err != nil {
			logging.Error(fmt.Errorf("copy output: %w", err))
		} else {
			events.App.Copy(method.String())
		}
	}
	return nil
}

func loadBindings(path string, d deps) (*binding.Table, error) {
	source := path
	var r io.Reader
	if path == "" {
		if d.stdinIsTTY != nil && d.stdinIsTTY() {
			return nil, ErrInteractiveStdin
		}
		source = "stdin"
		r = d.stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open bindings: %w", err)
		}
		defer f.Close()
		r = f
	}
	bindings, err := binding.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("load bindings from %s: %w", source, err)
	}
	events.Bindings.Loaded(source, len(bindings))
	return binding.NewTable(bindings), nil
}

// runLoop owns the terminal for the duration of one selection. Leave always
// runs once Enter has succeeded; its failure is joined with any loop error.
func runLoop(table *binding.Table, t ui.Terminal, cfg Config) (result ui.Result, err error) {
	if err := t.Enter(); err != nil {
		return ui.Result{}, fmt.Errorf("enter terminal: %w", err)
	}
	events.Terminal.Enter(cfg.Backend)
	defer func() {
		leaveErr := t.Leave()
		events.Terminal.Leave(cfg.Backend, leaveErr)
		if leaveErr != nil {
			err = errors.Join(err, fmt.Errorf("restore terminal: %w", leaveErr))
		}
		if err != nil {
			result.Output = ""
		}
	}()

	loop := ui.NewLoop(table, t, ui.Options{
		Title:        cfg.Title,
		ShowTyped:    cfg.ShowTyped,
		ShowFooter:   cfg.ShowFooter,
		PollInterval: cfg.PollInterval,
	})
	return loop.Run()
}

func newTerminal(cfg Config) (ui.Terminal, error) {
	switch cfg.Backend {
	case BackendTea, "":
		return teaterm.New(teaterm.Options{
			Width:          cfg.Width,
			Height:         cfg.Height,
			RedrawInterval: cfg.PollInterval,
		}), nil
	case BackendTcell:
		return tcellterm.New(tcellterm.Options{
			Width:  cfg.Width,
			Height: cfg.Height,
		}), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
