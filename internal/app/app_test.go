package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/keymenu/internal/clipboard"
	"github.com/atomicstack/keymenu/internal/logging"
	"github.com/atomicstack/keymenu/internal/terminal/tcellterm"
	"github.com/atomicstack/keymenu/internal/terminal/teaterm"
	"github.com/atomicstack/keymenu/internal/ui"
)

type testEnv struct {
	stdout  bytes.Buffer
	harness *ui.Harness
	copied  []string
	copyErr error
}

func (e *testEnv) deps(stdin string) deps {
	return deps{
		stdin:       strings.NewReader(stdin),
		stdinIsTTY:  func() bool { return false },
		stdout:      &e.stdout,
		newTerminal: func(Config) (ui.Terminal, error) { return e.harness, nil },
		copy: func(text string) (clipboard.Method, error) {
			e.copied = append(e.copied, text)
			return clipboard.MethodSystem, e.copyErr
		},
	}
}

func newTestEnv(events ...ui.Event) *testEnv {
	return &testEnv{harness: ui.NewHarness(events...)}
}

func testConfig() Config {
	return Config{
		Title:        "Matches",
		ShowTyped:    true,
		Backend:      BackendTea,
		PollInterval: 5 * time.Millisecond,
	}
}

func TestRunResolvesAndWritesOutput(t *testing.T) {
	env := newTestEnv(ui.KeyEvent('g'), ui.Event{Kind: ui.EventNone}, ui.KeyEvent('e'))
	if err := run(testConfig(), env.deps("gg top\nge bottom\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := env.stdout.String(); got != "bottom" {
		t.Fatalf("expected stdout %q, got %q", "bottom", got)
	}
	if env.harness.Entered() != 1 || env.harness.Left() != 1 {
		t.Fatalf("expected one enter and one leave, got %d/%d", env.harness.Entered(), env.harness.Left())
	}
	frames := env.harness.Frames()
	if len(frames) < 2 {
		t.Fatalf("expected at least 2 frames, got %d", len(frames))
	}
	if rows := frames[1].View.Rows; len(rows) != 2 {
		t.Fatalf("expected 2 rows after typing g, got %d", len(rows))
	}
	if len(env.copied) != 0 {
		t.Fatalf("expected no clipboard copy, got %v", env.copied)
	}
}

func TestRunCancelWritesNothing(t *testing.T) {
	env := newTestEnv(ui.KeyEvent('g'), ui.Event{Kind: ui.EventCancel})
	if err := run(testConfig(), env.deps("gg top\nge bottom\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.stdout.Len() != 0 {
		t.Fatalf("expected empty stdout, got %q", env.stdout.String())
	}
	if env.harness.Left() != 1 {
		t.Fatalf("expected terminal to be restored")
	}
}

func TestRunCopiesWhenEnabled(t *testing.T) {
	env := newTestEnv(ui.KeyEvent('x'))
	cfg := testConfig()
	cfg.Copy = true
	if err := run(cfg, env.deps("x cut\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.copied) != 1 || env.copied[0] != "cut" {
		t.Fatalf("expected clipboard copy of cut, got %v", env.copied)
	}
}

func TestRunTracesCopyMethod(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "keymenu.log")
	logging.Configure(logPath)
	logging.SetTraceEnabled(true)
	t.Cleanup(func() {
		logging.SetTraceEnabled(false)
		logging.Configure("")
	})
	env := newTestEnv(ui.KeyEvent('x'))
	cfg := testConfig()
	cfg.Copy = true
	if err := run(cfg, env.deps("x cut\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"event":"app.copy","payload":{"method":"system"}`) {
		t.Fatalf("expected copy method in trace, got %q", data)
	}
}

func TestRunCopyFailureIsNotFatal(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "keymenu.log")
	logging.Configure(logPath)
	t.Cleanup(func() { logging.Configure("") })
	env := newTestEnv(ui.KeyEvent('x'))
	env.copyErr = errors.New("no clipboard")
	cfg := testConfig()
	cfg.Copy = true
	if err := run(cfg, env.deps("x cut\n")); err != nil {
		t.Fatalf("expected copy failure to be logged only, got %v", err)
	}
	if env.stdout.String() != "cut" {
		t.Fatalf("expected output to be written, got %q", env.stdout.String())
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "copy output: no clipboard") {
		t.Fatalf("expected copy failure in log, got %q", data)
	}
}

func TestRunPollErrorRestoresTerminal(t *testing.T) {
	env := newTestEnv()
	boom := errors.New("tty gone")
	env.harness.PollErr = boom
	err := run(testConfig(), env.deps("a one\n"))
	if !errors.Is(err, boom) {
		t.Fatalf("expected poll error, got %v", err)
	}
	if env.harness.Left() != 1 {
		t.Fatalf("expected Leave after failure, got %d", env.harness.Left())
	}
	if env.stdout.Len() != 0 {
		t.Fatalf("expected no output, got %q", env.stdout.String())
	}
}

func TestRunJoinsLeaveError(t *testing.T) {
	env := newTestEnv()
	pollErr := errors.New("poll failed")
	leaveErr := errors.New("leave failed")
	env.harness.PollErr = pollErr
	env.harness.LeaveErr = leaveErr
	err := run(testConfig(), env.deps("a one\n"))
	if !errors.Is(err, pollErr) || !errors.Is(err, leaveErr) {
		t.Fatalf("expected both errors, got %v", err)
	}
}

func TestRunLeaveErrorAbandonsOutput(t *testing.T) {
	env := newTestEnv(ui.KeyEvent('a'))
	env.harness.LeaveErr = errors.New("leave failed")
	err := run(testConfig(), env.deps("a one\n"))
	if err == nil {
		t.Fatalf("expected leave error")
	}
	if env.stdout.Len() != 0 {
		t.Fatalf("expected output to be abandoned, got %q", env.stdout.String())
	}
}

func TestRunEnterErrorSkipsLeave(t *testing.T) {
	env := newTestEnv()
	env.harness.EnterErr = errors.New("no tty")
	err := run(testConfig(), env.deps("a one\n"))
	if err == nil || !strings.Contains(err.Error(), "enter terminal") {
		t.Fatalf("expected enter error, got %v", err)
	}
	if env.harness.Left() != 0 {
		t.Fatalf("expected no Leave without Enter, got %d", env.harness.Left())
	}
}

func TestRunReadsBindingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindings.txt")
	if err := os.WriteFile(path, []byte("q quit # leave\r\nw write\n"), 0o644); err != nil {
		t.Fatalf("write bindings: %v", err)
	}
	env := newTestEnv(ui.KeyEvent('w'))
	cfg := testConfig()
	cfg.Input = path
	d := env.deps("")
	d.stdinIsTTY = func() bool { return true }
	if err := run(cfg, d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.stdout.String() != "write" {
		t.Fatalf("expected write, got %q", env.stdout.String())
	}
	frame := env.harness.Frames()[0]
	if !frame.ShowDescriptions || frame.Total != 2 {
		t.Fatalf("expected 2 bindings with descriptions, got %#v", frame)
	}
}

func TestRunMissingBindingsFile(t *testing.T) {
	env := newTestEnv()
	cfg := testConfig()
	cfg.Input = filepath.Join(t.TempDir(), "missing.txt")
	err := run(cfg, env.deps(""))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if env.harness.Entered() != 0 {
		t.Fatalf("expected terminal to stay untouched")
	}
}

func TestRunRejectsInteractiveStdin(t *testing.T) {
	env := newTestEnv()
	d := env.deps("")
	d.stdinIsTTY = func() bool { return true }
	if err := run(testConfig(), d); !errors.Is(err, ErrInteractiveStdin) {
		t.Fatalf("expected ErrInteractiveStdin, got %v", err)
	}
}

func TestRunEmptyTableWaitsForCancel(t *testing.T) {
	env := newTestEnv(ui.KeyEvent('a'), ui.KeyEvent('b'), ui.Event{Kind: ui.EventCancel})
	if err := run(testConfig(), env.deps("\nnospace\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.stdout.Len() != 0 {
		t.Fatalf("expected no output, got %q", env.stdout.String())
	}
	if env.harness.Remaining() != 0 {
		t.Fatalf("expected every event to be consumed")
	}
}

func TestNewTerminalSelectsBackend(t *testing.T) {
	term, err := newTerminal(Config{Backend: BackendTea})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := term.(*teaterm.Terminal); !ok {
		t.Fatalf("expected teaterm terminal, got %T", term)
	}
	term, err = newTerminal(Config{Backend: BackendTcell})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := term.(*tcellterm.Terminal); !ok {
		t.Fatalf("expected tcellterm terminal, got %T", term)
	}
	if _, err := newTerminal(Config{Backend: "curses"}); err == nil {
		t.Fatalf("expected unknown backend error")
	}
}
