package testutil

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Run describes one keymenu process launched inside a tmux pane.
type Run struct {
	Socket string
	Target string
	// Output receives keymenu's stdout and Errors its stderr; ExitCode
	// receives its exit status once it returns.
	Output   string
	Errors   string
	ExitCode string
}

// BuildBinary compiles keymenu into a temporary directory.
func BuildBinary(t *testing.T) string {
	t.Helper()
	RequireTmux(t)
	tdir := t.TempDir()
	bin := filepath.Join(tdir, "keymenu")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	cmd.Dir = repoRoot(t)
	cmd.Env = append(os.Environ(), "GOCACHE="+filepath.Join(tdir, ".gocache"))
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, out)
	}
	return bin
}

// Launch starts bin in a new detached session, piping bindings to its stdin.
func Launch(t *testing.T, socket, session, bin, bindings string, args ...string) Run {
	t.Helper()
	dir := t.TempDir()
	run := Run{
		Socket:   socket,
		Target:   session + ":0.0",
		Output:   filepath.Join(dir, "stdout"),
		Errors:   filepath.Join(dir, "stderr"),
		ExitCode: filepath.Join(dir, "exit-code"),
	}
	bindingsPath := filepath.Join(dir, "bindings.txt")
	if err := os.WriteFile(bindingsPath, []byte(bindings), 0o644); err != nil {
		t.Fatalf("failed to write bindings: %v", err)
	}
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		quoted = append(quoted, shellQuote(arg))
	}
	scriptPath := filepath.Join(dir, "run.sh")
	script := "#!/bin/sh\n" +
		"XDG_CONFIG_HOME=" + shellQuote(dir) + " " + shellQuote(bin) +
		" --log-file " + shellQuote(filepath.Join(dir, "keymenu.log")) + " " + strings.Join(quoted, " ") +
		" < " + shellQuote(bindingsPath) + " > " + shellQuote(run.Output) + " 2> " + shellQuote(run.Errors) + "\n" +
		"printf '%s' $? > " + shellQuote(run.ExitCode) + "\n" +
		"sleep 300\n"
	if err := os.WriteFile(scriptPath, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write launcher script: %v", err)
	}
	cmd := tmuxCommand(socket, "new-session", "-d", "-x", "80", "-y", "24", "-s", session, scriptPath)
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to launch binary: %v", err)
	}
	if err := tmuxCommand(socket, "has-session", "-t", session).Run(); err != nil {
		t.Skipf("skipping: unable to create tmux session: %v", err)
	}
	return run
}

// WaitForPane polls the pane until it shows want.
func (r Run) WaitForPane(t *testing.T, ctx context.Context, want string) string {
	t.Helper()
	loggedMissing := false
	for {
		select {
		case <-ctx.Done():
			out, _ := CapturePane(t, r.Socket, r.Target)
			t.Fatalf("timeout waiting for %q in pane: %v\n%s", want, ctx.Err(), out)
		case <-time.After(50 * time.Millisecond):
			if code := r.exitCode(); code != "" {
				t.Fatalf("keymenu exited early with code %s", code)
			}
			out, err := CapturePane(t, r.Socket, r.Target)
			if err != nil {
				if errors.Is(err, ErrPaneUnavailable) {
					if !loggedMissing {
						t.Logf("waiting for pane %s to become available", r.Target)
						loggedMissing = true
					}
					continue
				}
				t.Fatalf("capture-pane error: %v", err)
			}
			if strings.Contains(out, want) {
				return out
			}
		}
	}
}

// WaitForExit blocks until keymenu has returned and reports its exit code and
// everything it wrote to stdout.
func (r Run) WaitForExit(t *testing.T, ctx context.Context) (string, string) {
	t.Helper()
	for {
		select {
		case <-ctx.Done():
			t.Fatalf("timeout waiting for keymenu to exit: %v", ctx.Err())
		case <-time.After(50 * time.Millisecond):
			code := r.exitCode()
			if code == "" {
				continue
			}
			data, err := os.ReadFile(r.Output)
			if err != nil {
				t.Fatalf("failed to read stdout: %v", err)
			}
			return code, string(data)
		}
	}
}

// Stderr returns what keymenu wrote to stderr.
func (r Run) Stderr(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(r.Errors)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("failed to read stderr: %v", err)
	}
	return string(data)
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func (r Run) exitCode() string {
	data, err := os.ReadFile(r.ExitCode)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func repoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
