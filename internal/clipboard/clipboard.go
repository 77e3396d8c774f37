// Package clipboard places a resolved output on the user's clipboard. The
// system clipboard is tried first; terminals reached over ssh or inside tmux
// fall back to an OSC52 escape written to the controlling tty.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Method reports which mechanism accepted the text.
type Method uint8

const (
	MethodSystem Method = iota
	MethodOSC52
)

func (m Method) String() string {
	switch m {
	case MethodSystem:
		return "system"
	case MethodOSC52:
		return "osc52"
	default:
		return "unknown"
	}
}

var (
	writeSystem = clipboard.WriteAll
	writeOSC52  = writeOSC52ToTTY
)

// Copy writes text to the clipboard.
func Copy(text string) (Method, error) {
	sysErr := writeSystem(text)
	if sysErr == nil {
		return MethodSystem, nil
	}
	oscErr := writeOSC52(text)
	if oscErr == nil {
		return MethodOSC52, nil
	}
	return MethodSystem, combineErrors(sysErr, oscErr)
}

func writeOSC52ToTTY(text string) error {
	if !osc52Enabled() {
		return errors.New("OSC52 unavailable for this terminal")
	}
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()
	return writeOSC52Sequence(tty, text)
}

// writeOSC52Sequence emits the escape wrapped for the multiplexer in use.
// Inside tmux both the plain and the passthrough form are written since
// either may be the one tmux forwards.
func writeOSC52Sequence(w io.Writer, text string) error {
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		if _, err := seq.WriteTo(w); err != nil {
			return err
		}
		_, err := seq.Tmux().WriteTo(w)
		return err
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(os.Getenv("TERM"))), "screen") {
		_, err := seq.Screen().WriteTo(w)
		return err
	}
	_, err := seq.WriteTo(w)
	return err
}

func osc52Enabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("KEYMENU_DISABLE_OSC52"))) {
	case "1", "true", "yes", "on":
		return false
	}
	term := strings.TrimSpace(os.Getenv("TERM"))
	return term != "" && !strings.EqualFold(term, "dumb")
}

func combineErrors(sysErr, oscErr error) error {
	if missingDisplay() {
		return fmt.Errorf("no GUI clipboard available (DISPLAY/WAYLAND_DISPLAY unset); OSC52 fallback failed: %w", oscErr)
	}
	return fmt.Errorf("system clipboard failed: %s; OSC52 fallback failed: %w", humanize(sysErr), oscErr)
}

func humanize(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "exit status 1" {
		return "clipboard helper exited with status 1"
	}
	return msg
}

func missingDisplay() bool {
	return strings.TrimSpace(os.Getenv("DISPLAY")) == "" && strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) == ""
}
