package events

import "github.com/atomicstack/keymenu/internal/logging"

type TerminalTracer struct{}

var Terminal = TerminalTracer{}

func (TerminalTracer) Enter(backend string) {
	logging.Trace("terminal.enter", map[string]interface{}{"backend": backend})
}

func (TerminalTracer) Leave(backend string, err error) {
	payload := map[string]interface{}{"backend": backend}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("terminal.leave", payload)
}

func (TerminalTracer) Dropped(event string) {
	logging.Trace("terminal.dropped", map[string]interface{}{"event": event})
}

func (TerminalTracer) Resize(width, height int) {
	logging.Trace("terminal.resize", map[string]interface{}{"width": width, "height": height})
}

func (TerminalTracer) Fallback(output string, err error) {
	logging.Trace("terminal.fallback", map[string]interface{}{"output": output, "error": err.Error()})
}
