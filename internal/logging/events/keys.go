package events

import "github.com/atomicstack/keymenu/internal/logging"

type KeysTracer struct{}

var Keys = KeysTracer{}

func (KeysTracer) Append(typed string, reachable int) {
	logging.Trace("keys.append", map[string]interface{}{"typed": typed, "reachable": reachable})
}

func (KeysTracer) Backspace(typed string) {
	logging.Trace("keys.backspace", map[string]interface{}{"typed": typed})
}

func (KeysTracer) DeadEnd(typed string) {
	logging.Trace("keys.dead-end", map[string]interface{}{"typed": typed})
}

func (KeysTracer) Resolve(typed, output string) {
	logging.Trace("keys.resolve", map[string]interface{}{"typed": typed, "output": output})
}

func (KeysTracer) Cancel(typed string) {
	logging.Trace("keys.cancel", map[string]interface{}{"typed": typed})
}

func (KeysTracer) Ignored(event string) {
	logging.Trace("keys.ignored", map[string]interface{}{"event": event})
}
