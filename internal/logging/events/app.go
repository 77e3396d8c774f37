package events

import "github.com/atomicstack/keymenu/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Finish(state string, outputBytes int) {
	logging.Trace("app.finish", map[string]interface{}{"state": state, "outputBytes": outputBytes})
}

func (AppTracer) Copy(method string) {
	logging.Trace("app.copy", map[string]interface{}{"method": method})
}
