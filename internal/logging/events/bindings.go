package events

import "github.com/atomicstack/keymenu/internal/logging"

type BindingsTracer struct{}

var Bindings = BindingsTracer{}

func (BindingsTracer) Loaded(source string, count int) {
	logging.Trace("bindings.loaded", map[string]interface{}{"source": source, "count": count})
}
