package engine

import "github.com/atomicstack/keymenu/internal/binding"

// Engine narrows a binding table as keys are typed and decides when the typed
// keys identify a single binding.
type Engine struct {
	table *binding.Table
	typed Buffer
}

// New returns an engine with an empty buffer over table.
func New(table *binding.Table) *Engine {
	return &Engine{table: table}
}

// Typed returns the keys typed so far.
func (e *Engine) Typed() string {
	return e.typed.String()
}

// Reachable returns the bindings still reachable from the typed keys.
func (e *Engine) Reachable() []binding.Binding {
	return e.table.ReachableFrom(e.typed.String())
}

// OnChar appends r and resolves when the typed keys either equal a binding's
// key sequence (first in table order wins) or leave exactly one binding
// reachable, even if that binding's sequence is longer than what was typed.
// A dead end keeps the typed keys so the user can back out of it.
func (e *Engine) OnChar(r rune) Outcome {
	e.typed.Append(r)
	typed := e.typed.String()
	if b, ok := e.table.FirstExact(typed); ok {
		return resolvedOutcome(b.Output)
	}
	reachable := e.table.ReachableFrom(typed)
	if len(reachable) == 1 {
		return resolvedOutcome(reachable[0].Output)
	}
	return continueOutcome
}

// OnBackspace drops the last typed key. It is a no-op on an empty buffer.
func (e *Engine) OnBackspace() Outcome {
	e.typed.DeleteLast()
	return continueOutcome
}

// OnCancel ends the interaction regardless of what has been typed.
func (e *Engine) OnCancel() Outcome {
	return cancelledOutcome
}

// OnOther ignores inputs the engine has no rule for.
func (e *Engine) OnOther() Outcome {
	return continueOutcome
}
