package binding

import "strings"

// Binding maps a key sequence to the text emitted when it is selected.
type Binding struct {
	Keys        string
	Output      string
	Description string
}

// Table is an ordered, read-only collection of bindings. Order is preserved
// from load and decides both display order and which duplicate wins.
type Table struct {
	bindings []Binding
}

// NewTable copies the provided bindings into a new table.
func NewTable(bindings []Binding) *Table {
	return &Table{bindings: cloneBindings(bindings)}
}

// Len returns the number of bindings in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.bindings)
}

// All returns every binding in table order.
func (t *Table) All() []Binding {
	if t == nil {
		return nil
	}
	return cloneBindings(t.bindings)
}

// ReachableFrom returns the bindings whose key sequence starts with prefix,
// in table order.
func (t *Table) ReachableFrom(prefix string) []Binding {
	if t == nil {
		return nil
	}
	reachable := make([]Binding, 0, len(t.bindings))
	for _, b := range t.bindings {
		if strings.HasPrefix(b.Keys, prefix) {
			reachable = append(reachable, b)
		}
	}
	return reachable
}

// FirstExact returns the first binding whose key sequence equals keys.
func (t *Table) FirstExact(keys string) (Binding, bool) {
	if t == nil {
		return Binding{}, false
	}
	for _, b := range t.bindings {
		if b.Keys == keys {
			return b, true
		}
	}
	return Binding{}, false
}

// HasDescriptions reports whether any binding carries a description.
func (t *Table) HasDescriptions() bool {
	if t == nil {
		return false
	}
	for _, b := range t.bindings {
		if b.Description != "" {
			return true
		}
	}
	return false
}

func cloneBindings(bindings []Binding) []Binding {
	dup := make([]Binding, len(bindings))
	copy(dup, bindings)
	return dup
}
