package ui

import (
	"unicode/utf8"

	"github.com/atomicstack/keymenu/internal/binding"
)

// Row is one reachable binding prepared for display. TypedLen counts the
// leading runes of Keys that have already been typed.
type Row struct {
	Keys        string
	Output      string
	Description string
	TypedLen    int
}

// Split returns the already-typed and remaining parts of the key sequence.
func (r Row) Split() (typed, remaining string) {
	runes := []rune(r.Keys)
	n := r.TypedLen
	if n < 0 {
		n = 0
	}
	if n > len(runes) {
		n = len(runes)
	}
	return string(runes[:n]), string(runes[n:])
}

// View is the render-ready projection of the engine state.
type View struct {
	Typed string
	Rows  []Row
}

// DeadEnd reports whether keys have been typed but nothing is reachable.
func (v View) DeadEnd() bool {
	return v.Typed != "" && len(v.Rows) == 0
}

// Project returns the bindings reachable from typed, in table order.
func Project(table *binding.Table, typed string) View {
	reachable := table.ReachableFrom(typed)
	typedLen := utf8.RuneCountInString(typed)
	rows := make([]Row, len(reachable))
	for i, b := range reachable {
		rows[i] = Row{
			Keys:        b.Keys,
			Output:      b.Output,
			Description: b.Description,
			TypedLen:    typedLen,
		}
	}
	return View{Typed: typed, Rows: rows}
}
