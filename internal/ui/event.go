package ui

import "fmt"

// EventKind identifies an input event delivered by a Terminal.
type EventKind int

const (
	// EventNone means the poll timed out without input.
	EventNone EventKind = iota
	// EventKey carries a printable rune.
	EventKey
	EventBackspace
	EventCancel
	// EventOther is any input the loop does not act on.
	EventOther
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventKey:
		return "key"
	case EventBackspace:
		return "backspace"
	case EventCancel:
		return "cancel"
	case EventOther:
		return "other"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is one polled input.
type Event struct {
	Kind EventKind
	Rune rune
}

// KeyEvent returns a key-press event for r.
func KeyEvent(r rune) Event {
	return Event{Kind: EventKey, Rune: r}
}

// KeyEvents returns one key-press event per rune of s.
func KeyEvents(s string) []Event {
	events := make([]Event, 0, len(s))
	for _, r := range s {
		events = append(events, KeyEvent(r))
	}
	return events
}

func (e Event) String() string {
	if e.Kind == EventKey {
		return fmt.Sprintf("key(%q)", e.Rune)
	}
	return e.Kind.String()
}
