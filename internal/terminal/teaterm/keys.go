package teaterm

import (
	"unicode"

	"github.com/atomicstack/keymenu/internal/ui"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds the keys with a fixed meaning; every other printable key is
// part of a binding's key sequence.
type keyMap struct {
	Cancel key.Binding
	Delete key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
		Delete: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("backspace", "delete key"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Delete, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// translate maps a Bubble Tea key message to loop events. Pasted or batched
// runes become one event per rune.
func (k keyMap) translate(msg tea.KeyMsg) []ui.Event {
	switch {
	case key.Matches(msg, k.Cancel):
		return []ui.Event{{Kind: ui.EventCancel}}
	case key.Matches(msg, k.Delete):
		return []ui.Event{{Kind: ui.EventBackspace}}
	}
	switch msg.Type {
	case tea.KeySpace:
		return []ui.Event{ui.KeyEvent(' ')}
	case tea.KeyRunes:
		if msg.Alt {
			break
		}
		events := make([]ui.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				continue
			}
			events = append(events, ui.KeyEvent(r))
		}
		if len(events) > 0 {
			return events
		}
	}
	return []ui.Event{{Kind: ui.EventOther}}
}
