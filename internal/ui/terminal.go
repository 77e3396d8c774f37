package ui

import (
	"errors"
	"time"
)

// ErrTerminalClosed is returned by Poll when the input source has gone away.
var ErrTerminalClosed = errors.New("terminal closed")

// Frame is everything a Terminal needs to draw one screen.
type Frame struct {
	Title      string
	View       View
	Total      int
	ShowTyped  bool
	ShowFooter bool
	// ShowDescriptions is false when no binding carries a description, so
	// renderers can drop the column.
	ShowDescriptions bool
}

// Terminal is the display and input surface used by Loop.
type Terminal interface {
	// Enter switches to the exclusive interactive display mode.
	Enter() error
	// Leave restores the terminal to its previous mode.
	Leave() error
	// Poll waits at most timeout for one input event. A timeout yields an
	// Event of kind EventNone and a nil error.
	Poll(timeout time.Duration) (Event, error)
	// Render draws frame.
	Render(frame Frame) error
}
