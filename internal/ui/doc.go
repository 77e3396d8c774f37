// Package ui drives the interactive key-sequence selection.
//
// Message flow:
//   - Loop.Run renders the projected view through a Terminal, polls for one
//     input Event with a bounded wait, and hands the event to the engine.
//   - Key events append to the typed buffer, backspace removes the last key,
//     cancel ends the run. Everything else is ignored.
//   - The run stops on the first Resolved or Cancelled outcome; a terminal
//     error ends it early and is returned to the caller.
//
// State ownership:
//   - The typed buffer lives in internal/engine and is only mutated by the
//     loop's dispatch step. Project reads it to build the View, so rendering
//     never changes engine state.
//   - The binding table (internal/binding) is shared read-only.
//
// Terminal backends:
//   - Terminal is the capability the loop needs: enter/leave the exclusive
//     display mode, poll one event, render a frame. internal/terminal/teaterm
//     and internal/terminal/tcellterm implement it; Harness is a scripted
//     implementation for tests.
//
// Restoring the terminal is the caller's job so the resolved output can be
// written to stdout only after the display is torn down.
package ui
