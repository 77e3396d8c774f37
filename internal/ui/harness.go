package ui

import "time"

// Harness is a scripted Terminal for driving a Loop in tests. Each Poll
// returns the next scripted event; once the script is exhausted Poll reports
// ErrTerminalClosed so a run can never spin forever.
type Harness struct {
	script []Event
	frames []Frame
	polls  []time.Duration

	entered int
	left    int

	// EnterErr, LeaveErr, PollErr and RenderErr force the matching call to fail.
	EnterErr  error
	LeaveErr  error
	PollErr   error
	RenderErr error
}

// NewHarness creates a harness that will deliver events in order.
func NewHarness(events ...Event) *Harness {
	return &Harness{script: append([]Event(nil), events...)}
}

// Enter implements Terminal.
func (h *Harness) Enter() error {
	if h.EnterErr != nil {
		return h.EnterErr
	}
	h.entered++
	return nil
}

// Leave implements Terminal.
func (h *Harness) Leave() error {
	h.left++
	return h.LeaveErr
}

// Poll implements Terminal.
func (h *Harness) Poll(timeout time.Duration) (Event, error) {
	h.polls = append(h.polls, timeout)
	if h.PollErr != nil {
		return Event{}, h.PollErr
	}
	if len(h.script) == 0 {
		return Event{}, ErrTerminalClosed
	}
	ev := h.script[0]
	h.script = h.script[1:]
	return ev, nil
}

// Render implements Terminal.
func (h *Harness) Render(frame Frame) error {
	if h.RenderErr != nil {
		return h.RenderErr
	}
	h.frames = append(h.frames, frame)
	return nil
}

// Frames returns every rendered frame in order.
func (h *Harness) Frames() []Frame {
	return h.frames
}

// LastFrame returns the most recent frame.
func (h *Harness) LastFrame() (Frame, bool) {
	if len(h.frames) == 0 {
		return Frame{}, false
	}
	return h.frames[len(h.frames)-1], true
}

// Polls returns the timeout passed to each Poll call.
func (h *Harness) Polls() []time.Duration {
	return h.polls
}

// Entered reports how many times Enter succeeded.
func (h *Harness) Entered() int {
	return h.entered
}

// Left reports how many times Leave was called.
func (h *Harness) Left() int {
	return h.left
}

// Remaining returns the number of scripted events not yet delivered.
func (h *Harness) Remaining() int {
	return len(h.script)
}
