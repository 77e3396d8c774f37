package teaterm

import (
	"sync"
	"time"

	"github.com/atomicstack/keymenu/internal/logging/events"
	"github.com/atomicstack/keymenu/internal/theme"
	"github.com/atomicstack/keymenu/internal/ui"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

type redrawMsg struct{}

// frameSlot hands the latest frame from the loop to the Bubble Tea program.
type frameSlot struct {
	mu    sync.Mutex
	frame ui.Frame
}

func (s *frameSlot) store(frame ui.Frame) {
	s.mu.Lock()
	s.frame = frame
	s.mu.Unlock()
}

func (s *frameSlot) load() ui.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// model is the Bubble Tea side of the bridge: it forwards key presses to the
// loop and redraws the most recent frame on every tick.
type model struct {
	slot     *frameSlot
	events   chan<- ui.Event
	onReady  func()
	interval time.Duration

	keys   keyMap
	help   help.Model
	caret  cursor.Model
	styles *theme.Styles

	frame       ui.Frame
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
}

func newModel(slot *frameSlot, out chan<- ui.Event, styles *theme.Styles, opts Options) *model {
	if styles == nil {
		styles = theme.Default()
	}
	m := &model{
		slot:     slot,
		events:   out,
		onReady:  func() {},
		interval: opts.RedrawInterval,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   styles,
	}
	if m.interval <= 0 {
		m.interval = ui.DefaultPollInterval
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	if styles.Footer != nil {
		m.help.Styles.ShortDesc = *styles.Footer
		m.help.Styles.ShortSeparator = *styles.Footer
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	m.caret = c
	return m
}

// Init is part of the tea.Model interface.
func (m *model) Init() tea.Cmd {
	m.onReady()
	m.frame = m.slot.load()
	return tea.Batch(m.caret.Focus(), m.tick())
}

// Update is part of the tea.Model interface.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	switch msg := msg.(type) {
	case redrawMsg:
		m.frame = m.slot.load()
		cmds = append(cmds, m.tick())
	case tea.WindowSizeMsg:
		if !m.fixedWidth {
			m.width = msg.Width
		}
		if !m.fixedHeight {
			m.height = msg.Height
		}
		m.help.Width = m.width
		events.Terminal.Resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		for _, ev := range m.keys.translate(msg) {
			m.emit(ev)
		}
	}
	var cmd tea.Cmd
	m.caret, cmd = m.caret.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *model) emit(ev ui.Event) {
	select {
	case m.events <- ev:
	default:
		events.Terminal.Dropped(ev.String())
	}
}

func (m *model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return redrawMsg{}
	})
}
