package tcellterm

import (
	"fmt"

	"github.com/atomicstack/keymenu/internal/format/table"
	"github.com/atomicstack/keymenu/internal/ui"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	typedPrompt      = "» "
	typedPlaceholder = "(type keys)"
	ellipsis         = "…"
	footerHelp       = "backspace delete key • esc cancel"
)

var (
	styleTitle       = tcell.StyleDefault.Foreground(tcell.PaletteColor(245)).Bold(true)
	styleCount       = tcell.StyleDefault.Foreground(tcell.PaletteColor(241))
	styleHeader      = tcell.StyleDefault.Foreground(tcell.PaletteColor(33)).Bold(true)
	styleTyped       = tcell.StyleDefault.Foreground(tcell.PaletteColor(241))
	stylePending     = tcell.StyleDefault.Foreground(tcell.PaletteColor(214)).Bold(true)
	styleOutput      = tcell.StyleDefault
	styleDescription = tcell.StyleDefault.Foreground(tcell.PaletteColor(249)).Italic(true)
	styleInfo        = tcell.StyleDefault.Foreground(tcell.PaletteColor(249))
	styleFooter      = tcell.StyleDefault.Foreground(tcell.PaletteColor(241))
	stylePrompt      = tcell.StyleDefault.Foreground(tcell.PaletteColor(34)).Bold(true)
	stylePlaceholder = tcell.StyleDefault.Foreground(tcell.PaletteColor(241))
	styleFilter      = tcell.StyleDefault.Foreground(tcell.PaletteColor(249))
)

type segment struct {
	text  string
	style tcell.Style
}

type line []segment

// layout turns a frame into styled lines, clamped to height rows when height
// is positive.
func layout(f ui.Frame, height int) []line {
	var head []line
	if f.ShowTyped {
		typed := segment{f.View.Typed, styleFilter}
		if f.View.Typed == "" {
			typed = segment{typedPlaceholder, stylePlaceholder}
		}
		head = append(head, line{{typedPrompt, stylePrompt}, typed})
	}
	head = append(head, line{
		{f.Title, styleTitle},
		{" ", tcell.StyleDefault},
		{fmt.Sprintf("%d/%d", len(f.View.Rows), f.Total), styleCount},
	})

	var foot []line
	if f.ShowFooter {
		foot = []line{nil, {{footerHelp, styleFooter}}}
	}

	body := bodyLines(f)
	if height > 0 {
		room := height - len(head) - len(foot)
		switch {
		case room <= 0:
			body = nil
		case len(body) > room:
			body = append(body[:room-1:room-1], line{{ellipsis, styleInfo}})
		}
	}

	out := make([]line, 0, len(head)+len(body)+len(foot))
	out = append(out, head...)
	out = append(out, body...)
	out = append(out, foot...)
	return out
}

func bodyLines(f ui.Frame) []line {
	rows := f.View.Rows
	if len(rows) == 0 {
		msg := "(no bindings)"
		if f.View.DeadEnd() {
			msg = fmt.Sprintf("No matches for %q", f.View.Typed)
		}
		return []line{{{msg, styleInfo}}}
	}

	header := []string{"KEYS", "OUTPUT"}
	if f.ShowDescriptions {
		header = append(header, "DESCRIPTION")
	}
	cells := [][]string{header}
	for _, row := range rows {
		entry := []string{row.Keys, row.Output}
		if f.ShowDescriptions {
			entry = append(entry, row.Description)
		}
		cells = append(cells, entry)
	}
	widths := table.Widths(cells)
	gap := pad("", table.GapWidth())

	lines := make([]line, 0, len(cells))
	lines = append(lines, line{{table.Format(cells)[0], styleHeader}})

	for i, row := range rows {
		typed, remaining := row.Split()
		l := line{
			{typed, styleTyped},
			{remaining, stylePending},
			{pad("", widths[0]-table.CellWidth(row.Keys)), tcell.StyleDefault},
		}
		for c := 1; c < len(cells[i+1]); c++ {
			text := cells[i+1][c]
			if c < len(widths)-1 {
				text = table.Pad(text, widths[c])
			}
			style := styleOutput
			if c == 2 {
				style = styleDescription
			}
			l = append(l, segment{gap, tcell.StyleDefault}, segment{text, style})
		}
		lines = append(lines, l)
	}
	return lines
}

func pad(s string, n int) string {
	return table.Pad(s, n)
}

// drawLine writes l on row y, replacing the last visible cell with an
// ellipsis when the line does not fit in width columns.
func drawLine(screen tcell.Screen, y, width int, l line) {
	if width <= 0 {
		return
	}
	total := 0
	for _, seg := range l {
		total += runewidth.StringWidth(seg.text)
	}
	limit := width
	truncated := total > width
	if truncated {
		limit = width - runewidth.StringWidth(ellipsis)
	}

	x := 0
draw:
	for _, seg := range l {
		for _, r := range seg.text {
			w := runewidth.RuneWidth(r)
			if x+w > limit {
				break draw
			}
			screen.SetContent(x, y, r, nil, seg.style)
			x += w
		}
	}
	if truncated {
		screen.SetContent(x, y, []rune(ellipsis)[0], nil, styleInfo)
	}
}
