package teaterm

import (
	"fmt"
	"strings"

	"github.com/atomicstack/keymenu/internal/format/table"
	"github.com/atomicstack/keymenu/internal/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	typedPrompt      = "» "
	typedPlaceholder = "(type keys)"
	ellipsis         = "…"
)

// View implements tea.Model.
func (m *model) View() string {
	f := m.frame
	head := make([]string, 0, 2)
	if f.ShowTyped {
		head = append(head, m.typedLine(f.View.Typed))
	}
	head = append(head, m.titleLine(f))

	var foot []string
	if f.ShowFooter {
		foot = []string{"", m.help.ShortHelpView(m.keys.ShortHelp())}
	}

	body := m.bodyLines(f)
	if m.height > 0 {
		body = limitHeight(body, m.height-len(head)-len(foot))
	}

	lines := make([]string, 0, len(head)+len(body)+len(foot))
	lines = append(lines, head...)
	lines = append(lines, body...)
	lines = append(lines, foot...)
	return strings.Join(applyWidth(lines, m.width), "\n")
}

func (m *model) typedLine(typed string) string {
	prompt := render(m.styles.FilterPrompt, typedPrompt)
	if typed == "" {
		return prompt + m.caret.View() + render(m.styles.FilterPlaceholder, typedPlaceholder)
	}
	return prompt + render(m.styles.Filter, typed) + m.caret.View()
}

func (m *model) titleLine(f ui.Frame) string {
	title := render(m.styles.Title, f.Title)
	count := render(m.styles.Count, fmt.Sprintf("%d/%d", len(f.View.Rows), f.Total))
	return title + " " + count
}

func (m *model) bodyLines(f ui.Frame) []string {
	rows := f.View.Rows
	if len(rows) == 0 {
		msg := "(no bindings)"
		if f.View.DeadEnd() {
			msg = fmt.Sprintf("No matches for %q", f.View.Typed)
		}
		return []string{render(m.styles.Info, msg)}
	}

	header := []string{"KEYS", "OUTPUT"}
	if f.ShowDescriptions {
		header = append(header, "DESCRIPTION")
	}
	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, header)
	for _, row := range rows {
		entry := []string{row.Keys, row.Output}
		if f.ShowDescriptions {
			entry = append(entry, row.Description)
		}
		cells = append(cells, entry)
	}
	widths := table.Widths(cells)
	last := len(widths) - 1

	lines := make([]string, 0, len(cells))
	lines = append(lines, render(m.styles.ColumnHeader, table.Format(cells)[0]))

	for i, row := range rows {
		typed, remaining := row.Split()
		keys := render(m.styles.TypedKeys, typed) + render(m.styles.PendingKeys, remaining)
		keys += strings.Repeat(" ", widths[0]-table.CellWidth(row.Keys))
		line := []string{keys}
		for c := 1; c < len(cells[i+1]); c++ {
			text := cells[i+1][c]
			if c < last {
				text = table.Pad(text, widths[c])
			}
			style := m.styles.Output
			if c == 2 {
				style = m.styles.Description
			}
			line = append(line, render(style, text))
		}
		lines = append(lines, strings.TrimRight(table.Join(line), " "))
	}
	return lines
}

func render(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

func limitHeight(lines []string, height int) []string {
	if height <= 0 {
		return nil
	}
	if len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []string{ellipsis}
	}
	trimmed := make([]string, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, ellipsis)
	return trimmed
}

func applyWidth(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			line = truncate.StringWithTail(line, uint(width), ellipsis)
		}
		out[i] = line
	}
	return out
}
