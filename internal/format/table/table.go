package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const columnGap = "  "

// Widths returns the display width of the widest cell in each column.
// Rows shorter than the first row leave the remaining widths untouched.
func Widths(rows [][]string) []int {
	if len(rows) == 0 {
		return nil
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(widths) {
				break
			}
			if w := CellWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}

// Format returns the rows padded to the widest entry in each column. The last
// column is left unpadded so lines carry no trailing spaces.
func Format(rows [][]string) []string {
	widths := Widths(rows)
	if widths == nil {
		return nil
	}
	last := len(widths) - 1
	out := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, 0, len(row))
		for c, cell := range row {
			if c > last {
				break
			}
			if c < last {
				cell = Pad(cell, widths[c])
			}
			cells = append(cells, cell)
		}
		out[i] = Join(cells)
	}
	return out
}

// Pad fills cell with trailing spaces up to width display columns.
func Pad(cell string, width int) string {
	gap := width - CellWidth(cell)
	if gap <= 0 {
		return cell
	}
	return cell + strings.Repeat(" ", gap)
}

// Join concatenates already padded cells with the column gap.
func Join(cells []string) string {
	return strings.Join(cells, columnGap)
}

// GapWidth is the number of columns between two cells.
func GapWidth() int {
	return len(columnGap)
}

// CellWidth measures text in terminal columns, ignoring ANSI escapes and
// counting wide runes as two columns.
func CellWidth(text string) int {
	return ansi.StringWidth(text)
}
