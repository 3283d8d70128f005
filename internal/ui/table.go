package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders rows in fixed-width columns for terminal display.
type Table struct {
	Headers  []string
	Rows     [][]string
	MaxWidth int // Max width per column (0 = auto)
}

// AddRow appends a data row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// ColumnWidths calculates column widths from headers and content, capped
// at MaxWidth when set.
func (t *Table) ColumnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	if t.MaxWidth > 0 {
		for i, w := range widths {
			if w > t.MaxWidth {
				widths[i] = t.MaxWidth
			}
		}
	}
	return widths
}

// Render outputs the table to a string.
func (t *Table) Render() string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := t.ColumnWidths()
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	cellStyle := lipgloss.NewStyle().Foreground(ColorText)
	dimStyle := lipgloss.NewStyle().Foreground(ColorSecondary)

	var sb strings.Builder
	writeRow(&sb, t.Headers, widths, headerStyle)

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	writeRow(&sb, sep, widths, dimStyle)

	for _, row := range t.Rows {
		cells := make([]string, len(t.Headers))
		for i := range t.Headers {
			if i < len(row) {
				cells[i] = clip(row[i], widths[i])
			}
		}
		writeRow(&sb, cells, widths, cellStyle)
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, cells []string, widths []int, style lipgloss.Style) {
	rendered := make([]string, len(cells))
	for i, c := range cells {
		rendered[i] = style.Render(padRight(c, widths[i]))
	}
	sb.WriteString(" " + strings.Join(rendered, "  ") + "\n")
}

// clip truncates a cell to width with an ellipsis, guarding tiny widths.
func clip(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width >= 2 {
		return s[:width-1] + "…"
	}
	if width == 1 {
		return "…"
	}
	return s
}

// padRight pads a string to the specified width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
