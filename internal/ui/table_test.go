package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_ColumnWidths(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title", "Importance"},
		Rows: [][]string{
			{"9f1c2d3e", "Write the quarterly report", "5"},
			{"aa11bb22", "Inbox zero", "2"},
		},
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 8, widths[0])  // "9f1c2d3e"
	assert.Equal(t, 26, widths[1]) // longest title
	assert.Equal(t, 10, widths[2]) // header is longest
}

func TestTable_ColumnWidths_MaxWidth(t *testing.T) {
	table := &Table{
		Headers:  []string{"ID", "Notes"},
		Rows:     [][]string{{"a", "a very long free-form note that should be truncated"}},
		MaxWidth: 20,
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 2, widths[0])
	assert.Equal(t, 20, widths[1])
}

func TestTable_Render(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title"},
		Rows: [][]string{
			{"1", "Deep work"},
			{"2", "Email"},
		},
	}

	output := table.Render()

	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Title")
	assert.Contains(t, output, "Deep work")
	assert.Contains(t, output, "Email")
	assert.Contains(t, output, "─")
}

func TestTable_Render_Empty(t *testing.T) {
	table := &Table{}
	assert.Equal(t, "", table.Render())
}

func TestTable_AddRow(t *testing.T) {
	table := &Table{Headers: []string{"ID", "Title"}}
	table.AddRow("1", "Deep work")
	table.AddRow("2", "Email")

	assert.Len(t, table.Rows, 2)
	assert.Contains(t, table.Render(), "Deep work")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "abc", clip("abc", 5))
	assert.Equal(t, "abcd…", clip("abcdef", 5))
	assert.Equal(t, "…", clip("abcdef", 1))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
}
