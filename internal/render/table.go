package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a static text table.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string

	// Columns listed here are right aligned.
	numeric map[int]bool
}

// NewTable creates a Table with the given title and headers.
func NewTable(title string, headers ...string) *Table {
	return &Table{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
		numeric: make(map[int]bool),
	}
}

// AlignRight marks columns as numeric.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.numeric[c] = true
	}
	return t
}

// AddRow adds a row to the table.
func (t *Table) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table using the provided styles. A table without rows or headers
// renders as "".
func (t *Table) View(styles Styles) string {
	if len(t.Rows) == 0 || len(t.Headers) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				colWidths[i] = max(colWidths[i], lipgloss.Width(cell))
			}
		}
	}

	// lipgloss Width includes padding
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	sepStyle := styles.Muted

	cellStyle := func(base lipgloss.Style, col int) lipgloss.Style {
		s := base.Width(colWidths[col])
		if t.numeric[col] {
			s = s.Align(lipgloss.Right)
		}
		return s
	}

	for i, h := range t.Headers {
		sb.WriteString(cellStyle(headerStyle, i).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")

	totalWidth := len(t.Headers) - 1 // separators
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(colWidths) {
				break
			}
			sb.WriteString(cellStyle(rowStyle, i).Render(cell))
			if i < len(row)-1 && i < len(colWidths)-1 {
				sb.WriteString(sepStyle.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
