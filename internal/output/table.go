package output

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Table lays out rows in aligned columns. Cells may already carry ANSI styling;
// widths are measured on the visible text.
type Table struct {
	headers  []string
	rows     [][]string
	maxWidth int
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// SetMaxWidth limits each rendered line to width cells, truncating the last column.
// Zero means no limit.
func (t *Table) SetMaxWidth(width int) *Table {
	t.maxWidth = width
	return t
}

// AddRow appends a row. Missing cells render empty and extra cells are dropped.
func (t *Table) AddRow(cells ...string) *Table {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render returns the table text, one line per row after a header and a rule.
func (t *Table) Render() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = ansi.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], ansi.StringWidth(cell))
		}
	}

	var b strings.Builder
	t.writeLine(&b, t.headers, widths)
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	t.writeLine(&b, rule, widths)
	for _, row := range t.rows {
		t.writeLine(&b, row, widths)
	}
	return b.String()
}

func (t *Table) writeLine(b *strings.Builder, cells []string, widths []int) {
	var line strings.Builder
	for i, cell := range cells {
		if i > 0 {
			line.WriteString("  ")
		}
		line.WriteString(cell)
		if i < len(cells)-1 {
			line.WriteString(strings.Repeat(" ", widths[i]-ansi.StringWidth(cell)))
		}
	}
	out := line.String()
	if t.maxWidth > 0 && ansi.StringWidth(out) > t.maxWidth {
		out = ansi.Truncate(out, t.maxWidth, "…")
	}
	b.WriteString(out)
	b.WriteByte('\n')
}

// Plain strips ANSI sequences from styled text.
func Plain(text string) string {
	return ansi.Strip(text)
}
