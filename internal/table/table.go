// Package table lays out pipe tables using terminal display width, so rows
// containing CJK text line up.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const minColumnWidth = 3

// Render returns header and rows as an aligned pipe table with a separator
// line under the header.
func Render(header []string, rows [][]string) string {
	table := make([][]string, 0, len(rows)+2)
	table = append(table, header, make([]string, len(header)))
	table = append(table, rows...)

	return strings.Join(layout(table, 1), "\n") + "\n"
}

// FormatTables realigns every pipe table in a markdown document. Lines
// inside fenced code blocks are left alone.
func FormatTables(content string) string {
	lines := strings.Split(content, "\n")

	var (
		out         []string
		tableBuffer []string
		inFence     bool
	)

	flush := func() {
		if len(tableBuffer) > 0 {
			out = append(out, Align(tableBuffer)...)
			tableBuffer = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			flush()

			inFence = !inFence
			out = append(out, line)

			continue
		}

		// Simple heuristic: a table row starts and ends with |
		if !inFence && IsRow(trimmed) {
			tableBuffer = append(tableBuffer, line)

			continue
		}

		flush()

		out = append(out, line)
	}

	flush()

	return strings.Join(out, "\n")
}

// IsRow reports whether a trimmed line looks like a pipe table row.
func IsRow(trimmed string) bool {
	return len(trimmed) > 1 && strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|")
}

// Align realigns the raw lines of one pipe table. A single line is returned
// unchanged since it has no header/separator pair.
func Align(rows []string) []string {
	if len(rows) < 2 {
		return rows
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, Cells(row))
	}

	separator := -1
	if isSeparator(table[1]) {
		separator = 1
	}

	return layout(table, separator)
}

// Cells splits a pipe table row into trimmed cells.
func Cells(row string) []string {
	parts := strings.Split(row, "|")

	// Leading and trailing pipes leave empty parts behind.
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}

	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}

	return cells
}

func isSeparator(cells []string) bool {
	for _, cell := range cells {
		trim := strings.ReplaceAll(cell, "-", "")
		trim = strings.ReplaceAll(trim, ":", "")
		trim = strings.ReplaceAll(trim, " ", "")

		if trim != "" {
			return false
		}
	}

	return true
}

// layout pads every cell to its column's display width. Row separator, if
// not negative, is redrawn as dashes.
func layout(table [][]string, separator int) []string {
	colCount := 0
	for _, row := range table {
		colCount = max(colCount, len(row))
	}

	widths := make([]int, colCount)

	for r, row := range table {
		if r == separator {
			continue
		}

		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	for i := range widths {
		widths[i] = max(widths[i], minColumnWidth)
	}

	result := make([]string, 0, len(table))

	for r, row := range table {
		if r == separator {
			result = append(result, separatorLine(widths))

			continue
		}

		result = append(result, rowLine(row, widths))
	}

	return result
}

func rowLine(row []string, widths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range widths {
		content := ""
		if j < len(row) {
			content = row[j]
		}

		sb.WriteString(" ")
		sb.WriteString(runewidth.FillRight(content, width))
		sb.WriteString(" |")
	}

	return sb.String()
}

func separatorLine(widths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for _, width := range widths {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", width))
		sb.WriteString(" |")
	}

	return sb.String()
}

// Truncate shortens s to at most width display columns, ending in "…"
// when cut.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
