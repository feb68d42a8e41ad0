package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// column is one table column; right aligns numeric values.
type column struct {
	header string
	right  bool
}

// writeTable prints rows under cols, each column padded to its widest cell.
func writeTable(w io.Writer, cols []column, rows [][]string) error {
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.header)
	}
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.header
	}
	if _, err := fmt.Fprintln(w, tableLine(cols, widths, headers)); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, tableLine(cols, widths, row)); err != nil {
			return err
		}
	}
	return nil
}

func tableLine(cols []column, widths []int, cells []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		if c.right {
			parts[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(parts, " "), " ")
}
