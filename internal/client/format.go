package client

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// FormatRows renders a result set as an aligned text table:
//
//	id | name
//	---+------
//	1  | Ada
//	2  | NULL
//
// Column widths are the maximum of the header and every formatted cell in
// that column. With zero rows the output is header and separator only; with
// zero columns it is empty.
func FormatRows(columns []string, rows [][]any) string {
	if len(columns) == 0 {
		return ""
	}

	data := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, value := range row {
			cells[j] = formatCell(value)
		}
		data[i] = cells
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	for _, row := range data {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	headerCells := make([]string, len(columns))
	sepCells := make([]string, len(columns))
	for i, col := range columns {
		headerCells[i] = pad(col, widths[i])
		sepCells[i] = strings.Repeat("-", widths[i])
	}
	header := strings.Join(headerCells, " | ")
	separator := strings.Join(sepCells, "-+-")

	bodyLines := make([]string, len(data))
	for i, row := range data {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = pad(cell, widths[j])
		}
		bodyLines[i] = strings.Join(cells, " | ")
	}
	body := strings.Join(bodyLines, "\n")

	// Skip empty parts so a zero-row result has no dangling blank line.
	parts := make([]string, 0, 3)
	for _, part := range []string{header, separator, body} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "\n")
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case []byte:
		return hex.EncodeToString(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}
