package datagrid

import (
	"slices"
	"strings"
)

// RemoveEmptyStringRows returns rows without the rows
// where every cell is empty or whitespace.
// The passed slice is modified in place.
func RemoveEmptyStringRows(rows [][]string) [][]string {
	return slices.DeleteFunc(rows, func(row []string) bool {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return false
			}
		}
		return true
	})
}

// TableRows converts a table of strings with a header row into rows.
//
// The first non empty row names the fields, cells of columns
// with an empty header are skipped. Missing trailing cells
// are stored as empty strings.
// If idField is not one of the header names then the 1-based
// row number under idField becomes the identifier of every row.
func TableRows(table [][]string, idField string) []Row {
	if idField == "" {
		idField = DefaultIDField
	}
	table = RemoveEmptyStringRows(table)
	if len(table) == 0 {
		return nil
	}
	header := make([]string, len(table[0]))
	hasID := false
	for i, name := range table[0] {
		header[i] = strings.TrimSpace(name)
		if header[i] == idField {
			hasID = true
		}
	}

	rows := make([]Row, 0, len(table)-1)
	for i, cells := range table[1:] {
		row := make(Row, len(header)+1)
		for col, name := range header {
			if name == "" {
				continue
			}
			if _, dup := row[name]; dup {
				continue
			}
			if col < len(cells) {
				row[name] = cells[col]
			} else {
				row[name] = ""
			}
		}
		if !hasID {
			row[idField] = i + 1
		}
		rows = append(rows, row)
	}
	return rows
}
