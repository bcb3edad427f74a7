package datagrid

import (
	"context"
	"unicode/utf8"
)

// View is a read only rectangular table of selected cell values
// used by the writers of the sub packages.
type View interface {
	Title() string
	Columns() []string
	NumRows() int
	// Cell returns the selected value at row and col
	// or nil if either is out of range.
	Cell(row, col int) any
}

var _ View = new(RowsView)

// RowsView implements View for rows and the columns selecting their values.
type RowsView struct {
	Tit  string
	Cols Columns
	Rows []Row
}

func (v *RowsView) Title() string     { return v.Tit }
func (v *RowsView) Columns() []string { return v.Cols.Names() }
func (v *RowsView) NumRows() int      { return len(v.Rows) }

func (v *RowsView) Cell(row, col int) any {
	if row < 0 || row >= len(v.Rows) {
		return nil
	}
	return v.Cols.Value(col, v.Rows[row])
}

// Row returns the Row at index row or nil if out of range.
func (v *RowsView) Row(row int) Row {
	if row < 0 || row >= len(v.Rows) {
		return nil
	}
	return v.Rows[row]
}

// ViewStrings returns the cells of view converted with ValueString,
// optionally preceded by a row with the column names.
// Every returned row has one string per column.
func ViewStrings(ctx context.Context, view View, addHeaderRow bool) (rows [][]string, err error) {
	numCols := len(view.Columns())
	if addHeaderRow {
		rows = append(rows, view.Columns())
	}
	for row := 0; row < view.NumRows(); row++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		rowStrs := make([]string, numCols)
		for col := range rowStrs {
			rowStrs[col] = ValueString(view.Cell(row, col))
		}
		rows = append(rows, rowStrs)
	}
	return rows, nil
}

// StringColumnWidths returns the column widths of the passed
// table as count of UTF-8 runes.
// A negative numCols uses the length of the longest row.
func StringColumnWidths(rows [][]string, numCols int) []int {
	if numCols < 0 {
		for _, row := range rows {
			numCols = max(numCols, len(row))
		}
		if numCols <= 0 {
			return nil
		}
	}
	colWidths := make([]int, numCols)
	for _, row := range rows {
		for col := 0; col < numCols && col < len(row); col++ {
			colWidths[col] = max(colWidths[col], utf8.RuneCountInString(row[col]))
		}
	}
	return colWidths
}
