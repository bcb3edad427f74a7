package datagrid

import (
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SearchSeparator joins the column values of a row
// in its search string.
const SearchSeparator = ","

// SearchIndex holds one lowercase search string per row,
// built from the selected values of all columns.
// Index i belongs to the row at index i of the rows
// the index was built from.
type SearchIndex []string

// BuildSearchIndex builds the search strings for rows.
// This is the expensive part of filtering and only
// has to be repeated when rows or columns change.
func BuildSearchIndex(rows []Row, columns Columns) SearchIndex {
	lower := cases.Lower(language.Und)
	index := make(SearchIndex, len(rows))
	values := make([]string, len(columns))
	for i, row := range rows {
		for col := range columns {
			values[col] = ValueString(columns.Value(col, row))
		}
		index[i] = lower.String(strings.Join(values, SearchSeparator))
	}
	return index
}

// Match returns the rows whose search string contains filter,
// compared case insensitively and without trimming filter.
// An empty filter matches all rows.
//
// If the index was not built for the passed rows,
// detected by a different length, all rows are returned
// unfiltered instead of indexing out of bounds.
func (index SearchIndex) Match(rows []Row, filter string) []Row {
	return index.match(rows, filter, nil)
}

func (index SearchIndex) match(rows []Row, filter string, logger *slog.Logger) []Row {
	if filter == "" {
		return rows
	}
	if len(index) != len(rows) {
		if logger != nil {
			logger.Warn("search index out of sync with rows, showing all rows",
				slog.Int("indexLen", len(index)),
				slog.Int("numRows", len(rows)),
			)
		}
		return rows
	}
	needle := cases.Lower(language.Und).String(filter)
	filtered := make([]Row, 0, len(rows))
	for i, row := range rows {
		if strings.Contains(index[i], needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// FilterRows builds a SearchIndex for rows and matches filter
// in one step. Use a SearchIndex directly to avoid rebuilding
// the search strings for every new filter.
func FilterRows(rows []Row, columns Columns, filter string) []Row {
	if filter == "" {
		return rows
	}
	return BuildSearchIndex(rows, columns).Match(rows, filter)
}
