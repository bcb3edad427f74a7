package datagrid

import (
	"fmt"
	"strings"
)

// Selector extracts the displayable value of a column from a Row.
// It returns a string, a number or nil.
type Selector func(Row) any

// Column pairs a display name with a Selector.
type Column struct {
	Name     string
	Selector Selector
}

// NewColumn returns a Column named name that selects
// the value at the passed field path, see FieldSelector.
func NewColumn(name string, path ...string) Column {
	return Column{Name: name, Selector: FieldSelector(path...)}
}

// FieldSelector returns a Selector that walks the passed
// field path through nested maps.
// Any missing field or non-map value along the path
// results in nil instead of a panic.
func FieldSelector(path ...string) Selector {
	return func(row Row) any {
		var current any = row
		for _, field := range path {
			switch m := current.(type) {
			case Row:
				current = m[field]
			case map[string]any:
				current = m[field]
			default:
				return nil
			}
		}
		return current
	}
}

// DottedFieldSelector returns a FieldSelector
// for a dot separated path like "address.street".
func DottedFieldSelector(dottedPath string) Selector {
	return FieldSelector(strings.Split(dottedPath, ".")...)
}

// Columns is the ordered list of columns of a grid.
// The position of a column is its index for sorting.
type Columns []Column

// Names returns the display names of the columns.
func (cols Columns) Names() []string {
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
	}
	return names
}

// Value returns the selected value of column col for row
// or nil if col is out of range or has no Selector.
func (cols Columns) Value(col int, row Row) any {
	if col < 0 || col >= len(cols) || cols[col].Selector == nil {
		return nil
	}
	return cols[col].Selector(row)
}

// Validate returns an error if there are no columns
// or a column is missing its Selector.
func (cols Columns) Validate() error {
	if len(cols) == 0 {
		return ErrNoColumns
	}
	for i, col := range cols {
		if col.Selector == nil {
			return fmt.Errorf("%w: column %d %q has no selector", ErrInvalidColumn, i, col.Name)
		}
	}
	return nil
}
