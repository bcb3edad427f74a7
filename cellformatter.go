package datagrid

import (
	"context"
	"errors"
	"fmt"
)

var (
	_ CellFormatter = CellFormatterFunc(nil)
	_ CellFormatter = PrintfCellFormatter("")
	_ CellFormatter = RawCellString("")
	_ CellFormatter = SprintCellFormatter(false)
)

// CellFormatter formats the cell of a View as string
// for the writers of the sub packages.
type CellFormatter interface {
	// FormatCell formats a cell as string
	// or returns a wrapped errors.ErrUnsupported error if
	// it doesn't support formatting the value of the cell.
	// The raw result indicates if the returned string
	// is in the raw format of the output and can be
	// used as is or if it has to be escaped.
	FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error)
}

// CellFormatterFunc implements CellFormatter for a function.
type CellFormatterFunc func(ctx context.Context, view View, row, col int) (str string, raw bool, err error)

func (f CellFormatterFunc) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return f(ctx, view, row, col)
}

// PrintfCellFormatter implements CellFormatter by calling
// fmt.Sprintf with this type's string value as format.
type PrintfCellFormatter string

func (format PrintfCellFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return fmt.Sprintf(string(format), view.Cell(row, col)), false, nil
}

// RawCellString implements CellFormatter by returning
// the underlying string as raw value for every cell.
type RawCellString string

func (rawStr RawCellString) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return string(rawStr), true, nil
}

// SprintCellFormatter formats the cell value with ValueString,
// the bool value of the type is returned as raw result.
type SprintCellFormatter bool

func (rawResult SprintCellFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return ValueString(view.Cell(row, col)), bool(rawResult), nil
}

// FormatCellOrString tries formatter first and falls back to
// ValueString of the cell if formatter is nil or
// returns an errors.ErrUnsupported error.
func FormatCellOrString(ctx context.Context, formatter CellFormatter, view View, row, col int) (str string, raw bool, err error) {
	if formatter != nil {
		str, raw, err = formatter.FormatCell(ctx, view, row, col)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	return ValueString(view.Cell(row, col)), false, nil
}
