package datagrid

import "errors"

// Errors returned by the datagrid package.
// The row processing pipeline itself never fails because of cell data,
// these errors are only returned for invalid configuration or
// interaction requests.
var (
	// ErrNoColumns is returned when a grid is created without columns.
	ErrNoColumns = errors.New("no columns")

	// ErrInvalidColumn is returned when a column has no name or selector.
	ErrInvalidColumn = errors.New("invalid column")

	// ErrInvalidSortColumn is returned when sorting by a column index
	// that is out of range.
	ErrInvalidSortColumn = errors.New("invalid sort column")

	// ErrInvalidPage is returned when navigating to a page
	// that is not in the current page list.
	ErrInvalidPage = errors.New("invalid page")

	// ErrInvalidPageSize is returned for a page size that is neither
	// a positive integer nor "All", or for an out of range page size index.
	ErrInvalidPageSize = errors.New("invalid page size")

	// ErrInvalidOptions is returned by Options.Validate.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrDuplicateRowID is returned when two rows share an identifier.
	ErrDuplicateRowID = errors.New("duplicate row id")

	// ErrRowSelectionDisabled is returned by selection methods
	// of a grid created with RowSelectable false.
	ErrRowSelectionDisabled = errors.New("row selection disabled")

	// ErrSelectionModeMismatch is returned when toggling a row
	// with the method that does not belong to the configured SelectionMode.
	ErrSelectionModeMismatch = errors.New("selection mode mismatch")

	// ErrUnknownRow is returned when selecting an identifier
	// that no row of the grid has.
	ErrUnknownRow = errors.New("unknown row")

	// ErrEmptySelection is returned when invoking an action without selected rows.
	ErrEmptySelection = errors.New("empty selection")

	// ErrUnknownAction is returned when invoking an action that is not configured.
	ErrUnknownAction = errors.New("unknown action")
)
