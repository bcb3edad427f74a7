package datagrid

import (
	"fmt"
	"log/slog"
	"slices"
)

type stage uint8

const (
	stageNormalize stage = 1 << iota
	stageSort
	stageIndex
	stageMatch
	stagePaginate

	stageAll = stageNormalize | stageSort | stageIndex | stageMatch | stagePaginate
)

// Grid is the row processing pipeline of a data table
// together with the UI state driving it.
//
// Raw rows flow through the stages
// Normalizer -> Sorter -> search index -> filter match -> Paginator.
// Every state change marks the first affected stage,
// and the stages from there on are recomputed eagerly
// in pipeline order before the method returns,
// so accessors always reflect the latest state.
//
// A Grid is owned by a single rendering layer
// and is not safe for concurrent use.
type Grid struct {
	opts      Options
	logger    *slog.Logger
	rows      []Row
	columns   Columns
	sort      SortSpec
	filter    string
	sizeIndex int
	page      int
	selection Selection

	normalized []Row
	rowIDs     map[any]struct{}
	sorted     []Row
	index      SearchIndex
	filtered   []Row
	pageResult PageResult
}

// New creates a Grid for rows and columns, configured by
// DefaultOptions modified by opts.
func New(rows []Row, columns Columns, opts ...Option) (*Grid, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if err := columns.Validate(); err != nil {
		return nil, err
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if options.Normalizer == nil {
		options.Normalizer = NewNormalizer()
		options.Normalizer.Logger = logger
	}
	if options.Sorter == nil {
		options.Sorter = NewSorter()
	}

	g := &Grid{
		opts:    options,
		logger:  logger.With(slog.String("grid", options.ID)),
		columns: columns,
		sort:    Unsorted(),
		page:    1,
	}
	if err := g.normalizeRows(rows); err != nil {
		return nil, err
	}
	g.refresh(stageAll)
	return g, nil
}

// normalizeRows normalizes rows and sets them as source
// if the identifiers of the normalized rows are unique.
// Identifiers are compared as normalized values,
// the same values selection and rendering use.
func (g *Grid) normalizeRows(rows []Row) error {
	normalized := g.opts.Normalizer.Normalize(rows)
	if g.opts.RowSelectable {
		if err := checkUniqueIDs(normalized, g.opts.idField()); err != nil {
			return err
		}
	}
	g.rows = rows
	g.normalized = normalized
	return nil
}

func checkUniqueIDs(rows []Row, idField string) error {
	seen := make(map[any]int, len(rows))
	for i, row := range rows {
		id, ok := row.ID(idField)
		if !ok {
			continue
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("%w: %v in rows %d and %d", ErrDuplicateRowID, id, prev, i)
		}
		seen[id] = i
	}
	return nil
}

// refresh recomputes the pipeline starting
// with the earliest stage in dirty.
func (g *Grid) refresh(dirty stage) {
	if dirty&stageNormalize != 0 {
		g.rowIDs = make(map[any]struct{}, len(g.normalized))
		for _, row := range g.normalized {
			if id, ok := row.ID(g.opts.idField()); ok {
				g.rowIDs[id] = struct{}{}
			}
		}
		dirty |= stageSort
	}
	if dirty&stageSort != 0 {
		sorted, err := g.opts.Sorter.SortSource(g.normalized, g.rows, g.columns, g.sort)
		if err != nil {
			g.logger.Warn("sort failed, showing rows unsorted", slog.Any("error", err))
			g.sort = Unsorted()
			sorted = slices.Clone(g.normalized)
		}
		g.sorted = sorted
		dirty |= stageIndex
	}
	if dirty&stageIndex != 0 {
		g.index = BuildSearchIndex(g.sorted, g.columns)
		dirty |= stageMatch
	}
	if dirty&stageMatch != 0 {
		g.filtered = g.index.match(g.sorted, g.filter, g.logger)
		dirty |= stagePaginate
	}
	if dirty&stagePaginate != 0 {
		g.paginate()
	}
}

func (g *Grid) paginate() {
	options := g.opts.EffectivePageSizeOptions()
	for {
		result := Paginate(g.filtered, options, g.sizeIndex, g.page)
		if !result.Corrected {
			g.page = result.Page
			g.pageResult = result
			return
		}
		g.logger.Debug("current page empty, moving to previous page",
			slog.Int("page", g.page),
			slog.Int("newPage", result.Page),
		)
		g.page = result.Page
	}
}

// Options returns the options the grid was created with.
func (g *Grid) Options() Options { return g.opts }

// ID returns the table identifier.
func (g *Grid) ID() string { return g.opts.ID }

// IDField returns the name of the row identifier field.
func (g *Grid) IDField() string { return g.opts.idField() }

// Columns returns the columns of the grid.
func (g *Grid) Columns() Columns { return g.columns }

// SetRows replaces the source rows, for example
// after rows were deleted by a selection action.
// All stages are recomputed, the current page
// corrects itself if it became empty.
func (g *Grid) SetRows(rows []Row) error {
	if err := g.normalizeRows(rows); err != nil {
		return err
	}
	g.refresh(stageNormalize)
	return nil
}

// Rows returns the source rows as passed to New or SetRows.
func (g *Grid) Rows() []Row { return g.rows }

// SetColumns replaces the columns.
// If the sorted column no longer exists the grid becomes unsorted.
func (g *Grid) SetColumns(columns Columns) error {
	if err := columns.Validate(); err != nil {
		return err
	}
	g.columns = columns
	if g.sort.Column >= len(columns) {
		g.logger.Debug("sorted column removed", slog.Int("column", g.sort.Column))
		g.sort = Unsorted()
	}
	g.refresh(stageSort)
	return nil
}

// Sort returns the current SortSpec.
func (g *Grid) Sort() SortSpec { return g.sort }

// SetSort sets the SortSpec directly.
func (g *Grid) SetSort(spec SortSpec) error {
	if !spec.Valid() {
		return fmt.Errorf("%w: %s with column %d", ErrInvalidSortColumn, spec.Order, spec.Column)
	}
	if spec.Column >= len(g.columns) {
		return fmt.Errorf("%w: index %d of %d columns", ErrInvalidSortColumn, spec.Column, len(g.columns))
	}
	if spec == g.sort {
		return nil
	}
	g.sort = spec
	g.refresh(stageSort)
	return nil
}

// ClickHeader handles a click on the header of column col:
// an unsorted column becomes ascending, the ascending column
// becomes descending and the descending column ascending again.
func (g *Grid) ClickHeader(col int) error {
	if col < 0 || col >= len(g.columns) {
		return fmt.Errorf("%w: index %d of %d columns", ErrInvalidSortColumn, col, len(g.columns))
	}
	return g.SetSort(g.sort.Toggle(col))
}

// Filter returns the current filter string.
func (g *Grid) Filter() string { return g.filter }

// SetFilter sets the search string, an empty string shows all rows.
func (g *Grid) SetFilter(filter string) {
	if filter == g.filter {
		return
	}
	g.filter = filter
	g.refresh(stageMatch)
}

// ClearFilter is a shortcut for SetFilter("").
func (g *Grid) ClearFilter() { g.SetFilter("") }

// PageSizeOptions returns the page size choices,
// nil if pagination is disabled.
func (g *Grid) PageSizeOptions() []PageSize {
	return g.opts.EffectivePageSizeOptions()
}

// PageSizeIndex returns the index of the selected page size option.
func (g *Grid) PageSizeIndex() int { return g.sizeIndex }

// PageSize returns the selected page size option,
// AllRows if pagination is disabled.
func (g *Grid) PageSize() PageSize {
	options := g.PageSizeOptions()
	if g.sizeIndex < 0 || g.sizeIndex >= len(options) {
		return AllRows
	}
	return options[g.sizeIndex]
}

// SetPageSizeIndex selects a page size option
// and resets the current page to 1.
func (g *Grid) SetPageSizeIndex(index int) error {
	options := g.PageSizeOptions()
	if index < 0 || index >= len(options) {
		return fmt.Errorf("%w: index %d of %d options", ErrInvalidPageSize, index, len(options))
	}
	g.sizeIndex = index
	g.page = 1
	g.refresh(stagePaginate)
	return nil
}

// Page returns the current 1 based page number.
func (g *Grid) Page() int { return g.page }

// PageList returns the valid page numbers,
// nil if pagination is disabled and empty if there are no rows.
func (g *Grid) PageList() []int { return slices.Clone(g.pageResult.PageList) }

// NumPages returns the number of pages.
func (g *Grid) NumPages() int { return g.pageResult.NumPages() }

// PageRange returns the 1 based first and last row number
// of the current page and the number of filtered rows.
func (g *Grid) PageRange() (first, last, total int) { return g.pageResult.Range() }

// SetPage navigates to page, which must be in the page list.
// Page 1 is always valid.
func (g *Grid) SetPage(page int) error {
	if page != 1 && (page < 1 || page > g.pageResult.NumPages()) {
		return fmt.Errorf("%w: %d of %d pages", ErrInvalidPage, page, g.pageResult.NumPages())
	}
	if page == g.page {
		return nil
	}
	g.page = page
	g.refresh(stagePaginate)
	return nil
}

// NextPage moves to the next page and returns false
// if the current page is the last one.
func (g *Grid) NextPage() bool {
	if g.page >= g.pageResult.NumPages() {
		return false
	}
	g.page++
	g.refresh(stagePaginate)
	return true
}

// PrevPage moves to the previous page and returns false
// if the current page is the first one.
func (g *Grid) PrevPage() bool {
	if g.page <= 1 {
		return false
	}
	g.page--
	g.refresh(stagePaginate)
	return true
}

// NormalizedRows returns the rows after the Normalizer stage.
func (g *Grid) NormalizedRows() []Row { return slices.Clone(g.normalized) }

// SortedRows returns the rows after the Sorter stage.
func (g *Grid) SortedRows() []Row { return slices.Clone(g.sorted) }

// FilteredRows returns the rows after the filter stage.
func (g *Grid) FilteredRows() []Row { return slices.Clone(g.filtered) }

// DisplayedRows returns the rows of the current page.
func (g *Grid) DisplayedRows() []Row { return slices.Clone(g.pageResult.Rows) }

// View returns the displayed rows as View.
func (g *Grid) View() *RowsView {
	return &RowsView{Tit: g.opts.ID, Cols: g.columns, Rows: g.DisplayedRows()}
}

// FilteredView returns all filtered rows as View.
func (g *Grid) FilteredView() *RowsView {
	return &RowsView{Tit: g.opts.ID, Cols: g.columns, Rows: g.FilteredRows()}
}

func (g *Grid) checkSelectable(mode SelectionMode) error {
	if !g.opts.RowSelectable {
		return ErrRowSelectionDisabled
	}
	if g.opts.SelectionMode != mode {
		return fmt.Errorf("%w: grid selects by %s", ErrSelectionModeMismatch, g.opts.SelectionMode)
	}
	return nil
}

func (g *Grid) toggle(id any, mode SelectionMode) (bool, error) {
	if err := g.checkSelectable(mode); err != nil {
		return false, err
	}
	if !isValidID(id) {
		return false, fmt.Errorf("%w: %v", ErrUnknownRow, id)
	}
	if _, ok := g.rowIDs[id]; !ok {
		return false, fmt.Errorf("%w: %v", ErrUnknownRow, id)
	}
	return g.selection.Toggle(id), nil
}

// ToggleRow toggles the selection of the row with id
// via its checkbox and returns whether it is selected afterwards.
// Only available with SelectByCheckbox.
func (g *Grid) ToggleRow(id any) (bool, error) {
	return g.toggle(id, SelectByCheckbox)
}

// ClickRow toggles the selection of the row with id
// after a click on the row and returns whether it is selected afterwards.
// Only available with SelectByRowClick.
func (g *Grid) ClickRow(id any) (bool, error) {
	return g.toggle(id, SelectByRowClick)
}

// SetAllSelected selects all filtered rows, not only
// those of the current page, or clears the selection.
func (g *Grid) SetAllSelected(selected bool) error {
	if !g.opts.RowSelectable {
		return ErrRowSelectionDisabled
	}
	if selected {
		g.selection.Set(RowIDs(g.filtered, g.opts.idField()))
	} else {
		g.selection.Clear()
	}
	return nil
}

// ClearSelection deselects all rows.
func (g *Grid) ClearSelection() { g.selection.Clear() }

// AllSelected returns the state of the select all checkbox:
// true if there are filtered rows, all of them are selected
// and nothing else is selected.
func (g *Grid) AllSelected() bool {
	return g.selection.CoversExactly(g.filtered, g.opts.idField())
}

// IsSelected returns true if the row with id is selected.
func (g *Grid) IsSelected(id any) bool { return g.selection.Has(id) }

// Selected returns the identifiers of the selected rows.
func (g *Grid) Selected() []any { return g.selection.IDs() }

// SelectionCount returns the number of selected rows.
func (g *Grid) SelectionCount() int { return g.selection.Len() }

// Actions returns the configured selection actions.
func (g *Grid) Actions() []Action { return g.opts.SelectionActions }

// InvokeAction calls the function of the action with name
// with the identifiers of the selected rows
// and clears the selection if it returns no error.
func (g *Grid) InvokeAction(name string) error {
	if !g.opts.RowSelectable {
		return ErrRowSelectionDisabled
	}
	i := slices.IndexFunc(g.opts.SelectionActions, func(a Action) bool { return a.Name == name })
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	if g.selection.Len() == 0 {
		return ErrEmptySelection
	}
	ids := g.selection.IDs()
	g.logger.Debug("invoking selection action", slog.String("action", name), slog.Int("numRows", len(ids)))
	if err := g.opts.SelectionActions[i].Fn(ids); err != nil {
		return fmt.Errorf("selection action %q: %w", name, err)
	}
	g.selection.Clear()
	return nil
}
