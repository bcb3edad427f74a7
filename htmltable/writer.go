// Package htmltable renders grids and views as HTML.
//
// Write renders the complete markup of a datagrid.Grid:
// page size select, search input, the table with sortable
// column headers and selectable rows, the selection actions
// and the pagination footer. WriteView renders any
// datagrid.View as plain HTML table.
//
// All cell values are HTML-escaped unless a column formatter
// returns a raw result.
//
// Example usage:
//
//	writer := htmltable.NewWriter().
//	    WithTableClass("datagrid__table").
//	    WithNilValue("-")
//
//	err := writer.Write(ctx, os.Stdout, grid)
package htmltable

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"maps"
	"strings"

	"github.com/domonda/go-datagrid"
)

// DefaultTableClass is the CSS class of the table element.
const DefaultTableClass = "datagrid__table"

// Writer writes grids and views as HTML.
//
// Writer is immutable after creation - all With* methods return
// a new Writer instance with the modified configuration.
type Writer struct {
	tableClass       string
	caption          string
	columnFormatters map[int]datagrid.CellFormatter
	nilValue         template.HTML
	headerRow        bool
	gridTemplate     *template.Template
	headerTemplate   *template.Template
	rowTemplate      *template.Template
	footerTemplate   *template.Template
}

// NewWriter creates a new HTML writer with the default templates,
// DefaultTableClass and an empty string for nil values.
func NewWriter() *Writer {
	return &Writer{
		tableClass:       DefaultTableClass,
		columnFormatters: make(map[int]datagrid.CellFormatter),
		headerRow:        true,
		gridTemplate:     GridTemplate,
		headerTemplate:   HeaderTemplate,
		rowTemplate:      RowTemplate,
		footerTemplate:   FooterTemplate,
	}
}

// Write renders the markup of grid reflecting its current
// sort, filter, page and selection state.
func (w *Writer) Write(ctx context.Context, dest io.Writer, grid *datagrid.Grid) error {
	data, err := w.GridContext(ctx, grid)
	if err != nil {
		return err
	}
	return w.gridTemplate.Execute(dest, data)
}

// GridContext returns the data the grid template is executed with.
func (w *Writer) GridContext(ctx context.Context, grid *datagrid.Grid) (*GridTemplateContext, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	opts := grid.Options()
	data := &GridTemplateContext{
		TemplateContext: TemplateContext{
			TableClass: w.tableClass,
			Caption:    w.caption,
		},
		ID:             grid.ID(),
		Filter:         grid.Filter(),
		Pagination:     opts.Pagination,
		Selectable:     opts.RowSelectable,
		AllSelected:    grid.AllSelected(),
		SelectionCount: grid.SelectionCount(),
		SelectionLabel: datagrid.SelectionLabel(grid.SelectionCount()),
	}

	for i, size := range grid.PageSizeOptions() {
		data.PageSizeOptions = append(data.PageSizeOptions, PageSizeOptionContext{
			Index:    i,
			Label:    size.String(),
			Selected: i == grid.PageSizeIndex(),
		})
	}

	sort := grid.Sort()
	for col, name := range grid.Columns().Names() {
		order := sort.OrderOf(col)
		header := HeaderContext{
			Index:     col,
			Name:      name,
			Sorted:    order != datagrid.SortNone,
			AriaSort:  order.String(),
			AriaLabel: fmt.Sprintf("%s: activate to sort column %s", name, sort.NextOrderOf(col)),
			IconOrder: datagrid.SortAscending.String(),
		}
		if header.Sorted {
			header.IconOrder = order.String()
		}
		data.Headers = append(data.Headers, header)
	}

	view := grid.View()
	numCols := len(view.Columns())
	for row, numRows := 0, view.NumRows(); row < numRows; row++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		rowCtx := GridRowContext{
			Index: row,
			Cells: make([]template.HTML, numCols),
		}
		if id, ok := view.Row(row).ID(grid.IDField()); ok {
			rowCtx.ID = datagrid.ValueString(id)
			rowCtx.Selected = grid.IsSelected(id)
		}
		rowCtx.Class = RowClass(row, rowCtx.Selected)
		for col := range numCols {
			cell, err := w.cellHTML(ctx, view, row, col)
			if err != nil {
				return nil, err
			}
			rowCtx.Cells[col] = cell
		}
		data.Rows = append(data.Rows, rowCtx)
	}

	for _, action := range grid.Actions() {
		data.Actions = append(data.Actions, ActionContext{Name: action.Name, Icon: action.Icon})
	}

	if opts.Pagination {
		first, last, total := grid.PageRange()
		data.RangeLabel = fmt.Sprintf("%d - %d of %d", first, last, total)
		page := grid.Page()
		for _, p := range grid.PageList() {
			data.Pages = append(data.Pages, PageContext{Number: p, Current: p == page})
		}
		data.HasPrev = page > 1
		data.HasNext = page < len(data.Pages)
		data.PrevPage = page - 1
		data.NextPage = page + 1
	}
	return data, nil
}

// WriteView writes view as plain HTML table.
// The title of the view is used as caption
// unless the Writer has a caption configured.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view datagrid.View) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var (
		columns   = view.Columns()
		numCols   = len(columns)
		templData = &RowTemplateContext{
			TemplateContext: TemplateContext{
				TableClass: w.tableClass,
				Caption:    w.caption,
			},
			RawCells: make([]template.HTML, numCols),
		}
	)
	if templData.Caption == "" {
		templData.Caption = view.Title()
	}

	err := w.headerTemplate.Execute(dest, templData.TemplateContext)
	if err != nil {
		return err
	}

	if w.headerRow {
		templData.IsHeaderRow = true
		for i := range columns {
			templData.RawCells[i] = template.HTML(template.HTMLEscapeString(columns[i])) //#nosec G203
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.IsHeaderRow = false
		templData.RowIndex++
	}

	for row, numRows := 0, view.NumRows(); row < numRows; row++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		for col := 0; col < numCols; col++ {
			templData.RawCells[col], err = w.cellHTML(ctx, view, row, col)
			if err != nil {
				return err
			}
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.RowIndex++
	}

	return w.footerTemplate.Execute(dest, templData.TemplateContext)
}

func (w *Writer) cellHTML(ctx context.Context, view datagrid.View, row, col int) (template.HTML, error) {
	formatter := w.columnFormatters[col]
	if formatter == nil {
		switch val := view.Cell(row, col).(type) {
		case nil:
			return w.nilValue, nil
		case RawFormatter:
			return val.RawHTML(ctx, view, row, col)
		}
	}
	str, isRaw, err := datagrid.FormatCellOrString(ctx, formatter, view, row, col)
	if err != nil {
		return "", err
	}
	if !isRaw {
		str = template.HTMLEscapeString(str)
	}
	return template.HTML(str), nil //#nosec G203
}

// RowClass returns the CSS class of the body row
// at the 0 based index on the page.
func RowClass(index int, selected bool) string {
	var b strings.Builder
	if index%2 == 0 {
		b.WriteString("even")
	} else {
		b.WriteString("odd")
	}
	if selected {
		b.WriteString(" selected")
	}
	return b.String()
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

// WithHeaderRow returns a new writer that renders the column names
// as first row of WriteView, which is the default.
func (w *Writer) WithHeaderRow(headerRow bool) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

// WithTableClass returns a new writer with the specified CSS class for the table element.
func (w *Writer) WithTableClass(tableClass string) *Writer {
	mod := w.clone()
	mod.tableClass = tableClass
	return mod
}

// WithCaption returns a new writer rendering caption
// as caption element of the table.
func (w *Writer) WithCaption(caption string) *Writer {
	mod := w.clone()
	mod.caption = caption
	return mod
}

// WithColumnFormatter returns a new writer with the formatter registered for the specified column.
// If nil is passed as formatter, any previously registered formatter for this column is removed.
func (w *Writer) WithColumnFormatter(columnIndex int, formatter datagrid.CellFormatter) *Writer {
	mod := w.clone()
	mod.columnFormatters = maps.Clone(w.columnFormatters)
	if mod.columnFormatters == nil {
		mod.columnFormatters = make(map[int]datagrid.CellFormatter)
	}
	if formatter != nil {
		mod.columnFormatters[columnIndex] = formatter
	} else {
		delete(mod.columnFormatters, columnIndex)
	}
	return mod
}

// WithColumnFormatterFunc is a convenience wrapper around WithColumnFormatter.
func (w *Writer) WithColumnFormatterFunc(columnIndex int, formatterFunc datagrid.CellFormatterFunc) *Writer {
	return w.WithColumnFormatter(columnIndex, formatterFunc)
}

// WithRawColumn returns a new writer that interprets the specified column as raw HTML strings.
//
// Warning: Only use this for trusted content to avoid XSS vulnerabilities.
func (w *Writer) WithRawColumn(columnIndex int) *Writer {
	return w.WithColumnFormatter(columnIndex, datagrid.SprintCellFormatter(true))
}

// WithNilValue returns a new writer with the specified HTML to use for nil values.
func (w *Writer) WithNilValue(nilValue template.HTML) *Writer {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

// WithGridTemplate returns a new writer using tmpl for Write.
// The template is executed with a *GridTemplateContext.
func (w *Writer) WithGridTemplate(tmpl *template.Template) *Writer {
	mod := w.clone()
	mod.gridTemplate = tmpl
	return mod
}

// WithTemplate returns a new writer with custom templates for WriteView.
func (w *Writer) WithTemplate(tableTemplate, rowTemplate, footerTemplate *template.Template) *Writer {
	mod := w.clone()
	mod.headerTemplate = tableTemplate
	mod.rowTemplate = rowTemplate
	mod.footerTemplate = footerTemplate
	return mod
}

// TableClass returns the CSS class configured for the table element.
func (w *Writer) TableClass() string {
	return w.tableClass
}

// NilValue returns the HTML configured to be rendered for nil values.
func (w *Writer) NilValue() template.HTML {
	return w.nilValue
}
