// Package config loads the configuration of the datagrid command
// from defaults, a YAML file, environment variables and flags.
package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	datagrid "github.com/domonda/go-datagrid"
)

// Output formats of the render command.
const (
	OutputTable = "table"
	OutputHTML  = "html"
	OutputCSV   = "csv"
	OutputJSON  = "json"
)

// Outputs lists all supported output formats.
var Outputs = []string{OutputTable, OutputHTML, OutputCSV, OutputJSON}

// Column configures one grid column.
type Column struct {
	Name string `koanf:"name"`
	// Field is the dot separated path to the value, like "address.city".
	Field string `koanf:"field"`
}

// Config holds all options of the datagrid command.
type Config struct {
	Rows          string   `koanf:"rows"`
	Sheet         string   `koanf:"sheet"`
	Query         string   `koanf:"query"`
	ID            string   `koanf:"id"`
	IDField       string   `koanf:"id_field"`
	Columns       []Column `koanf:"columns"`
	Pagination    bool     `koanf:"pagination"`
	PageSizes     []string `koanf:"page_sizes"`
	PageSizeIndex int      `koanf:"page_size_index"`
	Page          int      `koanf:"page"`
	SortColumn    int      `koanf:"sort_column"`
	SortOrder     string   `koanf:"sort_order"`
	Filter        string   `koanf:"filter"`
	RowSelectable bool     `koanf:"row_selectable"`
	SelectionMode string   `koanf:"selection_mode"`
	Output        string   `koanf:"output"`
	Verbose       bool     `koanf:"verbose"`

	// FileUsed is the path of the loaded config file, empty if none.
	FileUsed string `koanf:"-"`
}

// Validate checks the values that can be checked
// without loading the rows.
func (c *Config) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("id is required")
	}
	for i, col := range c.Columns {
		if col.Field == "" {
			return fmt.Errorf("column %d %q has no field", i, col.Name)
		}
	}
	sizes, err := datagrid.ParsePageSizes(c.PageSizes)
	if err != nil {
		return fmt.Errorf("page_sizes: %w", err)
	}
	if c.Pagination && (c.PageSizeIndex < 0 || (len(sizes) > 0 && c.PageSizeIndex >= len(sizes))) {
		return fmt.Errorf("page_size_index %d out of range of %d page sizes", c.PageSizeIndex, len(sizes))
	}
	if c.Page < 1 {
		return fmt.Errorf("page must be at least 1, got %d", c.Page)
	}
	if _, err := datagrid.ParseSortOrder(c.SortOrder); err != nil {
		return fmt.Errorf("sort_order: %w", err)
	}
	if c.SortColumn >= 0 && len(c.Columns) > 0 && c.SortColumn >= len(c.Columns) {
		return fmt.Errorf("sort_column %d out of range of %d columns", c.SortColumn, len(c.Columns))
	}
	if _, err := datagrid.ParseSelectionMode(c.SelectionMode); err != nil {
		return err
	}
	if !slices.Contains(Outputs, c.Output) {
		return fmt.Errorf("unknown output %q, expected one of %s", c.Output, strings.Join(Outputs, ", "))
	}
	return nil
}

// GridColumns returns the configured columns,
// nil if none are configured.
func (c *Config) GridColumns() datagrid.Columns {
	if len(c.Columns) == 0 {
		return nil
	}
	cols := make(datagrid.Columns, len(c.Columns))
	for i, col := range c.Columns {
		name := col.Name
		if name == "" {
			name = col.Field
		}
		cols[i] = datagrid.Column{Name: name, Selector: datagrid.DottedFieldSelector(col.Field)}
	}
	return cols
}

// GridOptions returns the options for datagrid.New.
func (c *Config) GridOptions(logger *slog.Logger) ([]datagrid.Option, error) {
	sizes, err := datagrid.ParsePageSizes(c.PageSizes)
	if err != nil {
		return nil, err
	}
	mode, err := datagrid.ParseSelectionMode(c.SelectionMode)
	if err != nil {
		return nil, err
	}
	return []datagrid.Option{
		datagrid.WithID(c.ID),
		datagrid.WithIDField(c.IDField),
		datagrid.WithPagination(c.Pagination),
		datagrid.WithPageSizeOptions(sizes...),
		datagrid.WithRowSelectable(c.RowSelectable),
		datagrid.WithSelectionMode(mode),
		datagrid.WithLogger(logger),
	}, nil
}

// SortSpec returns the configured sorting,
// unsorted for a negative sort column.
// A sort column without order sorts ascending.
func (c *Config) SortSpec() (datagrid.SortSpec, error) {
	if c.SortColumn < 0 {
		return datagrid.Unsorted(), nil
	}
	order, err := datagrid.ParseSortOrder(c.SortOrder)
	if err != nil {
		return datagrid.Unsorted(), err
	}
	if order == datagrid.SortNone {
		order = datagrid.SortAscending
	}
	return datagrid.SortSpec{Column: c.SortColumn, Order: order}, nil
}

// Apply sets the configured sorting, filter,
// page size and page on grid in that order.
func (c *Config) Apply(grid *datagrid.Grid) error {
	spec, err := c.SortSpec()
	if err != nil {
		return err
	}
	if err := grid.SetSort(spec); err != nil {
		return err
	}
	grid.SetFilter(c.Filter)
	if c.Pagination {
		if err := grid.SetPageSizeIndex(c.PageSizeIndex); err != nil {
			return err
		}
	}
	return grid.SetPage(c.Page)
}
