package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/htmlindex"

	datagrid "github.com/domonda/go-datagrid"
	"github.com/domonda/go-datagrid/csv"
	"github.com/domonda/go-datagrid/htmltable"
	"github.com/domonda/go-datagrid/internal/config"
)

// renderOptions are the flags of the render command
// that only concern the output.
type renderOptions struct {
	allPages    bool
	noHeader    bool
	delimiter   string
	csvEncoding string
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the current page of the grid",
		Long: `Render loads the rows, applies the configured sorting, filter
and page, and writes the result in the format selected with --output:

  table  terminal table of the displayed rows
  html   grid markup including search, page size and pagination controls
  csv    displayed rows as CSV
  json   displayed rows as array of objects keyed by column name`,
		Example: `  datagrid render --rows employees.json --sort-column 1 --filter sales
  datagrid render -o csv --all --delimiter ';' --csv-encoding windows-1252`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := GetConfig(ctx)
			grid, err := BuildGrid(ctx, cfg, GetLogger(ctx))
			if err != nil {
				return err
			}
			return render(ctx, cmd.OutOrStdout(), grid, cfg.Output, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.allPages, "all", false, "write all filtered rows instead of the current page (table, csv, json)")
	cmd.Flags().BoolVar(&opts.noHeader, "no-header", false, "omit the header row (table, csv)")
	cmd.Flags().StringVar(&opts.delimiter, "delimiter", ",", "CSV field delimiter")
	cmd.Flags().StringVar(&opts.csvEncoding, "csv-encoding", "utf-8", "CSV character encoding, like windows-1252")

	return cmd
}

// render writes grid to w in the passed output format.
func render(ctx context.Context, w io.Writer, grid *datagrid.Grid, output string, opts renderOptions) error {
	view := grid.View()
	if opts.allPages {
		view = grid.FilteredView()
	}
	switch output {
	case config.OutputTable:
		return renderTable(ctx, w, grid, view, opts)
	case config.OutputHTML:
		return htmltable.NewWriter().Write(ctx, w, grid)
	case config.OutputCSV:
		writer, err := csvWriter(opts)
		if err != nil {
			return err
		}
		return writer.WriteView(ctx, w, view, !opts.noHeader)
	case config.OutputJSON:
		return renderJSON(w, view)
	}
	return fmt.Errorf("unknown output %q", output)
}

func csvWriter(opts renderOptions) (*csv.Writer, error) {
	writer := csv.NewWriter()
	if opts.delimiter != "" {
		delim := []rune(opts.delimiter)
		if len(delim) != 1 {
			return nil, fmt.Errorf("CSV delimiter must be a single character, got %q", opts.delimiter)
		}
		writer = writer.WithDelimiter(delim[0])
	}
	if opts.csvEncoding != "" {
		enc, err := htmlindex.Get(opts.csvEncoding)
		if err != nil {
			return nil, fmt.Errorf("CSV encoding %q: %w", opts.csvEncoding, err)
		}
		if name, _ := htmlindex.Name(enc); name != "utf-8" {
			writer = writer.WithEncoder(csv.EncodingTransformer(enc))
		}
	}
	return writer, nil
}

func renderTable(ctx context.Context, w io.Writer, grid *datagrid.Grid, view *datagrid.RowsView, opts renderOptions) error {
	cells, err := datagrid.ViewStrings(ctx, view, false)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	if !opts.noHeader {
		sort := grid.Sort()
		headerRow := make(table.Row, len(view.Cols))
		for col, name := range view.Columns() {
			switch sort.OrderOf(col) {
			case datagrid.SortAscending:
				name += " ▲"
			case datagrid.SortDescending:
				name += " ▼"
			}
			headerRow[col] = name
		}
		t.AppendHeader(headerRow)
	}
	for _, rowCells := range cells {
		row := make(table.Row, len(rowCells))
		for i, cell := range rowCells {
			row[i] = cell
		}
		t.AppendRow(row)
	}

	first, last, total := grid.PageRange()
	if opts.allPages {
		first, last = min(1, total), total
	}
	t.SetCaption("%d - %d of %d", first, last, total)
	t.Render()
	return nil
}

func renderJSON(w io.Writer, view *datagrid.RowsView) error {
	names := view.Columns()
	objects := make([]map[string]any, view.NumRows())
	for row := range objects {
		obj := make(map[string]any, len(names))
		for col, name := range names {
			obj[name] = view.Cell(row, col)
		}
		objects[row] = obj
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(objects)
}
