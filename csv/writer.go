// Package csv writes grid views as CSV.
package csv

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/domonda/go-datagrid"
)

// Writer writes the rows of a datagrid.View as CSV.
// The With* methods modify and return the Writer.
type Writer struct {
	columnFormatters map[int]datagrid.CellFormatter
	quoteAllFields   bool
	quoteEmptyFields bool
	escapeQuotes     string
	nilValue         string
	delimiter        rune
	newLine          string
	encoder          TextTransformer
}

// NewWriter returns a Writer using ';' as delimiter,
// "\r\n" as new line and doubled quotes as escape.
func NewWriter() *Writer {
	return &Writer{
		delimiter:    ';',
		escapeQuotes: `""`,
		newLine:      "\r\n",
	}
}

// WithColumnFormatter registers formatter for the column at columnIndex,
// nil removes a registered formatter.
func (w *Writer) WithColumnFormatter(columnIndex int, formatter datagrid.CellFormatter) *Writer {
	if formatter == nil {
		delete(w.columnFormatters, columnIndex)
		return w
	}
	if w.columnFormatters == nil {
		w.columnFormatters = make(map[int]datagrid.CellFormatter)
	}
	w.columnFormatters[columnIndex] = formatter
	return w
}

func (w *Writer) WithQuoteAllFields(quoteAllFields bool) *Writer {
	w.quoteAllFields = quoteAllFields
	return w
}

func (w *Writer) WithQuoteEmptyFields(quoteEmptyFields bool) *Writer {
	w.quoteEmptyFields = quoteEmptyFields
	return w
}

func (w *Writer) WithNilValue(nilValue string) *Writer {
	w.nilValue = nilValue
	return w
}

func (w *Writer) WithEscapeQuotes(escapeQuotes string) *Writer {
	w.escapeQuotes = escapeQuotes
	return w
}

func (w *Writer) WithDelimiter(delimiter rune) *Writer {
	w.delimiter = delimiter
	return w
}

func (w *Writer) WithNewLine(newLine string) *Writer {
	w.newLine = newLine
	return w
}

func (w *Writer) WithEncoder(encoder TextTransformer) *Writer {
	w.encoder = encoder
	return w
}

func (w *Writer) QuoteAllFields() bool     { return w.quoteAllFields }
func (w *Writer) QuoteEmptyFields() bool   { return w.quoteEmptyFields }
func (w *Writer) Delimiter() rune          { return w.delimiter }
func (w *Writer) EscapeQuotes() string     { return w.escapeQuotes }
func (w *Writer) NilValue() string         { return w.nilValue }
func (w *Writer) NewLine() string          { return w.newLine }
func (w *Writer) Encoder() TextTransformer { return w.encoder }

// WriteGrid writes the rows of the current page of grid,
// or all filtered rows if allPages is true.
func (w *Writer) WriteGrid(ctx context.Context, dest io.Writer, grid *datagrid.Grid, allPages, writeHeaderRow bool) error {
	if allPages {
		return w.WriteView(ctx, dest, grid.FilteredView(), writeHeaderRow)
	}
	return w.WriteView(ctx, dest, grid.View(), writeHeaderRow)
}

// WriteView writes all rows of view, optionally
// preceded by a row with the column names.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view datagrid.View, writeHeaderRow bool) error {
	var (
		rowBuf         = bytes.NewBuffer(make([]byte, 0, 1024))
		mustQuoteChars = "\n\"" + string(w.delimiter)
	)
	if writeHeaderRow {
		for col, name := range view.Columns() {
			if col > 0 {
				rowBuf.WriteRune(w.delimiter)
			}
			w.writeField(rowBuf, name, mustQuoteChars)
		}
		if err := w.flushRow(dest, rowBuf); err != nil {
			return err
		}
	}
	numCols := len(view.Columns())
	for row := 0; row < view.NumRows(); row++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		for col := 0; col < numCols; col++ {
			if col > 0 {
				rowBuf.WriteRune(w.delimiter)
			}
			if err := w.writeCell(ctx, rowBuf, view, row, col, mustQuoteChars); err != nil {
				return err
			}
		}
		if err := w.flushRow(dest, rowBuf); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeCell(ctx context.Context, rowBuf *bytes.Buffer, view datagrid.View, row, col int, mustQuoteChars string) error {
	val := view.Cell(row, col)
	if formatter, ok := val.(RawFormatter); ok {
		raw, err := formatter.RawCSV(ctx, view, row, col)
		if err != nil {
			return err
		}
		rowBuf.WriteString(raw)
		return nil
	}
	if val == nil && w.columnFormatters[col] == nil {
		w.writeField(rowBuf, w.nilValue, mustQuoteChars)
		return nil
	}
	str, raw, err := datagrid.FormatCellOrString(ctx, w.columnFormatters[col], view, row, col)
	if err != nil {
		return err
	}
	if raw {
		rowBuf.WriteString(str)
		return nil
	}
	w.writeField(rowBuf, str, mustQuoteChars)
	return nil
}

func (w *Writer) writeField(rowBuf *bytes.Buffer, str, mustQuoteChars string) {
	// Just in case remove all \r,
	// \n alone is valid within quotes
	str = strings.ReplaceAll(str, "\r", "")
	switch {
	case w.quoteAllFields || strings.ContainsAny(str, mustQuoteChars):
		rowBuf.WriteByte('"')
		rowBuf.WriteString(strings.ReplaceAll(str, `"`, w.escapeQuotes))
		rowBuf.WriteByte('"')
	case w.quoteEmptyFields && str == "":
		rowBuf.WriteString(`""`)
	default:
		rowBuf.WriteString(str)
	}
}

func (w *Writer) flushRow(dest io.Writer, rowBuf *bytes.Buffer) (err error) {
	rowBuf.WriteString(w.newLine)
	rowBytes := rowBuf.Bytes()
	defer rowBuf.Reset()
	if w.encoder != nil {
		rowBytes, err = w.encoder.Bytes(rowBytes)
		if err != nil {
			return err
		}
	}
	_, err = dest.Write(rowBytes)
	return err
}
