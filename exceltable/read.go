// Package exceltable reads the sheets of Excel files
// (.xlsx, .xlsm, .xltm, .xltx) as grid rows.
//
// The first non empty row of a sheet names the fields of its rows.
package exceltable

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	fs "github.com/ungerik/go-fs"
	"github.com/xuri/excelize/v2"

	datagrid "github.com/domonda/go-datagrid"
)

// ErrEmptySheet is returned for a sheet without any non empty row.
var ErrEmptySheet = errors.New("empty sheet")

// ErrSheetNotExist is returned for a requested sheet name
// that is not in the workbook.
type ErrSheetNotExist = excelize.ErrSheetNotExist

// Sheet holds the rows read from one worksheet.
type Sheet struct {
	Name string
	Rows []datagrid.Row
}

// Read returns all non empty sheets of the workbook read from reader.
//
// With rawCellStrings the unformatted cell values are returned,
// else the values as displayed by Excel using the cell number formats.
// See datagrid.TableRows for how idField is used.
func Read(reader io.Reader, rawCellStrings bool, idField string) (sheets []Sheet, err error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	for _, name := range f.GetSheetList() {
		rows, err := readSheet(f, name, rawCellStrings, idField)
		if err != nil {
			if errors.Is(err, ErrEmptySheet) {
				continue
			}
			return nil, err
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}

// ReadSheet returns the rows of the named sheet
// or of the first sheet if sheet is empty.
func ReadSheet(reader io.Reader, sheet string, rawCellStrings bool, idField string) (rows []datagrid.Row, err error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, ErrSheetNotExist{SheetName: sheet}
	}
	return readSheet(f, sheet, rawCellStrings, idField)
}

// ReadRows reads file and returns the rows of sheet
// as displayed by Excel, see ReadSheet.
func ReadRows(ctx context.Context, file fs.FileReader, sheet, idField string) ([]datagrid.Row, error) {
	data, err := file.ReadAllContext(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := ReadSheet(bytes.NewReader(data), sheet, false, idField)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file.Name(), err)
	}
	return rows, nil
}

func readSheet(f *excelize.File, sheet string, rawCellStrings bool, idField string) ([]datagrid.Row, error) {
	table, err := f.GetRows(sheet, excelize.Options{RawCellValue: rawCellStrings})
	if err != nil {
		return nil, err
	}
	rows := datagrid.TableRows(table, idField)
	if rows == nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, ErrEmptySheet)
	}
	return rows, nil
}
