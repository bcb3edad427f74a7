package csvtable

import (
	"context"
	"fmt"

	fs "github.com/ungerik/go-fs"

	datagrid "github.com/domonda/go-datagrid"
)

// ReadRows reads the CSV file with detected format
// and returns its records as rows keyed by the header names.
// See datagrid.TableRows for how idField is used.
func ReadRows(ctx context.Context, file fs.FileReader, config *FormatDetectionConfig, idField string) ([]datagrid.Row, *Format, error) {
	data, err := file.ReadAllContext(ctx)
	if err != nil {
		return nil, nil, err
	}
	records, format, err := ParseDetectFormat(data, config)
	if err != nil {
		return nil, format, fmt.Errorf("parsing %s: %w", file.Name(), err)
	}
	return datagrid.TableRows(records, idField), format, nil
}
