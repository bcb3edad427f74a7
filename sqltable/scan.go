package sqltable

import (
	"context"
	"database/sql"
	"fmt"

	datagrid "github.com/domonda/go-datagrid"
)

// ScanRows reads all remaining rows of the result set keyed by column name
// and closes it.
//
// []byte values are returned as string and SQL NULL as nil.
// If the result has no idField column then the 1-based
// row number under idField becomes the identifier of every row.
func ScanRows(ctx context.Context, rows Rows, idField string) (result []datagrid.Row, err error) {
	defer rows.Close()

	if idField == "" {
		idField = datagrid.DefaultIDField
	}
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	hasID := false
	for _, col := range columns {
		if col == idField {
			hasID = true
		}
	}

	values := make([]any, len(columns))
	scanners := make([]any, len(columns))
	for i := range scanners {
		scanners[i] = valueScanner{&values[i]}
	}
	for rows.Next() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err = rows.Scan(scanners...); err != nil {
			return nil, err
		}
		row := make(datagrid.Row, len(columns)+1)
		for i, col := range columns {
			row[col] = values[i]
		}
		if !hasID {
			row[idField] = len(result) + 1
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// QueryRows executes query with args and returns its result rows,
// see ScanRows.
func QueryRows(ctx context.Context, db Queryer, idField, query string, args ...any) ([]datagrid.Row, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", query, err)
	}
	return ScanRows(ctx, rows, idField)
}

var _ sql.Scanner = valueScanner{}

type valueScanner struct {
	dest *any
}

// Scan implements the database/sql.Scanner interface.
func (s valueScanner) Scan(src any) error {
	if b, ok := src.([]byte); ok {
		// Copy because b is only valid until the next call
		src = string(b)
	}
	*s.dest = src
	return nil
}
