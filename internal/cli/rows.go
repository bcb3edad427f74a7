package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	fs "github.com/ungerik/go-fs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	_ "modernc.org/sqlite"

	datagrid "github.com/domonda/go-datagrid"
	"github.com/domonda/go-datagrid/csvtable"
	"github.com/domonda/go-datagrid/exceltable"
	"github.com/domonda/go-datagrid/internal/config"
	"github.com/domonda/go-datagrid/sqltable"
)

// LoadRows reads the configured rows file
// choosing the format by the file extension:
//
//	.csv, .tsv, .txt             CSV with detected format
//	.xlsx, .xlsm, .xltm, .xltx   Excel sheet, see config sheet
//	.db, .sqlite, .sqlite3       SQLite database, see config query
//	everything else              JSON array of objects
func LoadRows(ctx context.Context, cfg *config.Config) ([]datagrid.Row, error) {
	if cfg.Rows == "" {
		return nil, errors.New("no rows file, set --rows or rows in datagrid.yaml")
	}
	file := fs.File(cfg.Rows)
	switch strings.ToLower(filepath.Ext(cfg.Rows)) {
	case ".csv", ".tsv", ".txt":
		rows, _, err := csvtable.ReadRows(ctx, file, nil, cfg.IDField)
		return rows, err
	case ".xlsx", ".xlsm", ".xltm", ".xltx":
		return exceltable.ReadRows(ctx, file, cfg.Sheet, cfg.IDField)
	case ".db", ".sqlite", ".sqlite3":
		return loadSQLiteRows(ctx, cfg)
	}
	return LoadJSONRows(ctx, file)
}

func loadSQLiteRows(ctx context.Context, cfg *config.Config) (rows []datagrid.Row, err error) {
	if cfg.Query == "" {
		return nil, fmt.Errorf("SQLite rows file %s needs a query, set --query or query in datagrid.yaml", cfg.Rows)
	}
	if !fs.File(cfg.Rows).Exists() {
		return nil, fmt.Errorf("SQLite rows file %s does not exist", cfg.Rows)
	}
	db, err := sql.Open("sqlite", cfg.Rows+"?mode=ro")
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()
	return sqltable.QueryRows(ctx, db, cfg.IDField, cfg.Query)
}

// LoadJSONRows reads a JSON array of objects from file.
// JSON numbers become float64 values.
func LoadJSONRows(ctx context.Context, file fs.FileReader) ([]datagrid.Row, error) {
	data, err := file.ReadAllContext(ctx)
	if err != nil {
		return nil, err
	}
	var rows []datagrid.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("rows file %s: %w", file.Name(), err)
	}
	return rows, nil
}

// InferColumns returns a column for every field of rows
// except idField, sorted by field path.
// Fields holding objects are flattened one level
// into dotted paths like "address.city".
func InferColumns(rows []datagrid.Row, idField string) datagrid.Columns {
	// dotted path for sorting and titles, field names for selection
	fields := make(map[string][]string)
	for _, row := range rows {
		for key, val := range row {
			if key == idField {
				continue
			}
			if nested, ok := val.(map[string]any); ok {
				for nestedKey := range nested {
					fields[key+"."+nestedKey] = []string{key, nestedKey}
				}
				continue
			}
			fields[key] = []string{key}
		}
	}
	paths := make([]string, 0, len(fields))
	for path := range fields {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	title := cases.Title(language.Und, cases.NoLower)
	cols := make(datagrid.Columns, len(paths))
	for i, path := range paths {
		name := title.String(datagrid.SpacePascalCase(strings.ReplaceAll(path, ".", " ")))
		cols[i] = datagrid.Column{Name: name, Selector: datagrid.FieldSelector(fields[path]...)}
	}
	return cols
}
