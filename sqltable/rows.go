// Package sqltable reads the result sets of SQL queries as grid rows.
package sqltable

import (
	"context"
	"database/sql"
)

var (
	_ Rows    = &sql.Rows{}
	_ Queryer = &sql.DB{}
	_ Queryer = &sql.Tx{}
	_ Queryer = &sql.Conn{}
)

// Rows is the part of *sql.Rows needed to read a result set.
type Rows interface {
	Columns() ([]string, error)
	Scan(dest ...any) error
	Close() error
	Next() bool
	Err() error
}

// Queryer is implemented by *sql.DB, *sql.Tx and *sql.Conn.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}
