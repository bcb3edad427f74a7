package csv

import (
	"context"
	"strings"

	"github.com/domonda/go-datagrid"
)

// RawFormatter can be implemented by cell values
// to write themselves without quoting or escaping.
type RawFormatter interface {
	RawCSV(ctx context.Context, view datagrid.View, row, col int) (string, error)
}

type RawFormatterFunc func(ctx context.Context, view datagrid.View, row, col int) (string, error)

func (f RawFormatterFunc) RawCSV(ctx context.Context, view datagrid.View, row, col int) (string, error) {
	return f(ctx, view, row, col)
}

func EscapeQuotes(val string) string {
	return strings.ReplaceAll(val, `"`, `""`)
}
