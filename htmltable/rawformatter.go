package htmltable

import (
	"context"
	"html/template"

	"github.com/domonda/go-datagrid"
)

var (
	_ RawFormatter = RawFormatterFunc(nil)
	_ RawFormatter = Raw("")
)

// RawFormatter can be implemented by cell values
// to render themselves as HTML without escaping.
type RawFormatter interface {
	RawHTML(ctx context.Context, view datagrid.View, row, col int) (template.HTML, error)
}

type RawFormatterFunc func(ctx context.Context, view datagrid.View, row, col int) (template.HTML, error)

func (f RawFormatterFunc) RawHTML(ctx context.Context, view datagrid.View, row, col int) (template.HTML, error) {
	return f(ctx, view, row, col)
}

type Raw string

func (r Raw) RawHTML(ctx context.Context, view datagrid.View, row, col int) (template.HTML, error) {
	return template.HTML(r), nil //#nosec G203
}
