package htmltable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/domonda/go-datagrid"
)

var (
	HTMLPreCellFormatter datagrid.CellFormatterFunc = func(ctx context.Context, view datagrid.View, row, col int) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(datagrid.ValueString(view.Cell(row, col)))
		return "<pre>" + value + "</pre>", true, nil
	}

	HTMLCodeCellFormatter datagrid.CellFormatterFunc = func(ctx context.Context, view datagrid.View, row, col int) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(datagrid.ValueString(view.Cell(row, col)))
		return "<code>" + value + "</code>", true, nil
	}

	// ValueAsHTMLAnchorCellFormatter escapes the cell value for HTML
	// and returns an HTML anchor element with the
	// value as id and inner text.
	ValueAsHTMLAnchorCellFormatter datagrid.CellFormatterFunc = func(ctx context.Context, view datagrid.View, row, col int) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(datagrid.ValueString(view.Cell(row, col)))
		return fmt.Sprintf("<a id='%[1]s'>%[1]s</a>", value), true, nil
	}

	_ datagrid.CellFormatter = JSONCellFormatter("")
	_ datagrid.CellFormatter = HTMLSpanClassCellFormatter("")
)

// JSONCellFormatter renders string or []byte cells holding JSON
// indented with the underlying string within a pre element,
// an empty indent results in compact JSON.
// Empty cells are returned as empty non raw strings.
type JSONCellFormatter string

func (indent JSONCellFormatter) FormatCell(ctx context.Context, view datagrid.View, row, col int) (str string, raw bool, err error) {
	var src []byte
	switch v := view.Cell(row, col).(type) {
	case nil:
		return "", false, nil
	case string:
		src = []byte(v)
	case []byte:
		src = v
	case json.RawMessage:
		src = v
	default:
		src, err = json.Marshal(v)
		if err != nil {
			return "", false, err
		}
	}
	if len(src) == 0 {
		return "", false, nil
	}
	var buf bytes.Buffer
	if indent == "" {
		err = json.Compact(&buf, src)
	} else {
		err = json.Indent(&buf, src, "", string(indent))
	}
	if err != nil {
		return "", false, err
	}
	return "<pre>" + template.HTMLEscapeString(buf.String()) + "</pre>", true, nil
}

// HTMLSpanClassCellFormatter formats the cell value within an HTML span element
// with the class of the underlying string value.
type HTMLSpanClassCellFormatter string

func (class HTMLSpanClassCellFormatter) FormatCell(ctx context.Context, view datagrid.View, row, col int) (str string, raw bool, err error) {
	text := template.HTMLEscapeString(datagrid.ValueString(view.Cell(row, col)))
	return fmt.Sprintf("<span class='%s'>%s</span>", template.HTMLEscapeString(string(class)), text), true, nil
}
