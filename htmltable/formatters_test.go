package htmltable

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/domonda/go-datagrid"
)

func singleCellView(value any) datagrid.View {
	return &datagrid.RowsView{
		Cols: datagrid.Columns{datagrid.NewColumn("", "value")},
		Rows: []datagrid.Row{{"value": value}},
	}
}

func TestJSONCellFormatter_FormatCell(t *testing.T) {
	tests := []struct {
		name    string
		fmt     JSONCellFormatter
		value   any
		wantStr string
		wantRaw bool
		wantErr bool
	}{
		{name: "empty nil", fmt: ``, value: nil, wantStr: ``, wantRaw: false},
		{name: "empty string", fmt: ``, value: "", wantStr: ``, wantRaw: false},
		{name: "compact string JSON", fmt: ``, value: `{"1": 1}`, wantStr: `<pre>{&#34;1&#34;:1}</pre>`, wantRaw: true},
		{name: "compact []byte JSON", fmt: ``, value: []byte(`{"1": 1}`), wantStr: `<pre>{&#34;1&#34;:1}</pre>`, wantRaw: true},
		{name: "compact RawMessage JSON", fmt: ``, value: json.RawMessage(`{"1": 1}`), wantStr: `<pre>{&#34;1&#34;:1}</pre>`, wantRaw: true},
		{name: "indented", fmt: `  `, value: `[1]`, wantStr: "<pre>[\n  1\n]</pre>", wantRaw: true},
		{name: "number marshalled", fmt: ``, value: 42, wantStr: `<pre>42</pre>`, wantRaw: true},
		{name: "invalid JSON", fmt: ``, value: `{`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			str, raw, err := tt.fmt.FormatCell(context.Background(), singleCellView(tt.value), 0, 0)
			require.Equal(t, tt.wantErr, err != nil, "err result: %v", err)
			require.Equal(t, tt.wantStr, str, "str result")
			require.Equal(t, tt.wantRaw, raw, "raw result")
		})
	}
}

func TestHTMLSpanClassCellFormatter_FormatCell(t *testing.T) {
	str, raw, err := HTMLSpanClassCellFormatter("dept").FormatCell(context.Background(), singleCellView("R&D"), 0, 0)
	require.NoError(t, err)
	require.True(t, raw)
	require.Equal(t, `<span class='dept'>R&amp;D</span>`, str)
}
