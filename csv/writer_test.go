package csv

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/domonda/go-datagrid"
)

func testView() datagrid.View {
	return &datagrid.RowsView{
		Tit: "employees",
		Cols: datagrid.Columns{
			datagrid.NewColumn("First Name", "firstName"),
			datagrid.NewColumn("City", "address", "city"),
			datagrid.NewColumn("Age", "age"),
		},
		Rows: []datagrid.Row{
			{"firstName": "John", "address": map[string]any{"city": "Paris"}, "age": 38},
			{"firstName": `Harry "H"`, "address": map[string]any{"city": "New York; NY"}, "age": 1.5},
			{"firstName": "Jürgen", "age": nil},
		},
	}
}

func TestWriter_WriteView(t *testing.T) {
	tests := []struct {
		name           string
		writer         *Writer
		writeHeaderRow bool
		wantDest       string
	}{
		{
			name:           "default with header",
			writer:         NewWriter(),
			writeHeaderRow: true,
			wantDest: "First Name;City;Age\r\n" +
				"John;Paris;38\r\n" +
				`"Harry ""H""";"New York; NY";1.5` + "\r\n" +
				"Jürgen;;\r\n",
		},
		{
			name:     "comma delimiter, nil value, quote empty",
			writer:   NewWriter().WithDelimiter(',').WithNilValue("-").WithNewLine("\n").WithQuoteEmptyFields(true),
			wantDest: "John,Paris,38\n" + `"Harry ""H""",New York; NY,1.5` + "\n" + "Jürgen,-,-\n",
		},
		{
			name:     "quote all",
			writer:   NewWriter().WithQuoteAllFields(true).WithNewLine("\n"),
			wantDest: `"John";"Paris";"38"` + "\n" + `"Harry ""H""";"New York; NY";"1.5"` + "\n" + `"Jürgen";"";""` + "\n",
		},
		{
			name:     "column formatter",
			writer:   NewWriter().WithNewLine("\n").WithColumnFormatter(2, datagrid.PrintfCellFormatter("%v years")),
			wantDest: "John;Paris;38 years\n" + `"Harry ""H""";"New York; NY";1.5 years` + "\n" + "Jürgen;;<nil> years\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dest bytes.Buffer
			err := tt.writer.WriteView(context.Background(), &dest, testView(), tt.writeHeaderRow)
			require.NoError(t, err)
			require.Equal(t, tt.wantDest, dest.String())
		})
	}
}

func TestWriter_WithEncoder(t *testing.T) {
	var dest bytes.Buffer
	err := NewWriter().
		WithNewLine("\n").
		WithEncoder(EncodingTransformer(charmap.Windows1252)).
		WriteView(context.Background(), &dest, testView(), false)
	require.NoError(t, err)
	require.Contains(t, dest.Bytes(), byte(0xFC), "ü encoded as single Windows-1252 byte")
	require.NotContains(t, dest.String(), "ü")
}

func TestWriter_WriteView_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var dest bytes.Buffer
	err := NewWriter().WriteView(ctx, &dest, testView(), true)
	require.ErrorIs(t, err, context.Canceled)
}

func ExampleWriter_WriteGrid() {
	rows := []datagrid.Row{
		{"id": 1, "name": "John Dupont", "department": "Sales"},
		{"id": 2, "name": "Harry Doe", "department": "Marketing"},
		{"id": 3, "name": "John Big", "department": "Sales"},
	}
	grid, err := datagrid.New(rows,
		datagrid.Columns{
			datagrid.NewColumn("Name", "name"),
			datagrid.NewColumn("Department", "department"),
		},
		datagrid.WithID("employees"),
	)
	if err != nil {
		panic(err)
	}
	grid.SetFilter("sales")

	err = NewWriter().WithNewLine("\n").WriteGrid(context.Background(), os.Stdout, grid, false, true)
	if err != nil {
		panic(err)
	}

	// Output:
	// Name;Department
	// John Dupont;Sales
	// John Big;Sales
}
