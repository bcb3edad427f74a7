package datagrid

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAddress struct {
	Street  string `json:"street"`
	ZipCode string `json:"zipCode" col:"Zip"`
}

type testEmployee struct {
	ID          int          `json:"id" col:"-"`
	FirstName   string       `json:"firstName"`
	DateOfBirth time.Time    `json:"dateOfBirth"`
	Address     *testAddress `json:"address"`
	Secret      string       `json:"-"`
	hidden      string
}

func TestStructFieldNaming_Names(t *testing.T) {
	type StructWithFloat struct {
		Float float64 `col:"float"`
	}
	tests := []struct {
		name   string
		naming *StructFieldNaming
		strct  any
		want   []string
	}{
		{name: "empty struct, nil naming", naming: nil, strct: struct{}{}, want: []string{}},
		{
			name:   "embedded and nested, nil naming",
			naming: nil,
			strct: struct {
				Int int
				StructWithFloat
				Struct struct{ Sub bool }
				hidden string
			}{},
			want: []string{"Int", "Float", "Struct"},
		},
		{
			name:   "titles",
			naming: &DefaultColumnTitleNaming,
			strct: struct {
				Int        int  `col:"Integer"`
				Bool       bool `col:"-"`
				hidden     string
				HelloWorld string
				StructWithFloat
			}{},
			want: []string{"Integer", "Hello World", "float"},
		},
		{
			name:   "keys from type",
			naming: &DefaultStructFieldNaming,
			strct:  reflect.TypeFor[*testEmployee](),
			want:   []string{"id", "firstName", "dateOfBirth", "address"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.naming.Names(tt.strct))
		})
	}
}

func TestSpacePascalCase(t *testing.T) {
	for name, want := range map[string]string{
		"":            "",
		"HelloWorld":  "Hello World",
		"DateOfBirth": "Date Of Birth",
		"ID":          "ID",
		"UserID":      "User ID",
		"zipCode":     "zip Code",
		"hello_world": "hello world",
		"_Leading":    "Leading",
	} {
		assert.Equal(t, want, SpacePascalCase(name), name)
	}
}

func TestStructRows(t *testing.T) {
	birth := time.Date(1985, 12, 1, 0, 0, 0, 0, time.UTC)
	structs := []*testEmployee{
		{ID: 1, FirstName: "John", DateOfBirth: birth, Address: &testAddress{Street: "Harrington", ZipCode: "50250"}, Secret: "x"},
		nil,
		{ID: 2, FirstName: "Harry"},
	}

	rows, err := StructRows(structs, &DefaultStructFieldNaming)
	require.NoError(t, err)
	require.Equal(t, []Row{
		{"id": 1, "firstName": "John", "dateOfBirth": birth, "address": Row{"street": "Harrington", "zipCode": "50250"}},
		{"id": 2, "firstName": "Harry", "dateOfBirth": time.Time{}, "address": nil},
	}, rows)

	_, err = StructRows([]int{1}, nil)
	require.Error(t, err)
	_, err = StructRows(testEmployee{}, nil)
	require.Error(t, err)

	cols := StructColumns(reflect.TypeFor[testEmployee](), &DefaultStructFieldNaming, &DefaultColumnTitleNaming)
	require.NoError(t, cols.Validate())
	assert.Equal(t, []string{"First Name", "Date Of Birth", "Street", "Zip"}, cols.Names())
	assert.Equal(t, "Harrington", cols.Value(2, rows[0]))
	assert.Equal(t, "50250", cols.Value(3, rows[0]))
	assert.Nil(t, cols.Value(2, rows[1]))

	normalized := (&Normalizer{Location: time.UTC}).Normalize(rows)
	assert.Equal(t, "1/12/1985", cols.Value(1, normalized[0]))
}
