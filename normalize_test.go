package datagrid

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/domonda/go-datagrid/internal/testutil"
)

func TestNormalizer_NormalizeValue(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	n := &Normalizer{Location: time.UTC}
	date := time.Date(1985, 12, 1, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		normalizer *Normalizer
		val        any
		want       any
	}{
		{name: "string", val: "John", want: "John"},
		{name: "empty string", val: "", want: ""},
		{name: "int", val: 50250, want: 50250},
		{name: "float", val: 1.5, want: 1.5},
		{name: "zero", val: 0, want: 0},
		{name: "time", val: date, want: "1/12/1985"},
		{name: "time pointer", val: &date, want: "1/12/1985"},
		{name: "time in location", normalizer: &Normalizer{Location: berlin}, val: date, want: "2/12/1985"},
		{name: "time custom layout", normalizer: &Normalizer{DateLayout: time.DateOnly, Location: time.UTC}, val: date, want: "1985-12-01"},
		{name: "string slice", val: []string{"a", "b"}, want: "a,b"},
		{name: "int slice", val: []int{1, 2}, want: "1,2"},
		{name: "empty slice", val: []string{}, want: ""},
		{name: "bool", val: true, want: DataError},
		{name: "false", val: false, want: DataError},
		{name: "nil", val: nil, want: DataError},
		{name: "nil pointer", val: (*time.Time)(nil), want: DataError},
		{name: "struct", val: struct{}{}, want: DataError},
		{name: "func", val: func() {}, want: DataError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalizer := tt.normalizer
			if normalizer == nil {
				normalizer = n
			}
			require.Equal(t, tt.want, normalizer.NormalizeValue(tt.val))
		})
	}
}

func TestNormalizer_NormalizeRow(t *testing.T) {
	logger, rec := testutil.NewRecordingLogger(t)
	n := NewNormalizer()
	n.Logger = logger

	row := Row{
		"id":      1,
		"name":    "John",
		"active":  true,
		"tags":    []string{"a", "b"},
		"address": map[string]any{"city": "New-York", "zip": 50250, "geo": map[string]any{"lat": 1}},
		"nested":  Row{"ok": "yes", "missing": nil},
	}
	got := n.NormalizeRow(row)

	require.Equal(t, Row{
		"id":      1,
		"name":    "John",
		"active":  DataError,
		"tags":    "a,b",
		"address": map[string]any{"city": "New-York", "zip": 50250, "geo": DataError},
		"nested":  Row{"ok": "yes", "missing": DataError},
	}, got)
	require.Equal(t, true, row["active"], "input not mutated")
	require.Equal(t, map[string]any{"lat": 1}, row["address"].(map[string]any)["geo"], "input not mutated")
	require.Equal(t, 3, rec.Count("replaced value with data error"))
}

func TestNormalizer_Formatters(t *testing.T) {
	type cents int64
	n := NewNormalizer()
	n.Formatters = new(TypeFormatters).
		WithTypeFormatter(reflect.TypeFor[cents](), ValueFormatterFunc(func(val reflect.Value) (any, error) {
			return fmt.Sprintf("%.2f €", float64(val.Int())/100), nil
		})).
		WithKindFormatter(reflect.Bool, ValueFormatterFunc(func(val reflect.Value) (any, error) {
			if val.Bool() {
				return "yes", nil
			}
			return nil, errors.ErrUnsupported
		})).
		WithKindFormatter(reflect.Struct, ValueFormatterFunc(func(val reflect.Value) (any, error) {
			return []string{"not", "displayable"}, nil
		})).
		WithKindFormatter(reflect.Map, ValueFormatterFunc(func(val reflect.Value) (any, error) {
			return nil, errors.New("broken")
		}))

	require.Equal(t, "12.34 €", n.NormalizeValue(cents(1234)))
	require.Equal(t, "yes", n.NormalizeValue(true))
	require.Equal(t, DataError, n.NormalizeValue(false), "unsupported falls through to built-in rules")
	require.Equal(t, DataError, n.NormalizeValue(struct{}{}), "formatter result must be string or number")
	require.Equal(t, DataError, n.NormalizeValue(map[int]int{}), "formatter error")
	require.Equal(t, 5, n.NormalizeValue(5), "no formatter for int")
}

func TestNormalizer_Normalize(t *testing.T) {
	rows := employees()
	got := NewNormalizer().Normalize(rows)
	require.Len(t, got, len(rows))
	require.Equal(t, rows, got, "employees contain only displayable values")

	got[0]["firstName"] = "changed"
	require.Equal(t, "John", rows[0]["firstName"])

	require.Empty(t, NewNormalizer().Normalize(nil))
}
