package datagrid

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"
)

// DefaultDateLayout formats dates as day/month/year
// without leading zeros.
const DefaultDateLayout = "2/1/2006"

var (
	typeOfTime    = reflect.TypeOf(time.Time{})
	typeOfTimePtr = reflect.TypeOf((*time.Time)(nil))
)

// Normalizer converts arbitrary field values into
// values that can be rendered and compared:
// strings and numbers stay as they are,
// dates are formatted with DateLayout,
// slices and arrays become comma joined strings
// and one level of nested maps is normalized field by field.
// Every other value is replaced with DataError.
//
// A Normalizer never mutates the rows passed to it.
type Normalizer struct {
	// DateLayout is the time layout for time.Time values,
	// DefaultDateLayout is used if empty.
	DateLayout string

	// Location the dates are formatted in,
	// time.Local is used if nil.
	Location *time.Location

	// Formatters are consulted before the built-in rules.
	// A formatter must return a string or a number,
	// other results are replaced with DataError.
	Formatters *TypeFormatters

	// Logger receives a debug record for every
	// value replaced with DataError. May be nil.
	Logger *slog.Logger
}

// NewNormalizer returns a Normalizer with default settings.
func NewNormalizer() *Normalizer {
	return &Normalizer{DateLayout: DefaultDateLayout}
}

// Normalize returns normalized copies of rows.
func (n *Normalizer) Normalize(rows []Row) []Row {
	normalized := make([]Row, len(rows))
	for i, row := range rows {
		normalized[i] = n.NormalizeRow(row)
	}
	return normalized
}

// NormalizeRow returns a normalized copy of row.
func (n *Normalizer) NormalizeRow(row Row) Row {
	result := make(Row, len(row))
	for field, val := range row {
		switch nested := val.(type) {
		case Row:
			result[field] = n.normalizeNested(field, nested)
		case map[string]any:
			result[field] = map[string]any(n.normalizeNested(field, nested))
		default:
			result[field] = n.normalizeValue(field, val)
		}
	}
	return result
}

func (n *Normalizer) normalizeNested(field string, nested map[string]any) Row {
	result := make(Row, len(nested))
	for key, val := range nested {
		result[key] = n.normalizeValue(field+"."+key, val)
	}
	return result
}

// NormalizeValue applies the rules for a single value
// without descending into nested maps.
func (n *Normalizer) NormalizeValue(val any) any {
	return n.normalizeValue("", val)
}

func (n *Normalizer) normalizeValue(field string, val any) any {
	v := reflect.ValueOf(val)

	if n.Formatters != nil && v.IsValid() {
		formatted, err := n.Formatters.FormatValue(v)
		switch {
		case err == nil && (IsString(formatted) || IsNumber(formatted)):
			return formatted
		case err == nil:
			return n.dataError(field, val, "formatter result is neither string nor number")
		case !errors.Is(err, errors.ErrUnsupported):
			return n.dataError(field, val, err.Error())
		}
	}

	if valueIsNil(v) {
		return n.dataError(field, val, "nil value")
	}
	switch {
	case v.Type() == typeOfTime:
		return n.formatDate(v.Interface().(time.Time))
	case v.Type() == typeOfTimePtr:
		return n.formatDate(*v.Interface().(*time.Time))
	}
	switch v.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return val
	case reflect.Slice, reflect.Array:
		return joinList(v)
	}
	return n.dataError(field, val, "unsupported type "+v.Type().String())
}

func (n *Normalizer) formatDate(t time.Time) string {
	layout := n.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}
	if n.Location != nil {
		t = t.In(n.Location)
	} else {
		t = t.Local()
	}
	return t.Format(layout)
}

func (n *Normalizer) dataError(field string, val any, reason string) string {
	if n.Logger != nil {
		n.Logger.Debug("replaced value with data error",
			slog.String("field", field),
			slog.String("type", fmt.Sprintf("%T", val)),
			slog.String("reason", reason),
		)
	}
	return DataError
}
