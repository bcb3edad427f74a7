package datagrid

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// DataError is the display value the Normalizer
// substitutes for values it can not render.
const DataError = "data error"

// objectString is what a nested map renders as
// when it ends up inside a joined list.
const objectString = "[object Object]"

// NumberValue returns the value as float64
// if it has one of the integer or float kinds.
func NumberValue(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(val.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(val.Uint()), true
	case reflect.Float32, reflect.Float64:
		return val.Float(), true
	}
	return 0, false
}

// IsNumber returns true if v has an integer or float kind.
func IsNumber(v any) bool {
	_, ok := NumberValue(v)
	return ok
}

// IsString returns true if v has the string kind,
// including named string types.
func IsString(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.String
}

// ValueString converts a value to the text that is displayed
// and searched for it. nil becomes the empty string,
// slices are joined with commas and numbers are formatted
// without exponent or trailing zeros.
func ValueString(v any) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		if IsNumber(v) || IsString(v) {
			break
		}
		return x.String()
	}
	if f, ok := NumberValue(v); ok {
		return FormatNumber(f)
	}
	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.String:
		return val.String()
	case reflect.Bool:
		return strconv.FormatBool(val.Bool())
	case reflect.Slice, reflect.Array:
		if val.Kind() == reflect.Slice && val.IsNil() {
			return ""
		}
		return joinList(val)
	case reflect.Map, reflect.Struct:
		return objectString
	case reflect.Pointer, reflect.Interface:
		if val.IsNil() {
			return ""
		}
		return ValueString(val.Elem().Interface())
	}
	return fmt.Sprint(v)
}

func joinList(val reflect.Value) string {
	var b strings.Builder
	for i := 0; i < val.Len(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		elem := val.Index(i)
		if !elem.IsValid() || !elem.CanInterface() {
			continue
		}
		b.WriteString(ValueString(elem.Interface()))
	}
	return b.String()
}

// FormatNumber formats f the way it is shown in cells:
// integers without decimal point, everything else
// with the minimal number of digits.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.Abs(f) >= 1e21:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// isFalsy reports values that a selector result
// is replaced with the empty string for when sorting.
func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	if f, ok := NumberValue(v); ok {
		return f == 0 || math.IsNaN(f)
	}
	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.String:
		return val.Len() == 0
	case reflect.Bool:
		return !val.Bool()
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return val.IsNil()
	}
	return false
}

// valueIsNil returns true if val is not valid,
// or nil for a type that can be nil.
func valueIsNil(val reflect.Value) bool {
	if !val.IsValid() {
		return true
	}
	switch val.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return val.IsNil()
	}
	return false
}
