package datagrid

import (
	"fmt"
	"go/token"
	"reflect"
)

// StructFieldTypes returns the exported fields of a struct type
// including the inlined fields of any anonymously embedded structs.
func StructFieldTypes(structType reflect.Type) (fields []reflect.StructField) {
	if structType.Kind() == reflect.Pointer {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return nil
	}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		switch {
		case field.Anonymous:
			fields = append(fields, StructFieldTypes(field.Type)...)
		case token.IsExported(field.Name):
			fields = append(fields, field)
		}
	}
	return fields
}

// StructFieldValues returns the reflect.Value of exported struct fields
// including the inlined fields of any anonymously embedded structs.
func StructFieldValues(structValue reflect.Value) (values []reflect.Value) {
	if structValue.Kind() == reflect.Pointer {
		structValue = structValue.Elem()
	}
	structType := structValue.Type()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		switch {
		case field.Anonymous:
			values = append(values, StructFieldValues(structValue.Field(i))...)
		case token.IsExported(field.Name):
			values = append(values, structValue.Field(i))
		}
	}
	return values
}

// StructRows converts a slice or array of structs
// or struct pointers into rows keyed by naming.
// Fields of struct type other than time.Time become
// nested rows, nil pointers become nil values.
func StructRows(structs any, naming *StructFieldNaming) ([]Row, error) {
	v := reflect.ValueOf(structs)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected slice or array of structs, got %T", structs)
	}
	elemType := v.Type().Elem()
	if elemType.Kind() == reflect.Pointer {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected slice or array of structs, got %T", structs)
	}
	rows := make([]Row, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if elem.Kind() == reflect.Pointer {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}
		rows = append(rows, structRow(elem, naming, true))
	}
	return rows, nil
}

func structRow(strct reflect.Value, naming *StructFieldNaming, nest bool) Row {
	fields := StructFieldTypes(strct.Type())
	values := StructFieldValues(strct)
	row := make(Row, len(fields))
	for i, field := range fields {
		key, ok := naming.FieldName(field)
		if !ok {
			continue
		}
		row[key] = structFieldValue(values[i], naming, nest)
	}
	return row
}

func structFieldValue(val reflect.Value, naming *StructFieldNaming, nest bool) any {
	if valueIsNil(val) {
		return nil
	}
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	if nest && val.Kind() == reflect.Struct && val.Type() != typeOfTime {
		return structRow(val, naming, false)
	}
	return val.Interface()
}

// StructColumns returns one column per not ignored field of structType
// selecting the row values as keyed by StructRows with keyNaming.
// Column names are taken from titleNaming.
// Nested struct fields are flattened into one column per nested field,
// named by the nested field alone.
func StructColumns(structType reflect.Type, keyNaming, titleNaming *StructFieldNaming) Columns {
	var cols Columns
	for _, field := range StructFieldTypes(structType) {
		key, ok := keyNaming.FieldName(field)
		if !ok {
			continue
		}
		title, ok := titleNaming.FieldName(field)
		if !ok {
			continue
		}
		fieldType := field.Type
		if fieldType.Kind() == reflect.Pointer {
			fieldType = fieldType.Elem()
		}
		if fieldType.Kind() == reflect.Struct && fieldType != typeOfTime {
			for _, nested := range StructFieldTypes(fieldType) {
				nestedKey, ok := keyNaming.FieldName(nested)
				if !ok {
					continue
				}
				nestedTitle, ok := titleNaming.FieldName(nested)
				if !ok {
					continue
				}
				cols = append(cols, NewColumn(nestedTitle, key, nestedKey))
			}
			continue
		}
		cols = append(cols, NewColumn(title, key))
	}
	return cols
}
