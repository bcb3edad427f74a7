package datagrid

import "reflect"

// DefaultIDField is the name of the Row field
// used as identifier if Options.IDField is empty.
const DefaultIDField = "id"

// Row is one record of the table, mapping field names to values.
// Values may be strings, numbers, time.Time, slices
// or one level of nested map[string]any.
type Row map[string]any

// ID returns the value of the identifier field
// and whether it can be used as a selection key,
// which requires it to be present and comparable.
func (r Row) ID(field string) (id any, ok bool) {
	if field == "" {
		field = DefaultIDField
	}
	id, ok = r[field]
	if !ok || id == nil {
		return nil, false
	}
	if !reflect.TypeOf(id).Comparable() {
		return nil, false
	}
	return id, true
}

// Clone returns a shallow copy of the row
// with nested maps copied one level deep.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	c := make(Row, len(r))
	for key, val := range r {
		switch nested := val.(type) {
		case Row:
			c[key] = nested.Clone()
		case map[string]any:
			c[key] = map[string]any(Row(nested).Clone())
		default:
			c[key] = val
		}
	}
	return c
}

// RowIDs returns the usable identifiers of rows in order.
// Rows without a usable identifier are skipped.
func RowIDs(rows []Row, idField string) []any {
	ids := make([]any, 0, len(rows))
	for _, row := range rows {
		if id, ok := row.ID(idField); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
