package datagrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection(t *testing.T) {
	s := NewSelection(1, 2, 2)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []any{1, 2}, s.IDs())

	assert.True(t, s.Has(1))
	assert.False(t, s.Has(3))
	assert.False(t, s.Has(int64(1)), "identifiers compare by type")

	assert.True(t, s.Add(3))
	assert.False(t, s.Add(3))
	assert.False(t, s.Add(nil))
	assert.False(t, s.Add([]int{1}), "not comparable")

	assert.True(t, s.Remove(1))
	assert.False(t, s.Remove(1))
	assert.Equal(t, []any{2, 3}, s.IDs())

	assert.True(t, s.Toggle(1))
	assert.False(t, s.Toggle(2))
	assert.Equal(t, []any{3, 1}, s.IDs())

	ids := s.IDs()
	ids[0] = "changed"
	assert.Equal(t, []any{3, 1}, s.IDs(), "IDs returns a copy")

	s.Set([]any{"a", "b"})
	assert.Equal(t, []any{"a", "b"}, s.IDs())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has("a"))
	assert.Nil(t, s.IDs())

	var nilSelection *Selection
	assert.Equal(t, 0, nilSelection.Len())
	assert.False(t, nilSelection.Has(1))
	assert.Nil(t, nilSelection.IDs())
}

func TestSelection_CoversExactly(t *testing.T) {
	rows := manyRows(3)
	tests := []struct {
		name      string
		selection *Selection
		rows      []Row
		want      bool
	}{
		{name: "all", selection: NewSelection(1, 2, 3), rows: rows, want: true},
		{name: "other order", selection: NewSelection(3, 1, 2), rows: rows, want: true},
		{name: "missing", selection: NewSelection(1, 2), rows: rows, want: false},
		{name: "extra outside rows", selection: NewSelection(1, 2, 3, 4), rows: rows, want: false},
		{name: "same count but other", selection: NewSelection(1, 2, 4), rows: rows, want: false},
		{name: "no rows", selection: NewSelection(), rows: nil, want: false},
		{name: "no rows but selected", selection: NewSelection(1), rows: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.selection.CoversExactly(tt.rows, DefaultIDField))
		})
	}
}

func TestParseSelectionMode(t *testing.T) {
	for str, want := range map[string]SelectionMode{
		"":         SelectByCheckbox,
		"checkbox": SelectByCheckbox,
		"row":      SelectByRowClick,
		"rowclick": SelectByRowClick,
	} {
		got, err := ParseSelectionMode(str)
		require.NoError(t, err, str)
		assert.Equal(t, want, got, str)
	}
	_, err := ParseSelectionMode("double-click")
	require.ErrorIs(t, err, ErrInvalidOptions)

	assert.Equal(t, "checkbox", SelectByCheckbox.String())
	assert.Equal(t, "row", SelectByRowClick.String())
}

func TestSelectionLabel(t *testing.T) {
	assert.Equal(t, "0 rows selected", SelectionLabel(0))
	assert.Equal(t, "1 row selected", SelectionLabel(1))
	assert.Equal(t, "3 rows selected", SelectionLabel(3))
}

func TestRow(t *testing.T) {
	row := Row{"id": 7, "key": "x", "list": []int{1}, "nested": map[string]any{"a": 1}}

	id, ok := row.ID("")
	assert.True(t, ok)
	assert.Equal(t, 7, id)
	id, ok = row.ID("key")
	assert.True(t, ok)
	assert.Equal(t, "x", id)
	_, ok = row.ID("list")
	assert.False(t, ok, "not comparable")
	_, ok = row.ID("missing")
	assert.False(t, ok)

	clone := row.Clone()
	clone["nested"].(map[string]any)["a"] = 2
	assert.Equal(t, 1, row["nested"].(map[string]any)["a"])

	assert.Equal(t, []any{"x"}, RowIDs([]Row{row, {"id": 1}}, "key"))
}

func TestColumns(t *testing.T) {
	row := employees()[0]
	cols := employeeColumns()
	assert.Equal(t, "First Name", cols.Names()[0])
	assert.Equal(t, "John", cols.Value(0, row))
	assert.Equal(t, "Harrington", cols.Value(5, row))
	assert.Nil(t, cols.Value(-1, row))
	assert.Nil(t, cols.Value(len(cols), row))

	assert.Equal(t, "Harrington", DottedFieldSelector("address.street")(row))
	assert.Nil(t, FieldSelector("firstName", "x")(row), "path through non map")
	assert.Nil(t, FieldSelector("missing", "x")(row))

	require.ErrorIs(t, Columns{}.Validate(), ErrNoColumns)
	require.ErrorIs(t, Columns{{Name: "x"}}.Validate(), ErrInvalidColumn)
	require.NoError(t, cols.Validate())
}
