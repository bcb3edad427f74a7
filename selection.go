package datagrid

import (
	"fmt"
	"slices"
	"strconv"
)

// SelectionMode selects how rows are toggled.
type SelectionMode int

const (
	// SelectByCheckbox toggles a row only via its checkbox.
	SelectByCheckbox SelectionMode = iota
	// SelectByRowClick toggles a row by clicking anywhere on it.
	SelectByRowClick
)

func (m SelectionMode) String() string {
	switch m {
	case SelectByCheckbox:
		return "checkbox"
	case SelectByRowClick:
		return "row"
	default:
		return "unknown"
	}
}

// ParseSelectionMode parses "checkbox" or "row",
// the empty string is SelectByCheckbox.
func ParseSelectionMode(str string) (SelectionMode, error) {
	switch str {
	case "", "checkbox":
		return SelectByCheckbox, nil
	case "row", "rowclick", "row-click":
		return SelectByRowClick, nil
	}
	return SelectByCheckbox, fmt.Errorf("%w: selection mode %q", ErrInvalidOptions, str)
}

// Selection is a set of row identifiers.
// The order of selection is remembered so that
// IDs returns a deterministic result,
// but it carries no meaning otherwise.
//
// Identifiers of rows that are no longer displayed
// are not removed proactively.
type Selection struct {
	ids   []any
	index map[any]struct{}
}

// NewSelection returns a Selection containing ids.
func NewSelection(ids ...any) *Selection {
	s := new(Selection)
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Len returns the number of selected identifiers.
func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Has returns true if id is selected.
func (s *Selection) Has(id any) bool {
	if s == nil || s.index == nil || !isValidID(id) {
		return false
	}
	_, ok := s.index[id]
	return ok
}

// Add selects id and returns false if it was
// already selected or can not be used as identifier.
func (s *Selection) Add(id any) bool {
	if !isValidID(id) || s.Has(id) {
		return false
	}
	if s.index == nil {
		s.index = make(map[any]struct{})
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

// Remove deselects id and returns false if it was not selected.
func (s *Selection) Remove(id any) bool {
	if !s.Has(id) {
		return false
	}
	delete(s.index, id)
	s.ids = slices.DeleteFunc(s.ids, func(x any) bool { return x == id })
	return true
}

// Toggle selects id if it is not selected, otherwise deselects it.
// It returns whether id is selected afterwards.
func (s *Selection) Toggle(id any) bool {
	if s.Remove(id) {
		return false
	}
	return s.Add(id)
}

// Clear deselects everything.
func (s *Selection) Clear() {
	s.ids = nil
	s.index = nil
}

// Set replaces the selection with ids.
func (s *Selection) Set(ids []any) {
	s.Clear()
	for _, id := range ids {
		s.Add(id)
	}
}

// IDs returns a copy of the selected identifiers
// in the order they were selected.
func (s *Selection) IDs() []any {
	if s == nil {
		return nil
	}
	return slices.Clone(s.ids)
}

// CoversExactly returns true if rows is not empty,
// every row is selected and no identifier outside of rows
// is selected.
func (s *Selection) CoversExactly(rows []Row, idField string) bool {
	if len(rows) == 0 || s.Len() != len(rows) {
		return false
	}
	for _, row := range rows {
		id, ok := row.ID(idField)
		if !ok || !s.Has(id) {
			return false
		}
	}
	return true
}

func isValidID(id any) bool {
	if id == nil {
		return false
	}
	_, ok := Row{DefaultIDField: id}.ID(DefaultIDField)
	return ok
}

// Action is a bulk operation on the selected rows.
type Action struct {
	Name string
	// Icon is an optional image URL shown instead of Name.
	Icon string
	// Fn is called with the identifiers of the selected rows.
	Fn func(ids []any) error
}

// SelectionLabel returns "1 row selected" or "N rows selected".
func SelectionLabel(count int) string {
	if count == 1 {
		return "1 row selected"
	}
	return strconv.Itoa(count) + " rows selected"
}
