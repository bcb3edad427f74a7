package datagrid

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// SortOrder is the direction of a sorted column.
type SortOrder int

const (
	// SortNone means no column is sorted.
	SortNone SortOrder = iota
	// SortAscending sorts in natural increasing order.
	SortAscending
	// SortDescending sorts in natural decreasing order.
	SortDescending
)

// String returns "none", "ascending" or "descending",
// the values used for the aria-sort attribute.
func (o SortOrder) String() string {
	switch o {
	case SortNone:
		return "none"
	case SortAscending:
		return "ascending"
	case SortDescending:
		return "descending"
	default:
		return fmt.Sprintf("SortOrder(%d)", int(o))
	}
}

// ParseSortOrder parses the result of SortOrder.String
// case insensitively. The short forms "asc" and "desc"
// and the empty string for SortNone are accepted too.
func ParseSortOrder(str string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "", "none":
		return SortNone, nil
	case "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	}
	return SortNone, fmt.Errorf("invalid sort order %q", str)
}

func (o SortOrder) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *SortOrder) UnmarshalText(text []byte) error {
	parsed, err := ParseSortOrder(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// SortSpec is the sorted column index and its direction.
// Column and Order are either both set or both unset.
type SortSpec struct {
	Column int
	Order  SortOrder
}

// Unsorted returns the SortSpec of an unsorted grid.
func Unsorted() SortSpec {
	return SortSpec{Column: -1, Order: SortNone}
}

// IsSorted returns true if a column and a direction are set.
func (s SortSpec) IsSorted() bool {
	return s.Column >= 0 && s.Order != SortNone
}

// Valid returns true if column and order are both set
// or both unset.
func (s SortSpec) Valid() bool {
	return (s.Column >= 0) == (s.Order != SortNone)
}

// OrderOf returns the sort order of column col,
// SortNone if col is not the sorted column.
func (s SortSpec) OrderOf(col int) SortOrder {
	if !s.IsSorted() || s.Column != col {
		return SortNone
	}
	return s.Order
}

// Toggle returns the SortSpec after a click on the header of column col.
// A column that is not sorted yet starts ascending,
// clicking the sorted column switches between
// ascending and descending. A sorted grid never
// becomes unsorted by clicking.
func (s SortSpec) Toggle(col int) SortSpec {
	if s.IsSorted() && s.Column == col && s.Order == SortAscending {
		return SortSpec{Column: col, Order: SortDescending}
	}
	return SortSpec{Column: col, Order: SortAscending}
}

// NextOrderOf returns the order a click on the header
// of column col would result in.
func (s SortSpec) NextOrderOf(col int) SortOrder {
	return s.Toggle(col).Order
}

func (s SortSpec) String() string {
	if !s.IsSorted() {
		return "unsorted"
	}
	return fmt.Sprintf("column %d %s", s.Column, s.Order)
}

// Sorter orders rows by the values of one column.
type Sorter struct {
	// DateParser decides which values are compared as dates.
	// If nil, no values are compared as dates.
	DateParser DateParser
}

// NewSorter returns a Sorter using a StringDateParser.
func NewSorter() *Sorter {
	return &Sorter{DateParser: NewStringDateParser()}
}

type sortKey struct {
	value  any
	date   time.Time
	isDate bool
}

// Sort returns a sorted copy of rows.
// For an unsorted spec the copy keeps the input order.
// The sort is stable, so rows with equal values keep
// their relative order in both directions.
func (s *Sorter) Sort(rows []Row, columns Columns, spec SortSpec) ([]Row, error) {
	return s.SortSource(rows, nil, columns, spec)
}

// SortSource sorts rows like Sort, with source holding
// the rows before normalization at the same indices.
// A time.Time selected from a source row is compared as that date,
// independent of the layout its normalized string was formatted with.
// source is ignored if its length differs from rows.
func (s *Sorter) SortSource(rows, source []Row, columns Columns, spec SortSpec) ([]Row, error) {
	sorted := slices.Clone(rows)
	if !spec.IsSorted() {
		return sorted, nil
	}
	if spec.Column >= len(columns) {
		return nil, fmt.Errorf("%w: index %d of %d columns", ErrInvalidSortColumn, spec.Column, len(columns))
	}
	if len(source) != len(rows) {
		source = nil
	}

	type keyedRow struct {
		row Row
		key sortKey
	}
	keyed := make([]keyedRow, len(rows))
	for i, row := range rows {
		key := s.sortKey(columns.Value(spec.Column, row))
		if source != nil {
			if t, ok := timeValue(columns.Value(spec.Column, source[i])); ok {
				key.date, key.isDate = t, true
			}
		}
		keyed[i] = keyedRow{row: row, key: key}
	}
	slices.SortStableFunc(keyed, func(a, b keyedRow) int {
		c := compareKeys(a.key, b.key)
		if spec.Order == SortDescending {
			return -c
		}
		return c
	})
	for i := range keyed {
		sorted[i] = keyed[i].row
	}
	return sorted, nil
}

func timeValue(val any) (time.Time, bool) {
	switch t := val.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t != nil {
			return *t, true
		}
	}
	return time.Time{}, false
}

func (s *Sorter) sortKey(val any) sortKey {
	if isFalsy(val) {
		val = ""
	}
	key := sortKey{value: val}
	if s.DateParser != nil && IsString(val) {
		if t, err := s.DateParser.ParseDate(ValueString(val)); err == nil {
			key.date = t
			key.isDate = true
		}
	}
	return key
}

// Compare compares two selected column values the way the Sorter does,
// returning -1, 0 or +1 for ascending order.
// Falsy values (nil, "", 0, false) compare as the empty string.
// If both values are strings accepted by dateParser they are compared as dates.
func Compare(a, b any, dateParser DateParser) int {
	s := Sorter{DateParser: dateParser}
	return compareKeys(s.sortKey(a), s.sortKey(b))
}

func compareKeys(a, b sortKey) int {
	if a.isDate && b.isDate {
		return a.date.Compare(b.date)
	}
	return compareValues(a.value, b.value)
}

// compareValues orders numbers numerically and strings
// lexicographically. When a number is compared with a string
// the string is converted to a number, strings that are
// no numbers compare equal to every number.
func compareValues(a, b any) int {
	af, aIsNum := NumberValue(a)
	bf, bIsNum := NumberValue(b)
	aIsStr := IsString(a)
	bIsStr := IsString(b)

	switch {
	case aIsNum && bIsNum:
		return compareFloats(af, bf)
	case aIsNum && bIsStr:
		return compareFloats(af, stringToNumber(ValueString(b)))
	case aIsStr && bIsNum:
		return compareFloats(stringToNumber(ValueString(a)), bf)
	}
	return strings.Compare(ValueString(a), ValueString(b))
}

func compareFloats(a, b float64) int {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0
	}
	return cmp.Compare(a, b)
}

func stringToNumber(str string) float64 {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
