package datagrid

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortSpec_Toggle(t *testing.T) {
	tests := []struct {
		name string
		spec SortSpec
		col  int
		want SortSpec
	}{
		{name: "unsorted", spec: Unsorted(), col: 2, want: SortSpec{Column: 2, Order: SortAscending}},
		{name: "ascending same", spec: SortSpec{Column: 2, Order: SortAscending}, col: 2, want: SortSpec{Column: 2, Order: SortDescending}},
		{name: "descending same", spec: SortSpec{Column: 2, Order: SortDescending}, col: 2, want: SortSpec{Column: 2, Order: SortAscending}},
		{name: "ascending other", spec: SortSpec{Column: 2, Order: SortAscending}, col: 0, want: SortSpec{Column: 0, Order: SortAscending}},
		{name: "descending other", spec: SortSpec{Column: 2, Order: SortDescending}, col: 0, want: SortSpec{Column: 0, Order: SortAscending}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.spec.Toggle(tt.col)
			require.Equal(t, tt.want, got)
			require.True(t, got.IsSorted())
			require.Equal(t, tt.want.Order, tt.spec.NextOrderOf(tt.col))
		})
	}
}

func TestSortSpec(t *testing.T) {
	require.False(t, Unsorted().IsSorted())
	require.True(t, Unsorted().Valid())
	require.False(t, SortSpec{Column: 1}.Valid())
	require.False(t, SortSpec{Column: -1, Order: SortAscending}.Valid())
	require.Equal(t, SortNone, SortSpec{Column: 1, Order: SortDescending}.OrderOf(0))
	require.Equal(t, SortDescending, SortSpec{Column: 1, Order: SortDescending}.OrderOf(1))
	require.Equal(t, "unsorted", Unsorted().String())
	require.Equal(t, "column 3 descending", SortSpec{Column: 3, Order: SortDescending}.String())
}

func TestParseSortOrder(t *testing.T) {
	for str, want := range map[string]SortOrder{
		"":           SortNone,
		"none":       SortNone,
		"asc":        SortAscending,
		"Ascending":  SortAscending,
		" DESC ":     SortDescending,
		"descending": SortDescending,
	} {
		got, err := ParseSortOrder(str)
		require.NoError(t, err, str)
		require.Equal(t, want, got, str)
	}
	_, err := ParseSortOrder("up")
	require.Error(t, err)

	var order SortOrder
	require.NoError(t, order.UnmarshalText([]byte("desc")))
	require.Equal(t, SortDescending, order)
	text, err := order.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "descending", string(text))
}

func TestCompare(t *testing.T) {
	parser := NewStringDateParser()
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{name: "strings", a: "Doe", b: "Dupont", want: -1},
		{name: "strings equal", a: "John", b: "John", want: 0},
		{name: "case sensitive", a: "a", b: "B", want: 1},
		{name: "numbers", a: 9, b: 10, want: -1},
		{name: "mixed number types", a: 2.5, b: int64(2), want: 1},
		{name: "dates", a: "01/12/1985", b: "01/12/1975", want: 1},
		{name: "dates across years", a: "12/31/2017", b: "01/02/2018", want: -1},
		{name: "date and text", a: "01/12/1985", b: "Sales", want: -1},
		{name: "nil first", a: nil, b: "a", want: -1},
		{name: "nil and empty", a: nil, b: "", want: 0},
		{name: "zero is falsy", a: 0, b: "", want: 0},
		{name: "number and numeric string", a: 5, b: "10", want: -1},
		{name: "number and text", a: 5, b: "abc", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Compare(tt.a, tt.b, parser))
			require.Equal(t, -tt.want, Compare(tt.b, tt.a, parser), "antisymmetric")
		})
	}

	require.Equal(t, 1, Compare("12/31/2017", "01/02/2018", nil), "without parser dates are strings")
}

func TestSorter_Sort(t *testing.T) {
	s := NewSorter()
	rows := employees()
	cols := employeeColumns()

	t.Run("unsorted keeps order", func(t *testing.T) {
		got, err := s.Sort(rows, cols, Unsorted())
		require.NoError(t, err)
		assert.Equal(t, []any{1, 2, 3, 4}, ids(got))
	})

	t.Run("invalid column", func(t *testing.T) {
		_, err := s.Sort(rows, cols, SortSpec{Column: len(cols), Order: SortAscending})
		require.ErrorIs(t, err, ErrInvalidSortColumn)
	})

	t.Run("input untouched", func(t *testing.T) {
		_, err := s.Sort(rows, cols, SortSpec{Column: 0, Order: SortAscending})
		require.NoError(t, err)
		assert.Equal(t, []any{1, 2, 3, 4}, ids(rows))
	})

	t.Run("nested column", func(t *testing.T) {
		got, err := s.Sort(rows, cols, SortSpec{Column: 5, Order: SortAscending})
		require.NoError(t, err)
		assert.Equal(t, []any{4, 1, 2, 3}, ids(got), "Clue, Harrington, Harrington, Wellington")
	})

	t.Run("missing values first", func(t *testing.T) {
		rows := []Row{{"id": 1, "v": "b"}, {"id": 2}, {"id": 3, "v": "a"}, {"id": 4, "v": ""}}
		got, err := s.Sort(rows, Columns{NewColumn("V", "v")}, SortSpec{Column: 0, Order: SortAscending})
		require.NoError(t, err)
		assert.Equal(t, []any{2, 4, 3, 1}, ids(got))
	})

	t.Run("dates parsed once per row", func(t *testing.T) {
		var calls int
		counting := &Sorter{DateParser: DateParserFunc(func(str string) (time.Time, error) {
			calls++
			return NewStringDateParser().ParseDate(str)
		})}
		_, err := counting.Sort(rows, cols, SortSpec{Column: 2, Order: SortAscending})
		require.NoError(t, err)
		assert.Equal(t, len(rows), calls)
	})
}

func TestSorter_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	words := []string{"alpha", "beta", "gamma", "delta", "01/02/2018", "01/12/1975"}
	rows := make([]Row, 200)
	for i := range rows {
		rows[i] = Row{"id": i, "word": words[r.IntN(len(words))], "n": r.IntN(10)}
	}
	cols := Columns{NewColumn("Word", "word"), NewColumn("N", "n")}
	s := NewSorter()

	for col := range cols {
		asc, err := s.Sort(rows, cols, SortSpec{Column: col, Order: SortAscending})
		require.NoError(t, err)
		desc, err := s.Sort(rows, cols, SortSpec{Column: col, Order: SortDescending})
		require.NoError(t, err)

		again, err := s.Sort(asc, cols, SortSpec{Column: col, Order: SortAscending})
		require.NoError(t, err)
		require.Equal(t, ids(asc), ids(again), "idempotent")

		require.ElementsMatch(t, ids(rows), ids(asc), "permutation")

		for i := 1; i < len(asc); i++ {
			a, b := cols.Value(col, asc[i-1]), cols.Value(col, asc[i])
			c := Compare(a, b, s.DateParser)
			require.LessOrEqual(t, c, 0, "ascending order at %d", i)
			if c == 0 {
				require.Less(t, asc[i-1]["id"], asc[i]["id"], "stable at %d", i)
			}
			a, b = cols.Value(col, desc[i-1]), cols.Value(col, desc[i])
			c = Compare(a, b, s.DateParser)
			require.GreaterOrEqual(t, c, 0, "descending order at %d", i)
			if c == 0 {
				require.Less(t, desc[i-1]["id"], desc[i]["id"], "stable at %d", i)
			}
		}
	}
}

func TestSorter_SortSource(t *testing.T) {
	feb := time.Date(2020, 2, 10, 0, 0, 0, 0, time.UTC)
	source := []Row{
		{"id": 1, "d": time.Date(2020, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"id": 2, "d": &feb},
		{"id": 3, "d": "01/12/2021"},
	}
	rows := []Row{
		{"id": 1, "d": "5/3/2020"},
		{"id": 2, "d": "10/2/2020"},
		{"id": 3, "d": "01/12/2021"},
	}
	cols := Columns{NewColumn("D", "d")}
	s := NewSorter()

	sorted, err := s.SortSource(rows, source, cols, SortSpec{Column: 0, Order: SortAscending})
	require.NoError(t, err)
	assert.Equal(t, []any{2, 1, 3}, ids(sorted), "times from source, strings parsed month first")

	sorted, err = s.SortSource(rows, source[:2], cols, SortSpec{Column: 0, Order: SortAscending})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, ids(sorted), "source of other length ignored")
}
