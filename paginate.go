package datagrid

import (
	"fmt"
	"strconv"
	"strings"
)

// PageSize is a page size option of the paginator,
// either a positive number of rows or AllRows.
type PageSize int

// AllRows is the page size option that shows
// all rows on a single page.
const AllRows PageSize = -1

// DefaultPageSizeOptions are the page size choices
// of a grid if none are configured.
var DefaultPageSizeOptions = []PageSize{10, 25, 50, 100, AllRows}

// IsAll returns true for AllRows.
func (s PageSize) IsAll() bool { return s == AllRows }

// Valid returns true for AllRows or a positive size.
func (s PageSize) Valid() bool { return s == AllRows || s > 0 }

// String returns "All" for AllRows or the decimal size.
func (s PageSize) String() string {
	if s == AllRows {
		return "All"
	}
	return strconv.Itoa(int(s))
}

// ParsePageSize parses "All" (case insensitive) or a positive integer.
func ParsePageSize(str string) (PageSize, error) {
	str = strings.TrimSpace(str)
	if strings.EqualFold(str, "all") {
		return AllRows, nil
	}
	n, err := strconv.Atoi(str)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPageSize, str)
	}
	return PageSize(n), nil
}

// ParsePageSizes parses every string with ParsePageSize.
func ParsePageSizes(strs []string) ([]PageSize, error) {
	sizes := make([]PageSize, len(strs))
	for i, str := range strs {
		size, err := ParsePageSize(str)
		if err != nil {
			return nil, err
		}
		sizes[i] = size
	}
	return sizes, nil
}

func (s PageSize) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, int(s))
	}
	return []byte(s.String()), nil
}

func (s *PageSize) UnmarshalText(text []byte) error {
	parsed, err := ParsePageSize(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// EffectivePageSize returns the number of rows per page
// for the option at sizeIndex: the option itself if it is
// a number, else numRows so that AllRows or an index without
// option results in a single page.
func EffectivePageSize(options []PageSize, sizeIndex, numRows int) int {
	if sizeIndex >= 0 && sizeIndex < len(options) && options[sizeIndex] > 0 {
		return int(options[sizeIndex])
	}
	return numRows
}

// PageList returns the page numbers 1 to ceil(numRows/pageSize).
// It is empty for zero rows.
func PageList(numRows, pageSize int) []int {
	if numRows <= 0 || pageSize <= 0 {
		return []int{}
	}
	numPages := (numRows + pageSize - 1) / pageSize
	pages := make([]int, numPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// PageResult is the outcome of a single Paginate pass.
type PageResult struct {
	// Rows of the current page.
	Rows []Row
	// Page is the 1 based current page number.
	Page int
	// PageSize is the effective number of rows per page.
	PageSize int
	// PageList holds the valid page numbers,
	// nil if pagination is disabled.
	PageList []int
	// NumRows is the number of paginated rows.
	NumRows int
	// Corrected is true if the requested page was empty
	// and Page was decremented. Rows is nil in that case
	// and Paginate has to be called again with Page.
	Corrected bool
}

// Paginate performs one pagination pass over rows.
//
// With nil options pagination is disabled and all rows are returned
// without page list. Otherwise the rows of page are sliced
// using the effective page size of the option at sizeIndex.
// If that slice is empty while page is greater than 1,
// the result is Corrected to page-1 and the caller repeats
// the pass, which converges because the page only decreases
// and never below 1.
func Paginate(rows []Row, options []PageSize, sizeIndex, page int) PageResult {
	page = max(page, 1)
	if options == nil {
		return PageResult{
			Rows:     rows,
			Page:     page,
			PageSize: len(rows),
			NumRows:  len(rows),
		}
	}

	pageSize := EffectivePageSize(options, sizeIndex, len(rows))
	result := PageResult{
		Page:     page,
		PageSize: pageSize,
		PageList: PageList(len(rows), pageSize),
		NumRows:  len(rows),
	}
	start := min((page-1)*pageSize, len(rows))
	end := min(page*pageSize, len(rows))
	if start >= end && page > 1 {
		result.Page = page - 1
		result.Corrected = true
		return result
	}
	result.Rows = rows[start:end]
	return result
}

// Range returns the 1 based index of the first and last
// row of the page and the total number of rows,
// as displayed in a "1 - 10 of 57" label.
// first and last are 0 if there are no rows.
func (r PageResult) Range() (first, last, total int) {
	total = r.NumRows
	if total == 0 || r.PageSize <= 0 {
		return 0, 0, total
	}
	first = (r.Page-1)*r.PageSize + 1
	last = min(r.Page*r.PageSize, total)
	return first, last, total
}

// NumPages returns the length of the page list.
func (r PageResult) NumPages() int {
	return len(r.PageList)
}
