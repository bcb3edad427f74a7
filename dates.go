package datagrid

import (
	"fmt"
	"strings"
	"time"

	"github.com/domonda/go-types/date"
)

// DateParser decides if a string represents a date
// and returns the parsed time.
// The Sorter compares two values as dates only
// if the DateParser accepts both of them.
type DateParser interface {
	ParseDate(str string) (time.Time, error)
}

// DateParserFunc implements DateParser for a function.
type DateParserFunc func(str string) (time.Time, error)

func (f DateParserFunc) ParseDate(str string) (time.Time, error) {
	return f(str)
}

// Ensure StringDateParser implements DateParser
var _ DateParser = new(StringDateParser)

// StringDateParser tries a list of time layouts in order
// and optionally falls back to date.Normalize from go-types,
// which understands many more date notations.
//
// Example:
//
//	parser := NewStringDateParser()
//	t, _ := parser.ParseDate("01/12/1985")          // January 12 1985
//	t, _ := parser.ParseDate("2024-03-15T14:30:00Z") // RFC3339
//	_, err := parser.ParseDate("Sales")             // error
type StringDateParser struct {
	// Layouts are tried in order until one succeeds.
	Layouts []string `json:"layouts"`

	// NormalizeFallback enables date.Normalize
	// for strings none of the Layouts matched.
	NormalizeFallback bool `json:"normalizeFallback"`
}

// NewStringDateParser returns a StringDateParser
// with DefaultDateLayouts and the date.Normalize fallback enabled.
func NewStringDateParser() *StringDateParser {
	return &StringDateParser{
		Layouts:           DefaultDateLayouts,
		NormalizeFallback: true,
	}
}

// ParseDate implements DateParser.
// Leading and trailing whitespace is ignored,
// an empty string is never a date.
func (p *StringDateParser) ParseDate(str string) (time.Time, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return time.Time{}, fmt.Errorf("cannot parse empty string as date")
	}
	for _, layout := range p.Layouts {
		t, err := time.Parse(layout, str)
		if err == nil {
			return t, nil
		}
	}
	if p.NormalizeFallback && containsDigit(str) {
		d, err := date.Normalize(str)
		if err == nil {
			return d.MidnightUTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as date", str)
}

// ParseDate parses str with the layouts of DefaultDateLayouts
// and returns the layout that succeeded.
func ParseDate(str string) (t time.Time, layout string, err error) {
	for _, layout := range DefaultDateLayouts {
		t, err = time.Parse(layout, str)
		if err == nil {
			return t, layout, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("cannot parse %q as date", str)
}

func containsDigit(str string) bool {
	return strings.ContainsAny(str, "0123456789")
}

// DefaultDateLayouts is the default list of layouts tried by StringDateParser.
// Slash separated dates are read month first like browsers do.
var DefaultDateLayouts = []string{
	formatDateUS,           // "01/02/2006"
	formatDateUSShort,      // "1/2/2006"
	formatDateTimeUS,       // "01/02/2006 15:04:05"
	time.DateOnly,          // "2006-01-02"
	time.RFC3339Nano,       // "2006-01-02T15:04:05.999999999Z07:00"
	time.RFC3339,           // "2006-01-02T15:04:05Z07:00"
	formatBrowserLocalTime, // "2006-01-02T15:04"
	time.DateTime,          // "2006-01-02 15:04:05"
	formatDateTimeMinute,   // "2006-01-02 15:04"
	formatDateSlashISO,     // "2006/01/02"
	time.RFC1123Z,          // "Mon, 02 Jan 2006 15:04:05 -0700"
	time.RFC1123,           // "Mon, 02 Jan 2006 15:04:05 MST"
	time.RFC850,            // "Monday, 02-Jan-06 15:04:05 MST"
	time.RubyDate,          // "Mon Jan 02 15:04:05 -0700 2006"
	time.UnixDate,          // "Mon Jan _2 15:04:05 MST 2006"
	time.ANSIC,             // "Mon Jan _2 15:04:05 2006"
	formatMonthDayYear,     // "Jan 2, 2006"
	formatLongMonthDayYear, // "January 2, 2006"
	formatDayMonthYear,     // "2 Jan 2006"
	formatLongDayMonthYear, // "2 January 2006"
	formatDateTimeGerman,   // "02.01.2006 15:04:05"
	formatDateGerman,       // "02.01.2006"
}

const (
	formatDateUS           = "01/02/2006"
	formatDateUSShort      = "1/2/2006"
	formatDateTimeUS       = "01/02/2006 15:04:05"
	formatDateSlashISO     = "2006/01/02"
	formatDateTimeMinute   = "2006-01-02 15:04"
	formatBrowserLocalTime = "2006-01-02T15:04"
	formatMonthDayYear     = "Jan 2, 2006"
	formatLongMonthDayYear = "January 2, 2006"
	formatDayMonthYear     = "2 Jan 2006"
	formatLongDayMonthYear = "2 January 2006"
	formatDateTimeGerman   = "02.01.2006 15:04:05"
	formatDateGerman       = "02.01.2006"
)
