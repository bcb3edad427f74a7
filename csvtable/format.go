// Package csvtable reads CSV data as grid rows.
//
// Character encoding, field separator and line endings
// can be detected from the data, including an optional
// "sep=X" line in front of the header as written by Excel.
package csvtable

import (
	"errors"
	"fmt"
)

// Format is the encoding and structure of CSV data.
type Format struct {
	Encoding  string `json:"encoding"`
	Separator string `json:"separator"`
	Newline   string `json:"newline"`
}

// NewFormat returns a UTF-8 format with separator
// and "\r\n" line endings.
func NewFormat(separator string) *Format {
	return &Format{
		Encoding:  "UTF-8",
		Separator: separator,
		Newline:   "\r\n",
	}
}

// Validate returns an error if the format can't be parsed with.
// It can be called on a nil receiver.
func (f *Format) Validate() error {
	switch {
	case f == nil:
		return errors.New("nil csvtable.Format")
	case f.Encoding == "":
		return errors.New("csvtable.Format without Encoding")
	case len([]rune(f.Separator)) != 1:
		return fmt.Errorf("csvtable.Format.Separator must be one character, got %q", f.Separator)
	case f.Newline != "\n" && f.Newline != "\r\n" && f.Newline != "\n\r":
		return fmt.Errorf("invalid csvtable.Format.Newline %q", f.Newline)
	}
	return nil
}

// FormatDetectionConfig lists the encodings tried in order
// when detecting the format, and the strings that have to decode
// correctly for an encoding to be chosen.
type FormatDetectionConfig struct {
	Encodings     []string `json:"encodings"`
	EncodingTests []string `json:"encodingTests"`
}

// NewDefaultFormatDetectionConfig returns a detection config
// for western european and cyrillic data.
func NewDefaultFormatDetectionConfig() *FormatDetectionConfig {
	return &FormatDetectionConfig{
		Encodings: []string{
			"UTF-8",
			"UTF-16LE",
			"ISO 8859-1",
			"Windows 1252",
			"Macintosh",
		},
		EncodingTests: []string{
			"ä", "Ä", "ö", "Ö", "ü", "Ü", "ß", "§", "€",
			"д", "Д", "ъ", "Ъ", "б", "Б", "л", "Л", "и", "И", "ж",
		},
	}
}
