package csvtable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/domonda/go-types/charset"
)

// ParseDetectFormat detects the format of data and parses it
// into records of fields.
// A nil config uses NewDefaultFormatDetectionConfig.
//
// The separator is taken from a "sep=X" first line if present,
// else it is the most frequent of comma, semicolon and tab
// with comma winning ties.
func ParseDetectFormat(data []byte, config *FormatDetectionConfig) (records [][]string, format *Format, err error) {
	if config == nil {
		config = NewDefaultFormatDetectionConfig()
	}
	encodings := make([]charset.Encoding, len(config.Encodings))
	for i, name := range config.Encodings {
		encodings[i], err = charset.GetEncoding(name)
		if err != nil {
			return nil, nil, err
		}
	}

	format = new(Format)
	data, format.Encoding, err = charset.AutoDecode(data, encodings, config.EncodingTests)
	if err != nil {
		return nil, nil, err
	}
	if format.Encoding == "" {
		format.Encoding = "UTF-8"
	}
	data = sanitizeUTF8(data)

	format.Newline = "\n"
	if bytes.Contains(data, []byte("\r\n")) {
		format.Newline = "\r\n"
	}

	data, format.Separator = trimSepLine(data)
	if format.Separator == "" {
		format.Separator = countSeparators(data)
	}

	records, err = parseRecords(data, format.Separator)
	return records, format, err
}

// ParseWithFormat parses data encoded as described by format.
// A "sep=X" first line is skipped if it matches format.Separator.
func ParseWithFormat(data []byte, format *Format) ([][]string, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if format.Encoding == "UTF-8" {
		data = charset.TrimBOM(data, charset.BOMUTF8)
	} else {
		enc, err := charset.GetEncoding(format.Encoding)
		if err != nil {
			return nil, err
		}
		data, err = enc.Decode(data)
		if err != nil {
			return nil, err
		}
	}
	data = sanitizeUTF8(data)

	data, sep := trimSepLine(data)
	if sep != "" && sep != format.Separator {
		return nil, fmt.Errorf("separator %q of sep line differs from format separator %q", sep, format.Separator)
	}
	return parseRecords(data, format.Separator)
}

// trimSepLine removes a first line like "sep=;"
// and returns the separator it declares.
func trimSepLine(data []byte) (rest []byte, sep string) {
	line, rest, found := bytes.Cut(data, []byte{'\n'})
	if !found {
		return data, ""
	}
	line = bytes.TrimSuffix(line, []byte{'\r'})
	if len(line) == 7 && line[0] == '"' && line[6] == '"' {
		line = line[1:6]
	}
	if len(line) != 5 || !(bytes.HasPrefix(line, []byte("sep=")) || bytes.HasPrefix(line, []byte("SEP="))) {
		return data, ""
	}
	return rest, string(line[4:])
}

func countSeparators(data []byte) string {
	commas := bytes.Count(data, []byte{','})
	semicolons := bytes.Count(data, []byte{';'})
	tabs := bytes.Count(data, []byte{'\t'})
	switch {
	case semicolons > commas && semicolons > tabs:
		return ";"
	case tabs > commas && tabs > semicolons:
		return "\t"
	default:
		return ","
	}
}

func parseRecords(data []byte, separator string) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = []rune(separator)[0]
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("CSV line %d: %w", parseErr.Line, parseErr.Err)
		}
		return nil, err
	}
	return records, nil
}

// sanitizeUTF8 replaces the replacement character
// and no-break spaces with spaces.
func sanitizeUTF8(data []byte) []byte {
	return bytes.Map(
		func(r rune) rune {
			switch r {
			case '\uFFFD', '\u00a0':
				return ' '
			}
			return r
		},
		data,
	)
}
