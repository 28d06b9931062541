package csvtable

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/domonda/go-types/charset"
)

// ParseDetectFormat detects the format of the csv data
// and parses it into rows of fields.
// Empty lines result in nil rows.
// If config is nil then NewDefaultFormatDetectionConfig() is used.
func ParseDetectFormat(csv []byte, config *FormatDetectionConfig) (rows [][]string, format *Format, err error) {
	if config == nil {
		config = NewDefaultFormatDetectionConfig()
	}
	format, csv, err = detectFormat(csv, config)
	if err != nil {
		return nil, nil, err
	}
	if format.Separator == "" {
		// No non empty lines
		return nil, format, nil
	}
	rows, err = readRows(csv, format.Separator[0], format.Newline)
	return rows, format, err
}

// ParseWithFormat parses csv data with a known format.
func ParseWithFormat(csv []byte, format *Format) (rows [][]string, err error) {
	err = format.Validate()
	if err != nil {
		return nil, err
	}

	if format.Encoding == "UTF-8" {
		csv = charset.TrimBOM(csv, charset.BOMUTF8)
	} else {
		enc, err := charset.GetEncoding(format.Encoding)
		if err != nil {
			return nil, err
		}
		csv, err = enc.Decode(csv)
		if err != nil {
			return nil, err
		}
	}
	csv = sanitizeUTF8(csv)

	if headerSep, rest := cutSepHeaderLine(csv, format.Newline); headerSep != "" {
		if headerSep != format.Separator {
			return nil, fmt.Errorf("separator '%s' in header line is different from format.Separator '%s'", headerSep, format.Separator)
		}
		csv = rest
	}
	return readRows(csv, format.Separator[0], format.Newline)
}

// detectFormat decodes csv to UTF-8 and detects its format.
// The returned csv has a "sep=X" header line removed.
func detectFormat(csv []byte, config *FormatDetectionConfig) (format *Format, decoded []byte, err error) {
	if len(csv) == 0 {
		return &Format{Encoding: "UTF-8", Newline: "\n"}, csv, nil
	}
	var encodings []charset.Encoding
	for _, name := range config.Encodings {
		enc, err := charset.GetEncoding(name)
		if err != nil {
			return nil, nil, err
		}
		encodings = append(encodings, enc)
	}

	format = new(Format)
	csv, format.Encoding, err = charset.AutoDecode(csv, encodings, config.EncodingTests)
	if err != nil {
		return nil, nil, err
	}
	if format.Encoding == "" {
		format.Encoding = "UTF-8"
	}
	csv = sanitizeUTF8(csv)

	// \r\n is the standard, so take it if there is any
	if bytes.Contains(csv, []byte{'\r', '\n'}) {
		format.Newline = "\r\n"
	} else {
		format.Newline = "\n"
	}

	if sep, rest := cutSepHeaderLine(csv, format.Newline); sep != "" {
		format.Separator = sep
		return format, rest, nil
	}

	var commas, semicolons, tabs, nonEmptyLines int
	for _, line := range bytes.Split(csv, []byte(format.Newline)) {
		if len(bytes.Trim(line, "\r\n")) == 0 {
			continue
		}
		nonEmptyLines++
		commas += bytes.Count(line, []byte{','})
		semicolons += bytes.Count(line, []byte{';'})
		tabs += bytes.Count(line, []byte{'\t'})
	}
	if nonEmptyLines == 0 {
		return format, csv, nil
	}
	switch {
	case semicolons > commas && semicolons > tabs:
		format.Separator = ";"
	case tabs > commas && tabs > semicolons:
		format.Separator = "\t"
	default:
		format.Separator = ","
	}
	return format, csv, nil
}

// cutSepHeaderLine returns the separator declared by a
// first line like "sep=;" and the data after that line.
func cutSepHeaderLine(csv []byte, newline string) (sep string, rest []byte) {
	line, rest, _ := bytes.Cut(csv, []byte(newline))
	if len(line) >= 2 && line[0] == '"' && line[len(line)-1] == '"' {
		line = line[1 : len(line)-1]
	}
	if len(line) != 5 || !(bytes.HasPrefix(line, []byte("sep=")) || bytes.HasPrefix(line, []byte("SEP="))) {
		return "", csv
	}
	return string(line[4:5]), rest
}

// readRows splits UTF-8 csv into rows of fields.
// Quoted fields may contain the separator, newlines
// and quotes escaped as two quotes.
func readRows(csv []byte, separator byte, newline string) (rows [][]string, err error) {
	var (
		row      []string
		field    []byte
		quoted   bool // field started with a quote
		inQuotes bool
	)
	endField := func() {
		row = append(row, string(field))
		field = field[:0]
		quoted = false
	}
	endRow := func() {
		if len(row) == 1 && row[0] == "" {
			// Empty line
			row = nil
		}
		rows = append(rows, row)
		row = nil
	}
	for i := 0; i < len(csv); i++ {
		c := csv[i]
		switch {
		case inQuotes:
			switch {
			case c == '"' && i+1 < len(csv) && csv[i+1] == '"':
				field = append(field, '"')
				i++
			case c == '"':
				inQuotes = false
			case c == '\r' && i+1 < len(csv) && csv[i+1] == '\n':
				// Newlines within fields are returned as \n
			default:
				field = append(field, c)
			}

		case c == '"' && len(field) == 0 && !quoted:
			inQuotes = true
			quoted = true

		case c == separator:
			endField()

		case bytes.HasPrefix(csv[i:], []byte(newline)):
			endField()
			endRow()
			i += len(newline) - 1

		case c == '\r' && newline == "\n" && i+1 < len(csv) && csv[i+1] == '\n':
			// Ignore \r of a mixed \r\n line ending

		default:
			field = append(field, c)
		}
	}
	if inQuotes {
		return nil, errors.New("unterminated quoted CSV field")
	}
	if len(field) > 0 || len(row) > 0 || quoted {
		endField()
		endRow()
	}
	return rows, nil
}

func sanitizeUTF8(str []byte) []byte {
	return bytes.Map(
		func(r rune) rune {
			switch r {
			// \u00a0 is No-Break Space (NBSP)
			case '\uFFFD', '\u00a0':
				return ' '
			default:
				return r
			}
		},
		str,
	)
}
