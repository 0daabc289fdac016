// Package delimited extracts records from delimiter separated supplier files.
package delimited

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kosarica/supplier-import/internal/parsers/lines"
	"github.com/kosarica/supplier-import/internal/types"
)

// ErrNoRows is returned when nothing is left to parse after skipping rows
var ErrNoRows = errors.New("no rows to parse after skipping preamble")

// Options controls tokenization
type Options struct {
	Delimiter rune
	QuoteChar rune
	HasHeader bool
	SkipRows  int
}

// DefaultOptions returns comma separated, double quoted, with header
func DefaultOptions() Options {
	return Options{
		Delimiter: ',',
		QuoteChar: '"',
		HasHeader: true,
	}
}

// Result holds extracted records plus the tokenizer's warnings
type Result struct {
	Headers  []string
	Records  []types.RawRecord
	Warnings []string
}

// Parse splits content into records keyed by header name. Without a header
// columns are keyed by their 0-based index. Missing trailing fields map to "".
func Parse(content string, opts Options) (*Result, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.QuoteChar == 0 {
		opts.QuoteChar = '"'
	}
	if opts.Delimiter == opts.QuoteChar {
		return nil, fmt.Errorf("delimiter and quote character must differ (both %q)", opts.Delimiter)
	}

	rows := lines.NonBlank(content, opts.SkipRows)
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	result := &Result{
		Records:  make([]types.RawRecord, 0, len(rows)),
		Warnings: make([]string, 0),
	}

	if opts.HasHeader {
		result.Headers = SplitLine(rows[0], opts.Delimiter, opts.QuoteChar)
		for i, h := range result.Headers {
			result.Headers[i] = strings.TrimSpace(h)
		}
		rows = rows[1:]
	}

	for i, line := range rows {
		rowNumber := i + 1
		fields := SplitLine(line, opts.Delimiter, opts.QuoteChar)

		values := make(map[string]string, len(fields))
		if opts.HasHeader {
			if len(fields) > len(result.Headers) {
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"Row %d: %d fields but header has %d; extra fields ignored",
					rowNumber, len(fields), len(result.Headers)))
			}
			for col, name := range result.Headers {
				if col < len(fields) {
					values[name] = strings.TrimSpace(fields[col])
				} else {
					values[name] = ""
				}
			}
		} else {
			for col, f := range fields {
				values[strconv.Itoa(col)] = strings.TrimSpace(f)
			}
		}

		result.Records = append(result.Records, types.RawRecord{
			RowNumber: rowNumber,
			Values:    values,
		})
	}

	return result, nil
}

// SplitLine tokenizes one line. Inside quotes the delimiter is literal and a
// doubled quote character is an escaped quote.
func SplitLine(line string, delimiter rune, quoteChar rune) []string {
	fields := make([]string, 0, 16)
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); {
		r, width := utf8.DecodeRuneInString(line[i:])
		i += width

		if inQuotes {
			if r == quoteChar {
				next, nextWidth := utf8.DecodeRuneInString(line[i:])
				if i < len(line) && next == quoteChar {
					current.WriteRune(quoteChar)
					i += nextWidth
					continue
				}
				inQuotes = false
				continue
			}
			current.WriteRune(r)
			continue
		}

		switch r {
		case quoteChar:
			inQuotes = true
		case delimiter:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	fields = append(fields, current.String())
	return fields
}
