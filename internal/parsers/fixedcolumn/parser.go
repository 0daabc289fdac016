// Package fixedcolumn extracts records from fixed position supplier files.
package fixedcolumn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kosarica/supplier-import/internal/parsers/lines"
	"github.com/kosarica/supplier-import/internal/types"
)

// ErrNoRows is returned when nothing is left to parse after skipping rows
var ErrNoRows = errors.New("no rows to parse after skipping preamble")

// Column is a field at a fixed rune offset. Start is 0-based.
type Column struct {
	Name  string `json:"name" yaml:"name"`
	Start int    `json:"start" yaml:"start"`
	Width int    `json:"width" yaml:"width"`
}

// End is the exclusive end offset of the column
func (c Column) End() int {
	return c.Start + c.Width
}

// Result holds extracted records plus per-line warnings
type Result struct {
	Records  []types.RawRecord
	Warnings []string
}

// ValidateColumns rejects layouts that cannot be extracted
func ValidateColumns(columns []Column) error {
	if len(columns) == 0 {
		return fmt.Errorf("at least one column is required")
	}
	seen := make(map[string]bool, len(columns))
	for i, c := range columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("column %d: name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("column %q declared twice", name)
		}
		seen[name] = true
		if c.Start < 0 {
			return fmt.Errorf("column %q: start must not be negative", name)
		}
		if c.Width <= 0 {
			return fmt.Errorf("column %q: width must be positive", name)
		}
	}
	return nil
}

// LineWidth is the shortest line length that satisfies every column
func LineWidth(columns []Column) int {
	width := 0
	for _, c := range columns {
		if c.End() > width {
			width = c.End()
		}
	}
	return width
}

// Parse extracts each column from every non-blank line after skipRows.
// A line shorter than the layout yields a warning and whatever part of the
// affected columns is present.
func Parse(content string, columns []Column, skipRows int) (*Result, error) {
	if err := ValidateColumns(columns); err != nil {
		return nil, err
	}

	rows := lines.NonBlank(content, skipRows)
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	required := LineWidth(columns)
	result := &Result{
		Records:  make([]types.RawRecord, 0, len(rows)),
		Warnings: make([]string, 0),
	}

	for i, line := range rows {
		rowNumber := i + 1
		runes := []rune(line)

		if len(runes) < required {
			var truncated []string
			for _, c := range columns {
				if c.End() > len(runes) {
					truncated = append(truncated, c.Name)
				}
			}
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"Row %d: line is %d characters, layout needs %d; short columns: %s",
				rowNumber, len(runes), required, strings.Join(truncated, ", ")))
		}

		values := make(map[string]string, len(columns))
		for _, c := range columns {
			values[c.Name] = extract(runes, c)
		}

		result.Records = append(result.Records, types.RawRecord{
			RowNumber: rowNumber,
			Values:    values,
		})
	}

	return result, nil
}

func extract(runes []rune, c Column) string {
	if c.Start >= len(runes) {
		return ""
	}
	end := c.End()
	if end > len(runes) {
		end = len(runes)
	}
	return strings.TrimSpace(string(runes[c.Start:end]))
}
