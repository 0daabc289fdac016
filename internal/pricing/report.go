package pricing

import (
	"fmt"

	"github.com/kosarica/supplier-import/internal/types"
)

// DefaultDisplayCap is how many errors and warnings a result shows verbatim
const DefaultDisplayCap = 50

// Report accumulates row outcomes in the order they are added and builds the
// final ParseResult.
type Report struct {
	displayCap int
	rows       int
	items      []types.CanonicalRow
	errors     []string
	warnings   []string
}

// NewReport creates a report. A cap <= 0 uses DefaultDisplayCap.
func NewReport(displayCap int) *Report {
	if displayCap <= 0 {
		displayCap = DefaultDisplayCap
	}
	return &Report{
		displayCap: displayCap,
		items:      make([]types.CanonicalRow, 0),
		errors:     make([]string, 0),
		warnings:   make([]string, 0),
	}
}

// Item records a priced row
func (r *Report) Item(row types.CanonicalRow) {
	r.rows++
	r.items = append(r.items, row)
}

// RowError records a rejected row
func (r *Report) RowError(err error) {
	r.rows++
	r.errors = append(r.errors, err.Error())
}

// FileError records a problem that is not tied to a single row
func (r *Report) FileError(msg string) {
	r.errors = append(r.errors, msg)
}

// Warn records warnings
func (r *Report) Warn(msgs ...string) {
	r.warnings = append(r.warnings, msgs...)
}

// Errors returns every recorded error, untruncated
func (r *Report) Errors() []string {
	return r.errors
}

// Result builds the ParseResult, truncating errors and warnings to the
// display cap.
func (r *Report) Result() types.ParseResult {
	return types.ParseResult{
		Items:         r.items,
		Errors:        Truncate(r.errors, r.displayCap, "errors"),
		Warnings:      Truncate(r.warnings, r.displayCap, "warnings"),
		TotalRows:     r.rows,
		ProcessedRows: len(r.items),
		ErrorCount:    len(r.errors),
		WarningCount:  len(r.warnings),
	}
}

// Truncate keeps the first displayCap messages and appends a line counting
// the rest.
func Truncate(msgs []string, displayCap int, noun string) []string {
	if displayCap <= 0 || len(msgs) <= displayCap {
		return msgs
	}
	out := make([]string, 0, displayCap+1)
	out = append(out, msgs[:displayCap]...)
	return append(out, fmt.Sprintf("... and %d more %s omitted", len(msgs)-displayCap, noun))
}

// Run prices rows in order and returns the result with the default display
// cap applied.
func (e *Engine) Run(rows []types.CanonicalRow) types.ParseResult {
	report := NewReport(DefaultDisplayCap)
	for _, row := range rows {
		priced, err := e.Resolve(row)
		if err != nil {
			report.RowError(err)
			continue
		}
		report.Item(priced)
	}
	return report.Result()
}
