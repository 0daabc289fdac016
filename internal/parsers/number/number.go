// Package number parses supplier formatted numbers into decimals.
package number

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var currencySuffix = regexp.MustCompile(`\s*(KN|KUNA|HRK|EUR|USD|CHF)\.?\s*$`)

// ParseDecimal parses a price or percentage string.
// Handles "12.99", "12,99", "1.299,00", "1,299.00", "1 299,00 EUR" and "15%".
func ParseDecimal(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty numeric value")
	}

	cleaned = strings.Map(func(r rune) rune {
		switch r {
		case '€', '$', '£', '%', ' ', '\u00A0', '\u202F', '\'':
			return -1
		}
		return r
	}, cleaned)
	cleaned = currencySuffix.ReplaceAllString(strings.ToUpper(cleaned), "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("no numeric value in %q", value)
	}

	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")

	switch {
	case lastComma > lastDot:
		// 1.234,56: comma is the decimal separator
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case lastDot > lastComma:
		// 1,234.56
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", value)
	}
	return d, nil
}

// maxUint bounds ParseUint the same way as its 32-bit fast path
var maxUint = decimal.NewFromInt(math.MaxUint32)

// ParseUint parses a non-negative whole number. Values such as "3,00" are
// accepted as long as they carry no fractional part.
func ParseUint(value string) (uint, error) {
	s := strings.TrimSpace(value)
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		return uint(n), nil
	}

	d, err := ParseDecimal(s)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("negative value %q", value)
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("%q is not a whole number", value)
	}
	if d.GreaterThan(maxUint) {
		return 0, fmt.Errorf("%q is too large", value)
	}
	return uint(d.IntPart()), nil
}
