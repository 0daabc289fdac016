// Package transform implements the per-field value transformations that can be
// attached to a parser configuration.
package transform

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kosarica/supplier-import/internal/parsers/number"
)

// Kind identifies a transformation in configuration documents
type Kind string

const (
	KindDivide       Kind = "divide"
	KindMultiply     Kind = "multiply"
	KindTrim         Kind = "trim"
	KindUppercase    Kind = "uppercase"
	KindLowercase    Kind = "lowercase"
	KindSubstring    Kind = "substring"
	KindDateReformat Kind = "date"
)

// Transformation is a pure string -> string function. Implementations never
// fail: input they cannot interpret is returned unchanged and left for the
// row mapper to reject.
type Transformation interface {
	Kind() Kind
	Apply(value string) string
	sealed()
}

// Divide divides a numeric value, e.g. prices delivered in cents
type Divide struct {
	Divisor decimal.Decimal
}

// Multiply multiplies a numeric value
type Multiply struct {
	Multiplier decimal.Decimal
}

type Trim struct{}

type Uppercase struct{}

type Lowercase struct{}

// Substring keeps Length runes starting at Start. A nil Length keeps the rest
// of the value.
type Substring struct {
	Start  int
	Length *int
}

// DateReformat parses a date written in InputFormat (tokens YYYY, YY, MM, DD,
// HH, mm, ss) and renders it as YYYY-MM-DD.
type DateReformat struct {
	InputFormat string
}

// OutputDateLayout is the layout DateReformat produces
const OutputDateLayout = "2006-01-02"

func (Divide) Kind() Kind       { return KindDivide }
func (Multiply) Kind() Kind     { return KindMultiply }
func (Trim) Kind() Kind         { return KindTrim }
func (Uppercase) Kind() Kind    { return KindUppercase }
func (Lowercase) Kind() Kind    { return KindLowercase }
func (Substring) Kind() Kind    { return KindSubstring }
func (DateReformat) Kind() Kind { return KindDateReformat }

func (Divide) sealed()       {}
func (Multiply) sealed()     {}
func (Trim) sealed()         {}
func (Uppercase) sealed()    {}
func (Lowercase) sealed()    {}
func (Substring) sealed()    {}
func (DateReformat) sealed() {}

func (t Divide) Apply(value string) string {
	if t.Divisor.IsZero() {
		return value
	}
	d, err := number.ParseDecimal(value)
	if err != nil {
		return value
	}
	return d.Div(t.Divisor).String()
}

func (t Multiply) Apply(value string) string {
	d, err := number.ParseDecimal(value)
	if err != nil {
		return value
	}
	return d.Mul(t.Multiplier).String()
}

func (Trim) Apply(value string) string {
	return strings.TrimSpace(value)
}

func (Uppercase) Apply(value string) string {
	return strings.ToUpper(value)
}

func (Lowercase) Apply(value string) string {
	return strings.ToLower(value)
}

func (t Substring) Apply(value string) string {
	runes := []rune(value)
	start := t.Start
	if start < 0 {
		start = 0
	}
	if start >= len(runes) {
		return ""
	}
	end := len(runes)
	if t.Length != nil && *t.Length >= 0 && *t.Length < end-start {
		end = start + *t.Length
	}
	return string(runes[start:end])
}

func (t DateReformat) Apply(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return value
	}
	parsed, err := time.Parse(GoLayout(t.InputFormat), s)
	if err != nil {
		return value
	}
	return parsed.Format(OutputDateLayout)
}

// GoLayout converts a token based date format ("DD.MM.YYYY") to a Go
// reference layout ("02.01.2006").
func GoLayout(format string) string {
	replacer := strings.NewReplacer(
		"YYYY", "2006",
		"YY", "06",
		"MM", "01",
		"DD", "02",
		"HH", "15",
		"mm", "04",
		"ss", "05",
	)
	return replacer.Replace(format)
}
