package parserconfig

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kosarica/supplier-import/internal/parsers/delimited"
	"github.com/kosarica/supplier-import/internal/parsers/lines"
)

const (
	// DetectionSampleLines is how many non-blank lines detection inspects
	DetectionSampleLines = 10
	// FixedLengthTolerance is the largest spread of line lengths still
	// treated as a fixed column layout
	FixedLengthTolerance = 2
	// FixedMinAverageLength must be exceeded by the average line length
	FixedMinAverageLength = 80
	// NumericPrefixDigits is the shortest leading digit run that marks a
	// numeric-article vendor file
	NumericPrefixDigits = 10
)

var numericPrefix = regexp.MustCompile(fmt.Sprintf(`^\d{%d,}`, NumericPrefixDigits))

// Detection describes what content inspection found
type Detection struct {
	Format       Format `json:"format"`
	TemplateName string `json:"templateName"`
	Delimiter    Char   `json:"delimiter,omitempty"`
	SampledLines int    `json:"sampledLines"`
	MinLength    int    `json:"minLength"`
	MaxLength    int    `json:"maxLength"`
	AvgLength    int    `json:"avgLength"`
	Reason       string `json:"reason"`
}

// Detect inspects the start of content and picks a built-in template. ok is
// false when nothing conclusive was found.
func Detect(fileName, content string) (Detection, bool) {
	sample := lines.Sample(content, DetectionSampleLines)
	if len(sample) == 0 {
		return Detection{Reason: "no content to inspect"}, false
	}

	d := Detection{SampledLines: len(sample)}
	d.MinLength, d.MaxLength, d.AvgLength = lengthStats(sample)

	if !delimitedExtension(fileName) && looksFixed(d) {
		d.Format = FormatFixedColumn
		if allNumericPrefixed(sample) {
			d.TemplateName = TemplateVendorFixedNumeric
			d.Reason = fmt.Sprintf("lines of %d-%d characters starting with a numeric article", d.MinLength, d.MaxLength)
		} else {
			d.TemplateName = TemplateGenericFixed
			d.Reason = fmt.Sprintf("lines of consistent length %d-%d", d.MinLength, d.MaxLength)
		}
		return d, true
	}

	first := sample[0]
	d.Format = FormatDelimited
	if strings.ContainsRune(first, ';') && !strings.ContainsRune(first, ',') {
		d.TemplateName = TemplateSemicolonCSV
		d.Delimiter = ';'
		d.Reason = "first line has semicolons and no commas"
		return d, true
	}

	delim := delimited.DetectDelimiter(content, DetectionSampleLines)
	if !strings.ContainsRune(first, delim) {
		d.Reason = "no delimiter found in first line"
		return d, false
	}
	d.Delimiter = Char(delim)
	d.Reason = fmt.Sprintf("%q occurs consistently", delim)
	switch delim {
	case ';':
		d.TemplateName = TemplateSemicolonCSV
	case '\t':
		d.TemplateName = TemplateTabDelimited
	case '|':
		d.TemplateName = TemplatePipeDelimited
	default:
		d.TemplateName = TemplateGenericCSV
	}
	return d, true
}

func looksFixed(d Detection) bool {
	return d.MaxLength-d.MinLength <= FixedLengthTolerance && d.AvgLength > FixedMinAverageLength
}

func lengthStats(sample []string) (minLen, maxLen, avg int) {
	total := 0
	for i, line := range sample {
		n := utf8.RuneCountInString(line)
		total += n
		if i == 0 || n < minLen {
			minLen = n
		}
		if n > maxLen {
			maxLen = n
		}
	}
	return minLen, maxLen, total / len(sample)
}

func allNumericPrefixed(sample []string) bool {
	for _, line := range sample {
		if !numericPrefix.MatchString(line) {
			return false
		}
	}
	return true
}

func delimitedExtension(fileName string) bool {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv", ".tsv":
		return true
	}
	return false
}
