package delimited

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		delimiter rune
		quote     rune
		expected  []string
	}{
		{name: "simple", line: "a,b,c", delimiter: ',', quote: '"', expected: []string{"a", "b", "c"}},
		{name: "quoted delimiter with escaped quote", line: `"a""b,c",d`, delimiter: ',', quote: '"', expected: []string{`a"b,c`, "d"}},
		{name: "empty fields", line: "a,,c,", delimiter: ',', quote: '"', expected: []string{"a", "", "c", ""}},
		{name: "semicolon", line: "1;\"x;y\";3", delimiter: ';', quote: '"', expected: []string{"1", "x;y", "3"}},
		{name: "single quote char", line: "'it''s',ok", delimiter: ',', quote: '\'', expected: []string{"it's", "ok"}},
		{name: "trailing escaped quote", line: `"ab"""`, delimiter: ',', quote: '"', expected: []string{`ab"`}},
		{name: "unterminated quote keeps rest", line: `"abc,def`, delimiter: ',', quote: '"', expected: []string{"abc,def"}},
		{name: "utf8 content", line: "šifra;čep", delimiter: ';', quote: '"', expected: []string{"šifra", "čep"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitLine(tt.line, tt.delimiter, tt.quote))
		})
	}
}

func TestParseWithHeader(t *testing.T) {
	content := "sku,gross,code,net\r\nA1,100,X,\r\n\r\nA2,\"1,5\",Y\n"

	result, err := Parse(content, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"sku", "gross", "code", "net"}, result.Headers)
	require.Len(t, result.Records, 2)

	assert.Equal(t, 1, result.Records[0].RowNumber)
	assert.Equal(t, map[string]string{"sku": "A1", "gross": "100", "code": "X", "net": ""}, result.Records[0].Values)

	assert.Equal(t, 2, result.Records[1].RowNumber)
	assert.Equal(t, "1,5", result.Records[1].Values["gross"])
	assert.Equal(t, "", result.Records[1].Values["net"], "missing trailing field pads to empty")
	assert.Empty(t, result.Warnings)
}

func TestParseExtraFieldsWarn(t *testing.T) {
	result, err := Parse("a,b\n1,2,3\n", DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Row 1")
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, result.Records[0].Values)
}

func TestParseWithoutHeader(t *testing.T) {
	opts := DefaultOptions()
	opts.HasHeader = false
	opts.Delimiter = ';'

	result, err := Parse("A1;10\nA2;20;note\n", opts)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, map[string]string{"0": "A1", "1": "10"}, result.Records[0].Values)
	assert.Equal(t, "note", result.Records[1].Values["2"])
}

func TestParseSkipRows(t *testing.T) {
	content := "ACME price list 2025\nvalid from 01.01.\nsku,price\nA1,5\n"
	opts := DefaultOptions()
	opts.SkipRows = 2

	result, err := Parse(content, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"sku", "price"}, result.Headers)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "A1", result.Records[0].Values["sku"])
}

func TestParseNoRows(t *testing.T) {
	_, err := Parse("", DefaultOptions())
	assert.ErrorIs(t, err, ErrNoRows)

	opts := DefaultOptions()
	opts.SkipRows = 5
	_, err = Parse("one\ntwo\n", opts)
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestParseHeaderOnly(t *testing.T) {
	result, err := Parse("sku,price\n", DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Records)
}

func TestParseRejectsSameDelimiterAndQuote(t *testing.T) {
	_, err := Parse("a", Options{Delimiter: '"', QuoteChar: '"'})
	assert.Error(t, err)
}

func TestParseStripsBOM(t *testing.T) {
	result, err := Parse("\uFEFFsku,price\nA,1\n", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "sku", result.Headers[0])
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected rune
	}{
		{"comma", "name,price,qty\nApple,100,5", ','},
		{"semicolon", "name;price;qty\nApple;1,00;5", ';'},
		{"tab", "name\tprice\tqty\nApple\t100\t5", '\t'},
		{"pipe", "a|b|c\n1|2|3", '|'},
		{"nothing", "justone\nvalue", ','},
		{"empty", "", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectDelimiter(tt.content, 5))
		})
	}
}
