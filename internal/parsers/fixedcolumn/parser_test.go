package fixedcolumn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-len([]rune(s)))
}

func TestParse(t *testing.T) {
	columns := []Column{
		{Name: "sku", Start: 0, Width: 6},
		{Name: "desc", Start: 6, Width: 10},
		{Name: "price", Start: 16, Width: 8},
	}
	content := pad("A1", 6) + pad("Bolt M8", 10) + pad("12,50", 8) + "\n\n" +
		pad("A2", 6) + pad("Čep", 10) + pad("3,00", 8) + "\n"

	result, err := Parse(content, columns, 0)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Empty(t, result.Warnings)

	assert.Equal(t, map[string]string{"sku": "A1", "desc": "Bolt M8", "price": "12,50"}, result.Records[0].Values)
	assert.Equal(t, "Čep", result.Records[1].Values["desc"], "offsets count runes")
	assert.Equal(t, "3,00", result.Records[1].Values["price"])
	assert.Equal(t, 2, result.Records[1].RowNumber)
}

func TestParseShortLineWarns(t *testing.T) {
	columns := []Column{
		{Name: "article", Start: 0, Width: 13},
		{Name: "description", Start: 13, Width: 60},
		{Name: "gross", Start: 73, Width: 12},
		{Name: "code", Start: 85, Width: 5},
		{Name: "notes", Start: 90, Width: 30},
	}
	full := pad("4006381333931", 13) + pad("Drill bit", 60) + pad("100,00", 12) + pad("X", 5) + pad("urgent", 30)
	require.Len(t, full, 120)
	short := full[:90]

	result, err := Parse(full+"\n"+short+"\n", columns, 0)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	require.Len(t, result.Warnings, 1)

	assert.Contains(t, result.Warnings[0], "Row 2")
	assert.Contains(t, result.Warnings[0], "notes")
	assert.Equal(t, "", result.Records[1].Values["notes"])
	assert.Equal(t, "X", result.Records[1].Values["code"])
	assert.Equal(t, "urgent", result.Records[0].Values["notes"])
}

func TestParsePartialColumn(t *testing.T) {
	columns := []Column{{Name: "a", Start: 0, Width: 3}, {Name: "b", Start: 3, Width: 5}}

	result, err := Parse("abcde", columns, 0)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "de", result.Records[0].Values["b"])
}

func TestParseSkipRows(t *testing.T) {
	columns := []Column{{Name: "a", Start: 0, Width: 2}}

	result, err := Parse("HEADER LINE\nxx\nyy\n", columns, 1)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "xx", result.Records[0].Values["a"])

	_, err = Parse("HEADER LINE\n", columns, 1)
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestValidateColumns(t *testing.T) {
	assert.Error(t, ValidateColumns(nil))
	assert.Error(t, ValidateColumns([]Column{{Name: "", Start: 0, Width: 1}}))
	assert.Error(t, ValidateColumns([]Column{{Name: "a", Start: -1, Width: 1}}))
	assert.Error(t, ValidateColumns([]Column{{Name: "a", Start: 0, Width: 0}}))
	assert.Error(t, ValidateColumns([]Column{{Name: "a", Start: 0, Width: 1}, {Name: "a", Start: 1, Width: 1}}))
	assert.NoError(t, ValidateColumns([]Column{{Name: "a", Start: 0, Width: 1}, {Name: "b", Start: 1, Width: 1}}))

	_, err := Parse("abc", nil, 0)
	assert.Error(t, err)
}

func TestLineWidth(t *testing.T) {
	assert.Equal(t, 20, LineWidth([]Column{{Name: "a", Start: 15, Width: 5}, {Name: "b", Start: 0, Width: 10}}))
}
