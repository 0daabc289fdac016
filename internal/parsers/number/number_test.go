package number

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "european thousands", input: "1.234,56", expected: "1234.56"},
		{name: "european decimal", input: "123,45", expected: "123.45"},
		{name: "us thousands", input: "1,234.56", expected: "1234.56"},
		{name: "plain integer", input: "100", expected: "100"},
		{name: "currency suffix", input: "12,50 EUR", expected: "12.5"},
		{name: "currency symbol", input: "€ 9.99", expected: "9.99"},
		{name: "percent sign", input: "25%", expected: "25"},
		{name: "space thousands", input: "1 299,00", expected: "1299"},
		{name: "negative", input: "-5", expected: "-5"},
		{name: "empty", input: "", wantErr: true},
		{name: "letters", input: "abc", wantErr: true},
		{name: "only currency", input: "EUR", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimal(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestParseUint(t *testing.T) {
	n, err := ParseUint("12")
	require.NoError(t, err)
	assert.Equal(t, uint(12), n)

	n, err = ParseUint("3,00")
	require.NoError(t, err)
	assert.Equal(t, uint(3), n)

	_, err = ParseUint("2,5")
	assert.Error(t, err)

	_, err = ParseUint("-1")
	assert.Error(t, err)

	_, err = ParseUint("x")
	assert.Error(t, err)

	_, err = ParseUint("99999999999999999999")
	assert.ErrorContains(t, err, "too large")

	n, err = ParseUint("4294967295")
	require.NoError(t, err)
	assert.Equal(t, uint(4294967295), n)
}
