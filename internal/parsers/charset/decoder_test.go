package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		expected Encoding
	}{
		{name: "windows-1250 diacritics", content: []byte{'S', 0x8A, 'i', 0xE8}, expected: EncodingWindows1250},
		{name: "utf-8 bom", content: []byte{0xEF, 0xBB, 0xBF, 'a'}, expected: EncodingUTF8},
		{name: "utf-16 bom", content: []byte{0xFF, 0xFE, 'a', 0}, expected: EncodingUTF16LE},
		{name: "plain ascii", content: []byte("sku,price"), expected: EncodingUTF8},
		{name: "utf-8 diacritics", content: []byte("šifra,čep"), expected: EncodingUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectEncoding(tt.content))
		})
	}
}

func TestDecodeWindows1250(t *testing.T) {
	// "Šifra;Čep" in Windows-1250
	data := []byte{0x8A, 'i', 'f', 'r', 'a', ';', 0xC8, 'e', 'p'}

	out, enc, err := Decode(data, EncodingAuto)
	require.NoError(t, err)
	assert.Equal(t, EncodingWindows1250, enc)
	assert.Equal(t, "Šifra;Čep", out)
}

func TestDecodeStripsBOM(t *testing.T) {
	out, enc, err := Decode([]byte("\xEF\xBB\xBFsku"), EncodingAuto)
	require.NoError(t, err)
	assert.Equal(t, EncodingUTF8, enc)
	assert.Equal(t, "sku", out)
}

func TestDecodeUTF16(t *testing.T) {
	out, _, err := Decode([]byte{0xFF, 0xFE, 'o', 0, 'k', 0}, EncodingAuto)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestDecodeInvalidUTF8(t *testing.T) {
	_, _, err := Decode([]byte{0xC3, 0x28}, EncodingUTF8)
	assert.Error(t, err)
}

func TestParseEncoding(t *testing.T) {
	enc, err := ParseEncoding("CP1250")
	require.NoError(t, err)
	assert.Equal(t, EncodingWindows1250, enc)

	enc, err = ParseEncoding("auto")
	require.NoError(t, err)
	assert.Equal(t, EncodingAuto, enc)

	_, err = ParseEncoding("ebcdic")
	assert.Error(t, err)
}
