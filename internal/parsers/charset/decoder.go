// Package charset decodes supplier files into UTF-8 text
package charset

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding represents a text encoding
type Encoding string

const (
	EncodingAuto        Encoding = ""
	EncodingUTF8        Encoding = "utf-8"
	EncodingUTF16LE     Encoding = "utf-16le"
	EncodingWindows1250 Encoding = "windows-1250"
	EncodingWindows1252 Encoding = "windows-1252"
	EncodingISO88592    Encoding = "iso-8859-2"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// ParseEncoding accepts the usual spellings of the supported encodings
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return EncodingAuto, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "utf-16le", "utf16le", "utf-16":
		return EncodingUTF16LE, nil
	case "windows-1250", "cp1250", "win1250":
		return EncodingWindows1250, nil
	case "windows-1252", "cp1252", "win1252":
		return EncodingWindows1252, nil
	case "iso-8859-2", "latin2", "latin-2":
		return EncodingISO88592, nil
	}
	return "", fmt.Errorf("unsupported encoding %q", name)
}

// DetectEncoding guesses the encoding of data. Byte order marks win; valid
// UTF-8 stays UTF-8; anything else is treated as Windows-1250, the most
// common legacy encoding in supplier exports we receive.
func DetectEncoding(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return EncodingUTF8
	case bytes.HasPrefix(data, bomUTF16LE):
		return EncodingUTF16LE
	case utf8.Valid(data):
		return EncodingUTF8
	default:
		return EncodingWindows1250
	}
}

// Decode converts data to a UTF-8 string. EncodingAuto detects the encoding.
// A leading byte order mark is removed.
func Decode(data []byte, enc Encoding) (string, Encoding, error) {
	if enc == EncodingAuto {
		enc = DetectEncoding(data)
	}

	var decoder encoding.Encoding
	switch enc {
	case EncodingUTF8:
		if !utf8.Valid(data) {
			return "", enc, fmt.Errorf("content is not valid UTF-8")
		}
		return strings.TrimPrefix(string(data), "\uFEFF"), enc, nil
	case EncodingUTF16LE:
		decoder = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case EncodingWindows1250:
		decoder = charmap.Windows1250
	case EncodingWindows1252:
		decoder = charmap.Windows1252
	case EncodingISO88592:
		decoder = charmap.ISO8859_2
	default:
		return "", enc, fmt.Errorf("unsupported encoding %q", enc)
	}

	out, err := decoder.NewDecoder().Bytes(data)
	if err != nil {
		return "", enc, fmt.Errorf("failed to decode %s content: %w", enc, err)
	}
	return strings.TrimPrefix(string(out), "\uFEFF"), enc, nil
}
