package parserconfig

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/invopop/jsonschema"
)

// Char is a single character that reads and writes as a JSON string.
// The names "tab", "comma", "semicolon" and "pipe" are accepted as well.
type Char rune

var charNames = map[string]Char{
	"tab":       '\t',
	`\t`:        '\t',
	"comma":     ',',
	"semicolon": ';',
	"pipe":      '|',
	"space":     ' ',
}

// ParseChar converts a configured character
func ParseChar(s string) (Char, error) {
	if c, ok := charNames[strings.ToLower(s)]; ok {
		return c, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("expected a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return Char(r), nil
}

func (c Char) String() string {
	if c == 0 {
		return ""
	}
	return string(rune(c))
}

func (c Char) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Char) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("character must be a string: %w", err)
	}
	if s == "" {
		*c = 0
		return nil
	}
	parsed, err := ParseChar(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// JSONSchema describes Char as the string it is written as
func (Char) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "A single character, or one of tab, comma, semicolon, pipe, space",
	}
}
