package transform

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// document is the wire shape of a transformation
type document struct {
	Type        Kind             `json:"type"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	Start       *int             `json:"start,omitempty"`
	Length      *int             `json:"length,omitempty"`
	InputFormat string           `json:"inputFormat,omitempty"`
}

// Decode builds a Transformation from its JSON document
func Decode(data []byte) (Transformation, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid transformation: %w", err)
	}
	return fromDocument(doc)
}

func fromDocument(doc document) (Transformation, error) {
	switch doc.Type {
	case KindDivide:
		if doc.Value == nil {
			return nil, fmt.Errorf("divide requires a value")
		}
		if doc.Value.IsZero() {
			return nil, fmt.Errorf("divide by zero")
		}
		return Divide{Divisor: *doc.Value}, nil
	case KindMultiply:
		if doc.Value == nil {
			return nil, fmt.Errorf("multiply requires a value")
		}
		return Multiply{Multiplier: *doc.Value}, nil
	case KindTrim:
		return Trim{}, nil
	case KindUppercase:
		return Uppercase{}, nil
	case KindLowercase:
		return Lowercase{}, nil
	case KindSubstring:
		start := 0
		if doc.Start != nil {
			start = *doc.Start
		}
		if start < 0 {
			return nil, fmt.Errorf("substring start must not be negative")
		}
		if doc.Length != nil && *doc.Length < 0 {
			return nil, fmt.Errorf("substring length must not be negative")
		}
		return Substring{Start: start, Length: doc.Length}, nil
	case KindDateReformat:
		if doc.InputFormat == "" {
			return nil, fmt.Errorf("date requires an inputFormat")
		}
		return DateReformat{InputFormat: doc.InputFormat}, nil
	case "":
		return nil, fmt.Errorf("transformation type is required")
	default:
		return nil, fmt.Errorf("unknown transformation type %q", doc.Type)
	}
}

func toDocument(t Transformation) document {
	doc := document{Type: t.Kind()}
	switch v := t.(type) {
	case Divide:
		doc.Value = &v.Divisor
	case Multiply:
		doc.Value = &v.Multiplier
	case Substring:
		doc.Start = &v.Start
		doc.Length = v.Length
	case DateReformat:
		doc.InputFormat = v.InputFormat
	case Trim, Uppercase, Lowercase:
	}
	return doc
}

// Encode renders a Transformation as its JSON document
func Encode(t Transformation) ([]byte, error) {
	return json.Marshal(toDocument(t))
}

// Map holds at most one transformation per target field
type Map map[string]Transformation

// Apply runs the transformation configured for field, if any
func (m Map) Apply(field, value string) string {
	t, ok := m[field]
	if !ok || t == nil {
		return value
	}
	return t.Apply(value)
}

func (m Map) MarshalJSON() ([]byte, error) {
	docs := make(map[string]document, len(m))
	for field, t := range m {
		if t == nil {
			continue
		}
		docs[field] = toDocument(t)
	}
	return json.Marshal(docs)
}

func (m *Map) UnmarshalJSON(data []byte) error {
	var docs map[string]document
	if err := json.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("invalid transformations: %w", err)
	}
	out := make(Map, len(docs))
	for field, doc := range docs {
		t, err := fromDocument(doc)
		if err != nil {
			return fmt.Errorf("transformation for %s: %w", field, err)
		}
		out[field] = t
	}
	*m = out
	return nil
}
