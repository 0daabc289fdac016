package discount

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError describes why a discount structure was rejected
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid discount structure: " + e.Message
	}
	return fmt.Sprintf("invalid discount structure: %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ParseJSON decodes and validates a discount structure document
func ParseJSON(data []byte) (Structure, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var candidate any
	if err := dec.Decode(&candidate); err != nil {
		return nil, &ValidationError{Message: "malformed JSON: " + err.Error()}
	}
	return Validate(candidate)
}

// Validate checks a decoded candidate (as produced by encoding/json or
// yaml.v3) and returns the typed structure it describes. Percentages must lie
// in [0, 100]; both bounds are valid.
func Validate(candidate any) (Structure, error) {
	obj, ok := asObject(candidate)
	if !ok {
		return nil, &ValidationError{Message: "must be an object"}
	}

	rawType, present := obj["type"]
	if !present || rawType == nil {
		return nil, invalid("type", "is required")
	}
	tag, ok := rawType.(string)
	if !ok {
		return nil, invalid("type", "must be a string")
	}

	description := ""
	if d, ok := obj["description"]; ok && d != nil {
		s, ok := d.(string)
		if !ok {
			return nil, invalid("description", "must be a string")
		}
		description = s
	}

	switch Type(tag) {
	case TypeCodeMapping:
		rawMappings, ok := asObject(obj["mappings"])
		if !ok {
			return nil, invalid("mappings", "must be an object of code to percentage")
		}
		mappings := make(map[string]decimal.Decimal, len(rawMappings))
		for code, raw := range rawMappings {
			field := "mappings." + code
			if strings.TrimSpace(code) == "" {
				return nil, invalid("mappings", "discount code must not be empty")
			}
			p, err := percentage(field, raw)
			if err != nil {
				return nil, err
			}
			mappings[code] = p
		}
		return CodeMapping{Mappings: mappings, Description: description}, nil

	case TypePercentage:
		raw, present := obj["default_percentage"]
		if !present {
			return nil, invalid("default_percentage", "is required")
		}
		p, err := percentage("default_percentage", raw)
		if err != nil {
			return nil, err
		}
		return Percentage{DefaultPercentage: p, Description: description}, nil

	case TypeCalculated:
		return Calculated{Description: description}, nil

	case TypeNetOnly:
		return NetOnly{Description: description}, nil

	default:
		return nil, invalid("type", "unknown discount structure type %q", tag)
	}
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		// yaml.v3 keeps unquoted keys such as 10 as ints
		for k, val := range m {
			switch k.(type) {
			case map[string]any, map[any]any, []any, nil:
				return nil, false
			}
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func percentage(field string, raw any) (decimal.Decimal, error) {
	var p decimal.Decimal
	switch v := raw.(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, invalid(field, "must be a number")
		}
		p = d
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, invalid(field, "must be a finite number")
		}
		p = decimal.NewFromFloat(v)
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return decimal.Zero, invalid(field, "must be a finite number")
		}
		p = decimal.NewFromFloat32(v)
	case int:
		p = decimal.NewFromInt(int64(v))
	case int64:
		p = decimal.NewFromInt(v)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, invalid(field, "must be a number, got %q", v)
		}
		p = d
	case decimal.Decimal:
		p = v
	default:
		return decimal.Zero, invalid(field, "must be a number")
	}

	if p.LessThan(minPercentage) || p.GreaterThan(maxPercentage) {
		return decimal.Zero, invalid(field, "percentage %s is outside 0-100", p.String())
	}
	return p, nil
}
