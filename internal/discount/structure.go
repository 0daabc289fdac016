// Package discount models the pricing conventions suppliers use and validates
// operator supplied discount configuration.
package discount

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
)

// Type tags a discount structure
type Type string

const (
	TypeCodeMapping Type = "code_mapping"
	TypePercentage  Type = "percentage"
	TypeCalculated  Type = "calculated"
	TypeNetOnly     Type = "net_only"
)

var (
	minPercentage = decimal.Zero
	maxPercentage = decimal.NewFromInt(100)
)

// Structure is one of CodeMapping, Percentage, Calculated or NetOnly
type Structure interface {
	Type() Type
	sealed()
}

// CodeMapping maps supplier discount codes to percentages
type CodeMapping struct {
	Mappings    map[string]decimal.Decimal
	Description string
}

// Percentage applies a single discount to every line that carries none
type Percentage struct {
	DefaultPercentage decimal.Decimal
	Description       string
}

// Calculated suppliers deliver gross and net prices; the discount is derived
type Calculated struct {
	Description string
}

// NetOnly suppliers deliver net prices only
type NetOnly struct {
	Description string
}

func (CodeMapping) Type() Type { return TypeCodeMapping }
func (Percentage) Type() Type  { return TypePercentage }
func (Calculated) Type() Type  { return TypeCalculated }
func (NetOnly) Type() Type     { return TypeNetOnly }

func (CodeMapping) sealed() {}
func (Percentage) sealed()  {}
func (Calculated) sealed()  {}
func (NetOnly) sealed()     {}

// Lookup returns the percentage configured for code
func (c CodeMapping) Lookup(code string) (decimal.Decimal, bool) {
	p, ok := c.Mappings[code]
	return p, ok
}

// Codes returns the configured codes in sorted order
func (c CodeMapping) Codes() []string {
	codes := make([]string, 0, len(c.Mappings))
	for code := range c.Mappings {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (c CodeMapping) MarshalJSON() ([]byte, error) {
	mappings := make(map[string]decimal.Decimal, len(c.Mappings))
	for k, v := range c.Mappings {
		mappings[k] = v
	}
	return json.Marshal(struct {
		Type        Type                       `json:"type"`
		Mappings    map[string]decimal.Decimal `json:"mappings"`
		Description string                     `json:"description,omitempty"`
	}{TypeCodeMapping, mappings, c.Description})
}

func (p Percentage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type              Type            `json:"type"`
		DefaultPercentage decimal.Decimal `json:"default_percentage"`
		Description       string          `json:"description,omitempty"`
	}{TypePercentage, p.DefaultPercentage, p.Description})
}

func (c Calculated) MarshalJSON() ([]byte, error) {
	return marshalTagOnly(TypeCalculated, c.Description)
}

func (n NetOnly) MarshalJSON() ([]byte, error) {
	return marshalTagOnly(TypeNetOnly, n.Description)
}

func marshalTagOnly(t Type, description string) ([]byte, error) {
	return json.Marshal(struct {
		Type        Type   `json:"type"`
		Description string `json:"description,omitempty"`
	}{t, description})
}
