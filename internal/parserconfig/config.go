// Package parserconfig describes how a supplier file is read and resolves the
// configuration to use for a given file.
package parserconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kosarica/supplier-import/internal/aliases"
	"github.com/kosarica/supplier-import/internal/parsers/fixedcolumn"
	"github.com/kosarica/supplier-import/internal/transform"
)

// Format identifies the file layout
type Format string

const (
	FormatDelimited   Format = "delimited"
	FormatFixedColumn Format = "fixed_column"
)

// FormatConfig is either *DelimitedConfig or *FixedColumnConfig
type FormatConfig interface {
	Format() Format
	Validate() error
	Mapping() map[string]string
	Transforms() transform.Map
	clone() FormatConfig
}

// ParserConfig is the resolved configuration for one import run
type ParserConfig struct {
	TemplateName string
	Config       FormatConfig
}

// Format returns the layout of the configuration
func (p ParserConfig) Format() Format {
	if p.Config == nil {
		return ""
	}
	return p.Config.Format()
}

// SkipRows is the number of preamble lines dropped before parsing
func (p ParserConfig) SkipRows() int {
	switch c := p.Config.(type) {
	case *DelimitedConfig:
		return c.SkipRows
	case *FixedColumnConfig:
		return c.SkipRows
	}
	return 0
}

// HasHeader reports whether the first line after the preamble names columns
func (p ParserConfig) HasHeader() bool {
	d, ok := p.Config.(*DelimitedConfig)
	return ok && d.HasHeader
}

// Validate checks the format specific configuration
func (p ParserConfig) Validate() error {
	if p.Config == nil {
		return &ConfigError{Reason: "format configuration is missing"}
	}
	return p.Config.Validate()
}

// Clone returns a deep copy
func (p ParserConfig) Clone() ParserConfig {
	out := ParserConfig{TemplateName: p.TemplateName}
	if p.Config != nil {
		out.Config = p.Config.clone()
	}
	return out
}

// ConfigError reports an unusable parser configuration
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "invalid parser config: " + e.Reason
	}
	return fmt.Sprintf("invalid parser config: %s: %s", e.Field, e.Reason)
}

// DelimitedConfig configures the delimited text parser
type DelimitedConfig struct {
	Delimiter       Char              `json:"delimiter" jsonschema:"description=Single character or tab/semicolon/comma/pipe"`
	QuoteChar       Char              `json:"quoteChar"`
	HasHeader       bool              `json:"hasHeader"`
	SkipRows        int               `json:"skipRows" jsonschema:"minimum=0"`
	ColumnMapping   map[string]string `json:"columnMapping"`
	Transformations transform.Map     `json:"transformations,omitempty"`
}

// FixedColumnConfig configures the fixed column parser
type FixedColumnConfig struct {
	SkipRows        int                  `json:"skipRows" jsonschema:"minimum=0"`
	Columns         []fixedcolumn.Column `json:"columns"`
	ColumnMapping   map[string]string    `json:"columnMapping"`
	Transformations transform.Map        `json:"transformations,omitempty"`
}

func (*DelimitedConfig) Format() Format   { return FormatDelimited }
func (*FixedColumnConfig) Format() Format { return FormatFixedColumn }

func (c *DelimitedConfig) Mapping() map[string]string   { return c.ColumnMapping }
func (c *FixedColumnConfig) Mapping() map[string]string { return c.ColumnMapping }

func (c *DelimitedConfig) Transforms() transform.Map   { return c.Transformations }
func (c *FixedColumnConfig) Transforms() transform.Map { return c.Transformations }

func (c *DelimitedConfig) Validate() error {
	if c.Delimiter == 0 {
		return &ConfigError{Field: "delimiter", Reason: "is required"}
	}
	quote := c.QuoteChar
	if quote == 0 {
		quote = '"'
	}
	if quote == c.Delimiter {
		return &ConfigError{Field: "quoteChar", Reason: "must differ from the delimiter"}
	}
	if c.SkipRows < 0 {
		return &ConfigError{Field: "skipRows", Reason: "must not be negative"}
	}
	if !c.HasHeader {
		for target, source := range c.ColumnMapping {
			if !isColumnIndex(source) {
				return &ConfigError{
					Field:  "columnMapping." + target,
					Reason: fmt.Sprintf("%q must be a column index when the file has no header", source),
				}
			}
		}
	}
	return validateMapping(c.ColumnMapping, c.Transformations, nil)
}

func (c *FixedColumnConfig) Validate() error {
	if c.SkipRows < 0 {
		return &ConfigError{Field: "skipRows", Reason: "must not be negative"}
	}
	if err := fixedcolumn.ValidateColumns(c.Columns); err != nil {
		return &ConfigError{Field: "columns", Reason: err.Error()}
	}
	declared := make(map[string]bool, len(c.Columns))
	for _, col := range c.Columns {
		declared[col.Name] = true
	}
	if len(c.ColumnMapping) == 0 {
		return &ConfigError{Field: "columnMapping", Reason: "fixed column layouts need an explicit mapping"}
	}
	return validateMapping(c.ColumnMapping, c.Transformations, declared)
}

// validateMapping checks that an identifier can be mapped and, when the
// source columns are known up front, that every source exists.
func validateMapping(mapping map[string]string, transforms transform.Map, declared map[string]bool) error {
	for target, source := range mapping {
		if strings.TrimSpace(target) == "" || strings.TrimSpace(source) == "" {
			return &ConfigError{Field: "columnMapping", Reason: "targets and sources must not be empty"}
		}
		if declared != nil && !declared[source] {
			return &ConfigError{Field: "columnMapping." + target, Reason: fmt.Sprintf("column %q is not declared", source)}
		}
	}
	if len(mapping) > 0 && !HasIdentifier(mapping) {
		return &ConfigError{Field: "columnMapping", Reason: "no identifier field (variant_sku, supplier_sku or product_id) is mapped"}
	}
	for target := range transforms {
		if _, ok := mapping[target]; !ok && len(mapping) > 0 {
			return &ConfigError{Field: "transformations." + target, Reason: "field is not mapped"}
		}
	}
	return nil
}

// HasIdentifier reports whether the mapping covers an identifying field
func HasIdentifier(mapping map[string]string) bool {
	for _, f := range []string{aliases.FieldVariantSKU, aliases.FieldSupplierSKU, aliases.FieldProductID} {
		if _, ok := mapping[f]; ok {
			return true
		}
	}
	return false
}

func isColumnIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (c *DelimitedConfig) clone() FormatConfig {
	out := *c
	out.ColumnMapping = cloneMapping(c.ColumnMapping)
	out.Transformations = cloneTransforms(c.Transformations)
	return &out
}

func (c *FixedColumnConfig) clone() FormatConfig {
	out := *c
	out.Columns = append([]fixedcolumn.Column(nil), c.Columns...)
	out.ColumnMapping = cloneMapping(c.ColumnMapping)
	out.Transformations = cloneTransforms(c.Transformations)
	return &out
}

func cloneMapping(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneTransforms(m transform.Map) transform.Map {
	if m == nil {
		return nil
	}
	out := make(transform.Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type document struct {
	Format       Format          `json:"format"`
	TemplateName string          `json:"templateName,omitempty"`
	Config       json.RawMessage `json:"config"`
}

func (p ParserConfig) MarshalJSON() ([]byte, error) {
	if p.Config == nil {
		return nil, fmt.Errorf("parser config has no format configuration")
	}
	raw, err := json.Marshal(p.Config)
	if err != nil {
		return nil, err
	}
	return json.Marshal(document{Format: p.Config.Format(), TemplateName: p.TemplateName, Config: raw})
}

func (p *ParserConfig) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return &ConfigError{Reason: "malformed JSON: " + err.Error()}
	}
	if len(doc.Config) == 0 {
		return &ConfigError{Field: "config", Reason: "is required"}
	}

	var cfg FormatConfig
	switch doc.Format {
	case FormatDelimited:
		d := &DelimitedConfig{QuoteChar: '"', HasHeader: true}
		if err := json.Unmarshal(doc.Config, d); err != nil {
			return &ConfigError{Field: "config", Reason: err.Error()}
		}
		cfg = d
	case FormatFixedColumn:
		f := &FixedColumnConfig{}
		if err := json.Unmarshal(doc.Config, f); err != nil {
			return &ConfigError{Field: "config", Reason: err.Error()}
		}
		cfg = f
	case "":
		return &ConfigError{Field: "format", Reason: "is required"}
	default:
		return &ConfigError{Field: "format", Reason: fmt.Sprintf("unknown format %q", doc.Format)}
	}

	p.TemplateName = doc.TemplateName
	p.Config = cfg
	return nil
}

// Decode parses and validates a parser configuration document
func Decode(data []byte) (ParserConfig, error) {
	var p ParserConfig
	if err := json.Unmarshal(data, &p); err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			return ParserConfig{}, cfgErr
		}
		return ParserConfig{}, &ConfigError{Reason: "malformed JSON: " + err.Error()}
	}
	if err := p.Validate(); err != nil {
		return ParserConfig{}, err
	}
	return p, nil
}
