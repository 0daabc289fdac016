package parserconfig

import (
	"sort"

	"github.com/kosarica/supplier-import/internal/aliases"
	"github.com/kosarica/supplier-import/internal/parsers/fixedcolumn"
	"github.com/kosarica/supplier-import/internal/transform"
	"github.com/shopspring/decimal"
)

const (
	TemplateGenericCSV         = "generic_csv"
	TemplateSemicolonCSV       = "semicolon_csv"
	TemplateTabDelimited       = "tab_delimited"
	TemplatePipeDelimited      = "pipe_delimited"
	TemplateGenericFixed       = "generic_fixed"
	TemplateVendorFixedNumeric = "vendor_fixed_numeric"
)

// Registry holds named templates. It is never modified after construction and
// hands out copies, so it is safe for concurrent use.
type Registry struct {
	templates map[string]ParserConfig
}

// NewRegistry builds a registry from the given templates, keyed by TemplateName
func NewRegistry(templates ...ParserConfig) *Registry {
	r := &Registry{templates: make(map[string]ParserConfig, len(templates))}
	for _, t := range templates {
		r.templates[t.TemplateName] = t.Clone()
	}
	return r
}

// DefaultRegistry returns the built-in templates
func DefaultRegistry() *Registry {
	return NewRegistry(builtinTemplates()...)
}

// Lookup returns a copy of the named template
func (r *Registry) Lookup(name string) (ParserConfig, bool) {
	t, ok := r.templates[name]
	if !ok {
		return ParserConfig{}, false
	}
	return t.Clone(), true
}

// Names returns the template names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func delimitedTemplate(name string, delimiter Char) ParserConfig {
	return ParserConfig{
		TemplateName: name,
		Config: &DelimitedConfig{
			Delimiter:     delimiter,
			QuoteChar:     '"',
			HasHeader:     true,
			ColumnMapping: map[string]string{},
		},
	}
}

// VendorFixedColumns is the 120 character layout of numeric-article vendor
// price lists. Prices are in cents.
var VendorFixedColumns = []fixedcolumn.Column{
	{Name: "article", Start: 0, Width: 13},
	{Name: "description", Start: 13, Width: 60},
	{Name: "gross_cents", Start: 73, Width: 12},
	{Name: "discount_group", Start: 85, Width: 5},
	{Name: "pack_quantity", Start: 90, Width: 6},
	{Name: "lead_time", Start: 96, Width: 4},
	{Name: "remark", Start: 100, Width: 20},
}

// GenericFixedColumns is a 100 character layout with named canonical columns
var GenericFixedColumns = []fixedcolumn.Column{
	{Name: aliases.FieldSupplierSKU, Start: 0, Width: 20},
	{Name: aliases.FieldDescription, Start: 20, Width: 50},
	{Name: aliases.FieldGrossPrice, Start: 70, Width: 12},
	{Name: aliases.FieldDiscountCode, Start: 82, Width: 6},
	{Name: aliases.FieldNetPrice, Start: 88, Width: 12},
}

func builtinTemplates() []ParserConfig {
	genericMapping := make(map[string]string, len(GenericFixedColumns))
	for _, c := range GenericFixedColumns {
		genericMapping[c.Name] = c.Name
	}

	return []ParserConfig{
		delimitedTemplate(TemplateGenericCSV, ','),
		delimitedTemplate(TemplateSemicolonCSV, ';'),
		delimitedTemplate(TemplateTabDelimited, '\t'),
		delimitedTemplate(TemplatePipeDelimited, '|'),
		{
			TemplateName: TemplateGenericFixed,
			Config: &FixedColumnConfig{
				Columns:       GenericFixedColumns,
				ColumnMapping: genericMapping,
			},
		},
		{
			TemplateName: TemplateVendorFixedNumeric,
			Config: &FixedColumnConfig{
				Columns: VendorFixedColumns,
				ColumnMapping: map[string]string{
					aliases.FieldSupplierSKU:  "article",
					aliases.FieldDescription:  "description",
					aliases.FieldGrossPrice:   "gross_cents",
					aliases.FieldDiscountCode: "discount_group",
					aliases.FieldQuantity:     "pack_quantity",
					aliases.FieldLeadTimeDays: "lead_time",
					aliases.FieldNotes:        "remark",
				},
				Transformations: transform.Map{
					aliases.FieldGrossPrice: transform.Divide{Divisor: decimal.NewFromInt(100)},
				},
			},
		},
	}
}
