package types

import (
	"github.com/shopspring/decimal"
)

// RawRecord is one extracted line before mapping. Values are keyed by header
// name, or by 0-based column index when the file has no header.
type RawRecord struct {
	RowNumber int
	Values    map[string]string
}

// ProductIdentifier holds the identifying keys of a price-list line.
// At least one of the three must be set for a row to be importable.
type ProductIdentifier struct {
	VariantSKU  string `json:"variantSku,omitempty"`
	SupplierSKU string `json:"supplierSku,omitempty"`
	ProductID   string `json:"productId,omitempty"`
}

// Empty reports whether no identifying key is present
func (p ProductIdentifier) Empty() bool {
	return p.VariantSKU == "" && p.SupplierSKU == "" && p.ProductID == ""
}

// Primary returns the most specific identifier available
func (p ProductIdentifier) Primary() string {
	switch {
	case p.VariantSKU != "":
		return p.VariantSKU
	case p.SupplierSKU != "":
		return p.SupplierSKU
	default:
		return p.ProductID
	}
}

// CanonicalRow is the format independent representation of one supplier line
type CanonicalRow struct {
	RowNumber          int               `json:"rowNumber"`
	Identifier         ProductIdentifier `json:"identifier"`
	GrossPrice         *decimal.Decimal  `json:"grossPrice,omitempty"`
	DiscountCode       *string           `json:"discountCode,omitempty"`
	DiscountPercentage *decimal.Decimal  `json:"discountPercentage,omitempty"`
	NetPrice           *decimal.Decimal  `json:"netPrice,omitempty"`
	Description        string            `json:"description,omitempty"`
	Category           string            `json:"category,omitempty"`
	Quantity           uint              `json:"quantity"`
	LeadTimeDays       *uint             `json:"leadTimeDays,omitempty"`
	Notes              *string           `json:"notes,omitempty"`
	Extra              map[string]string `json:"extra,omitempty"`
}

// ParseResult is the outcome of one import run. Items only contains rows that
// were mapped and priced; every other row left an entry in Errors.
type ParseResult struct {
	RunID         string         `json:"runId,omitempty"`
	Items         []CanonicalRow `json:"items"`
	Errors        []string       `json:"errors"`
	Warnings      []string       `json:"warnings"`
	TotalRows     int            `json:"totalRows"`
	ProcessedRows int            `json:"processedRows"`
	ErrorCount    int            `json:"errorCount"`
	WarningCount  int            `json:"warningCount"`
}

// StringPtr returns a pointer to the given string
func StringPtr(s string) *string {
	return &s
}

// UintPtr returns a pointer to the given uint
func UintPtr(u uint) *uint {
	return &u
}
