// Package mapper turns raw parser records into typed canonical rows.
package mapper

import (
	"fmt"
	"strings"

	"github.com/kosarica/supplier-import/internal/aliases"
	"github.com/kosarica/supplier-import/internal/parsers/number"
	"github.com/kosarica/supplier-import/internal/transform"
	"github.com/kosarica/supplier-import/internal/types"
	"github.com/shopspring/decimal"
)

// RowError rejects a single row. It renders as "Row N: ..." so it can be shown
// to an operator without further context.
type RowError struct {
	Row     int
	Field   string
	Message string
}

func (e *RowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
	}
	return fmt.Sprintf("Row %d: %s: %s", e.Row, e.Field, e.Message)
}

// MapRow reads every mapped target from raw, applies the target's
// transformation and parses the typed fields. Empty values count as absent.
// The returned error is always a *RowError.
func MapRow(raw types.RawRecord, mapping map[string]string, transforms transform.Map) (types.CanonicalRow, error) {
	row := types.CanonicalRow{
		RowNumber: raw.RowNumber,
		Quantity:  1,
	}

	values := make(map[string]string, len(mapping))
	for target, source := range mapping {
		v := transforms.Apply(target, raw.Values[source])
		values[target] = strings.TrimSpace(v)
	}

	row.Identifier = types.ProductIdentifier{
		VariantSKU:  values[aliases.FieldVariantSKU],
		SupplierSKU: values[aliases.FieldSupplierSKU],
		ProductID:   values[aliases.FieldProductID],
	}
	if row.Identifier.Empty() {
		return types.CanonicalRow{}, &RowError{
			Row:     raw.RowNumber,
			Message: "missing product identifier (variant_sku, supplier_sku or product_id)",
		}
	}

	var err error
	if row.GrossPrice, err = optionalDecimal(values, aliases.FieldGrossPrice); err != nil {
		return types.CanonicalRow{}, rowError(raw.RowNumber, aliases.FieldGrossPrice, err)
	}
	if row.NetPrice, err = optionalDecimal(values, aliases.FieldNetPrice); err != nil {
		return types.CanonicalRow{}, rowError(raw.RowNumber, aliases.FieldNetPrice, err)
	}
	if row.DiscountPercentage, err = optionalDecimal(values, aliases.FieldDiscountPercentage); err != nil {
		return types.CanonicalRow{}, rowError(raw.RowNumber, aliases.FieldDiscountPercentage, err)
	}
	if v := values[aliases.FieldQuantity]; v != "" {
		if row.Quantity, err = number.ParseUint(v); err != nil {
			return types.CanonicalRow{}, rowError(raw.RowNumber, aliases.FieldQuantity, err)
		}
	}
	if v := values[aliases.FieldLeadTimeDays]; v != "" {
		days, err := number.ParseUint(v)
		if err != nil {
			return types.CanonicalRow{}, rowError(raw.RowNumber, aliases.FieldLeadTimeDays, err)
		}
		row.LeadTimeDays = types.UintPtr(days)
	}

	if v := values[aliases.FieldDiscountCode]; v != "" {
		row.DiscountCode = types.StringPtr(v)
	}
	if v := values[aliases.FieldNotes]; v != "" {
		row.Notes = types.StringPtr(v)
	}
	row.Description = values[aliases.FieldDescription]
	row.Category = values[aliases.FieldCategory]
	row.Extra = extras(values)

	return row, nil
}

func optionalDecimal(values map[string]string, field string) (*decimal.Decimal, error) {
	v := values[field]
	if v == "" {
		return nil, nil
	}
	d, err := number.ParseDecimal(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func rowError(row int, field string, err error) *RowError {
	return &RowError{Row: row, Field: field, Message: err.Error()}
}

func extras(values map[string]string) map[string]string {
	var out map[string]string
	for target, v := range values {
		if isCanonical(target) || v == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[target] = v
	}
	return out
}

var canonical = func() map[string]bool {
	m := make(map[string]bool, len(aliases.Fields))
	for _, f := range aliases.Fields {
		m[f] = true
	}
	return m
}()

func isCanonical(field string) bool {
	return canonical[field]
}
