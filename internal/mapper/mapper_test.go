package mapper

import (
	"testing"

	"github.com/kosarica/supplier-import/internal/transform"
	"github.com/kosarica/supplier-import/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(row int, values map[string]string) types.RawRecord {
	return types.RawRecord{RowNumber: row, Values: values}
}

func TestMapRowFullRecord(t *testing.T) {
	mapping := map[string]string{
		"supplier_sku":   "Art",
		"gross_price":    "Preis",
		"net_price":      "Netto",
		"discount_code":  "RG",
		"description":    "Text",
		"quantity":       "VPE",
		"lead_time_days": "LZ",
		"notes":          "Hinweis",
		"colour":         "Farbe",
	}
	raw := record(4, map[string]string{
		"Art":     " 4006381 ",
		"Preis":   "1.234,50",
		"Netto":   "999,00",
		"RG":      "A",
		"Text":    "Schraube",
		"VPE":     "10",
		"LZ":      "3",
		"Hinweis": "",
		"Farbe":   "rot",
	})

	row, err := MapRow(raw, mapping, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, row.RowNumber)
	assert.Equal(t, "4006381", row.Identifier.SupplierSKU)
	assert.True(t, row.GrossPrice.Equal(decimal.RequireFromString("1234.50")))
	assert.True(t, row.NetPrice.Equal(decimal.RequireFromString("999")))
	assert.Nil(t, row.DiscountPercentage)
	require.NotNil(t, row.DiscountCode)
	assert.Equal(t, "A", *row.DiscountCode)
	assert.Equal(t, uint(10), row.Quantity)
	require.NotNil(t, row.LeadTimeDays)
	assert.Equal(t, uint(3), *row.LeadTimeDays)
	assert.Nil(t, row.Notes, "empty notes are absent")
	assert.Equal(t, map[string]string{"colour": "rot"}, row.Extra)
}

func TestMapRowDefaults(t *testing.T) {
	row, err := MapRow(record(1, map[string]string{"sku": "X"}), map[string]string{"variant_sku": "sku"}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(1), row.Quantity)
	assert.Nil(t, row.GrossPrice)
	assert.Nil(t, row.LeadTimeDays)
	assert.Nil(t, row.Extra)
}

func TestMapRowAppliesTransformations(t *testing.T) {
	length := 6
	transforms := transform.Map{
		"gross_price":  transform.Divide{Divisor: decimal.NewFromInt(100)},
		"supplier_sku": transform.Substring{Start: 0, Length: &length},
		"description":  transform.Uppercase{},
	}
	raw := record(2, map[string]string{"0": "400638-XYZ", "1": "12550", "2": "bolt"})
	mapping := map[string]string{"supplier_sku": "0", "gross_price": "1", "description": "2"}

	row, err := MapRow(raw, mapping, transforms)
	require.NoError(t, err)
	assert.Equal(t, "400638", row.Identifier.SupplierSKU)
	assert.True(t, row.GrossPrice.Equal(decimal.RequireFromString("125.5")))
	assert.Equal(t, "BOLT", row.Description)
}

func TestMapRowErrors(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		field   string
		message string
	}{
		{"missing identifier", map[string]string{"sku": "  ", "price": "1"}, "", "Row 7: missing product identifier"},
		{"bad gross", map[string]string{"sku": "A", "price": "abc"}, "gross_price", "Row 7: gross_price:"},
		{"bad quantity", map[string]string{"sku": "A", "qty": "2.5"}, "quantity", "Row 7: quantity:"},
		{"negative quantity", map[string]string{"sku": "A", "qty": "-1"}, "quantity", "Row 7: quantity:"},
		{"bad lead time", map[string]string{"sku": "A", "lead": "soon"}, "lead_time_days", "Row 7: lead_time_days:"},
	}
	mapping := map[string]string{"supplier_sku": "sku", "gross_price": "price", "quantity": "qty", "lead_time_days": "lead"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MapRow(record(7, tt.values), mapping, nil)
			require.Error(t, err)
			var rowErr *RowError
			require.ErrorAs(t, err, &rowErr)
			assert.Equal(t, 7, rowErr.Row)
			assert.Equal(t, tt.field, rowErr.Field)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestMapRowMissingSourceColumnIsAbsent(t *testing.T) {
	row, err := MapRow(record(1, map[string]string{"sku": "A"}), map[string]string{"supplier_sku": "sku", "net_price": "Net"}, nil)
	require.NoError(t, err)
	assert.Nil(t, row.NetPrice)
}
