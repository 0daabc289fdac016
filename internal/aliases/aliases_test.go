package aliases

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "sifra_artikla", Normalize("Šifra artikla"))
	assert.Equal(t, "sifra_artikla", Normalize("  sifra-artikla "))
	assert.Equal(t, "net_price", Normalize("Net Price"))
	assert.Equal(t, "art_nr", Normalize("Art.-Nr."))
	assert.Equal(t, "kolicina", Normalize("Količina"))
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		header string
		field  string
		found  bool
	}{
		{"SKU", FieldVariantSKU, true},
		{"Artikelnummer", FieldSupplierSKU, true},
		{"Listenpreis", FieldGrossPrice, true},
		{"Nettopreis", FieldNetPrice, true},
		{"Rabattgruppe", FieldDiscountCode, true},
		{"Popust", FieldDiscountPercentage, true},
		{"Naziv", FieldDescription, true},
		{"Lead time", FieldLeadTimeDays, true},
		{"colour", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			field, ok := Canonical(tt.header)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.field, field)
		})
	}
}

func TestSuggestMapping(t *testing.T) {
	headers := []string{"SKU", "Gross", "Code", "Net", "Colour", "Price"}
	mapping := SuggestMapping(headers)

	assert.Equal(t, map[string]string{
		FieldVariantSKU:   "SKU",
		FieldGrossPrice:   "Gross",
		FieldDiscountCode: "Code",
		FieldNetPrice:     "Net",
	}, mapping)
	assert.Equal(t, 4, Score(headers))
	assert.Equal(t, []string{"Colour"}, Unmapped(headers))
}

func TestAliasesReturnsCopy(t *testing.T) {
	a := Aliases(FieldNotes)
	a[0] = "changed"
	assert.Equal(t, "notes", Aliases(FieldNotes)[0])
}

func TestEveryFieldHasItsOwnNameAsAlias(t *testing.T) {
	for _, f := range Fields {
		got, ok := Canonical(f)
		assert.True(t, ok, f)
		assert.Equal(t, f, got)
	}
}
