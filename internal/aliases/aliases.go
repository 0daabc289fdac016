// Package aliases maps the header names suppliers use onto canonical row fields.
package aliases

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Canonical target fields understood by the row mapper
const (
	FieldVariantSKU         = "variant_sku"
	FieldSupplierSKU        = "supplier_sku"
	FieldProductID          = "product_id"
	FieldGrossPrice         = "gross_price"
	FieldNetPrice           = "net_price"
	FieldDiscountCode       = "discount_code"
	FieldDiscountPercentage = "discount_percentage"
	FieldDescription        = "description"
	FieldCategory           = "category"
	FieldQuantity           = "quantity"
	FieldLeadTimeDays       = "lead_time_days"
	FieldNotes              = "notes"
)

// Fields lists the canonical fields in the order mappings are suggested
var Fields = []string{
	FieldVariantSKU,
	FieldSupplierSKU,
	FieldProductID,
	FieldGrossPrice,
	FieldNetPrice,
	FieldDiscountCode,
	FieldDiscountPercentage,
	FieldDescription,
	FieldCategory,
	FieldQuantity,
	FieldLeadTimeDays,
	FieldNotes,
}

// table holds the known header variants per canonical field, already normalized
var table = map[string][]string{
	FieldVariantSKU:         {"variant_sku", "sku", "variant", "ean", "barcode", "gtin"},
	FieldSupplierSKU:        {"supplier_sku", "article", "article_no", "article_number", "artikel", "artikelnummer", "art_nr", "item_no", "item_number", "part_no", "part_number", "sifra", "sifra_artikla", "mpn", "ref", "reference"},
	FieldProductID:          {"product_id", "product", "productid", "prod_id"},
	FieldGrossPrice:         {"gross_price", "gross", "list_price", "listprice", "price", "msrp", "rrp", "cijena", "mpc", "vpc", "preis", "listenpreis", "bruto"},
	FieldNetPrice:           {"net_price", "net", "netprice", "purchase_price", "cost", "nabavna_cijena", "netto", "nettopreis", "neto"},
	FieldDiscountCode:       {"discount_code", "code", "rabattgruppe", "rabatt_code", "discount_group", "price_group", "rabatna_grupa", "rg"},
	FieldDiscountPercentage: {"discount_percentage", "discount", "discount_pct", "discount_percent", "rabat", "rabatt", "popust"},
	FieldDescription:        {"description", "desc", "name", "title", "naziv", "opis", "bezeichnung", "product_name"},
	FieldCategory:           {"category", "group", "kategorija", "grupa", "warengruppe", "product_group"},
	FieldQuantity:           {"quantity", "qty", "pack", "pack_size", "kolicina", "menge", "moq"},
	FieldLeadTimeDays:       {"lead_time_days", "lead_time", "leadtime", "delivery_days", "rok_isporuke", "lieferzeit"},
	FieldNotes:              {"notes", "note", "comment", "remarks", "napomena", "bemerkung"},
}

var reverse = buildReverse()

func buildReverse() map[string]string {
	out := make(map[string]string)
	for _, field := range Fields {
		for _, alias := range table[field] {
			if _, taken := out[alias]; !taken {
				out[alias] = field
			}
		}
	}
	return out
}

// Normalize lowercases a header, strips diacritics and collapses separators to
// underscores, so "Šifra artikla" and "sifra-artikla" compare equal.
func Normalize(header string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, header)
	if err != nil {
		stripped = header
	}
	stripped = strings.Map(func(r rune) rune {
		switch r {
		case 'đ', 'Đ':
			return 'd'
		case 'ß':
			return 's'
		}
		return r
	}, stripped)

	var b strings.Builder
	lastSep := true
	for _, r := range strings.ToLower(strings.TrimSpace(stripped)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSep = false
			continue
		}
		if !lastSep {
			b.WriteByte('_')
			lastSep = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// Canonical returns the canonical field a header name refers to
func Canonical(header string) (string, bool) {
	field, ok := reverse[Normalize(header)]
	return field, ok
}

// Aliases returns the known variants for a canonical field
func Aliases(field string) []string {
	out := make([]string, len(table[field]))
	copy(out, table[field])
	return out
}

// SuggestMapping proposes a column mapping (target field -> source header) for
// the given headers. The first header matching a field wins.
func SuggestMapping(headers []string) map[string]string {
	mapping := make(map[string]string)
	for _, h := range headers {
		field, ok := Canonical(h)
		if !ok {
			continue
		}
		if _, taken := mapping[field]; taken {
			continue
		}
		mapping[field] = h
	}
	return mapping
}

// Score counts how many headers resolve to distinct canonical fields
func Score(headers []string) int {
	return len(SuggestMapping(headers))
}

// Unmapped returns headers that match no canonical field, sorted
func Unmapped(headers []string) []string {
	var out []string
	for _, h := range headers {
		if _, ok := Canonical(h); !ok {
			out = append(out, h)
		}
	}
	sort.Strings(out)
	return out
}
