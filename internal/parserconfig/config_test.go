package parserconfig

import (
	"encoding/json"
	"testing"

	"github.com/kosarica/supplier-import/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDelimited(t *testing.T) {
	data := []byte(`{
		"format": "delimited",
		"config": {
			"delimiter": ";",
			"hasHeader": true,
			"skipRows": 2,
			"columnMapping": {"supplier_sku": "Art.Nr", "gross_price": "Preis"},
			"transformations": {"gross_price": {"type": "divide", "value": "100"}}
		}
	}`)

	cfg, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, FormatDelimited, cfg.Format())

	d, ok := cfg.Config.(*DelimitedConfig)
	require.True(t, ok)
	assert.Equal(t, Char(';'), d.Delimiter)
	assert.Equal(t, Char('"'), d.QuoteChar, "quote defaults to double quote")
	assert.Equal(t, 2, d.SkipRows)
	assert.Equal(t, "Art.Nr", d.ColumnMapping["supplier_sku"])
	assert.Equal(t, "12.5", d.Transformations.Apply("gross_price", "1250"))
}

func TestDecodeFixedColumn(t *testing.T) {
	data := []byte(`{
		"format": "fixed_column",
		"templateName": "custom",
		"config": {
			"columns": [
				{"name": "sku", "start": 0, "width": 10},
				{"name": "price", "start": 10, "width": 8}
			],
			"columnMapping": {"supplier_sku": "sku", "gross_price": "price"}
		}
	}`)

	cfg, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.TemplateName)
	f, ok := cfg.Config.(*FixedColumnConfig)
	require.True(t, ok)
	assert.Len(t, f.Columns, 2)
}

func TestDecodeRejectsInvalidConfigs(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{"malformed", `{"format":`, ""},
		{"missing format", `{"config":{}}`, "format"},
		{"unknown format", `{"format":"xml","config":{}}`, "format"},
		{"missing config", `{"format":"delimited"}`, "config"},
		{"delimiter equals quote", `{"format":"delimited","config":{"delimiter":"\"","quoteChar":"\""}}`, "quoteChar"},
		{"negative skip", `{"format":"delimited","config":{"delimiter":",","skipRows":-1}}`, "skipRows"},
		{"no identifier", `{"format":"delimited","config":{"delimiter":",","columnMapping":{"gross_price":"Price"}}}`, "columnMapping"},
		{"header-less named source", `{"format":"delimited","config":{"delimiter":",","hasHeader":false,"columnMapping":{"supplier_sku":"SKU"}}}`, "columnMapping.supplier_sku"},
		{"undeclared fixed column", `{"format":"fixed_column","config":{"columns":[{"name":"a","start":0,"width":5}],"columnMapping":{"supplier_sku":"b"}}}`, "columnMapping.supplier_sku"},
		{"fixed without mapping", `{"format":"fixed_column","config":{"columns":[{"name":"a","start":0,"width":5}]}}`, "columnMapping"},
		{"transform on unmapped field", `{"format":"delimited","config":{"delimiter":",","columnMapping":{"supplier_sku":"SKU"},"transformations":{"gross_price":{"type":"trim"}}}}`, "transformations.gross_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestParserConfigJSONRoundTripKeepsShape(t *testing.T) {
	cfg, ok := DefaultRegistry().Lookup(TemplateVendorFixedNumeric)
	require.True(t, ok)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "fixed_column", doc["format"])
	assert.Equal(t, TemplateVendorFixedNumeric, doc["templateName"])

	back, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Config.Mapping(), back.Config.Mapping())
}

func TestCharNames(t *testing.T) {
	for in, want := range map[string]Char{"tab": '\t', "\t": '\t', "semicolon": ';', "|": '|'} {
		got, err := ParseChar(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseChar(";;")
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := ParserConfig{Config: &DelimitedConfig{
		Delimiter:       ',',
		ColumnMapping:   map[string]string{"supplier_sku": "SKU"},
		Transformations: transform.Map{"supplier_sku": transform.Trim{}},
	}}
	cp := cfg.Clone()
	cp.Config.(*DelimitedConfig).ColumnMapping["supplier_sku"] = "Other"
	assert.Equal(t, "SKU", cfg.Config.Mapping()["supplier_sku"])
}
