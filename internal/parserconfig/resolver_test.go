package parserconfig

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(buf *bytes.Buffer) *Resolver {
	return NewResolver(DefaultRegistry(), zerolog.New(buf))
}

func TestResolveExplicitConfigWins(t *testing.T) {
	var buf bytes.Buffer
	r := newTestResolver(&buf)

	res := r.Resolve(Input{
		SupplierID:     "sup-1",
		ExplicitConfig: []byte(`{"format":"delimited","config":{"delimiter":"|","columnMapping":{"supplier_sku":"Code"}}}`),
		TemplateName:   TemplateSemicolonCSV,
		Content:        "Code;Price\nA;1\n",
	})

	assert.Equal(t, SourceExplicit, res.Source)
	d := res.Config.Config.(*DelimitedConfig)
	assert.Equal(t, Char('|'), d.Delimiter)
	assert.Equal(t, map[string]string{"supplier_sku": "Code"}, d.ColumnMapping)
	assert.Empty(t, res.Notes)
	assert.Empty(t, buf.String())
}

func TestResolveInvalidExplicitFallsThroughToTemplate(t *testing.T) {
	var buf bytes.Buffer
	r := newTestResolver(&buf)

	res := r.Resolve(Input{
		SupplierID:     "sup-1",
		ExplicitConfig: []byte(`{"format":"delimited","config":{"delimiter":",","skipRows":-3}}`),
		TemplateName:   TemplateSemicolonCSV,
		Content:        "Sifra;Cijena\nA;1\n",
	})

	assert.Equal(t, SourceTemplate, res.Source)
	assert.Equal(t, TemplateSemicolonCSV, res.Config.TemplateName)
	require.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], "skipRows")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestResolveUnknownTemplateFallsThroughToDetection(t *testing.T) {
	var buf bytes.Buffer
	r := newTestResolver(&buf)

	res := r.Resolve(Input{
		SupplierID:   "sup-1",
		TemplateName: "does_not_exist",
		Content:      "SKU\tPrice\nA\t1\n",
	})

	assert.Equal(t, SourceDetected, res.Source)
	assert.Equal(t, TemplateTabDelimited, res.Config.TemplateName)
	require.NotNil(t, res.Detection)
	assert.Contains(t, res.Notes[0], "does_not_exist")
}

func TestResolveFallback(t *testing.T) {
	r := newTestResolver(&bytes.Buffer{})

	res := r.Resolve(Input{Content: "only\nvalues\n"})

	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, TemplateGenericCSV, res.Config.TemplateName)
}

func TestResolveSuggestsMappingFromHeader(t *testing.T) {
	r := newTestResolver(&bytes.Buffer{})

	res := r.Resolve(Input{
		TemplateName: TemplateGenericCSV,
		Content:      "SKU,Price,Colour\nA,1,red\n",
	})

	mapping := res.Config.Config.Mapping()
	assert.Equal(t, "SKU", mapping["variant_sku"])
	assert.Equal(t, "Price", mapping["gross_price"])
	assert.Equal(t, "Colour", mapping["Colour"], "unknown headers are carried as extra fields")
	assert.Empty(t, res.Notes)
}

func TestResolveNotesMissingIdentifier(t *testing.T) {
	r := newTestResolver(&bytes.Buffer{})

	res := r.Resolve(Input{TemplateName: TemplateGenericCSV, Content: "Foo,Bar\n1,2\n"})

	require.NotEmpty(t, res.Notes)
	assert.Contains(t, res.Notes[0], "identifier")
}

func TestResolveDoesNotMutateRegistry(t *testing.T) {
	reg := DefaultRegistry()
	r := NewResolver(reg, zerolog.Nop())

	r.Resolve(Input{TemplateName: TemplateGenericCSV, Content: "SKU,Price\nA,1\n"})

	tmpl, ok := reg.Lookup(TemplateGenericCSV)
	require.True(t, ok)
	assert.Empty(t, tmpl.Config.Mapping())
}

func TestRegistryNames(t *testing.T) {
	assert.Equal(t, []string{
		TemplateGenericCSV,
		TemplateGenericFixed,
		TemplatePipeDelimited,
		TemplateSemicolonCSV,
		TemplateTabDelimited,
		TemplateVendorFixedNumeric,
	}, DefaultRegistry().Names())

	for _, name := range DefaultRegistry().Names() {
		cfg, _ := DefaultRegistry().Lookup(name)
		assert.NoError(t, cfg.Validate(), name)
	}
}
