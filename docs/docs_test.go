package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerInfoMetadata(t *testing.T) {
	assert.Equal(t, "Supplier Import API", SwaggerInfo.Title)
	assert.Equal(t, "1.0", SwaggerInfo.Version)
	assert.Equal(t, "/", SwaggerInfo.BasePath)
	assert.Equal(t, "swagger", SwaggerInfo.InfoInstanceName)
}

func readDoc(t *testing.T) map[string]any {
	t.Helper()
	doc := SwaggerInfo.ReadDoc()
	require.NotEmpty(t, doc)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed), "ReadDoc should return valid JSON")
	return parsed
}

func TestSwaggerInfoReadDoc(t *testing.T) {
	parsed := readDoc(t)

	info, ok := parsed["info"].(map[string]any)
	require.True(t, ok, "JSON should have info section")
	assert.Equal(t, "Supplier Import API", info["title"])
	assert.Equal(t, "2.0", parsed["swagger"])
}

func TestSwaggerInfoHasEndpoints(t *testing.T) {
	paths, ok := readDoc(t)["paths"].(map[string]any)
	require.True(t, ok, "JSON should have paths section")

	for _, path := range []string{
		"/health",
		"/api/templates",
		"/api/discount-structures/validate",
		"/api/suppliers/{supplierId}/imports",
		"/api/suppliers/{supplierId}/imports/preview",
		"/api/suppliers/{supplierId}/settings",
	} {
		assert.Contains(t, paths, path)
	}
}

func TestSwaggerInfoDefinitionsResolve(t *testing.T) {
	parsed := readDoc(t)
	definitions, ok := parsed["definitions"].(map[string]any)
	require.True(t, ok)

	raw, err := json.Marshal(parsed["paths"])
	require.NoError(t, err)
	refs, err := json.Marshal(definitions)
	require.NoError(t, err)

	// every $ref points at a declared definition
	for _, blob := range [][]byte{raw, refs} {
		var walk func(v any)
		walk = func(v any) {
			switch n := v.(type) {
			case map[string]any:
				if ref, ok := n["$ref"].(string); ok {
					name := ref[len("#/definitions/"):]
					assert.Contains(t, definitions, name)
				}
				for _, child := range n {
					walk(child)
				}
			case []any:
				for _, child := range n {
					walk(child)
				}
			}
		}
		var tree any
		require.NoError(t, json.Unmarshal(blob, &tree))
		walk(tree)
	}
}
