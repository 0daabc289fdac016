// Schema Generator
//
// Generates JSON Schema files from the Go types of the import API so clients
// can validate parser configurations and consume import results.
//
// Usage:
//
//	go run ./cmd/schema-gen [output-dir]
//
// Output (default ./schemas):
//
//	parser-config.json
//	import-result.json
//	settings.json
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/kosarica/supplier-import/internal/handlers"
	"github.com/kosarica/supplier-import/internal/parserconfig"
	"github.com/kosarica/supplier-import/internal/parsers/fixedcolumn"
	"github.com/kosarica/supplier-import/internal/types"
)

// SchemaGroup represents a group of related schemas
type SchemaGroup struct {
	Name   string
	Types  []any
	Output string
}

func main() {
	outputDir := "./schemas"
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, group := range schemaGroups() {
		schema := generateGroupSchema(group)
		outputPath := filepath.Join(outputDir, group.Output)

		if err := writeSchema(schema, outputPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", group.Output, err)
			os.Exit(1)
		}

		fmt.Printf("Generated %s\n", outputPath)
	}

	fmt.Println("Schema generation complete!")
}

func schemaGroups() []SchemaGroup {
	return []SchemaGroup{
		{
			Name: "parser-config",
			Types: []any{
				parserconfig.DelimitedConfig{},
				parserconfig.FixedColumnConfig{},
				fixedcolumn.Column{},
			},
			Output: "parser-config.json",
		},
		{
			Name: "import-result",
			Types: []any{
				types.ProductIdentifier{},
				types.CanonicalRow{},
				types.ParseResult{},
				handlers.ListTemplatesResponse{},
				handlers.ValidateDiscountResponse{},
			},
			Output: "import-result.json",
		},
		{
			Name: "settings",
			Types: []any{
				handlers.UpdateSettingsRequest{},
				handlers.SettingsErrorResponse{},
			},
			Output: "settings.json",
		},
	}
}

// generateGroupSchema creates a combined schema with all types in a group
func generateGroupSchema(group SchemaGroup) map[string]any {
	reflector := &jsonschema.Reflector{
		DoNotReference: false,
		ExpandedStruct: false,
	}

	definitions := make(map[string]any)

	for _, t := range group.Types {
		schema := reflector.Reflect(t)

		typeName := ""
		if schema.Ref != "" {
			// "#/$defs/CanonicalRow"
			typeName = filepath.Base(schema.Ref)
		}

		for name, def := range schema.Definitions {
			definitions[name] = def
		}

		if typeName != "" && schema.Definitions[typeName] != nil {
			definitions[typeName] = schema.Definitions[typeName]
		}
	}

	return map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"$id":         fmt.Sprintf("https://kosarica.hr/schemas/supplier-import/%s.json", group.Name),
		"title":       fmt.Sprintf("%s Types", title(group.Name)),
		"description": fmt.Sprintf("JSON Schema for %s types generated from Go structs", strings.ReplaceAll(group.Name, "-", " ")),
		"$defs":       definitions,
	}
}

// writeSchema writes a schema to a JSON file
func writeSchema(schema map[string]any, path string) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// title turns "import-result" into "Import Result"
func title(s string) string {
	words := strings.Split(s, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
