// Package suppliers reads the per-supplier import settings: the explicit
// parser configuration, the parser template name and the discount structure.
package suppliers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrSupplierNotFound means the store has no settings for the supplier. It is
// not a store failure.
var ErrSupplierNotFound = errors.New("supplier not found")

// Metadata holds the operator maintained import settings of one supplier.
// ParserConfig and DiscountStructure are unvalidated; consumers validate them.
type Metadata struct {
	SupplierID        string          `json:"supplierId"`
	Name              string          `json:"name,omitempty"`
	ParserTemplate    string          `json:"parserTemplate,omitempty"`
	ParserConfig      json.RawMessage `json:"parserConfig,omitempty"`
	DiscountStructure any             `json:"discountStructure,omitempty"`
}

// Store looks up supplier metadata
type Store interface {
	Get(ctx context.Context, supplierID string) (*Metadata, error)
}

// StaticStore serves metadata from memory. It is read-only after
// construction.
type StaticStore struct {
	suppliers map[string]Metadata
}

// NewStaticStore indexes the given metadata by supplier ID
func NewStaticStore(metas ...Metadata) (*StaticStore, error) {
	s := &StaticStore{suppliers: make(map[string]Metadata, len(metas))}
	for _, m := range metas {
		id := strings.TrimSpace(m.SupplierID)
		if id == "" {
			return nil, fmt.Errorf("supplier without id")
		}
		if _, dup := s.suppliers[id]; dup {
			return nil, fmt.Errorf("duplicate supplier %q", id)
		}
		m.SupplierID = id
		s.suppliers[id] = m
	}
	return s, nil
}

func (s *StaticStore) Get(_ context.Context, supplierID string) (*Metadata, error) {
	m, ok := s.suppliers[supplierID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSupplierNotFound, supplierID)
	}
	return &m, nil
}

// IDs returns the known supplier IDs, sorted
func (s *StaticStore) IDs() []string {
	ids := make([]string, 0, len(s.suppliers))
	for id := range s.suppliers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type fileDocument struct {
	Suppliers []fileSupplier `yaml:"suppliers"`
}

type fileSupplier struct {
	ID                string         `yaml:"id"`
	Name              string         `yaml:"name"`
	ParserTemplate    string         `yaml:"parser_template"`
	ParserConfig      map[string]any `yaml:"parser_config"`
	DiscountStructure map[string]any `yaml:"discount_structure"`
}

// LoadFile reads supplier metadata from a YAML (or JSON) file of the form
//
//	suppliers:
//	  - id: acme
//	    parser_template: semicolon_csv
//	    discount_structure: {type: code_mapping, mappings: {A: 25}}
func LoadFile(path string) (*StaticStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suppliers file: %w", err)
	}
	store, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// Parse decodes a suppliers document
func Parse(data []byte) (*StaticStore, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse suppliers: %w", err)
	}

	metas := make([]Metadata, 0, len(doc.Suppliers))
	for _, fs := range doc.Suppliers {
		m := Metadata{
			SupplierID:     fs.ID,
			Name:           fs.Name,
			ParserTemplate: fs.ParserTemplate,
		}
		if fs.ParserConfig != nil {
			raw, err := json.Marshal(fs.ParserConfig)
			if err != nil {
				return nil, fmt.Errorf("supplier %s: parser_config: %w", fs.ID, err)
			}
			m.ParserConfig = raw
		}
		if fs.DiscountStructure != nil {
			m.DiscountStructure = fs.DiscountStructure
		}
		metas = append(metas, m)
	}
	return NewStaticStore(metas...)
}
