package suppliers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema creates the table PostgresStore reads from
const Schema = `
CREATE TABLE IF NOT EXISTS supplier_import_settings (
	supplier_id        TEXT PRIMARY KEY,
	name               TEXT NOT NULL DEFAULT '',
	parser_template    TEXT,
	parser_config      JSONB,
	discount_structure JSONB,
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore reads supplier metadata from supplier_import_settings
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgresStore(pool *pgxpool.Pool, logger zerolog.Logger) *PostgresStore {
	return &PostgresStore{pool: pool, logger: logger}
}

// EnsureSchema creates the settings table if it does not exist
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create supplier_import_settings: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, supplierID string) (*Metadata, error) {
	var (
		name           string
		template       *string
		parserConfig   []byte
		discountConfig []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT name, parser_template, parser_config, discount_structure
		FROM supplier_import_settings
		WHERE supplier_id = $1
	`, supplierID).Scan(&name, &template, &parserConfig, &discountConfig)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSupplierNotFound, supplierID)
	}
	if err != nil {
		return nil, fmt.Errorf("query supplier %s: %w", supplierID, err)
	}

	m := &Metadata{SupplierID: supplierID, Name: name, ParserConfig: parserConfig}
	if template != nil {
		m.ParserTemplate = *template
	}
	if len(discountConfig) > 0 {
		dec := json.NewDecoder(bytes.NewReader(discountConfig))
		dec.UseNumber()
		var candidate any
		if err := dec.Decode(&candidate); err != nil {
			return nil, fmt.Errorf("decode discount structure of %s: %w", supplierID, err)
		}
		m.DiscountStructure = candidate
	}

	s.logger.Debug().Str("supplier_id", supplierID).Msg("Supplier metadata loaded")
	return m, nil
}

// Upsert writes the metadata of one supplier
func (s *PostgresStore) Upsert(ctx context.Context, m Metadata) error {
	var discountJSON any
	if m.DiscountStructure != nil {
		raw, err := json.Marshal(m.DiscountStructure)
		if err != nil {
			return fmt.Errorf("encode discount structure: %w", err)
		}
		discountJSON = string(raw)
	}
	var parserJSON any
	if len(m.ParserConfig) > 0 {
		parserJSON = string(m.ParserConfig)
	}
	var template any
	if m.ParserTemplate != "" {
		template = m.ParserTemplate
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO supplier_import_settings (supplier_id, name, parser_template, parser_config, discount_structure, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (supplier_id) DO UPDATE SET
			name = EXCLUDED.name,
			parser_template = EXCLUDED.parser_template,
			parser_config = EXCLUDED.parser_config,
			discount_structure = EXCLUDED.discount_structure,
			updated_at = now()
	`, m.SupplierID, m.Name, template, parserJSON, discountJSON)
	if err != nil {
		return fmt.Errorf("upsert supplier %s: %w", m.SupplierID, err)
	}
	return nil
}
