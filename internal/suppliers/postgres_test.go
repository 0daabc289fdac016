package suppliers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kosarica/supplier-import/internal/discount"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "Failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
		testcontainers.TerminateContainer(container)
	})
	return pool
}

func TestPostgresStore(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	store := NewPostgresStore(pool, zerolog.Nop())
	require.NoError(t, store.EnsureSchema(ctx))

	_, err := store.Get(ctx, "acme")
	assert.ErrorIs(t, err, ErrSupplierNotFound)

	err = store.Upsert(ctx, Metadata{
		SupplierID:        "acme",
		Name:              "ACME",
		ParserTemplate:    "semicolon_csv",
		ParserConfig:      json.RawMessage(`{"format":"delimited","config":{"delimiter":";"}}`),
		DiscountStructure: map[string]any{"type": "code_mapping", "mappings": map[string]any{"A": 25}},
	})
	require.NoError(t, err)

	m, err := store.Get(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "ACME", m.Name)
	assert.Equal(t, "semicolon_csv", m.ParserTemplate)
	assert.JSONEq(t, `{"format":"delimited","config":{"delimiter":";"}}`, string(m.ParserConfig))

	structure, err := discount.Validate(m.DiscountStructure)
	require.NoError(t, err)
	assert.Equal(t, discount.TypeCodeMapping, structure.Type())

	require.NoError(t, store.Upsert(ctx, Metadata{SupplierID: "acme", Name: "ACME d.o.o."}))
	m, err = store.Get(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "ACME d.o.o.", m.Name)
	assert.Empty(t, m.ParserTemplate)
	assert.Nil(t, m.DiscountStructure)
}
