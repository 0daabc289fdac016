package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabledInstallsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	_, span := Tracer().Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_SERVICE_NAME", "")
	cfg := ConfigFromEnv()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, DefaultServiceName, cfg.ServiceName)

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("OTEL_SERVICE_NAME", "imports")
	cfg = ConfigFromEnv()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "collector:4317", cfg.Endpoint)
	assert.Equal(t, "imports", cfg.ServiceName)
}
