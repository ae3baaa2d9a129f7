package telemetry_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aschroede/vemap/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInit_Stdout(t *testing.T) {
	var buf bytes.Buffer
	cfg := telemetry.DefaultConfig()
	cfg.TraceExporter = telemetry.ExporterStdout
	cfg.RunID = "run-42"
	cfg.Writer = &buf

	shutdown, err := telemetry.Init(context.Background(), cfg)
	require.NoError(t, err)

	_, span := otel.Tracer("telemetry_test").Start(context.Background(), "smoke")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), "smoke")
	assert.Contains(t, buf.String(), "run-42")
}

func TestInit_None(t *testing.T) {
	shutdown, err := telemetry.Init(context.Background(), telemetry.DefaultConfig())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_Errors(t *testing.T) {
	var nilCtx context.Context
	_, err := telemetry.Init(nilCtx, telemetry.DefaultConfig())
	assert.ErrorIs(t, err, telemetry.ErrNilContext)

	cfg := telemetry.DefaultConfig()
	cfg.TraceExporter = "zipkin"
	_, err = telemetry.Init(context.Background(), cfg)
	assert.ErrorIs(t, err, telemetry.ErrUnknownExporter)
}

func TestWriteMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "vemap_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Add(3)

	path := filepath.Join(t.TempDir(), "vemap.prom")
	require.NoError(t, telemetry.WriteMetricsFrom(reg, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "vemap_test_total 3")

	require.NoError(t, telemetry.WriteMetrics(path))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "go_goroutines")

	assert.Error(t, telemetry.WriteMetrics(filepath.Join(t.TempDir(), "missing", "x.prom")))
}
