package inference

import (
	"context"
	"errors"
	"testing"

	"github.com/aschroede/vemap/factor"
	"github.com/aschroede/vemap/factorgraph"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func coin(t *testing.T) *factorgraph.Graph {
	t.Helper()
	f, err := factor.NewWithValues(factor.MustVarSet(factor.Var{Label: 0, States: 2}), []float64{0.3, 0.7})
	require.NoError(t, err)
	g, err := factorgraph.New(f)
	require.NoError(t, err)

	return g
}

func TestRunMetricsAndSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	okBefore := testutil.ToFloat64(runsTotal.WithLabelValues(BackendVE, "ok"))
	errBefore := testutil.ToFloat64(runsTotal.WithLabelValues(BackendVE, "error"))

	_, err := ComputeMapByEliminationExact(context.Background(), coin(t), Query{Targets: []int{0}})
	require.NoError(t, err)
	_, err = ComputeMapByEliminationExact(context.Background(), coin(t), Query{})
	require.Error(t, err)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(runsTotal.WithLabelValues(BackendVE, "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(runsTotal.WithLabelValues(BackendVE, "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(treewidthGauge.WithLabelValues(BackendVE)))

	spans := rec.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "inference.ve", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestGuard(t *testing.T) {
	_, r := begin(context.Background(), BackendVE, Query{Targets: []int{0}}, nil)
	defer r.end(nil)

	boom := errors.New("boom")
	err := r.guard("stage", func() error { return boom })
	assert.ErrorIs(t, err, ErrExecution)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "stage")

	err = r.guard("stage", func() error { panic("kaboom") })
	assert.ErrorIs(t, err, ErrExecution)
	assert.Contains(t, err.Error(), "kaboom")

	assert.NoError(t, r.guard("stage", func() error { return nil }))
}
