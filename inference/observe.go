// SPDX-License-Identifier: MIT
// Package: vemap/inference

package inference

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/aschroede/vemap/memstats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Backend labels used in spans and metrics.
const (
	BackendVE       = "ve"
	BackendJT       = "jt"
	BackendMarginal = "marginal"
	BackendPlan     = "plan"
)

var tracer = otel.Tracer("vemap.inference")

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vemap_runs_total",
		Help: "Inference runs by backend and result",
	}, []string{"backend", "result"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vemap_run_duration_seconds",
		Help:    "Wall time of one inference run",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10, 100},
	}, []string{"backend"})

	treewidthGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vemap_treewidth",
		Help: "Largest cluster (variables) of the most recent run",
	}, []string{"backend"})
)

// run carries the per-call state shared by the entry points.
type run struct {
	backend string
	opts    Options
	log     *slog.Logger
	span    trace.Span
	start   time.Time
}

// begin resolves options and opens the span.
func begin(ctx context.Context, backend string, q Query, opts []Option) (context.Context, *run) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	ctx, span := tracer.Start(ctx, "inference."+backend,
		trace.WithAttributes(
			attribute.String("vemap.backend", backend),
			attribute.String("vemap.heuristic", o.Heuristic),
			attribute.IntSlice("vemap.targets", q.Targets),
			attribute.Int("vemap.evidence", len(q.EvidenceVars)),
		),
	)
	r := &run{
		backend: backend,
		opts:    o,
		log:     o.Logger.With(slog.String("backend", backend)),
		span:    span,
		start:   time.Now(),
	}
	r.log.Info("run_start",
		slog.Any("targets", q.Targets),
		slog.Any("evidence_vars", q.EvidenceVars),
		slog.Any("evidence_values", q.EvidenceValues))

	return ctx, r
}

// treewidth records the planned cluster size.
func (r *run) treewidth(width int, states string) {
	treewidthGauge.WithLabelValues(r.backend).Set(float64(width))
	r.span.SetAttributes(attribute.Int("vemap.treewidth", width), attribute.String("vemap.max_states", states))
}

// end closes the span and updates the metrics for the outcome err.
func (r *run) end(err error) {
	elapsed := time.Since(r.start)
	result := "ok"
	if err != nil {
		result = "error"
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, err.Error())
		r.log.Error("run_failed", slog.String("error", err.Error()), slog.Duration("elapsed", elapsed))
	} else {
		r.span.SetStatus(codes.Ok, "")
		r.log.Info("run_done", slog.Duration("elapsed", elapsed))
	}
	runsTotal.WithLabelValues(r.backend, result).Inc()
	runDuration.WithLabelValues(r.backend).Observe(elapsed.Seconds())
	r.span.End()
}

// guard runs fn, converting a panic into an error, and wraps any failure in
// ErrExecution after logging a memory snapshot and writing diagnostics.
func (r *run) guard(stage string, fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("execution_panic", slog.Any("panic", p), slog.String("stack", string(debug.Stack())))
			err = fmt.Errorf("panic: %v", p)
		}
		if err == nil {
			return
		}
		err = fmt.Errorf("%w: %s: %w", ErrExecution, stage, err)
		r.diagnose()
	}()

	return fn()
}

// diagnose logs a memory snapshot and, with DiagnosticsDir set, writes the
// diagnostic files. Failures here are logged only.
func (r *run) diagnose() {
	if snap, err := memstats.Read(); err == nil {
		r.log.Error("memory_snapshot", slog.Any("mem", snap))
	}
	if r.opts.DiagnosticsDir == "" {
		return
	}
	paths, err := memstats.WriteDiagnostics(r.opts.DiagnosticsDir)
	if err != nil {
		r.log.Warn("diagnostics_incomplete", slog.String("error", err.Error()))
	}
	if len(paths) > 0 {
		r.log.Info("diagnostics_written", slog.Any("paths", paths))
	}
}
