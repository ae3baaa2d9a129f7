// SPDX-License-Identifier: MIT
// Package: vemap/telemetry

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var (
	// ErrNilContext indicates Init was called without a context.
	ErrNilContext = errors.New("telemetry: nil context")

	// ErrUnknownExporter indicates an unsupported TraceExporter value.
	ErrUnknownExporter = errors.New("telemetry: unknown trace exporter")
)

// Trace exporters.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// Config controls telemetry behavior.
type Config struct {
	// ServiceName identifies the process in exported spans.
	ServiceName string
	// ServiceVersion is reported next to ServiceName.
	ServiceVersion string
	// RunID tags every span of this process.
	RunID string
	// TraceExporter is ExporterNone or ExporterStdout.
	TraceExporter string
	// Writer receives stdout spans; nil means os.Stdout.
	Writer io.Writer
}

// DefaultConfig returns a config that exports nothing.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "vemap",
		ServiceVersion: "dev",
		TraceExporter:  ExporterNone,
	}
}

// Init installs the global tracer provider described by cfg. The returned
// shutdown flushes pending spans and must be called before exit. With
// ExporterNone nothing is installed and shutdown is a no-op.
func Init(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	noop := func(context.Context) error { return nil }

	var exporter sdktrace.SpanExporter
	switch cfg.TraceExporter {
	case "", ExporterNone:
		return noop, nil
	case ExporterStdout:
		w := cfg.Writer
		if w == nil {
			w = os.Stdout
		}
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(w))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, cfg.TraceExporter)
	}
	if err != nil {
		return nil, fmt.Errorf("telemetry: create exporter: %w", err)
	}

	res := resource.NewWithAttributes("",
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
		attribute.String("vemap.run_id", cfg.RunID),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// WriteMetrics writes every collector of the default Prometheus registry to
// path in the text exposition format. The file is replaced atomically.
func WriteMetrics(path string) error {
	return WriteMetricsFrom(prometheus.DefaultGatherer, path)
}

// WriteMetricsFrom is WriteMetrics for an explicit gatherer.
func WriteMetricsFrom(g prometheus.Gatherer, path string) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("telemetry: write metrics %s: %w", path, err)
	}

	return nil
}
