// Package telemetry wires the process-wide OpenTelemetry tracer provider and
// writes the Prometheus collectors registered by the inference package.
//
// Spans are created with otel.Tracer in the library packages and go nowhere
// until Init installs a provider. Metrics are always collected in the default
// registry; WriteMetrics dumps them in the text exposition format so one-shot
// command runs can leave them for a node_exporter textfile collector.
package telemetry
