// SPDX-License-Identifier: MIT
// Package: vemap/config
//
// config.go - Run settings, defaults, loading and validation.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aschroede/vemap/clustergraph"
	"github.com/aschroede/vemap/logging"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates settings that cannot describe a run.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Trace exporters understood by the telemetry package.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// Defaults.
const (
	DefaultInput    = "./alarm.fg"
	DefaultOutput   = "results"
	DefaultTestDir  = "TestResults"
	DefaultLogLevel = "INFO"
)

// Run is one invocation of the vemap command.
type Run struct {
	// Input is the .fg factor graph to load.
	Input string `yaml:"input"`
	// TestDir receives the log file (created if missing).
	TestDir string `yaml:"output_dir"`
	// Output is the log file name inside TestDir; lines are appended.
	Output string `yaml:"output"`
	// LogLevel is one of DEBUG, INFO, WARNING, ERROR, CRITICAL.
	LogLevel string `yaml:"log_level"`

	HypothesisVars []int `yaml:"hypothesis_vars"`
	EvidenceVars   []int `yaml:"evidence_vars"`
	EvidenceValues []int `yaml:"evidence_values"`

	// Backends to run, in the order JT MAP, VE MAP, VE marginal.
	JTMap bool `yaml:"jt_map"`
	VEMap bool `yaml:"ve_map"`
	VE    bool `yaml:"ve"`

	Heuristic      string `yaml:"heuristic"`
	VerboseTrace   bool   `yaml:"verbose_trace"`
	DiagnosticsDir string `yaml:"diagnostics_dir"`
	StateWarnLimit int64  `yaml:"state_warn_limit"`

	// TraceExporter is ExporterNone or ExporterStdout.
	TraceExporter string `yaml:"trace_exporter"`
	// MetricsFile, if set, receives the Prometheus text exposition after the run.
	MetricsFile string `yaml:"metrics_file"`
}

// Default returns the settings used when nothing else is given.
func Default() Run {
	return Run{
		Input:         DefaultInput,
		TestDir:       DefaultTestDir,
		Output:        DefaultOutput,
		LogLevel:      DefaultLogLevel,
		Heuristic:     clustergraph.Default().Name(),
		TraceExporter: ExporterNone,
	}
}

// Parse overlays the YAML document data on Default. Unknown keys are
// rejected. An empty document yields the defaults. The result is not
// validated.
func Parse(data []byte) (Run, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Run{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// Load builds the settings from path (skipped when empty) and the VEMAP_*
// environment, then validates them.
func Load(path string) (Run, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Run{}, fmt.Errorf("config: load %s: %w", path, err)
		}
		if cfg, err = Parse(data); err != nil {
			return Run{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Run{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Run{}, err
	}

	return cfg, nil
}

// applyEnv overrides fields from VEMAP_* variables.
func (c *Run) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"VEMAP_INPUT":           &c.Input,
		"VEMAP_OUTPUT_DIR":      &c.TestDir,
		"VEMAP_OUTPUT":          &c.Output,
		"VEMAP_LOG_LEVEL":       &c.LogLevel,
		"VEMAP_HEURISTIC":       &c.Heuristic,
		"VEMAP_DIAGNOSTICS_DIR": &c.DiagnosticsDir,
		"VEMAP_TRACE_EXPORTER":  &c.TraceExporter,
		"VEMAP_METRICS_FILE":    &c.MetricsFile,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup("VEMAP_VERBOSE_TRACE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: VEMAP_VERBOSE_TRACE=%q", ErrInvalidConfig, v)
		}
		c.VerboseTrace = b
	}
	if v, ok := lookup("VEMAP_STATE_WARN_LIMIT"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: VEMAP_STATE_WARN_LIMIT=%q", ErrInvalidConfig, v)
		}
		c.StateWarnLimit = n
	}

	return nil
}

// Validate checks the settings. Query semantics (labels present in the
// graph, value ranges) are checked later against the loaded graph.
func (c Run) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: input is empty", ErrInvalidConfig)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output is empty", ErrInvalidConfig)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := clustergraph.Lookup(c.Heuristic); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(c.EvidenceVars) != len(c.EvidenceValues) {
		return fmt.Errorf("%w: %d evidence variables but %d values",
			ErrInvalidConfig, len(c.EvidenceVars), len(c.EvidenceValues))
	}
	for _, xs := range [][]int{c.HypothesisVars, c.EvidenceVars, c.EvidenceValues} {
		for _, x := range xs {
			if x < 0 {
				return fmt.Errorf("%w: negative label or value %d", ErrInvalidConfig, x)
			}
		}
	}
	if c.StateWarnLimit < 0 {
		return fmt.Errorf("%w: state_warn_limit %d", ErrInvalidConfig, c.StateWarnLimit)
	}
	switch c.TraceExporter {
	case ExporterNone, ExporterStdout:
	default:
		return fmt.Errorf("%w: trace_exporter %q", ErrInvalidConfig, c.TraceExporter)
	}

	return nil
}

// AnyBackend reports whether at least one computation is requested.
func (c Run) AnyBackend() bool { return c.JTMap || c.VEMap || c.VE }
