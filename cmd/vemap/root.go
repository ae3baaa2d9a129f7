// SPDX-License-Identifier: MIT
// Package: vemap/cmd/vemap
//
// root.go - the root command: load a graph, run the selected backends.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aschroede/vemap/config"
	"github.com/aschroede/vemap/factorgraph"
	"github.com/aschroede/vemap/inference"
	"github.com/aschroede/vemap/logging"
	"github.com/aschroede/vemap/telemetry"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// errNoBackend is returned when none of -J, -M, -V is given.
var errNoBackend = errors.New("nothing to do: pass -J, -M or -V")

// rootFlags holds raw flag values; only flags the user set override the
// loaded configuration.
type rootFlags struct {
	configPath string
	run        config.Run
}

func newRootCmd() *cobra.Command {
	fl := &rootFlags{run: config.Default()}
	cmd := &cobra.Command{
		Use:   "vemap",
		Short: "Exact MAP and marginal inference by constrained variable elimination",
		Long: `Compute MAP assignments of hypothesis variables given evidence.

Backends:
  -J  junction tree: posterior marginal over the hypothesis, then arg-max
  -M  constrained variable elimination (sum nuisance, then max hypothesis)
  -V  unconstrained variable elimination marginal, then arg-max

Examples:
  vemap -i alarm.fg -H 0,1 -E 4 -e 1 -M
  vemap --config run.yaml -J --log-level DEBUG`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := fl.resolve(cmd)
			if err != nil {
				return err
			}
			return runBackends(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), commandLine())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&fl.run.Input, "input", "i", fl.run.Input, "factor graph (.fg) to run on")
	pf.IntSliceVarP(&fl.run.HypothesisVars, "hypothesis-variables", "H", nil, "hypothesis (MAP) variables")
	pf.IntSliceVarP(&fl.run.EvidenceVars, "evidence-variables", "E", nil, "evidence variables")
	pf.IntSliceVarP(&fl.run.EvidenceValues, "evidence-values", "e", nil, "values of the evidence variables")
	pf.StringVar(&fl.run.Heuristic, "heuristic", fl.run.Heuristic, "elimination heuristic [MINNEIGHBORS, MINWEIGHT, MINFILL, WEIGHTEDMINFILL]")
	pf.StringVar(&fl.configPath, "config", "", "YAML run configuration")

	f := cmd.Flags()
	f.StringVarP(&fl.run.Output, "output", "o", fl.run.Output, "log file name inside the test directory")
	f.StringVar(&fl.run.TestDir, "test-dir", fl.run.TestDir, "directory receiving the log file")
	f.StringVarP(&fl.run.LogLevel, "log-level", "l", fl.run.LogLevel, "verbosity of logging [DEBUG, INFO, WARNING, ERROR, CRITICAL]")
	f.BoolVarP(&fl.run.JTMap, "jtmap", "J", false, "run exact MAP with the junction tree")
	f.BoolVarP(&fl.run.VEMap, "vemap", "M", false, "run exact MAP using variable elimination")
	f.BoolVarP(&fl.run.VE, "ve", "V", false, "run a variable elimination query")
	f.BoolVar(&fl.run.VerboseTrace, "verbose-trace", false, "log every intermediate factor at DEBUG")
	f.StringVar(&fl.run.DiagnosticsDir, "diagnostics-dir", "", "write memory diagnostics here when a run fails")
	f.Int64Var(&fl.run.StateWarnLimit, "state-warn-limit", 0, "warn when a planned cluster exceeds this many states (0 = off)")
	f.StringVar(&fl.run.TraceExporter, "trace", fl.run.TraceExporter, "trace exporter [none, stdout]")
	f.StringVar(&fl.run.MetricsFile, "metrics-file", "", "write Prometheus metrics here after the run")

	cmd.AddCommand(newTreewidthCmd(fl), newGenerateCmd(), newMemstatsCmd())

	return cmd
}

// resolve is load for commands that run backends: at least one must be
// selected.
func (fl *rootFlags) resolve(cmd *cobra.Command) (config.Run, error) {
	cfg, err := fl.load(cmd)
	if err != nil {
		return config.Run{}, err
	}
	if !cfg.AnyBackend() {
		return config.Run{}, errNoBackend
	}

	return cfg, nil
}

// load merges defaults, the config file, VEMAP_* variables and the flags
// the user set on cmd, in that order.
func (fl *rootFlags) load(cmd *cobra.Command) (config.Run, error) {
	cfg, err := config.Load(fl.configPath)
	if err != nil {
		return config.Run{}, err
	}

	overrides := map[string]func(){
		"input":                func() { cfg.Input = fl.run.Input },
		"hypothesis-variables": func() { cfg.HypothesisVars = fl.run.HypothesisVars },
		"evidence-variables":   func() { cfg.EvidenceVars = fl.run.EvidenceVars },
		"evidence-values":      func() { cfg.EvidenceValues = fl.run.EvidenceValues },
		"heuristic":            func() { cfg.Heuristic = fl.run.Heuristic },
		"output":               func() { cfg.Output = fl.run.Output },
		"test-dir":             func() { cfg.TestDir = fl.run.TestDir },
		"log-level":            func() { cfg.LogLevel = fl.run.LogLevel },
		"jtmap":                func() { cfg.JTMap = fl.run.JTMap },
		"vemap":                func() { cfg.VEMap = fl.run.VEMap },
		"ve":                   func() { cfg.VE = fl.run.VE },
		"verbose-trace":        func() { cfg.VerboseTrace = fl.run.VerboseTrace },
		"diagnostics-dir":      func() { cfg.DiagnosticsDir = fl.run.DiagnosticsDir },
		"state-warn-limit":     func() { cfg.StateWarnLimit = fl.run.StateWarnLimit },
		"trace":                func() { cfg.TraceExporter = fl.run.TraceExporter },
		"metrics-file":         func() { cfg.MetricsFile = fl.run.MetricsFile },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Run{}, err
	}

	return cfg, nil
}

// commandLine is the process command line, recorded for reference.
func commandLine() string {
	return strings.Join(os.Args, " ")
}

// runBackends executes the configured run and writes one result line per
// backend to out. Backend failures are logged and joined; the remaining
// backends still run.
func runBackends(ctx context.Context, cfg config.Run, out, errOut io.Writer, command string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logFile, err := logging.OpenFile(filepath.Join(cfg.TestDir, cfg.Output), level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	runID := uuid.NewString()
	log := logFile.With(slog.String("run_id", runID))

	tcfg := telemetry.DefaultConfig()
	tcfg.TraceExporter = cfg.TraceExporter
	tcfg.RunID = runID
	tcfg.Writer = errOut
	shutdown, err := telemetry.Init(ctx, tcfg)
	if err != nil {
		return err
	}
	defer func() {
		if serr := shutdown(context.Background()); serr != nil {
			log.Warn("telemetry_shutdown", slog.String("error", serr.Error()))
		}
	}()

	log.Info("command", slog.String("line", command))
	log.Info("simulation",
		slog.String("input", cfg.Input),
		slog.Time("started", time.Now()),
		slog.Any("hypothesis_vars", cfg.HypothesisVars),
		slog.Any("evidence_vars", cfg.EvidenceVars),
		slog.Any("evidence_values", cfg.EvidenceValues))

	fg, err := factorgraph.ReadFile(cfg.Input)
	if err != nil {
		log.Error("read_input", slog.String("error", err.Error()))
		return err
	}

	q := inference.Query{
		Targets:        cfg.HypothesisVars,
		EvidenceVars:   cfg.EvidenceVars,
		EvidenceValues: cfg.EvidenceValues,
	}
	opts := []inference.Option{
		inference.WithLogger(log),
		inference.WithHeuristic(cfg.Heuristic),
		inference.WithVerboseTrace(cfg.VerboseTrace),
		inference.WithDiagnosticsDir(cfg.DiagnosticsDir),
		inference.WithStateWarnLimit(cfg.StateWarnLimit),
	}

	var errs []error
	report := func(name string, a inference.Assignment, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			fmt.Fprintf(out, "%s: error: %v\n", name, err)
			return
		}
		fmt.Fprintf(out, "%s: %s\n", name, a)
	}

	if cfg.JTMap {
		a, err := inference.ComputeMapByJunctionTree(ctx, fg, q, opts...)
		report("JT MAP", a, err)
	}
	if cfg.VEMap {
		a, err := inference.ComputeMapByEliminationExact(ctx, fg, q, opts...)
		report("VE MAP", a, err)
	}
	if cfg.VE {
		var a inference.Assignment
		f, err := inference.ComputeMarginal(ctx, fg, q, opts...)
		if err == nil {
			a, err = inference.ExtractMax(f, q.Targets, log)
		}
		report("VE", a, err)
	}

	if cfg.MetricsFile != "" {
		if err := telemetry.WriteMetrics(cfg.MetricsFile); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
