// SPDX-License-Identifier: MIT
// Package: vemap/inference

package inference

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aschroede/vemap/clustergraph"
	"github.com/aschroede/vemap/factorgraph"
	"github.com/aschroede/vemap/logging"
)

// Sentinel errors.
var (
	// ErrInvalidQuery indicates targets/evidence that cannot be answered.
	ErrInvalidQuery = errors.New("inference: invalid query")

	// ErrExecution wraps any failure raised while tables are being computed.
	ErrExecution = errors.New("inference: execution failed")

	// ErrTargetNotInScope indicates a target missing from the factor handed to ExtractMax.
	ErrTargetNotInScope = errors.New("inference: target not in factor scope")

	// ErrEmptyFactor indicates ExtractMax received a factor without entries.
	ErrEmptyFactor = errors.New("inference: empty factor")
)

// Query names the MAP (or marginal) targets and the observed evidence.
type Query struct {
	Targets        []int
	EvidenceVars   []int
	EvidenceValues []int
}

// Validate checks the query against fg: at least one target, targets and
// evidence are distinct graph variables, evidence values are in range and
// no label is both target and evidence.
func (q Query) Validate(fg *factorgraph.Graph) error {
	if len(q.Targets) == 0 {
		return fmt.Errorf("%w: no targets", ErrInvalidQuery)
	}
	if len(q.EvidenceVars) != len(q.EvidenceValues) {
		return fmt.Errorf("%w: %d evidence variables, %d values",
			ErrInvalidQuery, len(q.EvidenceVars), len(q.EvidenceValues))
	}

	seen := make(map[int]string, len(q.Targets)+len(q.EvidenceVars))
	for _, t := range q.Targets {
		if _, err := fg.Var(t); err != nil {
			return fmt.Errorf("%w: target x%d: %v", ErrInvalidQuery, t, err)
		}
		if _, dup := seen[t]; dup {
			return fmt.Errorf("%w: target x%d listed twice", ErrInvalidQuery, t)
		}
		seen[t] = "target"
	}
	for i, e := range q.EvidenceVars {
		v, err := fg.Var(e)
		if err != nil {
			return fmt.Errorf("%w: evidence x%d: %v", ErrInvalidQuery, e, err)
		}
		if role, dup := seen[e]; dup {
			return fmt.Errorf("%w: x%d is both %s and evidence", ErrInvalidQuery, e, role)
		}
		seen[e] = "evidence"
		if s := q.EvidenceValues[i]; s < 0 || s >= v.States {
			return fmt.Errorf("%w: x%d=%d (states %d)", ErrInvalidQuery, e, s, v.States)
		}
	}

	return nil
}

// Assignment is a MAP answer: States[i] is the state of Targets[i].
type Assignment struct {
	Targets []int
	States  []int
	// Probability is the value of the winning entry.
	Probability float64
	// Index is the flat index of the winner over the sorted target set. The
	// junction tree path reads it off the scanned posterior; the elimination
	// path encodes it from the decoded states.
	Index int
}

// Map returns the assignment as label -> state.
func (a Assignment) Map() map[int]int {
	m := make(map[int]int, len(a.Targets))
	for i, t := range a.Targets {
		m[t] = a.States[i]
	}

	return m
}

// String renders "x0=1 x3=0 (p=0.25)".
func (a Assignment) String() string {
	var sb strings.Builder
	for i, t := range a.Targets {
		fmt.Fprintf(&sb, "x%d=%d ", t, a.States[i])
	}
	fmt.Fprintf(&sb, "(p=%g)", a.Probability)

	return sb.String()
}

// Options configures the entry points.
type Options struct {
	// Logger receives run events. Defaults to a discarding logger.
	Logger *slog.Logger

	// Heuristic is the clustergraph registry name used for ordering.
	Heuristic string

	// VerboseTrace logs every intermediate factor at debug level.
	VerboseTrace bool

	// DiagnosticsDir, when set, receives memstats.WriteDiagnostics output
	// after an execution failure.
	DiagnosticsDir string

	// StateWarnLimit, if > 0, logs a warning when the simulated largest
	// cluster exceeds this many joint states.
	StateWarnLimit int64
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns silent options with the default heuristic.
func DefaultOptions() Options {
	return Options{
		Logger:    logging.Discard(),
		Heuristic: clustergraph.Default().Name(),
	}
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("inference: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

// WithHeuristic selects the ordering heuristic by name.
func WithHeuristic(name string) Option {
	return func(o *Options) { o.Heuristic = name }
}

// WithVerboseTrace toggles per-factor debug output.
func WithVerboseTrace(on bool) Option {
	return func(o *Options) { o.VerboseTrace = on }
}

// WithDiagnosticsDir enables diagnostic dumps into dir.
func WithDiagnosticsDir(dir string) Option {
	return func(o *Options) { o.DiagnosticsDir = dir }
}

// WithStateWarnLimit sets the cluster size warning threshold. Panics on a
// negative limit.
func WithStateWarnLimit(n int64) Option {
	if n < 0 {
		panic("inference: WithStateWarnLimit(negative)")
	}
	return func(o *Options) { o.StateWarnLimit = n }
}
