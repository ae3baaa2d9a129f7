// SPDX-License-Identifier: MIT
// Package: vemap/elimination

package elimination

import (
	"errors"
	"io"
	"log/slog"

	"github.com/aschroede/vemap/factor"
)

// Sentinel errors. ErrPartition and ErrInvalidOrder are structural errors
// raised before any numeric work starts.
var (
	// ErrPartition indicates targets/evidence that do not partition the graph.
	ErrPartition = errors.New("elimination: invalid variable partition")

	// ErrInvalidOrder indicates an order that names a variable twice, or a
	// heuristic pick outside the candidate set.
	ErrInvalidOrder = errors.New("elimination: invalid elimination order")

	// ErrUnknownVariable indicates an order label that is not in the graph.
	ErrUnknownVariable = errors.New("elimination: unknown variable in order")

	// ErrEmptyCombine indicates nothing was left to combine at the end of a run.
	ErrEmptyCombine = errors.New("elimination: no factors left to combine")
)

// Mode selects how PlanOrder treats the target labels.
type Mode int

const (
	// Unconstrained eliminates nuisance variables only; targets are kept.
	Unconstrained Mode = iota
	// Constrained eliminates nuisance variables, then max-eliminates targets.
	Constrained
)

// String returns "unconstrained" or "constrained".
func (m Mode) String() string {
	if m == Constrained {
		return "constrained"
	}

	return "unconstrained"
}

// Role is the reduction a variable receives when eliminated.
type Role int

const (
	// RoleNuisance variables are summed out.
	RoleNuisance Role = iota
	// RoleTarget variables are maximized out.
	RoleTarget
)

// String returns "sum" or "max".
func (r Role) String() string {
	if r == RoleTarget {
		return "max"
	}

	return "sum"
}

// Options configures Execute.
type Options struct {
	// Logger receives progress events. Defaults to a discarding logger.
	Logger *slog.Logger

	// VerboseTrace logs every intermediate factor table at debug level.
	VerboseTrace bool

	// Normalize divides the final factor by its total mass.
	Normalize bool

	// OnCluster is called with the product scope formed for each eliminated
	// label, before reduction.
	OnCluster func(label int, scope factor.VarSet)

	// OnReduce is called with the reduction applied to each eliminated label.
	OnReduce func(label int, role Role)

	// Traceback, when set, is reset and then receives the arg-max table of
	// every max-eliminated label.
	Traceback *Traceback
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns options with a discarding logger and no hooks.
func DefaultOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("elimination: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

// WithVerboseTrace toggles per-factor debug output.
func WithVerboseTrace(on bool) Option {
	return func(o *Options) { o.VerboseTrace = on }
}

// WithNormalize requests a normalized result.
func WithNormalize() Option {
	return func(o *Options) { o.Normalize = true }
}

// WithOnCluster installs the cluster hook.
func WithOnCluster(fn func(label int, scope factor.VarSet)) Option {
	return func(o *Options) { o.OnCluster = fn }
}

// WithTraceback records arg-max tables into tb. Panics on nil.
func WithTraceback(tb *Traceback) Option {
	if tb == nil {
		panic("elimination: WithTraceback(nil)")
	}
	return func(o *Options) { o.Traceback = tb }
}

// WithOnReduce installs the reduction hook.
func WithOnReduce(fn func(label int, role Role)) Option {
	return func(o *Options) { o.OnReduce = fn }
}
