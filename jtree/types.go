// SPDX-License-Identifier: MIT
// Package: vemap/jtree
//
// types.go - options, schedules and sentinel errors.

package jtree

import (
	"errors"
	"fmt"

	"github.com/aschroede/vemap/clustergraph"
	"github.com/aschroede/vemap/factor"
)

// Sentinel errors for junction-tree construction and inference.
var (
	// ErrUnsupported is returned for an update schedule other than HUGIN.
	ErrUnsupported = errors.New("jtree: unsupported update schedule")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("jtree: invalid option supplied")

	// ErrNotReady is returned when Run precedes Init, or a query precedes Run.
	ErrNotReady = errors.New("jtree: tree not initialized or not calibrated")

	// ErrUnknownVariable is returned for a query label the tree does not hold.
	ErrUnknownVariable = errors.New("jtree: unknown variable")

	// ErrBadClique is returned for a clique index out of range.
	ErrBadClique = errors.New("jtree: clique index out of range")
)

// Updates selects the message-passing schedule.
type Updates int

const (
	// HUGIN runs collect/distribute with separator division.
	HUGIN Updates = iota
	// ShaferShenoy is recognized but not implemented.
	ShaferShenoy
)

// String returns "HUGIN" or "SHSH".
func (u Updates) String() string {
	if u == ShaferShenoy {
		return "SHSH"
	}

	return "HUGIN"
}

// Inference selects the semiring used while passing messages.
type Inference int

const (
	// SumProd computes marginals.
	SumProd Inference = iota
	// MaxProd computes max-marginals.
	MaxProd
)

// String returns "SUMPROD" or "MAXPROD".
func (i Inference) String() string {
	if i == MaxProd {
		return "MAXPROD"
	}

	return "SUMPROD"
}

// MethodPrim selects Prim's algorithm (grow from clique 0 using an indexed heap).
const MethodPrim = "prim"

// MethodKruskal selects Kruskal's algorithm (sort all clique pairs and union-find).
const MethodKruskal = "kruskal"

// Options configures New.
type Options struct {
	// Updates is the schedule; only HUGIN is implemented.
	Updates Updates

	// Inference is SumProd or MaxProd.
	Inference Inference

	// Heuristic names the clustergraph heuristic used to triangulate.
	Heuristic string

	// MaxStates, if > 0, bounds the state count of every clique.
	MaxStates int

	// Spanning is MethodPrim or MethodKruskal.
	Spanning string

	// internal error recorded during option parsing
	err error
}

// Option configures Options via functional arguments. Invalid values are
// recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// DefaultOptions returns HUGIN, SumProd, the default heuristic, no state
// limit and Prim.
func DefaultOptions() Options {
	return Options{
		Updates:   HUGIN,
		Inference: SumProd,
		Heuristic: clustergraph.Default().Name(),
		Spanning:  MethodPrim,
	}
}

// WithUpdates sets the update schedule.
func WithUpdates(u Updates) Option {
	return func(o *Options) { o.Updates = u }
}

// WithInference sets the semiring.
func WithInference(i Inference) Option {
	return func(o *Options) { o.Inference = i }
}

// WithHeuristic sets the triangulation heuristic by registry name.
func WithHeuristic(name string) Option {
	return func(o *Options) {
		if name == "" {
			o.err = fmt.Errorf("%w: empty heuristic name", ErrOptionViolation)
			return
		}
		o.Heuristic = name
	}
}

// WithMaxStates bounds the clique size.
//
//	n > 0: limit to n joint states
//	n == 0: no limit
//	n < 0: invalid option → ErrOptionViolation
func WithMaxStates(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxStates cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxStates = n
	}
}

// WithSpanning selects the spanning-tree algorithm.
func WithSpanning(method string) Option {
	return func(o *Options) {
		switch method {
		case MethodPrim, MethodKruskal:
			o.Spanning = method
		default:
			o.err = fmt.Errorf("%w: spanning method %q", ErrOptionViolation, method)
		}
	}
}

// Edge is a rooted tree edge: From is the parent clique, To the child, and
// Sep their shared variables.
type Edge struct {
	From, To int
	Sep      factor.VarSet
}
