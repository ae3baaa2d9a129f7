// SPDX-License-Identifier: MIT
// Package: vemap/clustergraph

package clustergraph

import "errors"

// Sentinel errors for cluster graph operations.
var (
	// ErrUnknownVariable indicates a label that is not (or no longer) in the graph.
	ErrUnknownVariable = errors.New("clustergraph: unknown variable")

	// ErrNoCandidates indicates Pick was called with an empty candidate list.
	ErrNoCandidates = errors.New("clustergraph: no candidates")

	// ErrUnknownHeuristic indicates a name that Lookup does not recognize.
	ErrUnknownHeuristic = errors.New("clustergraph: unknown heuristic")

	// ErrTooManyStates indicates VarElim produced a clique above the state limit.
	ErrTooManyStates = errors.New("clustergraph: clique exceeds state limit")
)

// Heuristic chooses the next variable to eliminate from candidates given the
// current cluster graph. Implementations must return one of the candidates.
type Heuristic interface {
	// Name identifies the heuristic in logs.
	Name() string

	// Pick returns the label to eliminate next.
	Pick(g *Graph, candidates []int) (int, error)
}

// CostFunc scores eliminating label from g; lower is better.
type CostFunc func(g *Graph, label int) float64

// Option configures graph construction.
type Option func(*options)

type options struct {
	eraseNonMaximal bool
}

// WithNonMaximalErased drops every cluster that is a subset of another right
// after construction.
func WithNonMaximalErased() Option {
	return func(o *options) { o.eraseNonMaximal = true }
}
