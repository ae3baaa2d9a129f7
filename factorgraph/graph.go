// SPDX-License-Identifier: MIT
// Package: vemap/factorgraph
//
// graph.go - the Graph type, variable lookup and evidence clamping.

package factorgraph

import (
	"fmt"

	"github.com/aschroede/vemap/factor"
)

// Graph is an immutable factor graph: a list of factors plus the variables
// appearing in their scopes, indexed by label.
type Graph struct {
	vars    factor.VarSet
	factors []factor.Factor
	nb      map[int][]int // label -> indices of factors mentioning it
}

// New builds a graph over the given factors. Every variable must carry the
// same cardinality in every factor that mentions it.
// Complexity: O(F·k) where k is the largest scope.
func New(factors ...factor.Factor) (*Graph, error) {
	all := make([]factor.Var, 0, len(factors))
	for i, f := range factors {
		if f.Empty() {
			return nil, fmt.Errorf("%w: factor %d", ErrNilFactor, i)
		}
		all = append(all, f.Vars().Vars()...)
	}
	vs, err := factor.NewVarSet(all...)
	if err != nil {
		return nil, fmt.Errorf("factorgraph: New: %w", err)
	}

	return build(vs, factors), nil
}

// build indexes factors by label. vs must already hold every label in use.
func build(vs factor.VarSet, factors []factor.Factor) *Graph {
	fs := make([]factor.Factor, len(factors))
	copy(fs, factors)
	nb := make(map[int][]int, vs.Len())
	for i, f := range fs {
		for _, l := range f.Vars().Labels() {
			nb[l] = append(nb[l], i)
		}
	}

	return &Graph{vars: vs, factors: fs, nb: nb}
}

// Vars returns every variable of the graph in label order.
func (g *Graph) Vars() factor.VarSet { return g.vars }

// NrVars returns the number of variables.
func (g *Graph) NrVars() int { return g.vars.Len() }

// NrFactors returns the number of factors.
func (g *Graph) NrFactors() int { return len(g.factors) }

// Factors returns the factors in insertion order. The slice is a copy;
// factors themselves are immutable values.
func (g *Graph) Factors() []factor.Factor {
	out := make([]factor.Factor, len(g.factors))
	copy(out, g.factors)

	return out
}

// Factor returns the i-th factor.
func (g *Graph) Factor(i int) factor.Factor { return g.factors[i] }

// Var looks up a variable by label.
func (g *Graph) Var(label int) (factor.Var, error) {
	i := g.vars.IndexOf(label)
	if i < 0 {
		return factor.Var{}, fmt.Errorf("%w: x%d", ErrUnknownVariable, label)
	}

	return g.vars.At(i), nil
}

// HasVar reports whether label is a variable of the graph.
func (g *Graph) HasVar(label int) bool { return g.vars.Contains(label) }

// VarSet resolves labels into a VarSet. Duplicate labels collapse.
func (g *Graph) VarSet(labels []int) (factor.VarSet, error) {
	vars := make([]factor.Var, 0, len(labels))
	for _, l := range labels {
		v, err := g.Var(l)
		if err != nil {
			return factor.VarSet{}, err
		}
		vars = append(vars, v)
	}

	return factor.NewVarSet(vars...)
}

// Neighbors returns the indices of the factors whose scope contains label,
// in ascending order.
func (g *Graph) Neighbors(label int) []int {
	out := make([]int, len(g.nb[label]))
	copy(out, g.nb[label])

	return out
}

// Clamp returns a graph in which every factor mentioning label has its
// entries with label≠state set to zero. Scopes are unchanged.
func (g *Graph) Clamp(label, state int) (*Graph, error) {
	if _, err := g.Var(label); err != nil {
		return nil, err
	}
	fs := make([]factor.Factor, len(g.factors))
	copy(fs, g.factors)
	for _, i := range g.nb[label] {
		c, err := fs[i].Clamp(label, state)
		if err != nil {
			return nil, fmt.Errorf("factorgraph: Clamp x%d=%d: %w", label, state, err)
		}
		fs[i] = c
	}

	return build(g.vars, fs), nil
}

// ClampReduce returns a graph in which every factor mentioning label is
// conditioned on label=state and label no longer appears anywhere.
func (g *Graph) ClampReduce(label, state int) (*Graph, error) {
	if _, err := g.Var(label); err != nil {
		return nil, err
	}
	fs := make([]factor.Factor, len(g.factors))
	copy(fs, g.factors)
	for _, i := range g.nb[label] {
		s, err := fs[i].Slice(label, state)
		if err != nil {
			return nil, fmt.Errorf("factorgraph: ClampReduce x%d=%d: %w", label, state, err)
		}
		fs[i] = s
	}

	return build(g.vars.Remove(label), fs), nil
}

// ClampReduceAll applies ClampReduce for every (labels[i], states[i]) pair in order.
func (g *Graph) ClampReduceAll(labels, states []int) (*Graph, error) {
	if len(labels) != len(states) {
		return nil, fmt.Errorf("factorgraph: ClampReduceAll: %d labels, %d states", len(labels), len(states))
	}
	out := g
	for i := range labels {
		var err error
		if out, err = out.ClampReduce(labels[i], states[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Labels returns all variable labels in ascending order.
func (g *Graph) Labels() []int {
	return g.vars.Labels()
}
