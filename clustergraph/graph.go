// SPDX-License-Identifier: MIT
// Package: vemap/clustergraph
//
// graph.go - clusters, adjacency and variable elimination on the structure.

package clustergraph

import (
	"fmt"
	"sort"

	"github.com/aschroede/vemap/factor"
	"github.com/aschroede/vemap/factorgraph"
)

// Graph is a mutable cluster graph. Clusters are kept in insertion order;
// adj mirrors every edge in both directions (adj[a][b] and adj[b][a]).
type Graph struct {
	vars     map[int]factor.Var
	adj      map[int]map[int]struct{}
	clusters []factor.VarSet
}

// New builds a cluster graph from the given clusters. Empty clusters are
// ignored and duplicates are stored once.
// Complexity: O(Σ|c|² + C²) for C clusters.
func New(clusters []factor.VarSet, opts ...Option) *Graph {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	g := &Graph{
		vars: make(map[int]factor.Var),
		adj:  make(map[int]map[int]struct{}),
	}
	for _, c := range clusters {
		g.insert(c)
	}
	if o.eraseNonMaximal {
		g.EraseNonMaximal()
	}

	return g
}

// FromFactorGraph builds the cluster graph whose clusters are the factor
// scopes of fg. Variables of fg that appear in no factor are still tracked
// as isolated vertices.
func FromFactorGraph(fg *factorgraph.Graph, opts ...Option) *Graph {
	scopes := make([]factor.VarSet, 0, fg.NrFactors())
	for _, f := range fg.Factors() {
		scopes = append(scopes, f.Vars())
	}
	g := New(scopes, opts...)
	for _, v := range fg.Vars().Vars() {
		g.addVar(v)
	}

	return g
}

// addVar registers v as a vertex with no edges if it is not yet known.
func (g *Graph) addVar(v factor.Var) {
	if _, ok := g.vars[v.Label]; ok {
		return
	}
	g.vars[v.Label] = v
	g.adj[v.Label] = make(map[int]struct{})
}

// insert adds cluster c unless it is empty or already present, and makes
// its members pairwise adjacent.
func (g *Graph) insert(c factor.VarSet) {
	if c.Empty() {
		return
	}
	for _, existing := range g.clusters {
		if existing.Equal(c) {
			return
		}
	}
	g.clusters = append(g.clusters, c)

	members := c.Vars()
	for _, v := range members {
		g.addVar(v)
	}
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			a, b := members[i].Label, members[j].Label
			g.adj[a][b] = struct{}{}
			g.adj[b][a] = struct{}{}
		}
	}
}

// NrVars returns the number of variables still in the graph.
func (g *Graph) NrVars() int { return len(g.vars) }

// Vars returns the labels of the variables still in the graph, ascending.
func (g *Graph) Vars() []int {
	out := make([]int, 0, len(g.vars))
	for l := range g.vars {
		out = append(out, l)
	}
	sort.Ints(out)

	return out
}

// Var returns the variable with the given label.
func (g *Graph) Var(label int) (factor.Var, bool) {
	v, ok := g.vars[label]

	return v, ok
}

// Clusters returns the current clusters in insertion order.
func (g *Graph) Clusters() []factor.VarSet {
	out := make([]factor.VarSet, len(g.clusters))
	copy(out, g.clusters)

	return out
}

// Neighbors returns the labels adjacent to label, ascending, excluding label.
// Unknown labels have no neighbors.
func (g *Graph) Neighbors(label int) []int {
	nb := g.adj[label]
	out := make([]int, 0, len(nb))
	for l := range nb {
		out = append(out, l)
	}
	sort.Ints(out)

	return out
}

// Adjacent reports whether some cluster contains both a and b.
func (g *Graph) Adjacent(a, b int) bool {
	_, ok := g.adj[a][b]

	return ok
}

// Delta returns {label} ∪ Neighbors(label) as a VarSet.
func (g *Graph) Delta(label int) (factor.VarSet, error) {
	v, ok := g.vars[label]
	if !ok {
		return factor.VarSet{}, fmt.Errorf("%w: x%d", ErrUnknownVariable, label)
	}
	members := make([]factor.Var, 0, len(g.adj[label])+1)
	members = append(members, v)
	for l := range g.adj[label] {
		members = append(members, g.vars[l])
	}

	return factor.NewVarSet(members...)
}

// ElimVar eliminates label: every cluster containing it is replaced by one
// cluster Delta(label) \ {label}, its neighbors become pairwise adjacent and
// label leaves the graph. Returns Delta(label) as it was before elimination.
// Complexity: O(C·k + d²) with d = |Neighbors(label)|.
func (g *Graph) ElimVar(label int) (factor.VarSet, error) {
	// 1) Capture the neighborhood before touching anything.
	di, err := g.Delta(label)
	if err != nil {
		return factor.VarSet{}, err
	}

	// 2) Drop clusters mentioning label.
	kept := g.clusters[:0]
	for _, c := range g.clusters {
		if !c.Contains(label) {
			kept = append(kept, c)
		}
	}
	g.clusters = kept

	// 3) Detach label and fold its neighborhood into one cluster.
	for l := range g.adj[label] {
		delete(g.adj[l], label)
	}
	delete(g.adj, label)
	delete(g.vars, label)
	g.insert(di.Remove(label))

	return di, nil
}

// EraseNonMaximal removes every cluster contained in another cluster.
// Adjacency is unaffected because a subset adds no pair its superset lacks.
// Complexity: O(C²·k).
func (g *Graph) EraseNonMaximal() {
	kept := make([]factor.VarSet, 0, len(g.clusters))
	for i, c := range g.clusters {
		maximal := true
		for j, d := range g.clusters {
			if i != j && d.Len() > c.Len() && d.ContainsAll(c) {
				maximal = false
				break
			}
		}
		if maximal {
			kept = append(kept, c)
		}
	}
	g.clusters = kept
}

// Clone returns an independent deep copy.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		vars:     make(map[int]factor.Var, len(g.vars)),
		adj:      make(map[int]map[int]struct{}, len(g.adj)),
		clusters: make([]factor.VarSet, len(g.clusters)),
	}
	for l, v := range g.vars {
		c.vars[l] = v
	}
	for l, nb := range g.adj {
		m := make(map[int]struct{}, len(nb))
		for k := range nb {
			m[k] = struct{}{}
		}
		c.adj[l] = m
	}
	copy(c.clusters, g.clusters) // VarSets are immutable

	return c
}
