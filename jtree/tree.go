// SPDX-License-Identifier: MIT
// Package: vemap/jtree
//
// tree.go - junction-tree construction and introspection.

package jtree

import (
	"fmt"
	"slices"

	"github.com/aschroede/vemap/clustergraph"
	"github.com/aschroede/vemap/factor"
	"github.com/aschroede/vemap/factorgraph"
)

// JTree is a junction tree over the factors of one graph. Construction only
// fixes the structure; Init loads potentials and Run calibrates them.
type JTree struct {
	opts      Options
	fg        *factorgraph.Graph
	heuristic string
	order     []int
	cliques   []factor.VarSet
	edges     []Edge
	assign    [][]int // factor indices per clique
	parent    []int   // parent clique, -1 for the root
	depth     []int

	qa   []factor.Factor // clique beliefs
	qb   []factor.Factor // separator beliefs, indexed like edges
	logZ float64

	initialized bool
	calibrated  bool
}

// New builds the junction tree of fg.
//
// Steps:
//  1. Resolve options; reject anything but HUGIN with ErrUnsupported.
//  2. Triangulate: clustergraph.VarElim over the factor scopes with the
//     chosen heuristic and state limit.
//  3. Keep the maximal eliminated cliques. A graph without variables gets a
//     single empty clique.
//  4. Connect cliques by a maximum-weight spanning tree (weight = separator
//     size) and root it at clique 0 in breadth-first order.
//  5. Assign every factor to the first clique covering its scope.
//
// Complexity: O(n² · cost) triangulation + O(k² · s) spanning tree.
func New(fg *factorgraph.Graph, opts ...Option) (*JTree, error) {
	// 1) Options.
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.Updates != HUGIN {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, o.Updates)
	}
	h, err := clustergraph.Lookup(o.Heuristic)
	if err != nil {
		return nil, fmt.Errorf("jtree: New: %w", err)
	}

	// 2) Triangulate.
	cg := clustergraph.FromFactorGraph(fg, clustergraph.WithNonMaximalErased())
	elim, err := clustergraph.VarElim(cg, h, o.MaxStates)
	if err != nil {
		return nil, fmt.Errorf("jtree: New: %w", err)
	}

	// 3) Maximal cliques.
	cliques := clustergraph.New(elim.Cliques, clustergraph.WithNonMaximalErased()).Clusters()
	if len(cliques) == 0 {
		cliques = []factor.VarSet{{}}
	}

	// 4) Spanning tree.
	var tree []link
	if o.Spanning == MethodKruskal {
		tree = maxSpanningKruskal(cliques)
	} else {
		tree = maxSpanningPrim(cliques)
	}
	edges := rootTree(cliques, tree)

	jt := &JTree{
		opts:      o,
		fg:        fg,
		heuristic: h.Name(),
		order:     elim.Order,
		cliques:   cliques,
		edges:     edges,
		assign:    make([][]int, len(cliques)),
		parent:    make([]int, len(cliques)),
		depth:     make([]int, len(cliques)),
	}
	for i := range jt.parent {
		jt.parent[i] = -1
	}
	for _, e := range edges {
		jt.parent[e.To] = e.From
		jt.depth[e.To] = jt.depth[e.From] + 1
	}

	// 5) Factor assignment.
	for i, f := range fg.Factors() {
		home := slices.IndexFunc(cliques, func(c factor.VarSet) bool { return c.ContainsAll(f.Vars()) })
		if home < 0 {
			return nil, fmt.Errorf("jtree: New: factor %d %s fits no clique", i, f.Vars())
		}
		jt.assign[home] = append(jt.assign[home], i)
	}

	return jt, nil
}

// Heuristic returns the name of the triangulation heuristic.
func (jt *JTree) Heuristic() string { return jt.heuristic }

// ElimOrder returns the triangulation order.
func (jt *JTree) ElimOrder() []int { return slices.Clone(jt.order) }

// Cliques returns the maximal cliques; clique 0 is the root.
func (jt *JTree) Cliques() []factor.VarSet { return slices.Clone(jt.cliques) }

// Edges returns the rooted edges in breadth-first order.
func (jt *JTree) Edges() []Edge { return slices.Clone(jt.edges) }

// MaxCluster returns the number of variables in the largest clique.
func (jt *JTree) MaxCluster() int {
	m := 0
	for _, c := range jt.cliques {
		m = max(m, c.Len())
	}

	return m
}

// MaxStates returns the joint state count of the largest clique.
func (jt *JTree) MaxStates() int {
	m := 0
	for _, c := range jt.cliques {
		if n, ok := c.NrStatesInt(); ok {
			m = max(m, n)
		}
	}

	return m
}

// LogZ returns the log partition sum recorded by the last Run.
func (jt *JTree) LogZ() float64 { return jt.logZ }

// Belief returns the current belief of clique i.
func (jt *JTree) Belief(i int) (factor.Factor, error) {
	if i < 0 || i >= len(jt.cliques) {
		return factor.Factor{}, fmt.Errorf("%w: %d of %d", ErrBadClique, i, len(jt.cliques))
	}
	if !jt.initialized {
		return factor.Factor{}, ErrNotReady
	}

	return jt.qa[i], nil
}

// String summarizes the tree as "JTree(HUGIN, SUMPROD, MINFILL, 3 cliques)".
func (jt *JTree) String() string {
	return fmt.Sprintf("JTree(%s, %s, %s, %d cliques)",
		jt.opts.Updates, jt.opts.Inference, jt.heuristic, len(jt.cliques))
}
