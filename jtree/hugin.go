// SPDX-License-Identifier: MIT
// Package: vemap/jtree
//
// hugin.go - HUGIN message passing and marginal queries.

package jtree

import (
	"fmt"
	"math"
	"slices"

	"github.com/aschroede/vemap/factor"
)

// Init loads clique potentials (the product of the assigned factors) and
// resets every separator to the all-ones factor. Init may be called again to
// discard a previous calibration.
func (jt *JTree) Init() error {
	jt.qa = make([]factor.Factor, len(jt.cliques))
	for i, c := range jt.cliques {
		pot, err := factor.New(c)
		if err != nil {
			return fmt.Errorf("jtree: Init clique %d: %w", i, err)
		}
		for _, fi := range jt.assign[i] {
			if pot, err = pot.Product(jt.fg.Factor(fi)); err != nil {
				return fmt.Errorf("jtree: Init clique %d: %w", i, err)
			}
		}
		jt.qa[i] = pot
	}

	jt.qb = make([]factor.Factor, len(jt.edges))
	for i, e := range jt.edges {
		sep, err := factor.New(e.Sep)
		if err != nil {
			return fmt.Errorf("jtree: Init separator %d: %w", i, err)
		}
		jt.qb[i] = sep
	}
	jt.logZ = 0
	jt.initialized, jt.calibrated = true, false

	return nil
}

// reduce projects f onto keep with the semiring of the tree.
func (jt *JTree) reduce(f factor.Factor, keep factor.VarSet) factor.Factor {
	if jt.opts.Inference == MaxProd {
		return f.MaxMarginal(keep)
	}

	return f.Marginal(keep)
}

// absorb sends the message over edge i from clique src into clique dst:
// the new separator belief is src projected onto the separator, and dst is
// multiplied by new/old. It returns the separator mass before normalizing.
func (jt *JTree) absorb(i, src, dst int) (float64, error) {
	msg := jt.reduce(jt.qa[src], jt.edges[i].Sep)
	z := msg.Sum()
	msg, err := msg.Normalize()
	if err != nil {
		return 0, fmt.Errorf("jtree: message over edge %d (%d->%d): %w", i, src, dst, err)
	}
	ratio, err := msg.Divide(jt.qb[i])
	if err != nil {
		return 0, err
	}
	if jt.qa[dst], err = jt.qa[dst].Product(ratio); err != nil {
		return 0, err
	}
	jt.qb[i] = msg

	return z, nil
}

// Run calibrates the tree with one HUGIN sweep.
//
// Steps:
//  1. Collect: edges in reverse order, child absorbs into parent.
//  2. Normalize the root and accumulate log Z.
//  3. Distribute: edges in forward order, parent absorbs into child.
//  4. Normalize every clique.
//
// A zero message (all potential mass clamped away) fails with
// factor.ErrNotNormalizable.
// Complexity: O(Σ clique table sizes).
func (jt *JTree) Run() error {
	if !jt.initialized {
		return ErrNotReady
	}

	// 1) Collect.
	logZ := 0.0
	for i := len(jt.edges) - 1; i >= 0; i-- {
		e := jt.edges[i]
		z, err := jt.absorb(i, e.To, e.From)
		if err != nil {
			return err
		}
		logZ += math.Log(z)
	}

	// 2) Root.
	z := jt.qa[0].Sum()
	root, err := jt.qa[0].Normalize()
	if err != nil {
		return fmt.Errorf("jtree: root: %w", err)
	}
	jt.qa[0] = root
	logZ += math.Log(z)

	// 3) Distribute.
	for i, e := range jt.edges {
		if _, err := jt.absorb(i, e.From, e.To); err != nil {
			return err
		}
	}

	// 4) Normalize.
	for i := range jt.qa {
		if jt.qa[i], err = jt.qa[i].Normalize(); err != nil {
			return fmt.Errorf("jtree: clique %d: %w", i, err)
		}
	}
	jt.logZ = logZ
	jt.calibrated = true

	return nil
}

// CalcMarginal returns the normalized (max-)marginal over vs.
//
// If one clique covers vs, its belief is projected. Otherwise the smallest
// subtree whose cliques cover vs is combined as Π clique / Π separator,
// which is the joint over the subtree's variables on a calibrated tree, and
// then projected onto vs.
func (jt *JTree) CalcMarginal(vs factor.VarSet) (factor.Factor, error) {
	if !jt.calibrated {
		return factor.Factor{}, ErrNotReady
	}
	for _, l := range vs.Labels() {
		if !jt.fg.HasVar(l) {
			return factor.Factor{}, fmt.Errorf("%w: x%d", ErrUnknownVariable, l)
		}
	}

	if i := slices.IndexFunc(jt.cliques, func(c factor.VarSet) bool { return c.ContainsAll(vs) }); i >= 0 {
		return jt.reduce(jt.qa[i], vs).Normalize()
	}

	nodes, seps := jt.coveringSubtree(vs)
	joint := factor.Scalar(1)
	var err error
	for _, n := range nodes {
		if joint, err = joint.Product(jt.qa[n]); err != nil {
			return factor.Factor{}, fmt.Errorf("jtree: CalcMarginal %s: %w", vs, err)
		}
	}
	for _, s := range seps {
		if joint, err = joint.Divide(jt.qb[s]); err != nil {
			return factor.Factor{}, fmt.Errorf("jtree: CalcMarginal %s: %w", vs, err)
		}
	}

	return jt.reduce(joint, vs).Normalize()
}

// coveringSubtree returns the cliques and edge indices of the smallest
// connected subtree containing, for every label of vs, the first clique that
// holds it.
func (jt *JTree) coveringSubtree(vs factor.VarSet) (nodes, seps []int) {
	var anchors []int
	for _, l := range vs.Labels() {
		i := slices.IndexFunc(jt.cliques, func(c factor.VarSet) bool { return c.Contains(l) })
		if !slices.Contains(anchors, i) {
			anchors = append(anchors, i)
		}
	}

	in := make([]bool, len(jt.cliques))
	in[anchors[0]] = true
	for _, a := range anchors[1:] {
		// Walk both ends up to their lowest common ancestor.
		u, v := a, anchors[0]
		for u != v {
			if jt.depth[u] >= jt.depth[v] {
				in[u] = true
				u = jt.parent[u]
			} else {
				in[v] = true
				v = jt.parent[v]
			}
		}
		in[u] = true
	}

	for i, ok := range in {
		if ok {
			nodes = append(nodes, i)
		}
	}
	for i, e := range jt.edges {
		if in[e.From] && in[e.To] {
			seps = append(seps, i)
		}
	}

	return nodes, seps
}
