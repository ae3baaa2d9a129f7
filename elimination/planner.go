// SPDX-License-Identifier: MIT
// Package: vemap/elimination
//
// planner.go - variable partition, elimination plans and the greedy planner.

package elimination

import (
	"fmt"
	"slices"

	"github.com/aschroede/vemap/clustergraph"
	"github.com/aschroede/vemap/factorgraph"
)

// Partition names the target and evidence labels of a query. Every other
// variable of the graph is a nuisance variable.
type Partition struct {
	Targets  []int
	Evidence []int
}

// Validate checks that targets are distinct graph variables and that no
// label is both target and evidence. Evidence labels absent from fg are
// accepted: they have already been clamped away.
func (p Partition) Validate(fg *factorgraph.Graph) error {
	seen := make(map[int]bool, len(p.Targets))
	for _, t := range p.Targets {
		if seen[t] {
			return fmt.Errorf("%w: target x%d listed twice", ErrPartition, t)
		}
		seen[t] = true
		if !fg.HasVar(t) {
			return fmt.Errorf("%w: target x%d is not a graph variable", ErrPartition, t)
		}
	}
	for _, e := range p.Evidence {
		if seen[e] {
			return fmt.Errorf("%w: x%d is both target and evidence", ErrPartition, e)
		}
	}

	return nil
}

// Nuisance returns the graph variables that are neither target nor
// evidence, ascending.
func (p Partition) Nuisance(fg *factorgraph.Graph) []int {
	excluded := make(map[int]bool, len(p.Targets)+len(p.Evidence))
	for _, l := range p.Targets {
		excluded[l] = true
	}
	for _, l := range p.Evidence {
		excluded[l] = true
	}
	var out []int
	for _, l := range fg.Labels() {
		if !excluded[l] {
			out = append(out, l)
		}
	}

	return out
}

// Plan is an elimination order with the role of every label in it.
type Plan struct {
	// Mode is the planning mode that produced the plan.
	Mode Mode
	// Heuristic names the heuristic that chose the order ("" for a fixed order).
	Heuristic string
	// Order is the full elimination order: nuisance labels, then targets.
	Order []int
	// NrNuisance is the length of the nuisance prefix of Order.
	NrNuisance int

	targets map[int]struct{}
}

// NewPlan builds a plan from a caller-supplied order. Labels of order that
// appear in targets form the target suffix; the rest must precede them.
func NewPlan(order, targets []int, mode Mode) (Plan, error) {
	ts := make(map[int]struct{}, len(targets))
	for _, t := range targets {
		ts[t] = struct{}{}
	}
	p := Plan{Mode: mode, Order: slices.Clone(order), targets: ts}

	inTargets := false
	for i, l := range order {
		_, isTarget := ts[l]
		switch {
		case isTarget && !inTargets:
			inTargets = true
			p.NrNuisance = i
		case !isTarget && inTargets:
			return Plan{}, fmt.Errorf("%w: nuisance x%d after a target", ErrInvalidOrder, l)
		}
	}
	if !inTargets {
		p.NrNuisance = len(order)
	}

	return p, nil
}

// Eliminated returns the labels Execute eliminates: the whole order in
// Constrained mode, the nuisance prefix in Unconstrained mode.
func (p Plan) Eliminated() []int {
	if p.Mode == Constrained {
		return slices.Clone(p.Order)
	}

	return slices.Clone(p.Order[:p.NrNuisance])
}

// Role returns RoleTarget for target labels of a constrained plan and
// RoleNuisance otherwise.
func (p Plan) Role(label int) Role {
	if p.Mode != Constrained {
		return RoleNuisance
	}
	if _, ok := p.targets[label]; ok {
		return RoleTarget
	}

	return RoleNuisance
}

// PlanOrder computes an elimination plan for fg.
//
// Steps:
//  1. Validate the partition.
//  2. Build a cluster graph from the factor scopes (non-maximal clusters erased).
//  3. Greedily order the nuisance set, folding the cluster graph after each pick.
//  4. Constrained: greedily order the targets on the same, already folded,
//     graph. Unconstrained: append the targets in ascending label order.
//
// A heuristic returning a label outside the current candidate set yields
// ErrInvalidOrder and no plan.
// Complexity: O(n² · cost(h)) for n planned variables.
func PlanOrder(fg *factorgraph.Graph, h clustergraph.Heuristic, part Partition, mode Mode) (Plan, error) {
	// 1) Partition.
	if err := part.Validate(fg); err != nil {
		return Plan{}, err
	}
	nuisance := part.Nuisance(fg)
	targets := slices.Clone(part.Targets)
	slices.Sort(targets)

	// 2) Live structure.
	cg := clustergraph.FromFactorGraph(fg, clustergraph.WithNonMaximalErased())

	// 3) Nuisance first.
	order := make([]int, 0, len(nuisance)+len(targets))
	order, err := greedy(cg, h, nuisance, order)
	if err != nil {
		return Plan{}, err
	}
	nrNuisance := len(order)

	// 4) Targets last.
	if mode == Constrained {
		if order, err = greedy(cg, h, targets, order); err != nil {
			return Plan{}, err
		}
	} else {
		order = append(order, targets...)
	}

	ts := make(map[int]struct{}, len(targets))
	for _, t := range targets {
		ts[t] = struct{}{}
	}

	return Plan{
		Mode:       mode,
		Heuristic:  h.Name(),
		Order:      order,
		NrNuisance: nrNuisance,
		targets:    ts,
	}, nil
}

// greedy drains candidates into order, one heuristic pick at a time.
func greedy(cg *clustergraph.Graph, h clustergraph.Heuristic, candidates, order []int) ([]int, error) {
	remaining := slices.Clone(candidates)
	for len(remaining) > 0 {
		v, err := h.Pick(cg, remaining)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidOrder, h.Name(), err)
		}
		i := slices.Index(remaining, v)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s picked x%d outside the candidate set", ErrInvalidOrder, h.Name(), v)
		}
		if _, err := cg.ElimVar(v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOrder, err)
		}
		order = append(order, v)
		remaining = slices.Delete(remaining, i, i+1)
	}

	return order, nil
}
