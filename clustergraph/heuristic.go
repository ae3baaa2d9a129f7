// SPDX-License-Identifier: MIT
// Package: vemap/clustergraph
//
// heuristic.go - elimination cost functions, the greedy chooser and the
// name registry.

package clustergraph

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Canonical heuristic names.
const (
	NameMinNeighbors    = "MINNEIGHBORS"
	NameMinWeight       = "MINWEIGHT"
	NameMinFill         = "MINFILL"
	NameWeightedMinFill = "WEIGHTEDMINFILL"
)

// MinNeighbors costs a variable by its number of neighbors.
func MinNeighbors(g *Graph, label int) float64 {
	return float64(len(g.adj[label]))
}

// MinWeight costs a variable by the joint state count of its neighbors.
// Computed in float64 so wide neighborhoods saturate at +Inf instead of
// wrapping.
func MinWeight(g *Graph, label int) float64 {
	w := 1.0
	for l := range g.adj[label] {
		w *= float64(g.vars[l].States)
	}

	return w
}

// MinFill costs a variable by the number of fill-in edges its elimination
// would add: pairs of neighbors that are not yet adjacent.
// Complexity: O(d²).
func MinFill(g *Graph, label int) float64 {
	nb := g.Neighbors(label)
	fill := 0
	for i := 0; i < len(nb); i++ {
		for j := i + 1; j < len(nb); j++ {
			if !g.Adjacent(nb[i], nb[j]) {
				fill++
			}
		}
	}

	return float64(fill)
}

// WeightedMinFill is MinFill with every missing edge weighted by the
// product of its endpoints' cardinalities.
func WeightedMinFill(g *Graph, label int) float64 {
	nb := g.Neighbors(label)
	var fill float64
	for i := 0; i < len(nb); i++ {
		for j := i + 1; j < len(nb); j++ {
			if !g.Adjacent(nb[i], nb[j]) {
				fill += float64(g.vars[nb[i]].States) * float64(g.vars[nb[j]].States)
			}
		}
	}

	return fill
}

// Greedy is a Heuristic choosing the candidate of minimum cost.
type Greedy struct {
	name string
	cost CostFunc
}

// NewGreedy wraps cost into a named greedy Heuristic.
// Panics on a nil cost or empty name.
func NewGreedy(name string, cost CostFunc) Greedy {
	if cost == nil || name == "" {
		panic("clustergraph: NewGreedy requires a name and a cost function")
	}

	return Greedy{name: name, cost: cost}
}

// Name returns the heuristic name.
func (h Greedy) Name() string { return h.name }

// Pick scans candidates in ascending label order and returns the first one
// with strictly smallest cost. Candidates unknown to g are an error.
// Complexity: O(n·cost) for n candidates.
func (h Greedy) Pick(g *Graph, candidates []int) (int, error) {
	if len(candidates) == 0 {
		return 0, ErrNoCandidates
	}
	sorted := make([]int, len(candidates))
	copy(sorted, candidates)
	sort.Ints(sorted)

	best, bestCost := 0, math.Inf(1)
	found := false
	for _, l := range sorted {
		if _, ok := g.vars[l]; !ok {
			return 0, fmt.Errorf("%w: candidate x%d", ErrUnknownVariable, l)
		}
		if c := h.cost(g, l); !found || c < bestCost {
			best, bestCost, found = l, c, true
		}
	}

	return best, nil
}

var registry = map[string]CostFunc{
	NameMinNeighbors:    MinNeighbors,
	NameMinWeight:       MinWeight,
	NameMinFill:         MinFill,
	NameWeightedMinFill: WeightedMinFill,
}

// Lookup returns the greedy heuristic registered under name. Matching ignores
// case, '-' and '_'.
func Lookup(name string) (Heuristic, error) {
	key := strings.ToUpper(strings.NewReplacer("-", "", "_", "").Replace(name))
	cost, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownHeuristic, name, strings.Join(Names(), ", "))
	}

	return NewGreedy(key, cost), nil
}

// Names lists the registered heuristic names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)

	return out
}

// Default returns the MINFILL heuristic.
func Default() Heuristic { return NewGreedy(NameMinFill, MinFill) }
