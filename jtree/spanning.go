// SPDX-License-Identifier: MIT
// Package: vemap/jtree
//
// spanning.go - maximum-weight spanning trees over cliques.

package jtree

import (
	"sort"

	"github.com/aschroede/vemap/factor"
	"github.com/rhartert/yagh"
)

// link is an undirected tree edge between cliques a and b.
type link struct {
	a, b int
}

// sepWeight is the spanning weight of a clique pair: the number of shared
// variables. Every pair is a candidate, so disjoint components are joined
// through empty separators.
func sepWeight(cliques []factor.VarSet, a, b int) int {
	return cliques[a].Intersect(cliques[b]).Len()
}

// maxSpanningPrim grows a maximum-weight spanning tree from clique 0.
//
// Steps:
//  1. Seed an indexed min-heap with clique 0 at cost 0.
//  2. Pop the cheapest clique v, attach it to its best parent.
//  3. For every clique u outside the tree, lower its cost if v offers a
//     heavier separator than its current best.
//  4. Repeat until the heap is empty.
//
// Costs are -weight·k + u, so heavier separators win and ties go to the
// lowest clique index.
// Complexity: O(k² · (s + log k)) for k cliques with separators of size ≤ s.
func maxSpanningPrim(cliques []factor.VarSet) []link {
	k := len(cliques)
	if k < 2 {
		return nil
	}

	// 1) Heap and bookkeeping.
	pq := yagh.New[float64](0)
	pq.GrowBy(k)
	best := make([]int, k)
	parent := make([]int, k)
	inTree := make([]bool, k)
	for i := range parent {
		parent[i] = -1
	}
	cost := func(w, u int) float64 { return float64(-w*k + u) }
	pq.Put(0, 0)

	tree := make([]link, 0, k-1)
	for {
		// 2) Cheapest frontier clique.
		next, ok := pq.Pop()
		if !ok {
			break
		}
		v := next.Elem
		inTree[v] = true
		if parent[v] >= 0 {
			tree = append(tree, link{a: parent[v], b: v})
		}

		// 3) Relax.
		for u := 0; u < k; u++ {
			if inTree[u] {
				continue
			}
			w := sepWeight(cliques, v, u)
			if !pq.Contains(u) || w > best[u] {
				best[u] = w
				parent[u] = v
				pq.Put(u, cost(w, u))
			}
		}
	}

	return tree
}

// maxSpanningKruskal sorts every clique pair by descending separator size
// and joins disjoint components with union-find (path compression and union
// by rank). Pairs of equal weight keep ascending (a, b) order.
// Complexity: O(k² · (s + log k)).
func maxSpanningKruskal(cliques []factor.VarSet) []link {
	k := len(cliques)
	if k < 2 {
		return nil
	}

	type pair struct {
		link
		w int
	}
	pairs := make([]pair, 0, k*(k-1)/2)
	for a := 0; a < k; a++ {
		for b := a + 1; b < k; b++ {
			pairs = append(pairs, pair{link: link{a: a, b: b}, w: sepWeight(cliques, a, b)})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].w > pairs[j].w })

	parent := make([]int, k)
	rank := make([]int, k)
	for i := range parent {
		parent[i] = i
	}
	find := func(u int) int {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}

		return u
	}
	union := func(u, v int) bool {
		ru, rv := find(u), find(v)
		if ru == rv {
			return false
		}
		switch {
		case rank[ru] < rank[rv]:
			parent[ru] = rv
		case rank[ru] > rank[rv]:
			parent[rv] = ru
		default:
			parent[rv] = ru
			rank[ru]++
		}

		return true
	}

	tree := make([]link, 0, k-1)
	for _, p := range pairs {
		if union(p.a, p.b) {
			tree = append(tree, p.link)
			if len(tree) == k-1 {
				break
			}
		}
	}

	return tree
}

// rootTree orients an undirected spanning tree away from clique 0 in
// breadth-first order, so that every edge appears after the edge that
// reaches its parent. Neighbors are visited in ascending index order.
func rootTree(cliques []factor.VarSet, tree []link) []Edge {
	k := len(cliques)
	adj := make([][]int, k)
	for _, l := range tree {
		adj[l.a] = append(adj[l.a], l.b)
		adj[l.b] = append(adj[l.b], l.a)
	}
	for i := range adj {
		sort.Ints(adj[i])
	}

	out := make([]Edge, 0, len(tree))
	if k == 0 {
		return out
	}
	visited := make([]bool, k)
	queue := []int{0}
	visited[0] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range adj[cur] {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			out = append(out, Edge{From: cur, To: nb, Sep: cliques[cur].Intersect(cliques[nb])})
			queue = append(queue, nb)
		}
	}

	return out
}
