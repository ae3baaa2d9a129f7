// Package clustergraph provides the structural view of a factor graph used
// to choose elimination orders: a set of clusters (variable sets) plus the
// induced interaction graph over variable labels.
//
// Two variables are adjacent when some cluster contains both. Eliminating a
// variable i folds its neighborhood into one cluster:
//
//	Delta(i)   = {i} ∪ Neighbors(i)
//	ElimVar(i) : drop every cluster containing i, insert Delta(i) \ {i}
//
// after which the neighbors of i are pairwise adjacent (fill-in edges) and i
// is gone. Heuristics read this live structure to pick the next variable.
//
// Heuristics:
//
//	MINNEIGHBORS     |Neighbors(i)|
//	MINWEIGHT        Π states(Neighbors(i))
//	MINFILL          # non-adjacent pairs in Neighbors(i)
//	WEIGHTEDMINFILL  Σ states(j)·states(k) over non-adjacent pairs
//
// Greedy wraps a cost function into a Heuristic that scans candidates in
// ascending label order and keeps the first strict minimum, so ties always
// resolve to the lowest label. Lookup resolves a heuristic by name
// ("MINFILL", "min-fill" and "min_fill" are equivalent).
//
// VarElim runs a heuristic to completion and returns the eliminated cliques
// and order; the junction tree builds its decomposition from them.
//
// Determinism: adjacency is held in nested maps (label -> label -> {}), but
// every query that returns labels sorts them, so results never depend on map
// iteration order.
//
// Concurrency: a Graph is mutated by ElimVar and must be owned by one
// goroutine. Clone gives an independent copy.
package clustergraph
