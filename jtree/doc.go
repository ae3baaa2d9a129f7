// Package jtree builds junction trees over factor graphs and calibrates them
// with HUGIN message passing.
//
// Construction triangulates the graph with a clustergraph heuristic, keeps
// the maximal elimination cliques and links them with a maximum-weight
// spanning tree whose weights are separator sizes. Two spanning algorithms
// are available:
//
//   - MethodPrim grows the tree from clique 0 with an indexed heap (yagh).
//   - MethodKruskal sorts all clique pairs and joins components with
//     union-find.
//
// The tree is rooted at clique 0 and its edges are kept in breadth-first
// order, so a reverse sweep collects towards the root and a forward sweep
// distributes away from it.
//
// Typical use:
//
//	jt, err := jtree.New(fg, jtree.WithInference(jtree.SumProd), jtree.WithHeuristic("MINFILL"))
//	err = jt.Init()
//	err = jt.Run()
//	m, err := jt.CalcMarginal(vs)
//
// Only the HUGIN schedule is implemented; ShaferShenoy is rejected with
// ErrUnsupported.
package jtree
