// Package elimination plans, costs and executes variable elimination over a
// factor graph whose evidence has already been clamped away.
//
// Three steps, each usable on its own:
//
//	plan, err := elimination.PlanOrder(fg, heuristic, part, elimination.Constrained)
//	cost, err := elimination.Simulate(fg, plan.Eliminated())
//	f, err    := elimination.Execute(fg, plan, elimination.WithLogger(l))
//
// Planning. A Partition splits the graph's variables into targets, evidence
// and nuisance (everything else). PlanOrder greedily picks the next variable
// with a clustergraph.Heuristic against a live cluster graph that is folded
// after every pick. In Constrained mode (MAP) every nuisance variable is
// ordered before every target; in Unconstrained mode (marginals) only the
// nuisance variables are eliminated and the query labels are appended to the
// reported order in ascending label order.
//
// Simulation. Simulate replays an order on variable sets only and reports
// the largest cluster (Treewidth) and its joint state count (MaxStates). It
// performs the same gather / union / remove steps as Execute, so its figures
// are exactly the table sizes Execute will allocate.
//
// Execution. Execute multiplies the factors mentioning each eliminated
// variable and reduces it out: max-marginalization for targets, summation
// for everything else. Variables no live factor mentions are skipped. The
// surviving factors are multiplied into the result.
//
// Both Simulate and Execute keep their working collection in an arena:
// entries are appended, never moved, and consumed entries are tombstoned.
package elimination
