// Package vemap is exact MAP and marginal inference over discrete factor
// graphs, built around constrained variable elimination.
//
// What is vemap?
//
//	A MAP query asks for the most probable joint state of a few hypothesis
//	variables given evidence, with every other (nuisance) variable summed
//	out. vemap answers it two ways and lets you compare them:
//		• Constrained variable elimination: sum out nuisance variables first,
//		  then max out the hypothesis, following a heuristic order
//		• Junction tree: calibrate a Hugin tree, read the posterior over the
//		  hypothesis, take its arg-max
//		• Plain VE marginals and cost simulation (treewidth, largest cluster)
//
// Packages:
//
//	factor/       - variables, variable sets, dense tables and their algebra
//	factorgraph/  - immutable factor graphs, evidence clamping, .fg I/O
//	clustergraph/ - interaction graph + MINFILL / MINWEIGHT / ... heuristics
//	elimination/  - planner, simulator, executor, arg-max traceback
//	jtree/        - junction tree construction and Hugin propagation
//	inference/    - the MAP / marginal entry points with logging, metrics, traces
//	builder/      - synthetic graph generators (chain, grid, tree, random ...)
//	config/       - YAML + VEMAP_* environment run settings
//	telemetry/    - tracer provider setup and metrics export
//	logging/      - slog handlers with the CLI's level names
//	memstats/     - process and system memory figures for diagnostics
//	cmd/vemap     - the command line front end
//
// Quick example: a two-variable chain x0 - x1 with x1 observed.
//
//	fg, _ := factorgraph.New(f01, f1)
//	a, _ := inference.ComputeMapByEliminationExact(ctx, fg, inference.Query{
//		Targets:        []int{0},
//		EvidenceVars:   []int{1},
//		EvidenceValues: []int{1},
//	})
//	fmt.Println(a) // x0=... (p=...)
//
//	go get github.com/aschroede/vemap
package vemap
