// Package inference answers MAP and marginal queries over a factor graph.
//
// Three entry points share one query type and one option set:
//
//   - ComputeMapByEliminationExact plans a constrained elimination order
//     (nuisance variables first, targets last), executes it and traces the
//     arg-max back through the max-eliminated targets.
//   - ComputeMapByJunctionTree calibrates a HUGIN junction tree, takes the
//     joint marginal over the targets and picks its maximum.
//   - ComputeMarginal runs an unconstrained elimination and returns the
//     normalized marginal over the targets.
//
// Evidence is always clamped away first (ClampReduce), so planning and
// execution see only the variables that still carry uncertainty.
//
// Both MAP paths agree on the arg-max; their probabilities differ.
// The elimination path reports max_t P(t, e), the junction tree path the
// posterior max_t P(t | e).
//
// Every run logs its heuristic, order, treewidth and result through the
// configured *slog.Logger, opens an OpenTelemetry span and updates the
// vemap_* Prometheus collectors. A failure while executing (including a
// recovered panic) is returned wrapped in ErrExecution after an optional
// memory diagnostic dump.
package inference
