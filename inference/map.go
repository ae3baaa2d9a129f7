// SPDX-License-Identifier: MIT
// Package: vemap/inference

package inference

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"slices"
	"time"

	"github.com/aschroede/vemap/clustergraph"
	"github.com/aschroede/vemap/elimination"
	"github.com/aschroede/vemap/factor"
	"github.com/aschroede/vemap/factorgraph"
	"github.com/aschroede/vemap/jtree"
)

// prepare validates q and clamps its evidence away.
func (r *run) prepare(fg *factorgraph.Graph, q Query) (*factorgraph.Graph, error) {
	if err := q.Validate(fg); err != nil {
		return nil, err
	}
	reduced, err := fg.ClampReduceAll(q.EvidenceVars, q.EvidenceValues)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	r.log.Debug("evidence_clamped",
		slog.Int("vars_before", fg.NrVars()),
		slog.Int("vars_after", reduced.NrVars()))

	return reduced, nil
}

// plan orders fg for q in the given mode and logs the simulated cost.
func (r *run) plan(fg *factorgraph.Graph, q Query, mode elimination.Mode) (elimination.Plan, elimination.Cost, error) {
	h, err := clustergraph.Lookup(r.opts.Heuristic)
	if err != nil {
		return elimination.Plan{}, elimination.Cost{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	r.log.Info("heuristic_selected", slog.String("name", h.Name()))

	part := elimination.Partition{Targets: q.Targets, Evidence: q.EvidenceVars}
	plan, err := elimination.PlanOrder(fg, h, part, mode)
	if err != nil {
		return elimination.Plan{}, elimination.Cost{}, err
	}
	r.log.Info("elimination_order",
		slog.String("mode", mode.String()),
		slog.Any("order", plan.Order),
		slog.Int("nuisance", plan.NrNuisance))

	cost, err := elimination.Simulate(fg, plan.Eliminated())
	if err != nil {
		return elimination.Plan{}, elimination.Cost{}, err
	}
	r.log.Info("treewidth",
		slog.Int("max_cluster", cost.Treewidth),
		slog.String("max_states", cost.MaxStates.String()))
	r.treewidth(cost.Treewidth, cost.MaxStates.String())
	if lim := r.opts.StateWarnLimit; lim > 0 && cost.MaxStates.Cmp(big.NewInt(lim)) > 0 {
		r.log.Warn("state_limit_exceeded",
			slog.String("max_states", cost.MaxStates.String()),
			slog.Int64("limit", lim))
	}

	return plan, cost, nil
}

// ComputeMapByEliminationExact returns the MAP assignment of q.Targets given
// the evidence, with every other variable summed out exactly.
//
// Steps:
//  1. Validate q and ClampReduce the evidence.
//  2. PlanOrder in Constrained mode and Simulate the order (logged).
//  3. Execute the plan, recording the arg-max of every target.
//  4. Decode the traceback; the scalar result is max_t P(t, e).
//
// Structural problems return ErrInvalidQuery or an elimination error;
// failures while computing tables return ErrExecution.
func ComputeMapByEliminationExact(ctx context.Context, fg *factorgraph.Graph, q Query, opts ...Option) (asg Assignment, err error) {
	_, r := begin(ctx, BackendVE, q, opts)
	defer func() { r.end(err) }()

	// 1) Evidence.
	reduced, err := r.prepare(fg, q)
	if err != nil {
		return Assignment{}, err
	}

	// 2) Plan.
	plan, _, err := r.plan(reduced, q, elimination.Constrained)
	if err != nil {
		return Assignment{}, err
	}

	// 3) Execute.
	var tb elimination.Traceback
	var out factor.Factor
	started := time.Now()
	err = r.guard("elimination", func() error {
		var execErr error
		out, execErr = elimination.Execute(reduced, plan,
			elimination.WithLogger(r.log),
			elimination.WithVerboseTrace(r.opts.VerboseTrace),
			elimination.WithTraceback(&tb))
		return execErr
	})
	if err != nil {
		return Assignment{}, err
	}
	r.log.Info("elimination_done", slog.Duration("elapsed", time.Since(started)))

	// 4) Traceback. Ties go to the lowest flat index over the targets, as in
	// ExtractMax; a zero maximum ties everything, so that is all-zero states.
	states := make(map[int]int, len(q.Targets))
	if out.Get(0) > 0 {
		if states, err = tb.DecodeLowest(nil); err != nil {
			return Assignment{}, fmt.Errorf("%w: %w", ErrExecution, err)
		}
	}
	targetSet, err := reduced.VarSet(q.Targets)
	if err != nil {
		return Assignment{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	idx, err := factor.CalcLinearState(targetSet, states)
	if err != nil {
		return Assignment{}, fmt.Errorf("%w: %w", ErrExecution, err)
	}
	asg = Assignment{
		Targets:     slices.Clone(q.Targets),
		States:      make([]int, len(q.Targets)),
		Probability: out.Get(0),
		Index:       idx,
	}
	for i, t := range q.Targets {
		asg.States[i] = states[t]
	}
	if asg.Probability <= 0 {
		r.log.Warn("map_degenerate_factor", slog.Float64("max", asg.Probability))
	}
	logAssignment(r.log, asg)

	return asg, nil
}

// ComputeMapByJunctionTree returns the MAP assignment of q.Targets from the
// joint posterior over the targets computed on a HUGIN junction tree. The
// probability is P(t | e).
func ComputeMapByJunctionTree(ctx context.Context, fg *factorgraph.Graph, q Query, opts ...Option) (asg Assignment, err error) {
	_, r := begin(ctx, BackendJT, q, opts)
	defer func() { r.end(err) }()

	reduced, err := r.prepare(fg, q)
	if err != nil {
		return Assignment{}, err
	}

	jt, err := jtree.New(reduced,
		jtree.WithUpdates(jtree.HUGIN),
		jtree.WithInference(jtree.SumProd),
		jtree.WithHeuristic(r.opts.Heuristic))
	if err != nil {
		return Assignment{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	r.log.Info("heuristic_selected", slog.String("name", jt.Heuristic()))
	r.log.Info("elimination_order", slog.Any("order", jt.ElimOrder()))
	r.log.Info("treewidth",
		slog.Int("max_cluster", jt.MaxCluster()),
		slog.Int("max_states", jt.MaxStates()))
	r.treewidth(jt.MaxCluster(), fmt.Sprint(jt.MaxStates()))

	targetSet, err := reduced.VarSet(q.Targets)
	if err != nil {
		return Assignment{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	var marg factor.Factor
	err = r.guard("junction tree", func() error {
		t0 := time.Now()
		if err := jt.Init(); err != nil {
			return err
		}
		if err := jt.Run(); err != nil {
			return err
		}
		t1 := time.Now()
		r.log.Info("jt_run_done", slog.Duration("elapsed", t1.Sub(t0)), slog.Float64("log_z", jt.LogZ()))

		var err error
		if marg, err = jt.CalcMarginal(targetSet); err != nil {
			return err
		}
		r.log.Info("jt_marginal_done", slog.Duration("elapsed", time.Since(t1)))
		if r.opts.VerboseTrace {
			r.log.Debug("target_marginal", slog.String("factor", marg.String()))
		}

		return nil
	})
	if err != nil {
		return Assignment{}, err
	}

	t2 := time.Now()
	asg, err = ExtractMax(marg, q.Targets, r.log)
	if err != nil {
		return Assignment{}, err
	}
	r.log.Info("jt_maximise_done", slog.Duration("elapsed", time.Since(t2)))

	return asg, nil
}

// ComputeMarginal returns the normalized posterior P(targets | e), computed
// by an unconstrained elimination run.
func ComputeMarginal(ctx context.Context, fg *factorgraph.Graph, q Query, opts ...Option) (f factor.Factor, err error) {
	_, r := begin(ctx, BackendMarginal, q, opts)
	defer func() { r.end(err) }()

	reduced, err := r.prepare(fg, q)
	if err != nil {
		return factor.Factor{}, err
	}
	plan, _, err := r.plan(reduced, q, elimination.Unconstrained)
	if err != nil {
		return factor.Factor{}, err
	}

	err = r.guard("elimination", func() error {
		var execErr error
		f, execErr = elimination.Execute(reduced, plan,
			elimination.WithLogger(r.log),
			elimination.WithVerboseTrace(r.opts.VerboseTrace),
			elimination.WithNormalize())
		return execErr
	})
	if err != nil {
		return factor.Factor{}, err
	}

	return f, nil
}

// PlanQuery validates q, clamps the evidence and plans the elimination in
// the given mode without executing it. The returned plan refers to the
// reduced graph; the cost is the simulated size of its largest cluster.
func PlanQuery(ctx context.Context, fg *factorgraph.Graph, q Query, mode elimination.Mode, opts ...Option) (plan elimination.Plan, cost elimination.Cost, err error) {
	_, r := begin(ctx, BackendPlan, q, opts)
	defer func() { r.end(err) }()

	reduced, err := r.prepare(fg, q)
	if err != nil {
		return elimination.Plan{}, elimination.Cost{}, err
	}

	return r.plan(reduced, q, mode)
}
