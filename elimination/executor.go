// SPDX-License-Identifier: MIT
// Package: vemap/elimination
//
// executor.go - numeric variable elimination.

package elimination

import (
	"fmt"
	"log/slog"

	"github.com/aschroede/vemap/factor"
	"github.com/aschroede/vemap/factorgraph"
)

// factorArena is the working factor collection: append-only slots with
// tombstones, so consumed factors are identified by index and never by value.
type factorArena struct {
	fs   []factor.Factor
	dead []bool
}

func (a *factorArena) add(f factor.Factor) {
	a.fs = append(a.fs, f)
	a.dead = append(a.dead, false)
}

// mentioning returns the indices of live factors whose scope contains label.
func (a *factorArena) mentioning(label int) []int {
	var out []int
	for i, f := range a.fs {
		if !a.dead[i] && f.Vars().Contains(label) {
			out = append(out, i)
		}
	}

	return out
}

// live returns the indices of all live factors.
func (a *factorArena) live() []int {
	var out []int
	for i := range a.fs {
		if !a.dead[i] {
			out = append(out, i)
		}
	}

	return out
}

// combine multiplies the factors at idx left to right. A single factor is
// returned as is.
func (a *factorArena) combine(idx []int) (factor.Factor, error) {
	f := a.fs[idx[0]]
	for _, i := range idx[1:] {
		var err error
		if f, err = f.Product(a.fs[i]); err != nil {
			return factor.Factor{}, err
		}
	}

	return f, nil
}

// runner holds the mutable state of one Execute call.
type runner struct {
	opts  Options
	log   *slog.Logger
	plan  Plan
	arena *factorArena
}

// Execute eliminates plan.Eliminated() from fg and returns the product of
// the surviving factors.
//
// Steps per label:
//  1. Select every live factor mentioning it; if none, skip the label.
//  2. Multiply them into one cluster factor.
//  3. Max out the label if its role is RoleTarget, sum it out otherwise.
//  4. Tombstone the inputs and append the reduced factor.
//
// Finally all live factors are multiplied together (and normalized with
// WithNormalize). An empty final collection is ErrEmptyCombine. A cluster
// too large to tabulate fails with factor.ErrTooLarge.
//
// Complexity: O(Σ cluster table sizes); the largest is Simulate(...).MaxStates.
func Execute(fg *factorgraph.Graph, plan Plan, opts ...Option) (factor.Factor, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	order := plan.Eliminated()
	if err := checkOrder(fg, order); err != nil {
		return factor.Factor{}, err
	}

	if o.Traceback != nil {
		o.Traceback.steps = o.Traceback.steps[:0]
	}
	r := &runner{opts: o, log: o.Logger, plan: plan, arena: &factorArena{}}
	for _, f := range fg.Factors() {
		r.arena.add(f)
	}
	if o.VerboseTrace {
		r.log.Debug("initial_factors", slog.Int("count", len(r.arena.fs)))
		r.trace(r.arena.live())
	}

	last := -1
	for _, label := range order {
		if err := r.eliminate(label); err != nil {
			return factor.Factor{}, err
		}
		last = label
	}

	return r.finish(last)
}

// eliminate performs one elimination step.
func (r *runner) eliminate(label int) error {
	idx := r.arena.mentioning(label)
	if len(idx) == 0 {
		r.log.Debug("eliminate_skip", slog.Int("var", label))
		return nil
	}
	role := r.plan.Role(label)
	r.log.Debug("eliminate_var",
		slog.Int("var", label),
		slog.String("op", role.String()),
		slog.Int("factors", len(idx)))
	if r.opts.VerboseTrace {
		r.trace(idx)
	}

	cluster, err := r.arena.combine(idx)
	if err != nil {
		return fmt.Errorf("elimination: combine for x%d: %w", label, err)
	}
	if r.opts.OnCluster != nil {
		r.opts.OnCluster(label, cluster.Vars())
	}

	keep := cluster.Vars().Remove(label)
	var reduced factor.Factor
	if role == RoleTarget {
		var arg []int
		if reduced, arg, err = cluster.MaxMarginalArg(label); err != nil {
			return fmt.Errorf("elimination: max out x%d: %w", label, err)
		}
		if r.opts.Traceback != nil {
			mask, tied, err := cluster.MaxMask(label)
			if err != nil {
				return fmt.Errorf("elimination: max out x%d: %w", label, err)
			}
			if !tied {
				mask = factor.Factor{}
			}
			vs := cluster.Vars()
			r.opts.Traceback.record(vs.At(vs.IndexOf(label)), keep, arg, mask)
		}
	} else {
		reduced = cluster.Marginal(keep)
	}
	if r.opts.OnReduce != nil {
		r.opts.OnReduce(label, role)
	}
	if r.opts.VerboseTrace {
		r.log.Debug("reduced_factor", slog.Int("var", label), slog.String("factor", reduced.String()))
	}

	for _, i := range idx {
		r.arena.dead[i] = true
	}
	r.arena.add(reduced)

	return nil
}

// finish multiplies the survivors into the result.
func (r *runner) finish(last int) (factor.Factor, error) {
	idx := r.arena.live()
	if len(idx) == 0 {
		return factor.Factor{}, fmt.Errorf("%w: after eliminating x%d", ErrEmptyCombine, last)
	}
	out, err := r.arena.combine(idx)
	if err != nil {
		return factor.Factor{}, fmt.Errorf("elimination: final combine: %w", err)
	}
	if r.opts.Normalize {
		if out, err = out.Normalize(); err != nil {
			return factor.Factor{}, err
		}
	}
	r.log.Debug("elimination_result",
		slog.String("scope", out.Vars().String()),
		slog.Int("states", out.NrStates()))
	if r.opts.VerboseTrace {
		r.log.Debug("result_factor", slog.String("factor", out.String()))
	}

	return out, nil
}

// trace logs the factors at idx.
func (r *runner) trace(idx []int) {
	for _, i := range idx {
		r.log.Debug("factor", slog.Int("slot", i), slog.String("table", r.arena.fs[i].String()))
	}
}
