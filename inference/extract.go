// SPDX-License-Identifier: MIT
// Package: vemap/inference

package inference

import (
	"fmt"
	"log/slog"

	"github.com/aschroede/vemap/factor"
)

// ExtractMax returns the entry of f with the largest value, decoded into
// the states of targets (in the caller's order).
//
// The scan starts from entry 0 and replaces the incumbent only on a strictly
// larger value, so ties resolve to the lowest flat index. A factor whose
// maximum is not positive is logged as degenerate; its first maximum is
// still returned.
// Complexity: O(|f|).
func ExtractMax(f factor.Factor, targets []int, log *slog.Logger) (Assignment, error) {
	if f.Empty() {
		return Assignment{}, ErrEmptyFactor
	}
	for _, t := range targets {
		if !f.Vars().Contains(t) {
			return Assignment{}, fmt.Errorf("%w: x%d not in %s", ErrTargetNotInScope, t, f.Vars())
		}
	}

	best, bestV := 0, f.Get(0)
	for i := 1; i < f.NrStates(); i++ {
		if v := f.Get(i); v > bestV {
			best, bestV = i, v
		}
	}
	if bestV <= 0 {
		log.Warn("map_degenerate_factor",
			slog.String("scope", f.Vars().String()),
			slog.Float64("max", bestV))
	}

	full := factor.CalcState(f.Vars(), best)
	states := make([]int, len(targets))
	for i, t := range targets {
		states[i] = full[t]
	}
	a := Assignment{
		Targets:     append([]int(nil), targets...),
		States:      states,
		Probability: bestV,
		Index:       best,
	}
	logAssignment(log, a)

	return a, nil
}

// logAssignment emits the map_instantiation event.
func logAssignment(log *slog.Logger, a Assignment) {
	log.Info("map_instantiation",
		slog.Any("targets", a.Targets),
		slog.Any("states", a.States),
		slog.Float64("probability", a.Probability))
}
