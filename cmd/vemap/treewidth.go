// SPDX-License-Identifier: MIT
// Package: vemap/cmd/vemap
//
// treewidth.go - plan and simulate without executing.

package main

import (
	"fmt"

	"github.com/aschroede/vemap/elimination"
	"github.com/aschroede/vemap/factorgraph"
	"github.com/aschroede/vemap/inference"
	"github.com/spf13/cobra"
)

func newTreewidthCmd(fl *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "treewidth",
		Short: "Print the elimination orders and simulated cluster sizes of a query",
		Long: `Plan the query in both modes and report the largest cluster each order forms,
without computing any table. Settings resolve as for the root command:
--config, then VEMAP_* variables, then flags.

  constrained    nuisance variables first, then the hypothesis (MAP)
  unconstrained  nuisance variables only (marginal over the hypothesis)

Example:
  vemap treewidth -i alarm.fg -H 0,1 -E 4 -e 1 --heuristic MINWEIGHT`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := fl.load(cmd)
			if err != nil {
				return err
			}
			fg, err := factorgraph.ReadFile(cfg.Input)
			if err != nil {
				return err
			}
			q := inference.Query{
				Targets:        cfg.HypothesisVars,
				EvidenceVars:   cfg.EvidenceVars,
				EvidenceValues: cfg.EvidenceValues,
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d variables, %d factors, heuristic %s\n",
				cfg.Input, fg.NrVars(), fg.NrFactors(), cfg.Heuristic)

			for _, mode := range []elimination.Mode{elimination.Constrained, elimination.Unconstrained} {
				plan, cost, err := inference.PlanQuery(cmd.Context(), fg, q, mode,
					inference.WithHeuristic(cfg.Heuristic))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-13s order %v treewidth %d max states %s\n",
					mode, plan.Eliminated(), cost.Treewidth, cost.MaxStates)
			}

			return nil
		},
	}
}
