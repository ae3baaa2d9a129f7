// SPDX-License-Identifier: MIT
// Package: vemap/cmd/vemap
//
// generate.go - write a synthetic factor graph in .fg format.

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aschroede/vemap/builder"
	"github.com/spf13/cobra"
)

type generateFlags struct {
	topology  string
	n         int
	rows      int
	cols      int
	p         float64
	m         int
	arity     int
	states    int
	maxStates int
	seed      int64
	beta      float64
	noUnaries bool
	out       string
}

// topologies maps --topology values to constructors.
var topologies = map[string]func(g *generateFlags) builder.Constructor{
	"chain":    func(g *generateFlags) builder.Constructor { return builder.Chain(g.n) },
	"cycle":    func(g *generateFlags) builder.Constructor { return builder.Cycle(g.n) },
	"star":     func(g *generateFlags) builder.Constructor { return builder.Star(g.n) },
	"grid":     func(g *generateFlags) builder.Constructor { return builder.Grid(g.rows, g.cols) },
	"complete": func(g *generateFlags) builder.Constructor { return builder.Complete(g.n) },
	"tree":     func(g *generateFlags) builder.Constructor { return builder.Tree(g.n) },
	"sparse":   func(g *generateFlags) builder.Constructor { return builder.RandomSparse(g.n, g.p) },
	"factors":  func(g *generateFlags) builder.Constructor { return builder.RandomFactors(g.n, g.m, g.arity) },
}

func topologyNames() string {
	names := make([]string, 0, len(topologies))
	for k := range topologies {
		names = append(names, k)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

func newGenerateCmd() *cobra.Command {
	g := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic factor graph (.fg)",
		Long: `Generate a factor graph for benchmarking.

Potentials are drawn uniformly from [0.05, 1) unless --beta is given, in which
case pairwise tables are Potts couplings exp(beta) on agreement.

Examples:
  vemap generate --topology grid --rows 5 --cols 5 --seed 3 -o grid5.fg
  vemap generate --topology factors --n 20 --m 30 --arity 3 --max-states 4 -o tri.fg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mk, ok := topologies[g.topology]
			if !ok {
				return fmt.Errorf("unknown topology %q (want one of %s)", g.topology, topologyNames())
			}
			if g.states < 1 {
				return fmt.Errorf("--states must be at least 1, got %d", g.states)
			}
			if g.maxStates == 1 || g.maxStates < 0 {
				return fmt.Errorf("--max-states must be 0 or at least 2, got %d", g.maxStates)
			}

			opts := []builder.BuilderOption{
				builder.WithSeed(g.seed),
				builder.WithCardinality(g.states),
				builder.WithUnaries(!g.noUnaries),
			}
			if g.maxStates > 0 {
				opts = append(opts, builder.WithMaxCardinality(g.maxStates))
			}
			if cmd.Flags().Changed("beta") {
				opts = append(opts, builder.WithPotentialFn(builder.AttractivePotential(g.beta)))
			}

			fg, err := builder.BuildGraph(opts, mk(g))
			if err != nil {
				return err
			}
			if err := fg.WriteFile(g.out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d variables, %d factors to %s\n", fg.NrVars(), fg.NrFactors(), g.out)

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&g.topology, "topology", "chain", "graph shape: "+topologyNames())
	f.IntVar(&g.n, "n", 10, "number of variables")
	f.IntVar(&g.rows, "rows", 3, "grid rows")
	f.IntVar(&g.cols, "cols", 3, "grid columns")
	f.Float64Var(&g.p, "p", 0.2, "edge probability (sparse)")
	f.IntVar(&g.m, "m", 10, "number of factors (factors)")
	f.IntVar(&g.arity, "arity", 3, "variables per factor (factors)")
	f.IntVar(&g.states, "states", 2, "states per variable")
	f.IntVar(&g.maxStates, "max-states", 0, "draw states per variable from [2, max-states] (0 = fixed)")
	f.Int64Var(&g.seed, "seed", 1, "random seed")
	f.Float64Var(&g.beta, "beta", 0, "Potts coupling strength (switches to attractive potentials)")
	f.BoolVar(&g.noUnaries, "no-unaries", false, "omit one unary factor per variable")
	f.StringVarP(&g.out, "out", "o", "", "output .fg file")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
