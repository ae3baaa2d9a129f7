// SPDX-License-Identifier: MIT
// Package: vemap/cmd/vemap
//
// memstats.go - print the process memory snapshot.

package main

import (
	"fmt"

	"github.com/aschroede/vemap/memstats"
	"github.com/spf13/cobra"
)

func newMemstatsCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "memstats",
		Short: "Print system and process memory figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := memstats.Read()
			if err != nil {
				return err
			}
			if _, err := snap.WriteTo(cmd.OutOrStdout()); err != nil {
				return err
			}
			if dir == "" {
				return nil
			}
			paths, err := memstats.WriteDiagnostics(dir)
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
			}

			return err
		},
	}
	cmd.Flags().StringVar(&dir, "diagnostics-dir", "", "also write the diagnostic files here")

	return cmd
}
