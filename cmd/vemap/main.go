// Command vemap computes exact MAP assignments and marginals over discrete
// factor graphs stored in libDAI .fg format.
//
// Usage:
//
//	vemap -i alarm.fg -H 0,1 -E 4 -e 1 -M -J
//	vemap treewidth -i alarm.fg -H 0,1 -E 4
//	vemap generate --topology grid --rows 4 --cols 4 --seed 1 -o grid.fg
//	vemap memstats
//
// Run results are printed to stdout and appended, with the full event log,
// to <test-dir>/<output>.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
