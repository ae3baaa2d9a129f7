// Package config loads the run configuration of the vemap command.
//
// A run is described by a YAML file whose keys mirror the command-line flags
// (input, output, log_level, hypothesis_vars, ...). Values resolve in three
// layers, each overriding the previous one:
//
//  1. Default()
//  2. the YAML file given to Load
//  3. VEMAP_* environment variables
//
// Command-line flags are applied by the caller after Load. Validate checks
// the merged result and reports ErrInvalidConfig.
package config
