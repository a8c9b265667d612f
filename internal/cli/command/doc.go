// Package command provides CLI command definitions for treetable.
//
// It uses urfave/cli/v2 for command parsing. Two commands exist:
//
//   - run: execute a concurrent workload against a map and report
//   - stats: fill a map and print the per-bucket distribution
//
// Configuration resolves in order: defaults, config file, environment
// variables, then command-line flags.
package command
