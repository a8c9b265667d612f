// Package config provides configuration for the treetable tool.
//
// This package defines the configuration structure and validation:
//
//   - spec.go: Spec struct definition
//   - default.go: Default configuration values
//   - verify.go: Business validation (ranges, required fields)
//
// Configuration is loaded via internal/infra/confloader and supports
// multiple sources: files, environment variables, and flags.
package config
