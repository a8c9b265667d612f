// Package logger provides structured logging for treetable tooling.
//
// It wraps the standard library log/slog to provide structured JSON
// logging with a runtime-adjustable global level.
//
// Features:
//
//   - JSON structured logging (default), text for terminals
//   - Log level configuration, adjustable at runtime (config reload)
//   - Context-aware logging with run ID propagation
//
// @design DS-0502
package logger
