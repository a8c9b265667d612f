// Package confloader provides configuration loading mechanism.
//
// This package implements a flexible configuration loader that supports
// multiple sources using koanf as the underlying library.
//
// Priority (highest to lowest):
//
//  1. Environment variables (TREETABLE_ prefix)
//  2. Configuration file (YAML)
//  3. Default values
//
// A fsnotify-based watcher supports reacting to config file changes at
// runtime; the CLI uses it to adjust the log level without a restart.
//
// @design DS-0503
package confloader
