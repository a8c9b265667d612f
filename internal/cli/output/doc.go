// Package output provides output formatting for the treetable CLI.
//
// Three formats are supported:
//
//   - table: aligned columns via text/tabwriter (default)
//   - json: indented JSON
//   - yaml: YAML documents
//
// Commands build a Table or pass a plain struct; the formatter
// decides the rendering.
package output
