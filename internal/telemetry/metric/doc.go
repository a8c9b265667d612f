// Package metric provides Prometheus metrics for treetable tooling.
//
// It implements treetable.Observer on top of prometheus/client_golang,
// exposing operation counts and latencies, the table size and capacity,
// and capacity growths. The workload tool serves the metrics over the
// standard /metrics endpoint via promhttp.
package metric
