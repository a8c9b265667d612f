// Package main provides the entry point for treetable.
//
// treetable is a workbench around a concurrent hash map whose buckets
// are binary search trees. It drives configurable concurrent
// workloads against the map and reports on correctness and bucket
// distribution:
//
//	treetable run --workers 8 --keys 10000
//	treetable run --metrics --metrics-addr 127.0.0.1:9184
//	treetable stats --capacity 16 --entries 100000 -o json
//
// Configuration may also come from a YAML file (--config) or
// TREETABLE_* environment variables.
package main
