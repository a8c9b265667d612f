// Package workload drives concurrent load against a treetable map.
//
// The runner spawns a configurable number of workers, each owning a
// disjoint key range. A run has three phases:
//
//   - fill: every worker inserts its keys
//   - mix: workers issue reads and overwrites per the read ratio
//   - verify: every key is read back and its value checked
//
// Values are derived from the key and run ID with BLAKE2b, so
// verification is stateless: a correct value can be recomputed from
// the key alone. A shared rate limiter caps total throughput when
// configured.
package workload
