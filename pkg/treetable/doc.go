// Package treetable implements a hash table with ordered-tree buckets.
//
// Two layers are exposed:
//
//   - Table: the bare bucket table. Keys hash to a bucket; each bucket
//     is a binary search tree (pkg/bst), so fingerprint collisions still
//     resolve deterministically. Not safe for concurrent use: calling
//     into a Table from multiple goroutines loses updates on the
//     read-modify-write paths (that failure mode is the reason Map
//     exists).
//   - Map: the concurrent facade. Every operation runs under a
//     writer-preference reader/writer monitor (pkg/rwguard): lookups,
//     length, and traversal share read access, mutations take exclusive
//     write access, and an insert that triggers growth performs the
//     detect-and-rebuild inside one write acquisition.
//
// Iteration discipline: traversals materialize a snapshot while holding
// read access and iterate the copy lock-free. Range callbacks therefore
// never run under the guard and may call back into the Map.
//
// Growth doubles the capacity (minimum 2) whenever the entry count
// exceeds the capacity, rebuilding every bucket and recomputing the size
// from scratch.
//
// @design DS-0201
package treetable
