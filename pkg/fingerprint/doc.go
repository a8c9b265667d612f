// Package fingerprint derives 64-bit key fingerprints for treetable.
//
// A fingerprint serves two purposes in the table:
//
//   - Bucket indexing: fingerprint(key) mod capacity selects the bucket
//   - Tree placement: the fingerprint is the primary tiebreak when
//     ordering unequal keys inside a bucket
//
// Two hash families are provided:
//
//   - Seeded: hash/maphash over any comparable key type, per-table seed
//   - String: murmur3 over string keys, avoiding the maphash indirection
//
// Keys of interface type whose dynamic value is not comparable (for
// example a slice stored in an any-typed key) cannot be fingerprinted;
// such keys are reported with ErrNotHashable at the call boundary.
package fingerprint
