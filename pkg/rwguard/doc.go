// Package rwguard provides a reader/writer monitor with writer preference.
//
// Unlike sync.RWMutex it gives waiting writers strict preference: as soon
// as a writer is waiting, newly arriving readers queue behind it, so a
// steady stream of readers can never starve a writer. The cost is that a
// steady stream of writers can delay readers; treetable accepts that
// trade for its mutation-heavy growth path.
//
// Acquisitions block indefinitely. There are no timeouts and no context
// cancellation once a caller is parked; that is a documented limitation,
// not an oversight.
package rwguard
