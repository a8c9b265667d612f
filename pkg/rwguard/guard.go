// Package rwguard provides a reader/writer monitor with writer preference.
package rwguard

import "sync"

// Guard is a reader/writer monitor: any number of concurrent readers OR
// one exclusive writer, with waiting writers preferred over new readers.
//
// The method set mirrors sync.RWMutex so a Guard can drop in wherever
// one is expected. The zero value is not usable; call New.
//
// Invariants: readers >= 0, writersWaiting >= 0, and never both
// writer == true and readers > 0.
type Guard struct {
	mu   sync.Mutex
	cond *sync.Cond

	readers        int
	writer         bool
	writersWaiting int
}

// New creates a ready-to-use Guard.
func New() *Guard {
	g := &Guard{}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// RLock acquires shared read access. It blocks while a writer is active
// or waiting; the latter is what gives writers preference.
func (g *Guard) RLock() {
	g.mu.Lock()
	for g.writer || g.writersWaiting > 0 {
		g.cond.Wait()
	}
	g.readers++
	g.mu.Unlock()
}

// RUnlock releases read access. The last reader out wakes everyone
// waiting on the monitor.
func (g *Guard) RUnlock() {
	g.mu.Lock()
	g.readers--
	if g.readers == 0 {
		g.cond.Broadcast()
	}
	g.mu.Unlock()
}

// Lock acquires exclusive write access. The caller registers as waiting
// before parking so that late-arriving readers queue behind it.
func (g *Guard) Lock() {
	g.mu.Lock()
	g.writersWaiting++
	for g.writer || g.readers > 0 {
		g.cond.Wait()
	}
	g.writersWaiting--
	g.writer = true
	g.mu.Unlock()
}

// Unlock releases write access and wakes everyone waiting on the monitor.
func (g *Guard) Unlock() {
	g.mu.Lock()
	g.writer = false
	g.cond.Broadcast()
	g.mu.Unlock()
}
