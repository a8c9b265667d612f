package rwguard

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestReadersShareAccess(t *testing.T) {
	g := New()

	const readers = 8
	var inside atomic.Int32
	release := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.RLock()
			inside.Add(1)
			<-release
			g.RUnlock()
		}()
	}

	// All readers must be admitted while none has released.
	deadline := time.After(2 * time.Second)
	for inside.Load() != readers {
		select {
		case <-deadline:
			t.Fatalf("only %d of %d readers admitted concurrently", inside.Load(), readers)
		default:
			time.Sleep(time.Millisecond)
		}
	}

	close(release)
	wg.Wait()
}

func TestWriterExcludesEveryone(t *testing.T) {
	g := New()

	const workers = 10
	const iters = 500

	var counter int // intentionally unsynchronized, protected by g
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iters; j++ {
				g.Lock()
				counter++
				g.Unlock()
			}
		}()
	}
	wg.Wait()

	if counter != workers*iters {
		t.Errorf("counter = %d, want %d (writers interleaved)", counter, workers*iters)
	}
}

func TestReaderBlocksWhileWriterActive(t *testing.T) {
	g := New()

	g.Lock()

	acquired := make(chan struct{})
	go func() {
		g.RLock()
		close(acquired)
		g.RUnlock()
	}()

	select {
	case <-acquired:
		t.Fatal("reader acquired while writer held the guard")
	case <-time.After(50 * time.Millisecond):
	}

	g.Unlock()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("reader never admitted after writer released")
	}
}

func TestWaitingWriterBlocksNewReaders(t *testing.T) {
	g := New()

	// A reader holds the guard; a writer queues behind it.
	g.RLock()

	var order []string
	var mu sync.Mutex

	writerIn := make(chan struct{})
	go func() {
		g.Lock()
		mu.Lock()
		order = append(order, "writer")
		mu.Unlock()
		close(writerIn)
		g.Unlock()
	}()

	// Wait for the writer to register as waiting.
	waitFor(t, func() bool {
		g.mu.Lock()
		defer g.mu.Unlock()
		return g.writersWaiting == 1
	})

	// A second reader must now queue behind the waiting writer.
	readerIn := make(chan struct{})
	go func() {
		g.RLock()
		mu.Lock()
		order = append(order, "reader")
		mu.Unlock()
		close(readerIn)
		g.RUnlock()
	}()

	select {
	case <-readerIn:
		t.Fatal("late reader admitted past a waiting writer")
	case <-time.After(50 * time.Millisecond):
	}

	g.RUnlock()

	select {
	case <-readerIn:
	case <-time.After(2 * time.Second):
		t.Fatal("late reader never admitted")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 2 || order[0] != "writer" || order[1] != "reader" {
		t.Errorf("admission order = %v, want [writer reader]", order)
	}
}

func TestReadersDoNotLoseWakeups(t *testing.T) {
	g := New()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				g.RLock()
				g.RUnlock()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				g.Lock()
				g.Unlock()
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("mixed reader/writer storm deadlocked")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("condition never became true")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}
