// Package parallel runs pixel work on a persistent pool of goroutines.
//
// Filters split a region into row or block ranges and hand them to
// ParallelFor. The split depends only on the requested chunk count, never on
// scheduling, so output does not depend on how many workers exist.
package parallel

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines, each with its own queue.
//
// Items of one call are dealt round-robin over the queues. A worker whose
// queue is empty takes items from the other queues, so a slow range does not
// hold up the rest of its call.
//
// Thread safety: WorkerPool is safe for concurrent use. Work items must not
// submit work to the pool they run on.
type WorkerPool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup

	// submit is held for reading while items are queued and for writing by
	// Close, so no item is queued after the workers stopped.
	submit  sync.RWMutex
	running atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	depth := max(2*workers, 8)
	for i := range p.queues {
		p.queues[i] = make(chan func(), depth)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for id := range workers {
		go p.loop(id)
	}
	return p
}

var (
	defaultOnce sync.Once
	defaultPool *WorkerPool
)

// Default returns the process-wide pool with GOMAXPROCS workers.
// It is created on first use and never closed.
func Default() *WorkerPool {
	defaultOnce.Do(func() {
		defaultPool = NewWorkerPool(0)
	})
	return defaultPool
}

func (p *WorkerPool) loop(id int) {
	defer p.wg.Done()

	for {
		if fn := p.take(id); fn != nil {
			fn()
			continue
		}
		select {
		case fn := <-p.queues[id]:
			fn()
		case <-p.done:
			for fn := p.take(id); fn != nil; fn = p.take(id) {
				fn()
			}
			return
		}
	}
}

// take returns a queued item without blocking. The worker's own queue is
// looked at first, then the others in order.
func (p *WorkerPool) take(id int) func() {
	for k := range p.workers {
		select {
		case fn := <-p.queues[(id+k)%p.workers]:
			return fn
		default:
		}
	}
	return nil
}

// batch collects the items of one call and the first panic among them.
type batch struct {
	wg       sync.WaitGroup
	once     sync.Once
	panicked any
}

func (b *batch) wrap(fn func()) func() {
	b.wg.Add(1)
	return func() {
		defer b.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				b.once.Do(func() { b.panicked = r })
			}
		}()
		fn()
	}
}

// wait blocks until every item finished and re-raises a recorded panic.
func (b *batch) wait() {
	b.wg.Wait()
	if b.panicked != nil {
		panic(fmt.Sprintf("parallel: work item panicked: %v", b.panicked))
	}
}

// run queues the items of b. A closed pool runs them on the caller.
func (p *WorkerPool) run(items []func()) {
	p.submit.RLock()
	defer p.submit.RUnlock()

	if !p.running.Load() {
		for _, fn := range items {
			fn()
		}
		return
	}
	for i, fn := range items {
		p.queues[i%p.workers] <- fn
	}
}

// ExecuteAll runs every work item and waits for all of them.
//
// If the pool is closed the items run on the calling goroutine. A panic in a
// work item is re-raised on the calling goroutine once all items finished.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	var b batch
	items := make([]func(), len(work))
	for i, fn := range work {
		items[i] = b.wrap(fn)
	}
	p.run(items)
	b.wait()
}

// ParallelFor calls fn for each range of Split(n, chunks) and waits for all
// calls to finish. With a single range fn runs on the calling goroutine.
//
// The first non-nil error in range order is returned, so the reported error
// is the same whatever the scheduling.
func (p *WorkerPool) ParallelFor(n, chunks int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}
	bounds := Split(n, chunks)
	if len(bounds) == 2 {
		return fn(0, n)
	}

	var b batch
	errs := make([]error, len(bounds)-1)
	items := make([]func(), len(errs))
	for i := range items {
		start, end := bounds[i], bounds[i+1]
		items[i] = b.wrap(func() {
			errs[i] = fn(start, end)
		})
	}
	p.run(items)
	b.wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Split divides [0, n) into at most chunks contiguous ranges of nearly equal
// size and returns their boundaries: range i is [b[i], b[i+1]).
// The result depends only on n and chunks.
func Split(n, chunks int) []int {
	if n <= 0 {
		return []int{0}
	}
	chunks = max(1, min(chunks, n))

	bounds := make([]int, chunks+1)
	size, rest := n/chunks, n%chunks
	for i := range chunks {
		step := size
		if i < rest {
			step++
		}
		bounds[i+1] = bounds[i] + step
	}
	return bounds
}

// Close stops the pool after queued work completes. Work submitted later
// runs on the caller. Close is idempotent.
func (p *WorkerPool) Close() {
	p.submit.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.submit.Unlock()
		return
	}
	close(p.done)
	p.submit.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool hands work to its workers.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
