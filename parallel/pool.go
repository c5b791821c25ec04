// Package parallel runs independent jobs on a fixed set of goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool runs submitted jobs on numWorkers goroutines. With a single worker
// jobs run inline on the submitting goroutine, in submission order.
type Pool struct {
	wg      sync.WaitGroup
	work    chan func()
	close   func()
	workers int
	ran     atomic.Uint64
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{workers: numWorkers, close: func() {}}
	if numWorkers == 1 {
		return pool
	}

	pool.work = make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range pool.work {
				f()
				pool.ran.Add(1)
			}
		})
	}
	pool.close = sync.OnceFunc(func() { close(pool.work) })

	return pool
}

func (p *Pool) Workers() int {
	return p.workers
}

// Do submits f. It must not be called after Wait.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		p.ran.Add(1)
		return
	}
	p.work <- f
}

// Wait stops accepting jobs and blocks until every submitted job returned.
// It returns the number of jobs run over the pool's lifetime.
func (p *Pool) Wait() uint64 {
	p.close()
	p.wg.Wait()
	return p.ran.Load()
}
