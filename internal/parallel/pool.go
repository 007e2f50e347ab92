// Package parallel runs independent jobs on a fixed set of workers.
package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
	CancelFunc func()
)

// Pool hands jobs to workers. With a single worker, Do runs the job inline
// and Wait returns immediately.
type Pool struct {
	wg     sync.WaitGroup
	Do     WorkerFunc
	Wait   WaitFunc
	Cancel CancelFunc
}

// Start launches numWorkers workers; values below 1 use GOMAXPROCS.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}
	if numWorkers == 1 {
		return pool
	}

	workChan := make(chan func(), numWorkers)
	pool.wg.Add(numWorkers)
	for range numWorkers {
		go func() {
			defer pool.wg.Done()
			for f := range workChan {
				f()
			}
		}()
	}

	pool.Do = func(f func()) {
		workChan <- f
	}
	// Wait(true) closes the queue first, so no Do may follow it.
	pool.Wait = func(done bool) {
		if done {
			pool.Cancel()
		}
		pool.wg.Wait()
	}
	pool.Cancel = sync.OnceFunc(func() { close(workChan) })

	return pool
}
