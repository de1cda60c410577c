// Package parallel runs independent jobs on a fixed set of goroutines.
package parallel

import (
	"log/slog"
	"runtime"
	"sync"
)

type (
	// WorkerFunc queues a job.
	WorkerFunc func(func())
	// WaitFunc blocks until queued jobs are finished. With done set the
	// pool stops accepting jobs and its goroutines exit.
	WaitFunc func(done bool)
)

type Pool struct {
	workers int
	jobs    chan func()
	wg      sync.WaitGroup
	pending sync.WaitGroup
	stop    func()
}

// Start launches numWorkers goroutines, or GOMAXPROCS when numWorkers is
// below 1. A pool of one worker runs jobs inline in Do.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: numWorkers,
		stop:    func() {},
	}
	if numWorkers == 1 {
		return p
	}

	p.jobs = make(chan func(), numWorkers)
	for range numWorkers {
		p.wg.Go(func() {
			for f := range p.jobs {
				p.run(f)
			}
		})
	}
	p.stop = sync.OnceFunc(func() { close(p.jobs) })

	return p
}

func (p *Pool) Workers() int {
	return p.workers
}

func (p *Pool) Do(f func()) {
	p.pending.Add(1)
	if p.jobs == nil {
		p.run(f)
		return
	}
	p.jobs <- f
}

func (p *Pool) Wait(done bool) {
	p.pending.Wait()
	if done {
		p.stop()
		p.wg.Wait()
	}
}

func (p *Pool) run(f func()) {
	defer p.pending.Done()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("job panicked", "panic", r)
		}
	}()
	f()
}
