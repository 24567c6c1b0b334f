package worker

import (
	"sync"

	"github.com/pointledger/pointledger/internal/metrics"
)

type task func()

// Pool runs submitted tasks on a fixed number of goroutines.
type Pool struct {
	wg      sync.WaitGroup
	pending sync.WaitGroup
	jobs    chan task
}

func NewPool(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				metrics.WorkerQueueDepth.Dec()
				p.run(job)
			}
		}()
	}
	return p
}

func (p *Pool) run(job task) {
	defer p.pending.Done()
	job()
}

// Submit blocks while the queue is full. It must not be called after Stop.
func (p *Pool) Submit(f func()) {
	p.pending.Add(1)
	metrics.WorkerQueueDepth.Inc()
	p.jobs <- f
}

// Wait blocks until every task submitted so far has finished.
func (p *Pool) Wait() { p.pending.Wait() }

func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }
