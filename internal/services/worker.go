package services

import (
	"context"
	"sync"
)

// Worker fans a fixed number of indexed jobs out to a bounded set of
// goroutines. With concurrency 1 jobs run one after another in index order.
type Worker interface {
	Run(ctx context.Context, jobs int, fn func(ctx context.Context, idx int))
}

type worker struct {
	concurrency int
}

func NewWorker(concurrency int) Worker {
	if concurrency < 1 {
		concurrency = 1
	}

	return &worker{concurrency: concurrency}
}

// Run implements Worker. It returns once every dispatched job has finished.
// Jobs not yet dispatched when ctx is cancelled are never started.
func (w *worker) Run(ctx context.Context, jobs int, fn func(ctx context.Context, idx int)) {
	if jobs <= 0 {
		return
	}

	workers := w.concurrency
	if workers > jobs {
		workers = jobs
	}

	jobQueue := make(chan int)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go w.processJobs(ctx, jobQueue, fn, &wg)
	}

dispatch:
	for idx := 0; idx < jobs; idx++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case jobQueue <- idx:
		}
	}

	close(jobQueue)
	wg.Wait()
}

func (w *worker) processJobs(ctx context.Context, jobQueue <-chan int, fn func(ctx context.Context, idx int), wg *sync.WaitGroup) {
	defer wg.Done()

	for idx := range jobQueue {
		fn(ctx, idx)
	}
}
