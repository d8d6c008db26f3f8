package workers

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Workers runs a set of long-lived workers under one errgroup.
type Workers struct {
	workers []Worker
}

// NewWorkers returns an aggregate of the given workers.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Add registers w. It must be called before Run.
func (w *Workers) Add(worker Worker) {
	w.workers = append(w.workers, worker)
}

// Run starts every worker and waits for all of them. The first failure
// cancels the context seen by the others and is returned. Workers that stop
// with context.Canceled are not failures.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
