package runner

import (
	"context"
	"sync"

	"crossval/domain/dataset"
	"crossval/domain/fold"
	"crossval/domain/report"
	"crossval/ports"

	"golang.org/x/sync/semaphore"
)

// runParallel dispatches folds onto goroutines bounded by a weighted
// semaphore. Folds are embarrassingly parallel: the assignment is
// read-only and every model instance is owned by exactly one fold.
// Results land in a pre-sized slice by fold index, so output order never
// depends on completion order. The first error cancels all in-flight
// folds and is returned.
func (r *Runner) runParallel(ctx context.Context, ds dataset.Dataset, assignment *fold.Assignment, factory ports.ModelFactory, scorer ports.Scorer) ([]report.FoldScore, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := semaphore.NewWeighted(int64(r.parallelism))
	scores := make([]report.FoldScore, assignment.K)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for k := 0; k < assignment.K; k++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled by an earlier fold failure
			break
		}

		wg.Add(1)
		go func(foldIdx int) {
			defer wg.Done()
			defer sem.Release(1)

			score, err := r.evaluateFold(ds, assignment, foldIdx, factory, scorer)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()
				return
			}
			scores[foldIdx] = score
		}(k)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}
