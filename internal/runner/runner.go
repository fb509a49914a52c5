package runner

import (
	"context"
	"time"

	"crossval/domain/core"
	"crossval/domain/dataset"
	"crossval/domain/fold"
	"crossval/domain/report"
	"crossval/internal"
	"crossval/ports"
)

// Runner orchestrates a K-fold cross-validation run: one fresh model per
// fold, fit on the K-1 training folds, scored on the held-out fold.
type Runner struct {
	partitioner *fold.Partitioner
	parallelism int
	logger      *internal.Logger
}

// Option configures a Runner
type Option func(*Runner)

// WithParallelism bounds how many folds may evaluate concurrently.
// The default of 1 keeps the run strictly sequential.
func WithParallelism(workers int) Option {
	return func(r *Runner) {
		if workers > 0 {
			r.parallelism = workers
		}
	}
}

// WithLogger overrides the default logger
func WithLogger(logger *internal.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New creates a runner around an existing partitioner
func New(partitioner *fold.Partitioner, opts ...Option) *Runner {
	r := &Runner{
		partitioner: partitioner,
		parallelism: 1,
		logger:      internal.DefaultLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates the dataset, partitions it into k folds and evaluates
// each fold in fold-index order. Validation errors surface before any
// training work; the first collaborator error aborts the run wrapped
// with its fold index and stage.
func (r *Runner) Run(ctx context.Context, ds dataset.Dataset, k int, factory ports.ModelFactory, scorer ports.Scorer) (*report.Report, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	assignment, err := r.partitioner.Partition(ds.Len(), k)
	if err != nil {
		return nil, err
	}

	return r.RunAssignment(ctx, ds, assignment, factory, scorer)
}

// RunAssignment evaluates a pre-built fold assignment. The assignment is
// read-only from here on, so folds may be dispatched concurrently.
func (r *Runner) RunAssignment(ctx context.Context, ds dataset.Dataset, assignment *fold.Assignment, factory ports.ModelFactory, scorer ports.Scorer) (*report.Report, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	r.logger.Info("starting cross-validation: n=%d k=%d seed=%d model=%s metric=%s parallelism=%d",
		assignment.N, assignment.K, assignment.Seed, factory.Name(), scorer.Name(), r.parallelism)

	var scores []report.FoldScore
	var err error
	if r.parallelism > 1 {
		scores, err = r.runParallel(ctx, ds, assignment, factory, scorer)
	} else {
		scores, err = r.runSequential(ctx, ds, assignment, factory, scorer)
	}
	if err != nil {
		return nil, err
	}

	rep := &report.Report{
		RunID:     core.NewRunID(),
		Dataset:   ds.Name,
		Model:     factory.Name(),
		Metric:    scorer.Name(),
		N:         assignment.N,
		K:         assignment.K,
		Seed:      assignment.Seed,
		Scores:    scores,
		Mean:      report.ComputeMean(scores),
		CreatedAt: time.Now().UTC(),
	}

	r.logger.Info("cross-validation finished: run=%s mean=%.6f duration=%v",
		rep.RunID, rep.Mean, time.Since(start))
	return rep, nil
}

// runSequential processes folds one at a time in increasing index order
func (r *Runner) runSequential(ctx context.Context, ds dataset.Dataset, assignment *fold.Assignment, factory ports.ModelFactory, scorer ports.Scorer) ([]report.FoldScore, error) {
	scores := make([]report.FoldScore, assignment.K)
	for k := 0; k < assignment.K; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		score, err := r.evaluateFold(ds, assignment, k, factory, scorer)
		if err != nil {
			return nil, err
		}
		scores[k] = score
	}
	return scores, nil
}

// evaluateFold runs one complete fold lifecycle: split, gather, fit,
// predict, score. An empty test slice (k > n) records a skipped fold.
func (r *Runner) evaluateFold(ds dataset.Dataset, assignment *fold.Assignment, k int, factory ports.ModelFactory, scorer ports.Scorer) (report.FoldScore, error) {
	trainIdx, testIdx := assignment.Split(k)

	if len(testIdx) == 0 {
		r.logger.Warn("fold %d has an empty test slice, recording no score", k)
		return report.FoldScore{Fold: k, Skipped: true}, nil
	}

	xTrain, yTrain := ds.Subset(trainIdx)
	xTest, yTest := ds.Subset(testIdx)

	model := factory.New()
	if err := model.Fit(xTrain, yTrain); err != nil {
		return report.FoldScore{}, core.NewFoldStageError(k, "fit", err)
	}

	predicted, err := model.Predict(xTest)
	if err != nil {
		return report.FoldScore{}, core.NewFoldStageError(k, "predict", err)
	}

	score, err := scorer.Score(yTest, predicted)
	if err != nil {
		return report.FoldScore{}, core.NewFoldStageError(k, "score", err)
	}

	r.logger.Debug("fold %d: train=%d test=%d score=%.6f", k, len(trainIdx), len(testIdx), score)
	return report.FoldScore{Fold: k, TestSize: len(testIdx), Score: score}, nil
}
