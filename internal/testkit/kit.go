package testkit

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"crossval/domain/core"
	"crossval/domain/dataset"
	"crossval/domain/report"
	"crossval/ports"
)

// SyntheticClassification builds a deterministic 2-class dataset with
// exactly positives samples of class 1 and n-positives of class 0.
// Features are noisy but carry no signal the tests depend on; the label
// balance is the controlled property.
func SyntheticClassification(n, positives int, seed int64) dataset.Dataset {
	rng := rand.New(rand.NewSource(seed))
	features := make([][]float64, n)
	labels := make([]float64, n)
	for i := 0; i < n; i++ {
		label := 0.0
		if i < positives {
			label = 1.0
		}
		features[i] = []float64{rng.NormFloat64(), rng.NormFloat64() + label}
		labels[i] = label
	}
	ds := dataset.New(features, labels)
	ds.Name = "synthetic_classification"
	return ds
}

// SyntheticRegression builds a deterministic single-feature dataset with
// y = slope*x + intercept + gaussian noise
func SyntheticRegression(n int, slope, intercept, noise float64, seed int64) dataset.Dataset {
	rng := rand.New(rand.NewSource(seed))
	features := make([][]float64, n)
	labels := make([]float64, n)
	for i := 0; i < n; i++ {
		x := rng.Float64() * 10
		features[i] = []float64{x}
		labels[i] = slope*x + intercept + rng.NormFloat64()*noise
	}
	ds := dataset.New(features, labels)
	ds.Name = "synthetic_regression"
	return ds
}

// InMemoryReportRepository is a ReportRepository backed by a map, used in
// tests and when no database is configured
type InMemoryReportRepository struct {
	mu      sync.RWMutex
	reports map[core.RunID]report.Report
}

// NewInMemoryReportRepository creates an empty in-memory repository
func NewInMemoryReportRepository() *InMemoryReportRepository {
	return &InMemoryReportRepository{reports: make(map[core.RunID]report.Report)}
}

func (r *InMemoryReportRepository) SaveReport(ctx context.Context, rep *report.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[rep.RunID] = *rep
	return nil
}

func (r *InMemoryReportRepository) GetReport(ctx context.Context, runID core.RunID) (*report.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rep, ok := r.reports[runID]
	if !ok {
		return nil, core.ErrReportNotFound
	}
	return &rep, nil
}

func (r *InMemoryReportRepository) ListReports(ctx context.Context, limit int) ([]report.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reports := make([]report.Report, 0, len(r.reports))
	for _, rep := range r.reports {
		reports = append(reports, rep)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

var _ ports.ReportRepository = (*InMemoryReportRepository)(nil)
