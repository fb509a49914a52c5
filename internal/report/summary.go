package report

import (
	"math"

	domain "crossval/domain/report"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Summary aggregates the per-fold scores of a finished run
type Summary struct {
	ScoredFolds  int     `json:"scored_folds"`
	SkippedFolds int     `json:"skipped_folds"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Median       float64 `json:"median"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	CILower      float64 `json:"ci_lower"` // 95% Student's-t interval on the mean
	CIUpper      float64 `json:"ci_upper"`
}

// Summarize computes descriptive statistics over the scored folds.
// Skipped folds contribute to SkippedFolds only.
func Summarize(rep *domain.Report) Summary {
	scored := rep.Scored()
	summary := Summary{
		ScoredFolds:  len(scored),
		SkippedFolds: len(rep.Scores) - len(scored),
		Mean:         rep.Mean,
	}
	if len(scored) == 0 {
		return summary
	}

	summary.Median, _ = stats.Median(scored)
	summary.Min, _ = stats.Min(scored)
	summary.Max, _ = stats.Max(scored)

	if len(scored) > 1 {
		summary.StdDev, _ = stats.StandardDeviationSample(scored)
		summary.CILower, summary.CIUpper = meanConfidenceInterval(rep.Mean, summary.StdDev, len(scored))
	} else {
		summary.CILower = rep.Mean
		summary.CIUpper = rep.Mean
	}
	return summary
}

// meanConfidenceInterval computes the 95% interval for the mean using the
// Student's t-distribution with n-1 degrees of freedom
func meanConfidenceInterval(mean, stdDev float64, n int) (lower, upper float64) {
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	tCrit := tDist.Quantile(0.975)
	margin := tCrit * stdDev / math.Sqrt(float64(n))
	return mean - margin, mean + margin
}
