package report

import (
	"time"

	"crossval/domain/core"
)

// FoldScore is the evaluation outcome of a single fold. Skipped marks a
// fold whose test slice was empty (k > n); skipped folds carry no score
// and are excluded from the mean.
type FoldScore struct {
	Fold     int     `json:"fold"`
	TestSize int     `json:"test_size"`
	Score    float64 `json:"score"`
	Skipped  bool    `json:"skipped,omitempty"`
}

// Report is the final artifact of a cross-validation run: per-fold scores
// in fold-index order plus their arithmetic mean, alongside the parameters
// needed to reproduce the fold assignment.
type Report struct {
	RunID     core.RunID  `json:"run_id"`
	Dataset   string      `json:"dataset,omitempty"`
	Model     string      `json:"model"`
	Metric    string      `json:"metric"`
	N         int         `json:"n"`
	K         int         `json:"k"`
	Seed      int64       `json:"seed"`
	Scores    []FoldScore `json:"scores"`
	Mean      float64     `json:"mean"`
	CreatedAt time.Time   `json:"created_at"`
}

// Scored returns the scores of the folds that actually evaluated
func (r Report) Scored() []float64 {
	out := make([]float64, 0, len(r.Scores))
	for _, s := range r.Scores {
		if !s.Skipped {
			out = append(out, s.Score)
		}
	}
	return out
}

// ComputeMean returns the arithmetic mean over scored folds, 0 when no
// fold produced a score
func ComputeMean(scores []FoldScore) float64 {
	sum := 0.0
	count := 0
	for _, s := range scores {
		if s.Skipped {
			continue
		}
		sum += s.Score
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
