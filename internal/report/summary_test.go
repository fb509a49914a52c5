package report

import (
	"math"
	"strings"
	"testing"

	"crossval/domain/core"
	domain "crossval/domain/report"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		RunID:  core.NewRunID(),
		Model:  "majority_class",
		Metric: "accuracy",
		N:      10,
		K:      5,
		Seed:   42,
		Scores: []domain.FoldScore{
			{Fold: 0, TestSize: 2, Score: 0.5},
			{Fold: 1, TestSize: 2, Score: 1.0},
			{Fold: 2, TestSize: 2, Score: 1.0},
			{Fold: 3, TestSize: 2, Score: 0.5},
			{Fold: 4, TestSize: 2, Score: 1.0},
		},
		Mean: 0.8,
	}
}

func TestSummarize_DescriptiveStats(t *testing.T) {
	summary := Summarize(sampleReport())

	if summary.ScoredFolds != 5 || summary.SkippedFolds != 0 {
		t.Fatalf("fold counts = %d scored / %d skipped, want 5 / 0", summary.ScoredFolds, summary.SkippedFolds)
	}
	if math.Abs(summary.Mean-0.8) > 1e-9 {
		t.Errorf("mean = %v, want 0.8", summary.Mean)
	}
	if math.Abs(summary.Median-1.0) > 1e-9 {
		t.Errorf("median = %v, want 1.0", summary.Median)
	}
	if math.Abs(summary.Min-0.5) > 1e-9 || math.Abs(summary.Max-1.0) > 1e-9 {
		t.Errorf("min/max = %v/%v, want 0.5/1.0", summary.Min, summary.Max)
	}
	// sample std dev of {0.5, 1, 1, 0.5, 1} is sqrt(0.075)
	if math.Abs(summary.StdDev-math.Sqrt(0.075)) > 1e-9 {
		t.Errorf("std dev = %v, want %v", summary.StdDev, math.Sqrt(0.075))
	}
	if summary.CILower >= summary.Mean || summary.CIUpper <= summary.Mean {
		t.Errorf("CI [%v, %v] does not bracket the mean %v", summary.CILower, summary.CIUpper, summary.Mean)
	}
}

func TestSummarize_SkippedFoldsExcluded(t *testing.T) {
	rep := sampleReport()
	rep.Scores = append(rep.Scores, domain.FoldScore{Fold: 5, Skipped: true})

	summary := Summarize(rep)
	if summary.ScoredFolds != 5 || summary.SkippedFolds != 1 {
		t.Fatalf("fold counts = %d scored / %d skipped, want 5 / 1", summary.ScoredFolds, summary.SkippedFolds)
	}
}

func TestSummarize_SingleScoredFold(t *testing.T) {
	rep := &domain.Report{
		Scores: []domain.FoldScore{{Fold: 0, TestSize: 3, Score: 0.7}},
		Mean:   0.7,
	}
	summary := Summarize(rep)
	if summary.StdDev != 0 {
		t.Errorf("std dev = %v, want 0", summary.StdDev)
	}
	if summary.CILower != 0.7 || summary.CIUpper != 0.7 {
		t.Errorf("CI [%v, %v], want degenerate [0.7, 0.7]", summary.CILower, summary.CIUpper)
	}
}

func TestComputeMean_OverScoredFoldsOnly(t *testing.T) {
	scores := []domain.FoldScore{
		{Fold: 0, Score: 0.4},
		{Fold: 1, Skipped: true},
		{Fold: 2, Score: 0.6},
	}
	if mean := domain.ComputeMean(scores); math.Abs(mean-0.5) > 1e-9 {
		t.Errorf("mean = %v, want 0.5", mean)
	}
}

func TestRenderMarkdown_ContainsFoldsAndSummary(t *testing.T) {
	md := RenderMarkdown(sampleReport())

	for _, want := range []string{"# Cross-Validation Report", "| 0 | 2 | 0.500000 |", "Mean: 0.800000", "accuracy", "majority_class"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderHTML_ProducesMarkup(t *testing.T) {
	html := string(RenderHTML(sampleReport()))
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<table") {
		t.Errorf("HTML output missing expected elements:\n%s", html)
	}
}
