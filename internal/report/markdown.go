package report

import (
	"fmt"
	"strings"

	domain "crossval/domain/report"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderMarkdown formats a report and its summary as a markdown document
func RenderMarkdown(rep *domain.Report) string {
	summary := Summarize(rep)

	var b strings.Builder
	fmt.Fprintf(&b, "# Cross-Validation Report\n\n")
	fmt.Fprintf(&b, "- **Run**: %s\n", rep.RunID)
	if rep.Dataset != "" {
		fmt.Fprintf(&b, "- **Dataset**: %s (n=%d)\n", rep.Dataset, rep.N)
	} else {
		fmt.Fprintf(&b, "- **Samples**: %d\n", rep.N)
	}
	fmt.Fprintf(&b, "- **Model**: %s\n", rep.Model)
	fmt.Fprintf(&b, "- **Metric**: %s\n", rep.Metric)
	fmt.Fprintf(&b, "- **Folds**: %d\n", rep.K)
	fmt.Fprintf(&b, "- **Seed**: %d\n\n", rep.Seed)

	fmt.Fprintf(&b, "## Fold scores\n\n")
	fmt.Fprintf(&b, "| Fold | Test size | Score |\n|---|---|---|\n")
	for _, s := range rep.Scores {
		if s.Skipped {
			fmt.Fprintf(&b, "| %d | 0 | skipped |\n", s.Fold)
			continue
		}
		fmt.Fprintf(&b, "| %d | %d | %.6f |\n", s.Fold, s.TestSize, s.Score)
	}

	fmt.Fprintf(&b, "\n## Summary\n\n")
	fmt.Fprintf(&b, "- Mean: %.6f\n", summary.Mean)
	fmt.Fprintf(&b, "- Std dev: %.6f\n", summary.StdDev)
	fmt.Fprintf(&b, "- Median: %.6f\n", summary.Median)
	fmt.Fprintf(&b, "- Min / Max: %.6f / %.6f\n", summary.Min, summary.Max)
	fmt.Fprintf(&b, "- 95%% CI of mean: [%.6f, %.6f]\n", summary.CILower, summary.CIUpper)
	if summary.SkippedFolds > 0 {
		fmt.Fprintf(&b, "- Skipped folds (empty test slice): %d\n", summary.SkippedFolds)
	}
	return b.String()
}

// RenderHTML converts the markdown report into an HTML fragment
func RenderHTML(rep *domain.Report) []byte {
	md := []byte(RenderMarkdown(rep))
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML(md, p, renderer)
}
