package ports

import (
	"context"

	"crossval/domain/core"
	"crossval/domain/report"
)

// ReportRepository persists finished cross-validation reports
type ReportRepository interface {
	SaveReport(ctx context.Context, rep *report.Report) error
	GetReport(ctx context.Context, runID core.RunID) (*report.Report, error)
	ListReports(ctx context.Context, limit int) ([]report.Report, error)
}
