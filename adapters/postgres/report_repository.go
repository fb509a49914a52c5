package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"crossval/domain/core"
	"crossval/domain/report"
	"crossval/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ReportRepositoryImpl implements ReportRepository for PostgreSQL
type ReportRepositoryImpl struct {
	db *sqlx.DB
}

// NewReportRepository creates a new PostgreSQL report repository
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &ReportRepositoryImpl{db: db}
}

// EnsureSchema creates the cv_reports table if it does not exist
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS cv_reports (
			id UUID PRIMARY KEY,
			dataset TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL,
			metric TEXT NOT NULL,
			n INTEGER NOT NULL,
			k INTEGER NOT NULL,
			seed BIGINT NOT NULL,
			scores JSONB NOT NULL,
			mean DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create cv_reports table: %w", err)
	}
	return nil
}

// SaveReport stores a finished report, upserting on run ID
func (r *ReportRepositoryImpl) SaveReport(ctx context.Context, rep *report.Report) error {
	runID, err := uuid.Parse(rep.RunID.String())
	if err != nil {
		return fmt.Errorf("invalid run ID %q: %w", rep.RunID, err)
	}

	scoresJSON, err := json.Marshal(rep.Scores)
	if err != nil {
		return fmt.Errorf("failed to marshal fold scores: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cv_reports (
			id, dataset, model, metric, n, k, seed, scores, mean, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			scores = EXCLUDED.scores,
			mean = EXCLUDED.mean`,
		runID, rep.Dataset, rep.Model, rep.Metric, rep.N, rep.K, rep.Seed,
		scoresJSON, rep.Mean, rep.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save report %s: %w", rep.RunID, err)
	}
	return nil
}

type reportRow struct {
	ID        uuid.UUID    `db:"id"`
	Dataset   string       `db:"dataset"`
	Model     string       `db:"model"`
	Metric    string       `db:"metric"`
	N         int          `db:"n"`
	K         int          `db:"k"`
	Seed      int64        `db:"seed"`
	Scores    []byte       `db:"scores"`
	Mean      float64      `db:"mean"`
	CreatedAt sql.NullTime `db:"created_at"`
}

// GetReport fetches a report by run ID
func (r *ReportRepositoryImpl) GetReport(ctx context.Context, runID core.RunID) (*report.Report, error) {
	id, err := uuid.Parse(runID.String())
	if err != nil {
		return nil, fmt.Errorf("invalid run ID %q: %w", runID, err)
	}

	var row reportRow
	err = r.db.GetContext(ctx, &row, `
		SELECT id, dataset, model, metric, n, k, seed, scores, mean, created_at
		FROM cv_reports WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, core.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report %s: %w", runID, err)
	}

	return row.toDomain()
}

// ListReports returns the most recent reports, newest first
func (r *ReportRepositoryImpl) ListReports(ctx context.Context, limit int) ([]report.Report, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []reportRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, dataset, model, metric, n, k, seed, scores, mean, created_at
		FROM cv_reports ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]report.Report, 0, len(rows))
	for _, row := range rows {
		rep, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		reports = append(reports, *rep)
	}
	return reports, nil
}

func (row reportRow) toDomain() (*report.Report, error) {
	var scores []report.FoldScore
	if err := json.Unmarshal(row.Scores, &scores); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fold scores for %s: %w", row.ID, err)
	}

	rep := &report.Report{
		RunID:   core.RunID(row.ID.String()),
		Dataset: row.Dataset,
		Model:   row.Model,
		Metric:  row.Metric,
		N:       row.N,
		K:       row.K,
		Seed:    row.Seed,
		Scores:  scores,
		Mean:    row.Mean,
	}
	if row.CreatedAt.Valid {
		rep.CreatedAt = row.CreatedAt.Time
	}
	return rep, nil
}
