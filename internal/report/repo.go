// Package report extracts a date range of activity logs and aggregates them
// into daily forum metrics for tabular export.
package report

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avoronov/forumsim/internal/domain"
)

// Repo reads activity logs from PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// NewRepo creates a new report repository.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// LogsBetween returns all log records whose calendar date falls in
// [start, end], ordered by time.
func (r *Repo) LogsBetween(ctx context.Context, start, end time.Time) ([]domain.LogRecord, error) {
	query, args, err := sq.
		Select("id", "time", "user_id", "activity_type", "activity_id", "server_response", "cookie", "extra", "run_id").
		From("logs").
		Where(sq.Expr("time::date BETWEEN ?::date AND ?::date", start, end)).
		OrderBy("time", "id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build logs query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer rows.Close()

	var records []domain.LogRecord
	for rows.Next() {
		var (
			rec      domain.LogRecord
			activity int16
			runID    *uuid.UUID
		)
		err := rows.Scan(
			&rec.ID,
			&rec.Time,
			&rec.UserID,
			&activity,
			&rec.TargetID,
			&rec.Status,
			&rec.Cookie,
			&rec.Extra,
			&runID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan log row: %w", err)
		}
		rec.Activity = domain.Activity(activity)
		if runID != nil {
			rec.RunID = *runID
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate log rows: %w", err)
	}

	return records, nil
}
