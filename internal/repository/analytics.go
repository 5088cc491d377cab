package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"fraudquest-bot/internal/model"
)

// AnalyticsRepository stores the per-day aggregated metrics.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository creates a new AnalyticsRepository instance.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// InsertDaily writes one day's aggregate. A day already aggregated is left
// untouched, so re-running the job is safe.
func (r *AnalyticsRepository) InsertDaily(ctx context.Context, day model.AnalyticsDaily) (bool, error) {
	const query = `
		INSERT INTO analytics_daily (date, dau, new_users, quiz_completions, scenario_completions)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (date) DO NOTHING
	`

	result, err := r.pool.Exec(ctx, query,
		day.Date,
		day.DAU,
		day.NewUsers,
		day.QuizCompletions,
		day.ScenarioCompletions,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert daily analytics: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// ListRecent returns the last N aggregated days, newest first.
func (r *AnalyticsRepository) ListRecent(ctx context.Context, limit int) ([]model.AnalyticsDaily, error) {
	const query = `
		SELECT date, dau, new_users, quiz_completions, scenario_completions
		FROM analytics_daily
		ORDER BY date DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily analytics: %w", err)
	}
	defer rows.Close()

	var out []model.AnalyticsDaily
	for rows.Next() {
		var day model.AnalyticsDaily
		err := rows.Scan(&day.Date, &day.DAU, &day.NewUsers, &day.QuizCompletions, &day.ScenarioCompletions)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily analytics: %w", err)
		}
		out = append(out, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily analytics: %w", err)
	}
	return out, nil
}
