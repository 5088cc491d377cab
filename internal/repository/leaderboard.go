package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fraudquest-bot/internal/model"
)

// ErrEntryNotFound indicates a user has no standing in a period yet.
var ErrEntryNotFound = errors.New("leaderboard entry not found")

// LeaderboardRepository persists per-period standings. Scores are overwritten
// on every update; ranks are rewritten over the whole period set.
type LeaderboardRepository struct {
	pool *pgxpool.Pool
}

// NewLeaderboardRepository creates a new LeaderboardRepository instance.
func NewLeaderboardRepository(pool *pgxpool.Pool) *LeaderboardRepository {
	return &LeaderboardRepository{pool: pool}
}

// UpsertScore sets a user's score for a period, creating the entry on first
// write. The insertion id stays stable across updates, which keeps tie order
// deterministic when ranks are recomputed.
func (r *LeaderboardRepository) UpsertScore(ctx context.Context, userID int64, period model.Period, score int64) error {
	const query = `
		INSERT INTO leaderboard_entries (user_id, period, score, rank, updated_at)
		VALUES ($1, $2, $3, 0, NOW())
		ON CONFLICT (user_id, period)
		DO UPDATE SET score = EXCLUDED.score, updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, userID, period, score); err != nil {
		return fmt.Errorf("failed to upsert score: %w", err)
	}
	return nil
}

// UpdateRanks rewrites the rank column for a whole period in one statement:
// dense 1..N by score descending, ties broken by insertion order.
func (r *LeaderboardRepository) UpdateRanks(ctx context.Context, period model.Period) error {
	const query = `
		UPDATE leaderboard_entries le
		SET rank = ranked.new_rank, updated_at = NOW()
		FROM (
			SELECT id, ROW_NUMBER() OVER (ORDER BY score DESC, id ASC) AS new_rank
			FROM leaderboard_entries
			WHERE period = $1
		) ranked
		WHERE le.id = ranked.id AND le.rank <> ranked.new_rank
	`

	if _, err := r.pool.Exec(ctx, query, period); err != nil {
		return fmt.Errorf("failed to update ranks: %w", err)
	}
	return nil
}

// GetEntry returns one user's standing in a period.
func (r *LeaderboardRepository) GetEntry(ctx context.Context, userID int64, period model.Period) (*model.LeaderboardEntry, error) {
	const query = `
		SELECT id, user_id, period, score, rank, updated_at
		FROM leaderboard_entries
		WHERE user_id = $1 AND period = $2
	`

	var entry model.LeaderboardEntry
	err := r.pool.QueryRow(ctx, query, userID, period).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Period,
		&entry.Score,
		&entry.Rank,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get leaderboard entry: %w", err)
	}
	return &entry, nil
}

// ListTop returns the top N standings for a period joined with display names.
func (r *LeaderboardRepository) ListTop(ctx context.Context, period model.Period, limit int) ([]model.LeaderboardRow, error) {
	const query = `
		SELECT le.rank, le.user_id, COALESCE(NULLIF(u.username, ''), u.first_name), le.score
		FROM leaderboard_entries le
		JOIN users u ON u.telegram_id = le.user_id
		WHERE le.period = $1
		ORDER BY le.score DESC, le.id ASC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, period, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard: %w", err)
	}
	defer rows.Close()

	var out []model.LeaderboardRow
	for rows.Next() {
		var row model.LeaderboardRow
		if err := rows.Scan(&row.Rank, &row.UserID, &row.DisplayName, &row.Score); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard: %w", err)
	}
	return out, nil
}

// CountEntries returns the number of standings in a period.
func (r *LeaderboardRepository) CountEntries(ctx context.Context, period model.Period) (int, error) {
	const query = `SELECT COUNT(*) FROM leaderboard_entries WHERE period = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, period).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count leaderboard entries: %w", err)
	}
	return count, nil
}

// ResetPeriodScores zeroes all scores in a period. Ranks are stale afterwards
// until UpdateRanks runs; the scheduler does both under the period lock.
func (r *LeaderboardRepository) ResetPeriodScores(ctx context.Context, period model.Period) (int64, error) {
	const query = `
		UPDATE leaderboard_entries
		SET score = 0, updated_at = NOW()
		WHERE period = $1
	`

	result, err := r.pool.Exec(ctx, query, period)
	if err != nil {
		return 0, fmt.Errorf("failed to reset period scores: %w", err)
	}
	return result.RowsAffected(), nil
}
