package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRepository stores the raw interaction events the daily analytics
// aggregation reads from.
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository instance.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// Insert records one interaction event.
func (r *EventRepository) Insert(ctx context.Context, userID int64, eventType, eventData string) error {
	const query = `
		INSERT INTO user_events (user_id, event_type, event_data, timestamp)
		VALUES ($1, $2, $3, NOW())
	`

	if _, err := r.pool.Exec(ctx, query, userID, eventType, eventData); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// CountDistinctUsers counts users with at least one event in [from, to).
func (r *EventRepository) CountDistinctUsers(ctx context.Context, from, to time.Time) (int, error) {
	const query = `
		SELECT COUNT(DISTINCT user_id)
		FROM user_events
		WHERE timestamp >= $1 AND timestamp < $2
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count distinct users: %w", err)
	}
	return count, nil
}

// CountByType counts events of one type in [from, to).
func (r *EventRepository) CountByType(ctx context.Context, eventType string, from, to time.Time) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM user_events
		WHERE event_type = $1 AND timestamp >= $2 AND timestamp < $3
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, eventType, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}
