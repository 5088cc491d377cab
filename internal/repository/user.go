// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fraudquest-bot/internal/model"
)

// Common errors for repository operations.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrReferralNotFound = errors.New("referral not found")
)

const userColumns = `telegram_id, username, first_name, language, coins, quizzes_passed,
		max_unlocked_level, scenario_score, scenario_badges, subscribed, created_at, updated_at`

// UserRepository handles learner account persistence.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.TelegramID,
		&user.Username,
		&user.FirstName,
		&user.Language,
		&user.Coins,
		&user.QuizzesPassed,
		&user.MaxUnlockedLevel,
		&user.ScenarioScore,
		&user.ScenarioBadges,
		&user.Subscribed,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create creates a new user. New accounts start at level 1 with zero coins.
func (r *UserRepository) Create(ctx context.Context, telegramID int64, username, firstName string) (*model.User, error) {
	const query = `
		INSERT INTO users (telegram_id, username, first_name, language, coins, quizzes_passed,
			max_unlocked_level, scenario_score, scenario_badges, subscribed, created_at, updated_at)
		VALUES ($1, $2, $3, 'en', 0, 0, 1, 0, '', FALSE, NOW(), NOW())
		RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, telegramID, username, firstName))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by their Telegram ID.
// Returns ErrUserNotFound if the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, telegramID int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, telegramID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetOrCreate retrieves a user by Telegram ID, creating one if it doesn't exist.
// The second return reports whether a new account was created.
func (r *UserRepository) GetOrCreate(ctx context.Context, telegramID int64, username, firstName string) (*model.User, bool, error) {
	user, err := r.GetByID(ctx, telegramID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, false, err
	}

	user, err = r.Create(ctx, telegramID, username, firstName)
	if err != nil {
		// Handle race condition: another request might have created the user
		user, err = r.GetByID(ctx, telegramID)
		if err != nil {
			return nil, false, err
		}
		return user, false, nil
	}

	return user, true, nil
}

// ApplyProgress applies one progression delta atomically. Coins, passed
// quizzes, and scenario score are added; the unlocked level is raised but
// never lowered; the badge set is replaced only when the delta carries one.
func (r *UserRepository) ApplyProgress(ctx context.Context, telegramID int64, delta model.ProgressDelta) (*model.User, error) {
	const query = `
		UPDATE users
		SET coins = coins + $2,
			quizzes_passed = quizzes_passed + $3,
			scenario_score = scenario_score + $4,
			max_unlocked_level = GREATEST(max_unlocked_level, $5),
			scenario_badges = CASE WHEN $6 THEN $7 ELSE scenario_badges END,
			updated_at = NOW()
		WHERE telegram_id = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query,
		telegramID,
		delta.Coins,
		delta.QuizzesPassed,
		delta.ScenarioScore,
		delta.UnlockLevel,
		delta.SetBadges,
		delta.Badges,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to apply progress: %w", err)
	}
	return user, nil
}

// SpendCoins decrements a user's coin balance, failing when the balance is
// insufficient. Returns the updated user.
func (r *UserRepository) SpendCoins(ctx context.Context, telegramID int64, amount int64) (*model.User, error) {
	const query = `
		UPDATE users
		SET coins = coins - $2, updated_at = NOW()
		WHERE telegram_id = $1 AND coins >= $2
		RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, telegramID, amount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the user is missing or the balance is too low;
			// the caller distinguishes via GetByID.
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to spend coins: %w", err)
	}
	return user, nil
}

// SetSubscribed toggles a user's daily tip subscription.
func (r *UserRepository) SetSubscribed(ctx context.Context, telegramID int64, subscribed bool) error {
	const query = `
		UPDATE users
		SET subscribed = $2, updated_at = NOW()
		WHERE telegram_id = $1
	`

	result, err := r.pool.Exec(ctx, query, telegramID, subscribed)
	if err != nil {
		return fmt.Errorf("failed to set subscription: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateProfile refreshes the Telegram display fields on each interaction.
func (r *UserRepository) UpdateProfile(ctx context.Context, telegramID int64, username, firstName string) error {
	const query = `
		UPDATE users
		SET username = $2, first_name = $3, updated_at = NOW()
		WHERE telegram_id = $1 AND (username <> $2 OR first_name <> $3)
	`

	if _, err := r.pool.Exec(ctx, query, telegramID, username, firstName); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// ListSubscribed returns the Telegram IDs of all tip subscribers.
func (r *UserRepository) ListSubscribed(ctx context.Context) ([]int64, error) {
	const query = `SELECT telegram_id FROM users WHERE subscribed ORDER BY telegram_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscribers: %w", err)
	}
	return ids, nil
}

// CountCreatedBetween counts accounts created within [from, to).
func (r *UserRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM users WHERE created_at >= $1 AND created_at < $2`

	var count int
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count new users: %w", err)
	}
	return count, nil
}

// CountAll returns the total number of accounts.
func (r *UserRepository) CountAll(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM users`

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
