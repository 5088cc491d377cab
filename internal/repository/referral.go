package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fraudquest-bot/internal/model"
)

// ReferralRepository persists invite codes and their completion state.
type ReferralRepository struct {
	pool *pgxpool.Pool
}

// NewReferralRepository creates a new ReferralRepository instance.
func NewReferralRepository(pool *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{pool: pool}
}

func scanReferral(row pgx.Row) (*model.ReferralRecord, error) {
	var rec model.ReferralRecord
	err := row.Scan(
		&rec.ID,
		&rec.ReferralCode,
		&rec.ReferrerID,
		&rec.ReferredID,
		&rec.Status,
		&rec.CreatedAt,
		&rec.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create stores a fresh pending invite code for a referrer.
func (r *ReferralRepository) Create(ctx context.Context, referrerID int64, code string) (*model.ReferralRecord, error) {
	const query = `
		INSERT INTO referrals (referral_code, referrer_id, status, created_at)
		VALUES ($1, $2, 'pending', NOW())
		RETURNING id, referral_code, referrer_id, referred_id, status, created_at, completed_at
	`

	rec, err := scanReferral(r.pool.QueryRow(ctx, query, code, referrerID))
	if err != nil {
		return nil, fmt.Errorf("failed to create referral: %w", err)
	}
	return rec, nil
}

// GetByCode looks up a referral record by its invite code.
func (r *ReferralRepository) GetByCode(ctx context.Context, code string) (*model.ReferralRecord, error) {
	const query = `
		SELECT id, referral_code, referrer_id, referred_id, status, created_at, completed_at
		FROM referrals
		WHERE referral_code = $1
	`

	rec, err := scanReferral(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReferralNotFound
		}
		return nil, fmt.Errorf("failed to get referral: %w", err)
	}
	return rec, nil
}

// GetPendingByReferrer returns the referrer's open invite code, if any.
// Completed codes are spent; a referrer gets a fresh one afterwards.
func (r *ReferralRepository) GetPendingByReferrer(ctx context.Context, referrerID int64) (*model.ReferralRecord, error) {
	const query = `
		SELECT id, referral_code, referrer_id, referred_id, status, created_at, completed_at
		FROM referrals
		WHERE referrer_id = $1 AND status = 'pending'
		ORDER BY id DESC
		LIMIT 1
	`

	rec, err := scanReferral(r.pool.QueryRow(ctx, query, referrerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReferralNotFound
		}
		return nil, fmt.Errorf("failed to get pending referral: %w", err)
	}
	return rec, nil
}

// Complete marks a pending code as used by the referred user. The status
// guard makes completion exactly-once even under concurrent redemption.
func (r *ReferralRepository) Complete(ctx context.Context, code string, referredID int64) (*model.ReferralRecord, error) {
	const query = `
		UPDATE referrals
		SET referred_id = $2, status = 'completed', completed_at = NOW()
		WHERE referral_code = $1 AND status = 'pending'
		RETURNING id, referral_code, referrer_id, referred_id, status, created_at, completed_at
	`

	rec, err := scanReferral(r.pool.QueryRow(ctx, query, code, referredID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReferralNotFound
		}
		return nil, fmt.Errorf("failed to complete referral: %w", err)
	}
	return rec, nil
}

// WasReferred reports whether a user has already redeemed any invite code.
func (r *ReferralRepository) WasReferred(ctx context.Context, referredID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM referrals WHERE referred_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, referredID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check referred status: %w", err)
	}
	return exists, nil
}

// CountCompleted counts a referrer's completed referrals. The milestone bonus
// is derived from this count rather than a stored counter.
func (r *ReferralRepository) CountCompleted(ctx context.Context, referrerID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM referrals WHERE referrer_id = $1 AND status = 'completed'`

	var count int
	if err := r.pool.QueryRow(ctx, query, referrerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completed referrals: %w", err)
	}
	return count, nil
}
