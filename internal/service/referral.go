package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"fraudquest-bot/internal/model"
	"fraudquest-bot/internal/repository"
)

// Referral processing errors. All are user-visible rejections, not faults.
var (
	ErrInvalidReferralCode = errors.New("invalid referral code")
	ErrSelfReferral        = errors.New("cannot redeem own referral code")
	ErrAlreadyReferred     = errors.New("user already redeemed a referral code")
)

// referralMilestoneEvery is the completed-count interval granting the
// referrer bonus.
const referralMilestoneEvery = 3

// MilestoneReached reports whether a completed-referral count lands exactly
// on a bonus boundary. The count is recomputed from the store on every
// completion, so replayed completions never double-grant.
func MilestoneReached(completedCount int) bool {
	return completedCount > 0 && completedCount%referralMilestoneEvery == 0
}

// NewReferralCode derives a short invite code from the user id and a
// high-resolution timestamp, collision-free by construction.
func NewReferralCode(userID int64, now time.Time) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%d_%d", userID, now.UnixNano())))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:8])
}

// ReferralOutcome reports one processed referral.
type ReferralOutcome struct {
	ReferrerID     int64
	SignupBonus    int64
	MilestoneBonus int64
	CompletedCount int
}

// ReferralService manages invite codes and their redemption.
type ReferralService struct {
	repo           *repository.ReferralRepository
	ledger         *LedgerService
	signupBonus    int64
	milestoneBonus int64
}

// NewReferralService creates a new ReferralService instance.
func NewReferralService(repo *repository.ReferralRepository, ledger *LedgerService, signupBonus, milestoneBonus int64) *ReferralService {
	return &ReferralService{
		repo:           repo,
		ledger:         ledger,
		signupBonus:    signupBonus,
		milestoneBonus: milestoneBonus,
	}
}

// GetOrCreateCode returns the user's open invite code, minting one when none
// is pending.
func (s *ReferralService) GetOrCreateCode(ctx context.Context, userID int64) (string, error) {
	rec, err := s.repo.GetPendingByReferrer(ctx, userID)
	if err == nil {
		return rec.ReferralCode, nil
	}
	if !errors.Is(err, repository.ErrReferralNotFound) {
		return "", err
	}

	rec, err = s.repo.Create(ctx, userID, NewReferralCode(userID, time.Now()))
	if err != nil {
		return "", err
	}
	return rec.ReferralCode, nil
}

// CompletedCount returns the referrer's completed referral total.
func (s *ReferralService) CompletedCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountCompleted(ctx, userID)
}

// ProcessReferral redeems an invite code for a new user. Self-referral and
// reuse of a spent code are rejected without mutation. On success the new
// user gets the signup bonus, and the referrer gets the milestone bonus when
// their completed count lands on a milestone boundary.
func (s *ReferralService) ProcessReferral(ctx context.Context, code string, newUserID int64) (*ReferralOutcome, error) {
	rec, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrReferralNotFound) {
			return nil, ErrInvalidReferralCode
		}
		return nil, err
	}

	if rec.ReferrerID == newUserID {
		return nil, ErrSelfReferral
	}
	if rec.Status != model.ReferralPending {
		return nil, ErrInvalidReferralCode
	}

	referred, err := s.repo.WasReferred(ctx, newUserID)
	if err != nil {
		return nil, err
	}
	if referred {
		return nil, ErrAlreadyReferred
	}

	rec, err = s.repo.Complete(ctx, code, newUserID)
	if err != nil {
		if errors.Is(err, repository.ErrReferralNotFound) {
			// Lost the race against another redemption of the same code.
			return nil, ErrInvalidReferralCode
		}
		return nil, err
	}

	outcome := &ReferralOutcome{ReferrerID: rec.ReferrerID, SignupBonus: s.signupBonus}

	if _, err := s.ledger.GrantReward(ctx, newUserID, s.signupBonus, ""); err != nil {
		return nil, fmt.Errorf("failed to grant signup bonus: %w", err)
	}

	count, err := s.repo.CountCompleted(ctx, rec.ReferrerID)
	if err != nil {
		return nil, err
	}
	outcome.CompletedCount = count

	if MilestoneReached(count) {
		if _, err := s.ledger.GrantReward(ctx, rec.ReferrerID, s.milestoneBonus, ""); err != nil {
			return nil, fmt.Errorf("failed to grant milestone bonus: %w", err)
		}
		outcome.MilestoneBonus = s.milestoneBonus
		log.Info().
			Int64("referrer_id", rec.ReferrerID).
			Int("completed", count).
			Msg("Referral milestone bonus granted")
	}

	return outcome, nil
}
