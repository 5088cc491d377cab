package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"fraudquest-bot/internal/engine"
	"fraudquest-bot/internal/model"
	"fraudquest-bot/internal/repository"
)

// ErrInsufficientCoins indicates a purchase attempt beyond the balance.
var ErrInsufficientCoins = errors.New("insufficient coins")

// RewardResult reports one applied grant.
type RewardResult struct {
	CoinsGranted int64
	BadgeGranted string
	NewScore     int64
	AllBadges    []string
	User         *model.User
}

// LedgerService is the single entry point for progression mutations. Each
// call applies exactly once; callers must not retry a failed grant on their
// own. Every mutation synchronously refreshes the leaderboard before
// returning.
type LedgerService struct {
	userRepo    *repository.UserRepository
	leaderboard *LeaderboardService
}

// NewLedgerService creates a new LedgerService instance.
func NewLedgerService(userRepo *repository.UserRepository, leaderboard *LeaderboardService) *LedgerService {
	return &LedgerService{userRepo: userRepo, leaderboard: leaderboard}
}

// GrantReward credits coins and optionally a badge. Creates the user record
// if absent.
func (s *LedgerService) GrantReward(ctx context.Context, userID int64, coinDelta int64, badgeID string) (*RewardResult, error) {
	return s.apply(ctx, userID, coinDelta, badgeID, model.ProgressDelta{})
}

// ApplyQuizCompletion credits a finished quiz: the reward coins, the passed
// counter, and any level unlock, in one atomic update.
func (s *LedgerService) ApplyQuizCompletion(ctx context.Context, userID int64, completion *engine.QuizCompletion) (*RewardResult, error) {
	return s.apply(ctx, userID, completion.Reward, "", quizCompletionDelta(completion))
}

// ApplyScenarioConclusion credits a concluded scenario walk. Only success
// outcomes carry a reward and badge; other outcomes are a no-op grant.
// Scenario rewards are the sole source of the scenario score, so the other
// grant paths never touch it.
func (s *LedgerService) ApplyScenarioConclusion(ctx context.Context, userID int64, conclusion *engine.Conclusion) (*RewardResult, error) {
	return s.apply(ctx, userID, conclusion.Reward, conclusion.Badge, scenarioConclusionDelta(conclusion))
}

// quizCompletionDelta builds the progress delta for a finished attempt: the
// passed counter only when the threshold was met, plus any unlock.
func quizCompletionDelta(completion *engine.QuizCompletion) model.ProgressDelta {
	delta := model.ProgressDelta{UnlockLevel: completion.UnlockLevel}
	if completion.Passed {
		delta.QuizzesPassed = 1
	}
	return delta
}

// scenarioConclusionDelta builds the progress delta for a scenario verdict.
// A positive reward raises the scenario score by the same amount.
func scenarioConclusionDelta(conclusion *engine.Conclusion) model.ProgressDelta {
	var delta model.ProgressDelta
	if conclusion.Reward > 0 {
		delta.ScenarioScore = conclusion.Reward
	}
	return delta
}

// rewardDelta merges the coin grant and badge union into the caller's delta.
// The badge is granted only when the user does not already hold it.
func rewardDelta(user *model.User, coinDelta int64, badgeID string, extra model.ProgressDelta) (model.ProgressDelta, string) {
	delta := extra
	delta.Coins = coinDelta

	var granted string
	if badgeID != "" && !user.HasBadge(badgeID) {
		delta.Badges = model.AddBadge(user.ScenarioBadges, badgeID)
		delta.SetBadges = true
		granted = badgeID
	}
	return delta, granted
}

func (s *LedgerService) apply(ctx context.Context, userID, coinDelta int64, badgeID string, extra model.ProgressDelta) (*RewardResult, error) {
	user, _, err := s.userRepo.GetOrCreate(ctx, userID, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load user for grant: %w", err)
	}

	delta, badgeGranted := rewardDelta(user, coinDelta, badgeID, extra)
	result := &RewardResult{CoinsGranted: coinDelta, BadgeGranted: badgeGranted}

	user, err = s.userRepo.ApplyProgress(ctx, userID, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to apply grant: %w", err)
	}

	if err := s.leaderboard.Update(ctx, user); err != nil {
		// The grant is committed; a stale board heals on the next update.
		log.Error().Err(err).Int64("user_id", userID).Msg("Leaderboard update after grant failed")
	}

	result.NewScore = ScoreFor(user)
	result.AllBadges = user.Badges()
	result.User = user
	return result, nil
}

// SpendCoins debits a purchase, failing without mutation when the balance is
// too low.
func (s *LedgerService) SpendCoins(ctx context.Context, userID, amount int64) (*model.User, error) {
	user, err := s.userRepo.SpendCoins(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Distinguish a missing account from a short balance.
			if _, getErr := s.userRepo.GetByID(ctx, userID); getErr == nil {
				return nil, ErrInsufficientCoins
			}
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}

	if err := s.leaderboard.Update(ctx, user); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Leaderboard update after purchase failed")
	}
	return user, nil
}
