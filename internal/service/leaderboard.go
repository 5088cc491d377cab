// Package service provides business logic implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"fraudquest-bot/internal/model"
	"fraudquest-bot/internal/pkg/lock"
	"fraudquest-bot/internal/repository"
)

// ScoreFor derives a user's leaderboard score. Pure function of the
// progression fields; the same inputs always produce the same score.
func ScoreFor(user *model.User) int64 {
	return user.Coins/10 + int64(user.QuizzesPassed)*10 + user.ScenarioScore
}

// Percentile places a rank within a population of total entries.
// Rank 1 of N is the top: (total - rank + 1) / total * 100.
func Percentile(rank, total int) float64 {
	if total <= 0 || rank <= 0 {
		return 0
	}
	return float64(total-rank+1) / float64(total) * 100
}

// Standing is one user's computed leaderboard position.
type Standing struct {
	Rank       int
	Score      int64
	Total      int
	Percentile float64
}

// LeaderboardView is the rendered board for one period: the top slice plus
// the requester's own standing even when outside the slice.
type LeaderboardView struct {
	Period model.Period
	Top    []model.LeaderboardRow
	Self   *Standing
}

// LeaderboardService maintains per-period standings. Every score write and
// every scheduled reset for a period runs under that period's lock, so a rank
// recompute always observes a consistent entry set.
type LeaderboardService struct {
	repo       *repository.LeaderboardRepository
	periodLock *lock.PeriodLock
}

// NewLeaderboardService creates a new LeaderboardService instance.
func NewLeaderboardService(repo *repository.LeaderboardRepository, periodLock *lock.PeriodLock) *LeaderboardService {
	return &LeaderboardService{repo: repo, periodLock: periodLock}
}

// Update recomputes a user's derived score and rewrites it into every
// period's entry, then recomputes ranks over each period's full entry set.
func (s *LeaderboardService) Update(ctx context.Context, user *model.User) error {
	score := ScoreFor(user)

	for _, period := range model.Periods() {
		err := s.periodLock.WithLock(string(period), func() error {
			if err := s.repo.UpsertScore(ctx, user.TelegramID, period, score); err != nil {
				return err
			}
			return s.repo.UpdateRanks(ctx, period)
		})
		if err != nil {
			return fmt.Errorf("failed to update %s leaderboard: %w", period, err)
		}
	}
	return nil
}

// Get returns the top limit rows for a period plus the requesting user's own
// standing. A requester with no entry yet gets a nil Self.
func (s *LeaderboardService) Get(ctx context.Context, period model.Period, limit int, requestingUserID int64) (*LeaderboardView, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("invalid leaderboard period %q", period)
	}

	top, err := s.repo.ListTop(ctx, period, limit)
	if err != nil {
		return nil, err
	}

	view := &LeaderboardView{Period: period, Top: top}
	if requestingUserID == 0 {
		return view, nil
	}

	entry, err := s.repo.GetEntry(ctx, requestingUserID, period)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return view, nil
		}
		return nil, err
	}

	total, err := s.repo.CountEntries(ctx, period)
	if err != nil {
		return nil, err
	}

	view.Self = &Standing{
		Rank:       entry.Rank,
		Score:      entry.Score,
		Total:      total,
		Percentile: Percentile(entry.Rank, total),
	}
	return view, nil
}

// ResetWeekly zeroes every weekly score and recomputes ranks, all under the
// weekly period lock so no live score update interleaves.
func (s *LeaderboardService) ResetWeekly(ctx context.Context) (int64, error) {
	var reset int64
	err := s.periodLock.WithLock(string(model.PeriodWeekly), func() error {
		n, err := s.repo.ResetPeriodScores(ctx, model.PeriodWeekly)
		if err != nil {
			return err
		}
		reset = n
		return s.repo.UpdateRanks(ctx, model.PeriodWeekly)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to reset weekly leaderboard: %w", err)
	}
	return reset, nil
}
