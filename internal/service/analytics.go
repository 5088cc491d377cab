package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"fraudquest-bot/internal/model"
	"fraudquest-bot/internal/repository"
)

// AnalyticsService records interaction events and rolls them up into daily
// aggregates.
type AnalyticsService struct {
	eventRepo     *repository.EventRepository
	analyticsRepo *repository.AnalyticsRepository
	userRepo      *repository.UserRepository
}

// NewAnalyticsService creates a new AnalyticsService instance.
func NewAnalyticsService(
	eventRepo *repository.EventRepository,
	analyticsRepo *repository.AnalyticsRepository,
	userRepo *repository.UserRepository,
) *AnalyticsService {
	return &AnalyticsService{
		eventRepo:     eventRepo,
		analyticsRepo: analyticsRepo,
		userRepo:      userRepo,
	}
}

// Track records one interaction event. Tracking failures are logged, never
// surfaced; analytics must not break a user action.
func (s *AnalyticsService) Track(ctx context.Context, userID int64, eventType, eventData string) {
	if err := s.eventRepo.Insert(ctx, userID, eventType, eventData); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("Failed to track event")
	}
}

// AggregateDaily rolls up the previous day's events into one analytics row.
// A day already aggregated is skipped, so the job can run more than once.
func (s *AnalyticsService) AggregateDaily(ctx context.Context, now time.Time) (bool, error) {
	dayEnd := now.UTC().Truncate(24 * time.Hour)
	dayStart := dayEnd.Add(-24 * time.Hour)

	dau, err := s.eventRepo.CountDistinctUsers(ctx, dayStart, dayEnd)
	if err != nil {
		return false, fmt.Errorf("failed to aggregate DAU: %w", err)
	}
	newUsers, err := s.userRepo.CountCreatedBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return false, err
	}
	quizzes, err := s.eventRepo.CountByType(ctx, model.EventQuizComplete, dayStart, dayEnd)
	if err != nil {
		return false, err
	}
	scenarios, err := s.eventRepo.CountByType(ctx, model.EventScenarioComplete, dayStart, dayEnd)
	if err != nil {
		return false, err
	}

	inserted, err := s.analyticsRepo.InsertDaily(ctx, model.AnalyticsDaily{
		Date:                dayStart,
		DAU:                 dau,
		NewUsers:            newUsers,
		QuizCompletions:     quizzes,
		ScenarioCompletions: scenarios,
	})
	if err != nil {
		return false, err
	}
	if inserted {
		log.Info().
			Time("date", dayStart).
			Int("dau", dau).
			Int("new_users", newUsers).
			Msg("Daily analytics aggregated")
	}
	return inserted, nil
}

// Summary returns the most recent aggregated days plus the current account
// total, for the admin stats view.
func (s *AnalyticsService) Summary(ctx context.Context, days int) ([]model.AnalyticsDaily, int, error) {
	recent, err := s.analyticsRepo.ListRecent(ctx, days)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return recent, total, nil
}
