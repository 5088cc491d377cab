// Package scheduler runs the time-based jobs: the weekly leaderboard reset,
// the daily analytics rollup, and the daily tip broadcast.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"fraudquest-bot/internal/config"
	"fraudquest-bot/internal/gateway"
	"fraudquest-bot/internal/service"
)

// tips is the rotating pool for the daily broadcast.
var tips = []string{
	"🔐 Never share SMS verification codes. Banks never ask for them.",
	"🔗 Check the address bar before logging in. One swapped letter means a fake site.",
	"📞 If a caller claims to be your bank, hang up and call the number on your card.",
	"💳 Pay through the marketplace's own checkout. Off-platform transfers have no protection.",
	"⏰ Urgency is the scammer's main tool. A real institution can wait an hour.",
}

// Scheduler owns the background job goroutines.
type Scheduler struct {
	cfg         *config.Config
	leaderboard *service.LeaderboardService
	analytics   *service.AnalyticsService
	account     *service.AccountService
	broadcaster gateway.Broadcaster

	stop chan struct{}
}

// New creates a new Scheduler instance.
func New(
	cfg *config.Config,
	leaderboard *service.LeaderboardService,
	analytics *service.AnalyticsService,
	account *service.AccountService,
	broadcaster gateway.Broadcaster,
) *Scheduler {
	return &Scheduler{
		cfg:         cfg,
		leaderboard: leaderboard,
		analytics:   analytics,
		account:     account,
		broadcaster: broadcaster,
		stop:        make(chan struct{}),
	}
}

// Start launches one goroutine per job.
func (s *Scheduler) Start() {
	go s.run(s.cfg.Scheduler.WeeklyResetInterval, s.weeklyReset)
	go s.run(s.cfg.Scheduler.DailyAggregateInterval, s.dailyAggregate)
	go s.run(s.cfg.Scheduler.TipInterval, s.broadcastTip)
	log.Info().
		Dur("weekly_reset", s.cfg.Scheduler.WeeklyResetInterval).
		Dur("daily_aggregate", s.cfg.Scheduler.DailyAggregateInterval).
		Dur("tips", s.cfg.Scheduler.TipInterval).
		Msg("Scheduler started")
}

// Stop terminates all job goroutines.
func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) run(interval time.Duration, job func()) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			job()
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) weeklyReset() {
	reset, err := s.leaderboard.ResetWeekly(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("Weekly leaderboard reset failed")
		return
	}
	log.Info().Int64("entries", reset).Msg("Weekly leaderboard reset")
}

func (s *Scheduler) dailyAggregate() {
	inserted, err := s.analytics.AggregateDaily(context.Background(), time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Daily analytics aggregation failed")
		return
	}
	if !inserted {
		log.Debug().Msg("Daily analytics already aggregated")
	}
}

func (s *Scheduler) broadcastTip() {
	ids, err := s.account.Subscribers(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load tip subscribers")
		return
	}
	if len(ids) == 0 {
		return
	}

	tip := tips[time.Now().UTC().YearDay()%len(tips)]
	sent := 0
	for _, id := range ids {
		if err := s.broadcaster.Push(id, gateway.View{Text: tip}); err != nil {
			log.Warn().Err(err).Int64("user_id", id).Msg("Tip delivery failed")
			continue
		}
		sent++
	}
	log.Info().Int("sent", sent).Int("subscribers", len(ids)).Msg("Daily tip broadcast")
}
