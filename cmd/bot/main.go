// Package main is the entry point for the FraudQuest learning bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fraudquest-bot/internal/bot"
	"fraudquest-bot/internal/config"
	"fraudquest-bot/internal/content"
	"fraudquest-bot/internal/engine"
	"fraudquest-bot/internal/gateway"
	"fraudquest-bot/internal/handler"
	"fraudquest-bot/internal/pkg/db"
	"fraudquest-bot/internal/pkg/lock"
	"fraudquest-bot/internal/repository"
	"fraudquest-bot/internal/scheduler"
	"fraudquest-bot/internal/service"
	"fraudquest-bot/internal/session"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Run database migrations
	if err := runMigrations(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(dbPool.Pool)
	leaderboardRepo := repository.NewLeaderboardRepository(dbPool.Pool)
	referralRepo := repository.NewReferralRepository(dbPool.Pool)
	eventRepo := repository.NewEventRepository(dbPool.Pool)
	analyticsRepo := repository.NewAnalyticsRepository(dbPool.Pool)

	// Initialize locks
	userLock := lock.NewUserLock()
	periodLock := lock.NewPeriodLock()

	// Initialize services
	accountService := service.NewAccountService(userRepo)
	leaderboardService := service.NewLeaderboardService(leaderboardRepo, periodLock)
	ledgerService := service.NewLedgerService(userRepo, leaderboardService)
	referralService := service.NewReferralService(
		referralRepo,
		ledgerService,
		cfg.Rewards.ReferralSignup,
		cfg.Rewards.ReferralMilestone,
	)
	analyticsService := service.NewAnalyticsService(eventRepo, analyticsRepo, userRepo)

	// Initialize content catalog and engines
	catalog := content.NewCatalog()
	quizMachine := engine.NewQuizMachine(
		catalog,
		cfg.Quiz.PassThreshold,
		cfg.Rewards.QuizBase,
		cfg.Rewards.QuizPerfectBonus,
	)
	scenarioEngine := engine.NewScenarioEngine(catalog)

	// Initialize sessions
	sessions := session.NewStore(cfg.Session.IdleTTL)
	sessions.StartSweeper(cfg.Session.SweepInterval)

	// Initialize handlers
	menuHandler := handler.NewMenuHandler(accountService, ledgerService, cfg)
	quizHandler := handler.NewQuizHandler(accountService, ledgerService, analyticsService, quizMachine, catalog)
	scenarioHandler := handler.NewScenarioHandler(accountService, ledgerService, analyticsService, scenarioEngine, catalog)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)

	// Initialize bot
	telegramBot, err := bot.New(&bot.Dependencies{
		Config:             cfg,
		Sessions:           sessions,
		UserLock:           userLock,
		MenuHandler:        menuHandler,
		QuizHandler:        quizHandler,
		ScenarioHandler:    scenarioHandler,
		LeaderboardHandler: leaderboardHandler,
		Account:            accountService,
		Analytics:          analyticsService,
		Referral:           referralService,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	// Start scheduled jobs
	jobs := scheduler.New(
		cfg,
		leaderboardService,
		analyticsService,
		accountService,
		gateway.NewTelegramBroadcaster(telegramBot.Telebot()),
	)
	jobs.Start()
	defer jobs.Stop()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Msg("Bot is starting...")
		telegramBot.Start()
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	telegramBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}

// runMigrations executes database migrations.
func runMigrations(ctx context.Context, pool *db.Pool) error {
	log.Info().Msg("Running database migrations...")

	// Migration 1: Create users table
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			telegram_id BIGINT PRIMARY KEY,
			username VARCHAR(255) NOT NULL DEFAULT '',
			first_name VARCHAR(255) NOT NULL DEFAULT '',
			language VARCHAR(8) NOT NULL DEFAULT 'en',
			coins BIGINT NOT NULL DEFAULT 0,
			quizzes_passed INT NOT NULL DEFAULT 0,
			max_unlocked_level INT NOT NULL DEFAULT 1,
			scenario_score BIGINT NOT NULL DEFAULT 0,
			scenario_badges TEXT NOT NULL DEFAULT '',
			subscribed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 1: users table created")

	// Migration 2: Create leaderboard entries table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS leaderboard_entries (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(telegram_id) ON DELETE CASCADE,
			period VARCHAR(16) NOT NULL,
			score BIGINT NOT NULL DEFAULT 0,
			rank INT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, period)
		);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_period_score ON leaderboard_entries(period, score DESC, id ASC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 2: leaderboard_entries table created")

	// Migration 3: Create referrals table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS referrals (
			id BIGSERIAL PRIMARY KEY,
			referral_code VARCHAR(16) NOT NULL UNIQUE,
			referrer_id BIGINT NOT NULL,
			referred_id BIGINT,
			status VARCHAR(16) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ
		);
		CREATE INDEX IF NOT EXISTS idx_referrals_referrer_status ON referrals(referrer_id, status);
		CREATE INDEX IF NOT EXISTS idx_referrals_referred ON referrals(referred_id);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 3: referrals table created")

	// Migration 4: Create user events table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS user_events (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL,
			event_type VARCHAR(50) NOT NULL,
			event_data TEXT NOT NULL DEFAULT '',
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_user_events_time ON user_events(timestamp);
		CREATE INDEX IF NOT EXISTS idx_user_events_type_time ON user_events(event_type, timestamp);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 4: user_events table created")

	// Migration 5: Create daily analytics table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS analytics_daily (
			date DATE PRIMARY KEY,
			dau INT NOT NULL DEFAULT 0,
			new_users INT NOT NULL DEFAULT 0,
			quiz_completions INT NOT NULL DEFAULT 0,
			scenario_completions INT NOT NULL DEFAULT 0
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 5: analytics_daily table created")

	log.Info().Msg("All migrations completed successfully")
	return nil
}
