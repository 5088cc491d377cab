// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Bot       BotConfig       `mapstructure:"bot"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
	Rewards   RewardsConfig   `mapstructure:"rewards"`
	Shop      ShopConfig      `mapstructure:"shop"`
	Session   SessionConfig   `mapstructure:"session"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// BotConfig holds Telegram bot configuration.
type BotConfig struct {
	Token string `mapstructure:"token"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host             string        `mapstructure:"host"`
	Port             int           `mapstructure:"port"`
	User             string        `mapstructure:"user"`
	Password         string        `mapstructure:"password"`
	Name             string        `mapstructure:"name"`
	PoolSize         int           `mapstructure:"pool_size"`
	ConnectTimeout   time.Duration `mapstructure:"connect_timeout"`
	StatementTimeout time.Duration `mapstructure:"statement_timeout"`
	MaxConnLifetime  time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime  time.Duration `mapstructure:"max_conn_idle_time"`
}

// AdminConfig holds admin user configuration.
type AdminConfig struct {
	IDs []int64 `mapstructure:"ids"`
}

// QuizConfig holds quiz progression configuration.
type QuizConfig struct {
	// PassThreshold is the minimum number of correct answers required to
	// count an attempt as passed.
	PassThreshold int `mapstructure:"pass_threshold"`
}

// RewardsConfig holds coin reward amounts.
type RewardsConfig struct {
	QuizBase          int64 `mapstructure:"quiz_base"`
	QuizPerfectBonus  int64 `mapstructure:"quiz_perfect_bonus"`
	ReferralSignup    int64 `mapstructure:"referral_signup"`
	ReferralMilestone int64 `mapstructure:"referral_milestone"`
}

// ShopConfig holds shop pricing.
type ShopConfig struct {
	HintCost int64 `mapstructure:"hint_cost"`
}

// SessionConfig holds conversational session lifecycle settings.
type SessionConfig struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// SchedulerConfig holds cadences for time-based jobs.
type SchedulerConfig struct {
	WeeklyResetInterval    time.Duration `mapstructure:"weekly_reset_interval"`
	DailyAggregateInterval time.Duration `mapstructure:"daily_aggregate_interval"`
	TipInterval            time.Duration `mapstructure:"tip_interval"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the config directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variables use underscore separator and uppercase,
	// e.g. BOT_TOKEN, DATABASE_HOST, QUIZ_PASS_THRESHOLD.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - env vars can provide all config.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Quiz.PassThreshold <= 0 {
		return nil, fmt.Errorf("quiz.pass_threshold must be positive, got %d", cfg.Quiz.PassThreshold)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "fraudquest")
	v.SetDefault("database.name", "fraudquest")
	v.SetDefault("database.pool_size", 20)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.statement_timeout", "5s")
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	v.SetDefault("quiz.pass_threshold", 3)

	v.SetDefault("rewards.quiz_base", 10)
	v.SetDefault("rewards.quiz_perfect_bonus", 5)
	v.SetDefault("rewards.referral_signup", 20)
	v.SetDefault("rewards.referral_milestone", 50)

	v.SetDefault("shop.hint_cost", 20)

	v.SetDefault("session.idle_ttl", "48h")
	v.SetDefault("session.sweep_interval", "30m")

	v.SetDefault("scheduler.weekly_reset_interval", "168h")
	v.SetDefault("scheduler.daily_aggregate_interval", "24h")
	v.SetDefault("scheduler.tip_interval", "24h")
}

// IsAdmin checks if a user ID is in the admin list.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Admin.IDs {
		if id == userID {
			return true
		}
	}
	return false
}
