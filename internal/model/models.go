// Package model defines the data models for the fraud-avoidance learning bot.
package model

import (
	"sort"
	"strings"
	"time"
)

// User represents a learner account. Created on first interaction,
// mutated by the progression ledger, never deleted in normal operation.
type User struct {
	TelegramID       int64     `db:"telegram_id"`
	Username         string    `db:"username"`
	FirstName        string    `db:"first_name"`
	Language         string    `db:"language"`
	Coins            int64     `db:"coins"`
	QuizzesPassed    int       `db:"quizzes_passed"`
	MaxUnlockedLevel int       `db:"max_unlocked_level"`
	ScenarioScore    int64     `db:"scenario_score"`
	ScenarioBadges   string    `db:"scenario_badges"`
	Subscribed       bool      `db:"subscribed"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// Badges returns the user's badge set parsed from its stored form.
func (u *User) Badges() []string {
	return ParseBadges(u.ScenarioBadges)
}

// HasBadge reports whether the user already holds the given badge.
func (u *User) HasBadge(badge string) bool {
	for _, b := range u.Badges() {
		if b == badge {
			return true
		}
	}
	return false
}

// ParseBadges splits a stored badge string into individual badge ids.
func ParseBadges(s string) []string {
	if s == "" {
		return nil
	}
	var badges []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			badges = append(badges, b)
		}
	}
	return badges
}

// AddBadge returns the badge string with badge unioned in.
// The stored form is sorted so the same set always serializes identically.
func AddBadge(s, badge string) string {
	if badge == "" {
		return s
	}
	set := map[string]struct{}{badge: {}}
	for _, b := range ParseBadges(s) {
		set[b] = struct{}{}
	}
	badges := make([]string, 0, len(set))
	for b := range set {
		badges = append(badges, b)
	}
	sort.Strings(badges)
	return strings.Join(badges, ",")
}

// Period identifies a leaderboard scoring window.
type Period string

// Leaderboard periods. Weekly scores are zeroed on a fixed cadence by the
// scheduler; the scoring formula is identical across periods.
const (
	PeriodAllTime Period = "all_time"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Periods lists all leaderboard periods in a stable order.
func Periods() []Period {
	return []Period{PeriodAllTime, PeriodWeekly, PeriodMonthly}
}

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case PeriodAllTime, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// LeaderboardEntry is one user's standing within a period. Score is derived
// from the user record and overwritten, never accumulated; rank is recomputed
// over the full period set after every score change.
type LeaderboardEntry struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Period    Period    `db:"period"`
	Score     int64     `db:"score"`
	Rank      int       `db:"rank"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Referral statuses.
const (
	ReferralPending   = "pending"
	ReferralCompleted = "completed"
)

// ReferralRecord tracks one invite code. Created once per referrer,
// transitions pending -> completed exactly once.
type ReferralRecord struct {
	ID           int64      `db:"id"`
	ReferralCode string     `db:"referral_code"`
	ReferrerID   int64      `db:"referrer_id"`
	ReferredID   *int64     `db:"referred_id"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	CompletedAt  *time.Time `db:"completed_at"`
}

// ProgressDelta describes one atomic progression update applied to a user.
// Zero-valued fields leave the corresponding column untouched; UnlockLevel
// raises max_unlocked_level but never lowers it.
type ProgressDelta struct {
	Coins         int64
	QuizzesPassed int
	ScenarioScore int64
	UnlockLevel   int
	Badges        string // full serialized badge set, applied when SetBadges
	SetBadges     bool
}

// UserEvent is one tracked interaction, used for daily analytics aggregation.
type UserEvent struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	EventType string    `db:"event_type"`
	EventData string    `db:"event_data"`
	Timestamp time.Time `db:"timestamp"`
}

// Event types recorded by the engine.
const (
	EventQuizStart         = "quiz_start"
	EventQuizComplete      = "quiz_complete"
	EventScenarioStart     = "scenario_start"
	EventScenarioComplete  = "scenario_complete"
	EventReferralCompleted = "referral_completed"
)

// AnalyticsDaily is one day's aggregated metrics, written at most once per date.
type AnalyticsDaily struct {
	Date                time.Time `db:"date"`
	DAU                 int       `db:"dau"`
	NewUsers            int       `db:"new_users"`
	QuizCompletions     int       `db:"quiz_completions"`
	ScenarioCompletions int       `db:"scenario_completions"`
}

// LeaderboardRow is a rendered standing: the stored entry joined with
// display data for the leaderboard view.
type LeaderboardRow struct {
	Rank        int
	UserID      int64
	DisplayName string
	Score       int64
}
