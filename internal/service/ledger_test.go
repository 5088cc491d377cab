package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fraudquest-bot/internal/content"
	"fraudquest-bot/internal/engine"
	"fraudquest-bot/internal/model"
)

func TestQuizCompletionDelta(t *testing.T) {
	passed := &engine.QuizCompletion{
		Level: 1, CorrectCount: 3, Total: 3,
		Passed: true, Perfect: true, Reward: 15, UnlockLevel: 2,
	}
	delta := quizCompletionDelta(passed)
	assert.Equal(t, 1, delta.QuizzesPassed)
	assert.Equal(t, 2, delta.UnlockLevel)
	assert.Equal(t, int64(0), delta.ScenarioScore)

	failed := &engine.QuizCompletion{
		Level: 1, CorrectCount: 0, Total: 3,
		Passed: false, Reward: 10,
	}
	delta = quizCompletionDelta(failed)
	assert.Equal(t, 0, delta.QuizzesPassed)
	assert.Equal(t, 0, delta.UnlockLevel)
	// Quiz rewards carry coins only; the scenario score stays untouched even
	// though the attempt still earns coins.
	assert.Equal(t, int64(0), delta.ScenarioScore)
}

func TestScenarioConclusionDelta(t *testing.T) {
	success := &engine.Conclusion{Outcome: content.OutcomeSuccess, Reward: 30, Badge: "phishing_hero"}
	delta := scenarioConclusionDelta(success)
	assert.Equal(t, int64(30), delta.ScenarioScore)

	fail := &engine.Conclusion{Outcome: content.OutcomeFail}
	delta = scenarioConclusionDelta(fail)
	assert.Equal(t, int64(0), delta.ScenarioScore)
}

func TestRewardDeltaKeepsScenarioScoreOutOfPlainGrants(t *testing.T) {
	user := &model.User{TelegramID: 7}

	// A plain coin grant, the referral path, must not move the scenario
	// score no matter how large the coin delta is.
	delta, badge := rewardDelta(user, 50, "", model.ProgressDelta{})
	assert.Equal(t, int64(50), delta.Coins)
	assert.Equal(t, int64(0), delta.ScenarioScore)
	assert.Empty(t, badge)
	assert.False(t, delta.SetBadges)
}

func TestRewardDeltaBadgeUnion(t *testing.T) {
	user := &model.User{TelegramID: 7, ScenarioBadges: "call_guard"}

	delta, badge := rewardDelta(user, 30, "phishing_hero", model.ProgressDelta{ScenarioScore: 30})
	assert.Equal(t, int64(30), delta.Coins)
	assert.Equal(t, int64(30), delta.ScenarioScore)
	assert.Equal(t, "phishing_hero", badge)
	assert.True(t, delta.SetBadges)
	assert.Equal(t, "call_guard,phishing_hero", delta.Badges)

	// Granting a badge the user already holds leaves the stored set alone.
	delta, badge = rewardDelta(user, 30, "call_guard", model.ProgressDelta{})
	assert.Empty(t, badge)
	assert.False(t, delta.SetBadges)
}
