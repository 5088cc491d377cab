package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudquest-bot/internal/content"
)

func testMachine() *QuizMachine {
	return NewQuizMachine(content.NewCatalog(), 3, 10, 5)
}

// answerAll walks an attempt answering every question correctly or not
// according to correct[i].
func answerAll(t *testing.T, m *QuizMachine, sess *QuizSession, correct []bool) *QuizCompletion {
	t.Helper()
	for i := 0; i < len(correct); i++ {
		q, _, err := m.Question(sess)
		require.NoError(t, err)

		idx := q.Answer
		if !correct[i] {
			idx = (q.Answer + 1) % len(q.Options)
		}

		result, err := m.Answer(sess, idx)
		require.NoError(t, err)
		assert.Equal(t, correct[i], result.Correct)

		if i == len(correct)-1 {
			require.True(t, result.Done())
			return result.Completion
		}
		require.False(t, result.Done())
	}
	t.Fatal("attempt never completed")
	return nil
}

func TestQuizPerfectScoreUnlocksNextLevel(t *testing.T) {
	m := testMachine()

	sel := m.SelectLevel("en", 1, 1)
	require.Equal(t, LevelStarted, sel.Status)
	require.Equal(t, 3, sel.Total)

	completion := answerAll(t, m, sel.Session, []bool{true, true, true})

	assert.Equal(t, 3, completion.CorrectCount)
	assert.True(t, completion.Passed)
	assert.True(t, completion.Perfect)
	assert.Equal(t, int64(15), completion.Reward)
	assert.Equal(t, 2, completion.UnlockLevel)
}

func TestQuizImperfectPassNoUnlock(t *testing.T) {
	catalog := content.NewCatalog()
	m := NewQuizMachine(catalog, 3, 10, 5)

	sel := m.SelectLevel("en", 1, 1)
	require.Equal(t, LevelStarted, sel.Status)

	// 2 of 3 correct is below the threshold of 3: not passed, but the base
	// reward is still earned.
	completion := answerAll(t, m, sel.Session, []bool{true, true, false})
	assert.False(t, completion.Passed)
	assert.False(t, completion.Perfect)
	assert.Equal(t, int64(10), completion.Reward)
	assert.Equal(t, 0, completion.UnlockLevel)

	// Exactly at the threshold with an imperfect run: passed, base reward
	// only, no unlock.
	m2 := NewQuizMachine(catalog, 2, 10, 5)
	sel2 := m2.SelectLevel("en", 1, 1)
	completion2 := answerAll(t, m2, sel2.Session, []bool{true, true, false})
	assert.True(t, completion2.Passed)
	assert.False(t, completion2.Perfect)
	assert.Equal(t, int64(10), completion2.Reward)
	assert.Equal(t, 0, completion2.UnlockLevel)
}

func TestQuizFailedAttemptStillEarnsBaseReward(t *testing.T) {
	m := testMachine()

	sel := m.SelectLevel("en", 1, 1)
	require.Equal(t, LevelStarted, sel.Status)

	completion := answerAll(t, m, sel.Session, []bool{false, false, false})
	assert.Equal(t, 0, completion.CorrectCount)
	assert.False(t, completion.Passed)
	assert.False(t, completion.Perfect)
	assert.Equal(t, int64(10), completion.Reward)
	assert.Equal(t, 0, completion.UnlockLevel)
}

func TestQuizPerfectAtMaxLevelDoesNotUnlockBeyond(t *testing.T) {
	m := testMachine()
	maxLevel := content.NewCatalog().MaxLevel("en")

	sel := m.SelectLevel("en", maxLevel, maxLevel)
	require.Equal(t, LevelStarted, sel.Status)

	questions := content.NewCatalog().Questions("en", maxLevel)
	correct := make([]bool, len(questions))
	for i := range correct {
		correct[i] = true
	}

	completion := answerAll(t, m, sel.Session, correct)
	assert.True(t, completion.Perfect)
	assert.Equal(t, 0, completion.UnlockLevel)
}

func TestQuizLockedLevel(t *testing.T) {
	m := testMachine()

	sel := m.SelectLevel("en", 2, 1)
	assert.Equal(t, LevelLocked, sel.Status)
	assert.Nil(t, sel.Session)
}

func TestQuizMissingQuestionSet(t *testing.T) {
	m := testMachine()

	sel := m.SelectLevel("en", 99, 99)
	assert.Equal(t, LevelNoQuestions, sel.Status)
	assert.Nil(t, sel.Session)
}

func TestQuizInvalidAnswerIndexLeavesStateUnchanged(t *testing.T) {
	m := testMachine()

	sel := m.SelectLevel("en", 1, 1)
	require.Equal(t, LevelStarted, sel.Status)
	sess := sel.Session

	before := *sess
	_, err := m.Answer(sess, 99)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.Equal(t, before, *sess)

	_, err = m.Answer(sess, -1)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.Equal(t, before, *sess)
}

func TestQuizAnswerWithoutSession(t *testing.T) {
	m := testMachine()

	_, err := m.Answer(nil, 0)
	assert.ErrorIs(t, err, ErrNoActiveQuiz)
}

func TestQuizUnknownLanguageFallsBackToDefault(t *testing.T) {
	m := testMachine()

	sel := m.SelectLevel("xx", 1, 1)
	require.Equal(t, LevelStarted, sel.Status)
	assert.NotEmpty(t, sel.Question.Prompt)
}
