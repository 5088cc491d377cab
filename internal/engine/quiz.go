// Package engine implements the conversation progression state machines:
// the leveled quiz machine and the branching scenario dialogue engine.
// Both are pure in-memory transitions over session-scoped state; persistence
// and rendering belong to their callers.
package engine

import (
	"errors"

	"fraudquest-bot/internal/content"
)

// Engine errors classified as client-input problems: the triggering action is
// rejected with state unchanged.
var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrNoActiveQuiz     = errors.New("no quiz in progress")
)

// QuizSession is the session-scoped state of one quiz attempt. It exists only
// while the attempt is in progress and is discarded on completion.
type QuizSession struct {
	Language      string
	Level         int
	QuestionIndex int
	CorrectCount  int
}

// LevelStatus classifies the outcome of a level selection.
type LevelStatus int

const (
	// LevelStarted means the attempt began and the first question is ready.
	LevelStarted LevelStatus = iota
	// LevelLocked means the level exceeds the user's unlocked maximum.
	LevelLocked
	// LevelNoQuestions means the catalog has no questions for this
	// (language, level); the attempt degrades to a notice instead of starting.
	LevelNoQuestions
)

// LevelSelection is the result of selecting a quiz level.
type LevelSelection struct {
	Status   LevelStatus
	Session  *QuizSession
	Question *content.QuizQuestion
	Total    int
}

// QuizCompletion is the progression event emitted when an attempt finishes.
// The ledger consumes it; the machine itself never touches the record store.
type QuizCompletion struct {
	Level        int
	CorrectCount int
	Total        int
	Passed       bool
	Perfect      bool
	Reward       int64
	// UnlockLevel is the level a perfect score unlocks, or 0. The store
	// applies it with a never-downgrade guard against the user's current
	// maximum.
	UnlockLevel int
}

// AnswerResult is the outcome of one answer submission.
type AnswerResult struct {
	Correct    bool
	Next       *content.QuizQuestion
	Completion *QuizCompletion
}

// Done reports whether the attempt finished with this answer.
func (r *AnswerResult) Done() bool { return r.Completion != nil }

// QuizMachine drives leveled quiz attempts: question sequencing, scoring,
// and the level unlock policy.
type QuizMachine struct {
	catalog       *content.Catalog
	passThreshold int
	baseReward    int64
	perfectBonus  int64
}

// NewQuizMachine creates a quiz machine over the given catalog.
func NewQuizMachine(catalog *content.Catalog, passThreshold int, baseReward, perfectBonus int64) *QuizMachine {
	return &QuizMachine{
		catalog:       catalog,
		passThreshold: passThreshold,
		baseReward:    baseReward,
		perfectBonus:  perfectBonus,
	}
}

// SelectLevel validates a level pick against the user's unlocked maximum and,
// when allowed, starts a fresh attempt at question zero.
func (m *QuizMachine) SelectLevel(language string, level, maxUnlocked int) LevelSelection {
	if level > maxUnlocked {
		return LevelSelection{Status: LevelLocked}
	}

	questions := m.catalog.Questions(language, level)
	if len(questions) == 0 {
		return LevelSelection{Status: LevelNoQuestions}
	}

	sess := &QuizSession{Language: language, Level: level}
	return LevelSelection{
		Status:   LevelStarted,
		Session:  sess,
		Question: &questions[0],
		Total:    len(questions),
	}
}

// Question returns the question the session is currently on.
func (m *QuizMachine) Question(sess *QuizSession) (*content.QuizQuestion, int, error) {
	if sess == nil {
		return nil, 0, ErrNoActiveQuiz
	}
	questions := m.catalog.Questions(sess.Language, sess.Level)
	if sess.QuestionIndex >= len(questions) {
		return nil, len(questions), ErrNoActiveQuiz
	}
	return &questions[sess.QuestionIndex], len(questions), nil
}

// Answer applies one answer submission: scores it, advances the question
// index, and on the final question computes the completion. An out-of-range
// option index is rejected with the session unchanged.
func (m *QuizMachine) Answer(sess *QuizSession, optionIndex int) (*AnswerResult, error) {
	if sess == nil {
		return nil, ErrNoActiveQuiz
	}

	questions := m.catalog.Questions(sess.Language, sess.Level)
	if sess.QuestionIndex >= len(questions) {
		return nil, ErrNoActiveQuiz
	}

	question := questions[sess.QuestionIndex]
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return nil, ErrInvalidSelection
	}

	correct := optionIndex == question.Answer
	if correct {
		sess.CorrectCount++
	}
	sess.QuestionIndex++

	res := &AnswerResult{Correct: correct}
	if sess.QuestionIndex < len(questions) {
		res.Next = &questions[sess.QuestionIndex]
		return res, nil
	}

	res.Completion = m.complete(sess, len(questions))
	return res, nil
}

// complete computes the terminal result of an attempt. Every completed
// attempt earns the base reward; passing gates only the passed counter, and
// a perfect run adds the bonus.
func (m *QuizMachine) complete(sess *QuizSession, total int) *QuizCompletion {
	perfect := total > 0 && sess.CorrectCount == total
	passed := sess.CorrectCount >= m.passThreshold

	reward := m.baseReward
	if perfect {
		reward += m.perfectBonus
	}

	c := &QuizCompletion{
		Level:        sess.Level,
		CorrectCount: sess.CorrectCount,
		Total:        total,
		Passed:       passed,
		Perfect:      perfect,
		Reward:       reward,
	}
	if perfect && sess.Level < m.catalog.MaxLevel(sess.Language) {
		c.UnlockLevel = sess.Level + 1
	}
	return c
}
