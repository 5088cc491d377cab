// Property-based tests for the quiz machine's scoring and unlock policy.
package engine

import (
	"testing"

	"pgregory.net/rapid"

	"fraudquest-bot/internal/content"
)

// TestQuizCompletionProperty checks that for any answer sequence the
// completion is consistent: the correct count never exceeds the total,
// passing tracks the threshold exactly, the reward follows the pass/perfect
// rules, and a level unlock happens only on a perfect run below the top
// level.
func TestQuizCompletionProperty(t *testing.T) {
	catalog := content.NewCatalog()
	maxLevel := catalog.MaxLevel("en")

	rapid.Check(t, func(t *rapid.T) {
		threshold := rapid.IntRange(1, 5).Draw(t, "threshold")
		base := rapid.Int64Range(1, 100).Draw(t, "base")
		bonus := rapid.Int64Range(0, 50).Draw(t, "bonus")
		level := rapid.IntRange(1, maxLevel).Draw(t, "level")

		m := NewQuizMachine(catalog, threshold, base, bonus)
		sel := m.SelectLevel("en", level, maxLevel)
		if sel.Status != LevelStarted {
			t.Fatalf("level %d did not start: %v", level, sel.Status)
		}

		questions := catalog.Questions("en", level)
		expectedCorrect := 0
		var completion *QuizCompletion
		for i := range questions {
			answerCorrectly := rapid.Bool().Draw(t, "answerCorrectly")
			idx := questions[i].Answer
			if !answerCorrectly {
				idx = (idx + 1) % len(questions[i].Options)
			} else {
				expectedCorrect++
			}

			result, err := m.Answer(sel.Session, idx)
			if err != nil {
				t.Fatalf("answer %d failed: %v", i, err)
			}
			if i == len(questions)-1 {
				completion = result.Completion
			}
		}

		if completion == nil {
			t.Fatal("attempt did not complete")
		}
		if completion.CorrectCount != expectedCorrect {
			t.Fatalf("correct count: expected %d, got %d", expectedCorrect, completion.CorrectCount)
		}
		if completion.Passed != (expectedCorrect >= threshold) {
			t.Fatalf("passed=%v with %d correct, threshold %d", completion.Passed, expectedCorrect, threshold)
		}
		perfect := expectedCorrect == len(questions)
		if completion.Perfect != perfect {
			t.Fatalf("perfect=%v with %d/%d correct", completion.Perfect, expectedCorrect, len(questions))
		}

		expectedReward := base
		if perfect {
			expectedReward += bonus
		}
		if completion.Reward != expectedReward {
			t.Fatalf("reward: expected %d, got %d", expectedReward, completion.Reward)
		}

		if perfect && level < maxLevel {
			if completion.UnlockLevel != level+1 {
				t.Fatalf("perfect run at level %d should unlock %d, got %d", level, level+1, completion.UnlockLevel)
			}
		} else if completion.UnlockLevel != 0 {
			t.Fatalf("unexpected unlock %d (perfect=%v, level=%d)", completion.UnlockLevel, perfect, level)
		}
	})
}
