// Property-based tests for the navigation stack invariants.
package session

import (
	"testing"

	"pgregory.net/rapid"
)

var propertyViews = []ViewID{
	ViewQuizLevels, ViewQuizQuestion, ViewScenarioMenu, ViewScenarioPlay,
	ViewBalance, ViewShop, ViewLeaderboard, ViewReferral, ViewHelp,
}

// TestNavStackInvariantProperty checks that under any operation sequence the
// stack keeps its invariants: the bottom frame is always the main menu, the
// depth never drops below one, and the top never equals the frame beneath it.
func TestNavStackInvariantProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewNavStack()

		numOps := rapid.IntRange(1, 50).Draw(t, "numOps")
		for i := 0; i < numOps; i++ {
			op := rapid.IntRange(0, 3).Draw(t, "op")
			switch op {
			case 0:
				view := rapid.SampledFrom(propertyViews).Draw(t, "pushView")
				arg := rapid.StringMatching(`[a-z]{0,4}`).Draw(t, "pushArg")
				s.Push(Frame{View: view, Arg: arg})
			case 1:
				s.Pop()
			case 2:
				view := rapid.SampledFrom(propertyViews).Draw(t, "replaceView")
				s.ReplaceTop(Frame{View: view})
			case 3:
				s.Reset()
			}

			frames := s.Frames()
			if len(frames) < 1 {
				t.Fatalf("stack emptied after op %d", op)
			}
			if frames[0].View != ViewMainMenu || frames[0].Arg != "" {
				t.Fatalf("root frame corrupted: %+v", frames[0])
			}
			for j := 1; j < len(frames); j++ {
				if frames[j] == frames[j-1] {
					t.Fatalf("adjacent duplicate frames at %d: %+v", j, frames[j])
				}
			}
		}
	})
}
