package session

// ViewID names a screen presented to the user.
type ViewID string

// Views navigable through the stack.
const (
	ViewMainMenu     ViewID = "main_menu"
	ViewQuizLevels   ViewID = "quiz_levels"
	ViewQuizQuestion ViewID = "quiz_question"
	ViewScenarioMenu ViewID = "scenario_menu"
	ViewScenarioPlay ViewID = "scenario_play"
	ViewBalance      ViewID = "balance"
	ViewShop         ViewID = "shop"
	ViewLeaderboard  ViewID = "leaderboard"
	ViewReferral     ViewID = "referral"
	ViewHelp         ViewID = "help"
)

// Frame is one entry in the navigation stack. Arg carries view-specific
// context (quiz level, scenario id) so "back" can re-render the exact screen.
type Frame struct {
	View ViewID
	Arg  string
}

// NavStack is a per-user LIFO view history enabling a generic "back" action.
// The root frame is always the main menu and is never popped.
type NavStack struct {
	frames []Frame
}

// NewNavStack returns a stack holding only the root frame.
func NewNavStack() *NavStack {
	return &NavStack{frames: []Frame{{View: ViewMainMenu}}}
}

// Push appends a frame unless it duplicates the current top.
// Duplicate pushes are a no-op so re-rendering a screen is idempotent.
func (s *NavStack) Push(f Frame) {
	if len(s.frames) == 0 {
		s.frames = []Frame{{View: ViewMainMenu}}
	}
	if s.frames[len(s.frames)-1] == f {
		return
	}
	s.frames = append(s.frames, f)
}

// Pop removes the top frame and returns the frame now on top.
// When only the root remains it returns (root, false): "back" from the root
// re-renders the main menu without mutating the stack.
func (s *NavStack) Pop() (Frame, bool) {
	if len(s.frames) <= 1 {
		return Frame{View: ViewMainMenu}, false
	}
	s.frames = s.frames[:len(s.frames)-1]
	return s.frames[len(s.frames)-1], true
}

// Peek returns the current top frame without mutation.
func (s *NavStack) Peek() Frame {
	if len(s.frames) == 0 {
		return Frame{View: ViewMainMenu}
	}
	return s.frames[len(s.frames)-1]
}

// ReplaceTop rewrites the current top frame in place. Used when a flow
// concludes and "back" should land on the flow's menu rather than a
// mid-flow screen.
func (s *NavStack) ReplaceTop(f Frame) {
	if len(s.frames) <= 1 {
		// Never rewrite the root.
		s.Push(f)
		return
	}
	if s.frames[len(s.frames)-2] == f {
		// Collapse instead of leaving two identical frames in a row.
		s.frames = s.frames[:len(s.frames)-1]
		return
	}
	s.frames[len(s.frames)-1] = f
}

// Reset clears the stack back to the root frame.
func (s *NavStack) Reset() {
	s.frames = []Frame{{View: ViewMainMenu}}
}

// Depth returns the number of frames on the stack.
func (s *NavStack) Depth() int {
	return len(s.frames)
}

// Frames returns a copy of the stack, bottom first.
func (s *NavStack) Frames() []Frame {
	out := make([]Frame, len(s.frames))
	copy(out, s.frames)
	return out
}
