package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavStartsAtRoot(t *testing.T) {
	s := NewNavStack()

	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, Frame{View: ViewMainMenu}, s.Peek())
}

func TestNavDuplicateTopPushSuppressed(t *testing.T) {
	s := NewNavStack()

	a := Frame{View: ViewQuizLevels}
	b := Frame{View: ViewQuizQuestion, Arg: "1"}

	s.Push(a)
	s.Push(b)
	s.Push(b)

	require.Equal(t, 3, s.Depth())
	assert.Equal(t, []Frame{{View: ViewMainMenu}, a, b}, s.Frames())

	top, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, a, top)
	assert.Equal(t, []Frame{{View: ViewMainMenu}, a}, s.Frames())
}

func TestNavSameViewDifferentArgIsPushed(t *testing.T) {
	s := NewNavStack()

	s.Push(Frame{View: ViewScenarioPlay, Arg: "phishing_link"})
	s.Push(Frame{View: ViewScenarioPlay, Arg: "fake_call"})

	assert.Equal(t, 3, s.Depth())
}

func TestNavPopAtRoot(t *testing.T) {
	s := NewNavStack()

	top, ok := s.Pop()
	assert.False(t, ok)
	assert.Equal(t, Frame{View: ViewMainMenu}, top)
	assert.Equal(t, 1, s.Depth())
}

func TestNavReplaceTop(t *testing.T) {
	s := NewNavStack()

	s.Push(Frame{View: ViewBalance})
	s.Push(Frame{View: ViewScenarioPlay, Arg: "fake_call"})
	s.ReplaceTop(Frame{View: ViewScenarioMenu})

	assert.Equal(t, 3, s.Depth())
	assert.Equal(t, Frame{View: ViewScenarioMenu}, s.Peek())

	top, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, Frame{View: ViewBalance}, top)
}

func TestNavReplaceTopCollapsesIntoMatchingParent(t *testing.T) {
	s := NewNavStack()

	s.Push(Frame{View: ViewScenarioMenu})
	s.Push(Frame{View: ViewScenarioPlay, Arg: "fake_call"})
	s.ReplaceTop(Frame{View: ViewScenarioMenu})

	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, Frame{View: ViewScenarioMenu}, s.Peek())

	top, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, Frame{View: ViewMainMenu}, top)
}

func TestNavReplaceTopNeverRewritesRoot(t *testing.T) {
	s := NewNavStack()

	s.ReplaceTop(Frame{View: ViewHelp})

	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, Frame{View: ViewHelp}, s.Peek())

	top, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, Frame{View: ViewMainMenu}, top)
}

func TestNavReset(t *testing.T) {
	s := NewNavStack()

	s.Push(Frame{View: ViewBalance})
	s.Push(Frame{View: ViewShop})
	s.Reset()

	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, Frame{View: ViewMainMenu}, s.Peek())
}
