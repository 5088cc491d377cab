package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetCreatesRootedSession(t *testing.T) {
	store := NewStore(time.Hour)

	sess := store.Get(42)
	require.NotNil(t, sess)
	assert.Equal(t, Frame{View: ViewMainMenu}, sess.Nav.Peek())
	assert.Nil(t, sess.Quiz)
	assert.Nil(t, sess.Scenario)

	sess.Nav.Push(Frame{View: ViewQuizLevels})
	assert.Same(t, sess, store.Get(42))
	assert.Equal(t, 1, store.Len())
}

func TestStoreResetDiscardsSession(t *testing.T) {
	store := NewStore(time.Hour)

	sess := store.Get(42)
	sess.Nav.Push(Frame{View: ViewShop})
	store.Reset(42)

	fresh := store.Get(42)
	assert.NotSame(t, sess, fresh)
	assert.Equal(t, 1, fresh.Nav.Depth())
}

func TestStoreSweepDropsIdleSessions(t *testing.T) {
	store := NewStore(time.Second)

	idle := store.Get(1)
	idle.lastSeen = time.Now().Add(-time.Minute)
	store.Get(2)

	store.sweep()

	assert.Equal(t, 1, store.Len())
	assert.NotSame(t, idle, store.Get(1))
}
