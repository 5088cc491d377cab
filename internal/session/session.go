// Package session holds per-user conversational state: the navigation stack
// and any quiz or scenario currently in progress. Sessions live in memory
// only; a restart drops them and users land back on the main menu.
package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"fraudquest-bot/internal/engine"
)

// Session is the conversational state for one user. Access is serialized by
// the per-user lock held around event handling, so the fields need no
// internal locking.
type Session struct {
	Nav      *NavStack
	Quiz     *engine.QuizSession
	Scenario *engine.ScenarioState

	lastSeen time.Time
}

// Touch marks the session as recently used.
func (s *Session) Touch() {
	s.lastSeen = time.Now()
}

// Store keeps sessions keyed by telegram user id.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	idleTTL  time.Duration
}

// NewStore creates a session store. Sessions idle longer than idleTTL are
// dropped by the sweeper.
func NewStore(idleTTL time.Duration) *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		idleTTL:  idleTTL,
	}
}

// Get returns the session for a user, creating a fresh one rooted at the
// main menu if none exists.
func (s *Store) Get(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{Nav: NewNavStack()}
		s.sessions[userID] = sess
	}
	sess.Touch()
	return sess
}

// Reset discards a user's session entirely; the next Get starts fresh.
func (s *Store) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartSweeper starts the background goroutine dropping idle sessions.
// A non-positive interval disables sweeping.
func (s *Store) StartSweeper(interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			s.sweep()
		}
	}()
}

func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.idleTTL)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Int("remaining", len(s.sessions)).Msg("Swept idle sessions")
	}
}
