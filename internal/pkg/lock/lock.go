// Package lock provides the serialization points for the engine: per-user
// locks so concurrently delivered events for one chat never interleave, and
// per-period locks so leaderboard rank recomputation always observes and
// overwrites a consistent snapshot.
package lock

import "sync"

// keyMutex wraps a mutex stored per key.
type keyMutex struct {
	mu sync.Mutex
}

// UserLock provides per-user locking. All state transitions for one user run
// under that user's lock; cross-user operations do not take it.
type UserLock struct {
	locks sync.Map // map[int64]*keyMutex
	pool  sync.Pool
}

// NewUserLock creates a new UserLock instance.
func NewUserLock() *UserLock {
	return &UserLock{
		pool: sync.Pool{
			New: func() any {
				return &keyMutex{}
			},
		},
	}
}

// getLock retrieves or creates a mutex for the given user ID.
func (ul *UserLock) getLock(userID int64) *keyMutex {
	if v, ok := ul.locks.Load(userID); ok {
		return v.(*keyMutex)
	}

	newLock := ul.pool.Get().(*keyMutex)
	actual, loaded := ul.locks.LoadOrStore(userID, newLock)
	if loaded {
		// Another goroutine created the lock first, return ours to pool.
		ul.pool.Put(newLock)
	}
	return actual.(*keyMutex)
}

// Lock acquires the lock for a user.
func (ul *UserLock) Lock(userID int64) {
	ul.getLock(userID).mu.Lock()
}

// Unlock releases the lock for a user.
func (ul *UserLock) Unlock(userID int64) {
	if v, ok := ul.locks.Load(userID); ok {
		v.(*keyMutex).mu.Unlock()
	}
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired, false otherwise.
func (ul *UserLock) TryLock(userID int64) bool {
	return ul.getLock(userID).mu.TryLock()
}

// WithLock executes a function while holding the user's lock.
func (ul *UserLock) WithLock(userID int64, fn func() error) error {
	ul.Lock(userID)
	defer ul.Unlock(userID)
	return fn()
}

// PeriodLock provides per-leaderboard-period locking. Live score updates and
// scheduled jobs (weekly reset) take the same lock, so a reset never
// interleaves with an in-flight rank recomputation for the same period.
type PeriodLock struct {
	mu    sync.Mutex
	locks map[string]*keyMutex
}

// NewPeriodLock creates a new PeriodLock instance.
func NewPeriodLock() *PeriodLock {
	return &PeriodLock{locks: make(map[string]*keyMutex)}
}

func (pl *PeriodLock) getLock(period string) *keyMutex {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	l, ok := pl.locks[period]
	if !ok {
		l = &keyMutex{}
		pl.locks[period] = l
	}
	return l
}

// Lock acquires the lock for a period.
func (pl *PeriodLock) Lock(period string) {
	pl.getLock(period).mu.Lock()
}

// Unlock releases the lock for a period.
func (pl *PeriodLock) Unlock(period string) {
	pl.getLock(period).mu.Unlock()
}

// WithLock executes a function while holding the period's lock.
func (pl *PeriodLock) WithLock(period string, fn func() error) error {
	pl.Lock(period)
	defer pl.Unlock(period)
	return fn()
}
