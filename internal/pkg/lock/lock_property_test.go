// Package lock provides per-key locking for concurrent state transitions.
// Property-based tests for serialization under concurrency.
package lock

import (
	"sync"
	"testing"

	"pgregory.net/rapid"
)

// TestUserLockSerializationProperty checks that for any set of concurrent
// progression updates on one user, the final state matches sequential
// execution.
func TestUserLockSerializationProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numOps := rapid.IntRange(2, 20).Draw(t, "numOps")
		userID := rapid.Int64Range(1, 1_000_000).Draw(t, "userID")

		deltas := make([]int64, numOps)
		var expected int64
		for i := range deltas {
			deltas[i] = rapid.Int64Range(-500, 500).Draw(t, "delta")
			expected += deltas[i]
		}

		ul := NewUserLock()
		var coins int64

		var wg sync.WaitGroup
		wg.Add(numOps)
		for _, d := range deltas {
			go func(delta int64) {
				defer wg.Done()
				ul.Lock(userID)
				defer ul.Unlock(userID)
				coins += delta
			}(d)
		}
		wg.Wait()

		if coins != expected {
			t.Fatalf("coins mismatch with locking: expected %d, got %d", expected, coins)
		}
	})
}

// TestUserLockIndependentUsers checks that locks on different users never
// block each other into losing updates.
func TestUserLockIndependentUsers(t *testing.T) {
	ul := NewUserLock()
	const users = 10
	const opsPerUser = 50

	counters := make([]int64, users)
	var wg sync.WaitGroup
	wg.Add(users * opsPerUser)
	for u := 0; u < users; u++ {
		for i := 0; i < opsPerUser; i++ {
			go func(user int) {
				defer wg.Done()
				ul.Lock(int64(user))
				defer ul.Unlock(int64(user))
				counters[user]++
			}(u)
		}
	}
	wg.Wait()

	for u, c := range counters {
		if c != opsPerUser {
			t.Fatalf("user %d: expected %d ops, got %d", u, opsPerUser, c)
		}
	}
}

// TestPeriodLockSerializesJobsAndUpdates checks that a scheduled reset and
// live score updates on the same period never interleave.
func TestPeriodLockSerializesJobsAndUpdates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numWriters := rapid.IntRange(2, 10).Draw(t, "numWriters")

		pl := NewPeriodLock()
		inCritical := 0
		maxInCritical := 0

		var wg sync.WaitGroup
		wg.Add(numWriters + 1)
		job := func() {
			defer wg.Done()
			_ = pl.WithLock("weekly", func() error {
				inCritical++
				if inCritical > maxInCritical {
					maxInCritical = inCritical
				}
				inCritical--
				return nil
			})
		}
		for i := 0; i < numWriters; i++ {
			go job()
		}
		go job()
		wg.Wait()

		if maxInCritical != 1 {
			t.Fatalf("critical section overlapped: max concurrency %d", maxInCritical)
		}
	})
}

func TestUserLockTryLock(t *testing.T) {
	ul := NewUserLock()

	ul.Lock(1)
	if ul.TryLock(1) {
		t.Fatal("TryLock succeeded on a held lock")
	}
	if !ul.TryLock(2) {
		t.Fatal("TryLock failed on a free lock")
	}
	ul.Unlock(2)
	ul.Unlock(1)

	if !ul.TryLock(1) {
		t.Fatal("TryLock failed after release")
	}
	ul.Unlock(1)
}
