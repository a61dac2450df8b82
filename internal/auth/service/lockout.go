package service

import (
	"sync"
	"time"

	"github.com/mihabgit/auth-service/internal/auth/domain"
)

// LockoutTracker drives the per-account failure counter and temporary-lock
// state. The state itself lives on the user row; the tracker owns the
// threshold arithmetic and a per-account mutex so that the read-verify-write
// sequence in Login is serialized per account. Without that, concurrent
// failed attempts race on the counter and can under-count.
type LockoutTracker struct {
	maxAttempts  int
	lockDuration time.Duration

	mu    sync.Mutex
	locks map[string]*accountLock
}

type accountLock struct {
	sync.Mutex
	refs int
}

func NewLockoutTracker(maxAttempts int, lockDuration time.Duration) *LockoutTracker {
	return &LockoutTracker{
		maxAttempts:  maxAttempts,
		lockDuration: lockDuration,
		locks:        make(map[string]*accountLock),
	}
}

// Acquire takes the serialization mutex for the given login key (email) and
// returns the release function. Entries are reference-counted so the map
// does not grow with every email ever attempted.
func (t *LockoutTracker) Acquire(key string) func() {
	t.mu.Lock()
	l, ok := t.locks[key]
	if !ok {
		l = &accountLock{}
		t.locks[key] = l
	}
	l.refs++
	t.mu.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		t.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(t.locks, key)
		}
		t.mu.Unlock()
	}
}

// IsLocked reports whether the account is inside a lock window. The
// transition back to unlocked is implicit: a lapsed LockedUntil simply stops
// counting as locked.
func (t *LockoutTracker) IsLocked(user *domain.User, now time.Time) bool {
	return user.IsLocked(now)
}

// RegisterFailure increments the failure counter and, when the counter
// reaches the threshold, stamps the lock window. Returns true when this
// failure triggered the lock. The caller persists the mutated user.
func (t *LockoutTracker) RegisterFailure(user *domain.User, now time.Time) bool {
	user.FailedLoginAttempts++

	if user.FailedLoginAttempts >= t.maxAttempts {
		lockedUntil := now.Add(t.lockDuration)
		user.LockedUntil = &lockedUntil
		return true
	}

	return false
}

// Reset clears the counter and any lock after a successful authentication.
func (t *LockoutTracker) Reset(user *domain.User) {
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
}
