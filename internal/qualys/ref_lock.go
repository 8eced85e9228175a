package qualys

import "sync"

// refLocks serializes state changes per scan ref. Entries are dropped once
// no caller holds or waits on them.
type refLocks struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	sync.Mutex
	waiters int
}

func newRefLocks() *refLocks {
	return &refLocks{locks: make(map[string]*refLock)}
}

// Lock blocks until ref is free and returns its unlock function.
func (l *refLocks) Lock(ref string) func() {
	l.mu.Lock()
	lock, exists := l.locks[ref]
	if !exists {
		lock = &refLock{}
		l.locks[ref] = lock
	}
	lock.waiters++
	l.mu.Unlock()

	lock.Lock()
	return func() {
		lock.Unlock()

		l.mu.Lock()
		lock.waiters--
		if lock.waiters == 0 {
			delete(l.locks, ref)
		}
		l.mu.Unlock()
	}
}

// Held reports how many callers hold or wait on ref.
func (l *refLocks) Held(ref string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lock, exists := l.locks[ref]; exists {
		return lock.waiters
	}
	return 0
}
