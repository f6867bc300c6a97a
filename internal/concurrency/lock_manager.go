package concurrency

import (
	"sync"
)

// LockManager handles named locks. The shop and challenge services take a
// per-user lock around their transactions; the database row locks are the
// authoritative serialization, this just avoids needless tx conflicts from
// one process.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
