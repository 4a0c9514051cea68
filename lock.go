// Advisory file locking for snapshot files.
//
// SaveFile holds an exclusive lock for the whole write and LoadSeqDBFile a
// shared lock for the whole read, so a loader in another process never sees
// a half-written snapshot. Locks are flock(2) on unix and LockFileEx on
// windows. Both block until granted and are released when the file is
// closed if Unlock is never reached.
package fastx

import "os"

// LockMode selects shared (read) or exclusive (write) locking.
type LockMode int

const (
	LockShared LockMode = iota
	LockExclusive
)

// fileLock is an OS-level lock on an open file.
type fileLock struct {
	f *os.File
}

// Lock blocks until a lock of the given mode is held.
func (l fileLock) Lock(mode LockMode) error {
	return l.lock(mode)
}

// Unlock releases the lock.
func (l fileLock) Unlock() error {
	return l.unlock()
}
