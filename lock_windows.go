//go:build windows

package fastx

import "golang.org/x/sys/windows"

// Whole-file range: bytes 0 to 2^64-1.
const lockLow, lockHigh = 0xFFFFFFFF, 0xFFFFFFFF

func (l fileLock) lock(mode LockMode) error {
	var flags uint32
	if mode == LockExclusive {
		flags |= windows.LOCKFILE_EXCLUSIVE_LOCK
	}
	return windows.LockFileEx(windows.Handle(l.f.Fd()), flags, 0, lockLow, lockHigh, new(windows.Overlapped))
}

func (l fileLock) unlock() error {
	return windows.UnlockFileEx(windows.Handle(l.f.Fd()), 0, lockLow, lockHigh, new(windows.Overlapped))
}
