package anor

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

const (
	instanceLockFilename = "storage-lock"

	// defaultLockTimeout is the total time budget spent retrying the
	// advisory instance lock before giving up.
	defaultLockTimeout = 5000 * time.Millisecond

	// defaultLockRetries is the number of equal sub-intervals the total
	// timeout is divided into.
	defaultLockRetries = 100
)

// instanceLock wraps the advisory, cross-process exclusive lock on a data
// directory's storage-lock file. At most one instanceLock may be held on
// a given file across all processes on the host at any time.
type instanceLock struct {
	file *os.File
}

// acquireInstanceLock opens (creating if absent) dataDir/storage-lock and
// attempts an exclusive, non-blocking flock, retrying up to timeout in
// equal sub-intervals. It returns ErrInstanceLockUnavailable if the lock
// is still held elsewhere when the timeout elapses.
func acquireInstanceLock(dataDir string, timeout time.Duration) (*instanceLock, error) {
	if timeout <= 0 {
		timeout = defaultLockTimeout
	}

	path := dataDir + string(os.PathSeparator) + instanceLockFilename
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, newStoreError(ErrIO, path, "could not open instance lock file: %v", err)
	}

	interval := timeout / defaultLockRetries
	if interval <= 0 {
		interval = timeout
	}

	var lastErr error
	attempts := defaultLockRetries
	for attempts >= 0 {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return &instanceLock{file: f}, nil
		}
		lastErr = err
		if attempts == 0 {
			break
		}
		time.Sleep(interval)
		attempts--
	}

	f.Close()
	return nil, newStoreError(ErrInstanceLockUnavailable, path,
		"could not obtain exclusive lock within %s: %v", timeout, lastErr)
}

// release unlocks and closes the instance lock file.
func (l *instanceLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	if err != nil {
		return newStoreError(ErrIO, l.file.Name(), "could not unlock instance lock: %v", err)
	}
	if closeErr != nil {
		return newStoreError(ErrIO, l.file.Name(), "could not close instance lock: %v", closeErr)
	}
	return nil
}
