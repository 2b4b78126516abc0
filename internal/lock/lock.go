// Package lock keeps one generation cycle in flight across processes.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLocked means another process holds the cycle lock
var ErrLocked = errors.New("another cs2quicksetup instance is generating")

const retryDelay = 50 * time.Millisecond

// CycleLock is a file lock around the load-previous / generate / store-previous sequence
type CycleLock struct {
	lockFile *flock.Flock
	lockPath string
}

// New creates a lock backed by the file at path
func New(path string) (*CycleLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	return &CycleLock{
		lockFile: flock.New(path),
		lockPath: path,
	}, nil
}

// TryLock acquires the lock without waiting
func (l *CycleLock) TryLock() error {
	locked, err := l.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock: %w", err)
	}
	if !locked {
		return ErrLocked
	}
	return nil
}

// Lock waits for the lock until ctx is done
func (l *CycleLock) Lock(ctx context.Context) error {
	locked, err := l.lockFile.TryLockContext(ctx, retryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrLocked, ctx.Err())
		}
		return fmt.Errorf("failed to lock: %w", err)
	}
	if !locked {
		return ErrLocked
	}
	return nil
}

// Unlock releases the lock
// The lock file is never removed; every locker must contend on the same file
func (l *CycleLock) Unlock() error {
	if l.lockFile == nil || !l.lockFile.Locked() {
		return nil
	}

	if err := l.lockFile.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock: %w", err)
	}

	return nil
}

// Path returns the lock file path
func (l *CycleLock) Path() string {
	return l.lockPath
}
