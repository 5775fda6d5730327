package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gofrs/flock"
	"github.com/labsyspharm/release-tagger/internal/domain"
)

// LockRetryInterval defines the interval between lock retry attempts
const LockRetryInterval = 100 * time.Millisecond

var unsafeLockChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ReleaseLock serialises release runs for one upstream project on this machine.
type ReleaseLock struct {
	lock *flock.Flock
}

// LockPath returns the lock file used for owner/repo under dir (os.TempDir when empty).
func LockPath(dir, owner, repo string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	name := unsafeLockChars.ReplaceAllString(fmt.Sprintf("release-tagger-%s-%s", owner, repo), "_")
	return filepath.Join(dir, name+".lock")
}

// NewReleaseLock creates an unlocked lock on path.
func NewReleaseLock(path string) *ReleaseLock {
	return &ReleaseLock{lock: flock.New(path)}
}

// Path returns the lock file path.
func (l *ReleaseLock) Path() string {
	return l.lock.Path()
}

// Acquire takes the exclusive lock, polling until timeout or ctx is done.
func (l *ReleaseLock) Acquire(ctx context.Context, timeout time.Duration) error {
	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	locked, err := acquireLockWithContext(lockCtx, l.lock)
	if err != nil {
		if lockCtx.Err() != nil && ctx.Err() == nil {
			return fmt.Errorf("%w: could not acquire %s within %s", domain.ErrReleaseInProcess, l.lock.Path(), timeout)
		}
		return fmt.Errorf("failed to acquire lock %s: %w", l.lock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("%w: could not acquire %s", domain.ErrReleaseInProcess, l.lock.Path())
	}
	return nil
}

// Release unlocks the lock file.
func (l *ReleaseLock) Release() error {
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock %s: %w", l.lock.Path(), err)
	}
	return nil
}

// acquireLockWithContext attempts to acquire an exclusive lock with context support
func acquireLockWithContext(ctx context.Context, lock *flock.Flock) (bool, error) {
	locked, err := lock.TryLock()
	if err != nil || locked {
		return locked, err
	}
	ticker := time.NewTicker(LockRetryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
			locked, err := lock.TryLock()
			if err != nil {
				return false, err
			}
			if locked {
				return true, nil
			}
		}
	}
}
