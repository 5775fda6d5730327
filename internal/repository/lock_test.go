package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/labsyspharm/release-tagger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockPath(t *testing.T) {
	t.Run("Should derive a safe file name from owner and repo", func(t *testing.T) {
		path := LockPath("/tmp/locks", "labsyspharm", "OMERO scripts")
		assert.Equal(t, filepath.Join("/tmp/locks", "release-tagger-labsyspharm-OMERO_scripts.lock"), path)
	})
}

func TestReleaseLock(t *testing.T) {
	t.Run("Should acquire and release the lock", func(t *testing.T) {
		lock := NewReleaseLock(LockPath(t.TempDir(), "acme", "widgets"))
		require.NoError(t, lock.Acquire(context.Background(), time.Second))
		require.NoError(t, lock.Release())
	})
	t.Run("Should time out while another run holds the lock", func(t *testing.T) {
		path := LockPath(t.TempDir(), "acme", "widgets")
		first := NewReleaseLock(path)
		require.NoError(t, first.Acquire(context.Background(), time.Second))
		t.Cleanup(func() { _ = first.Release() })

		second := NewReleaseLock(path)
		err := second.Acquire(context.Background(), 300*time.Millisecond)
		assert.ErrorIs(t, err, domain.ErrReleaseInProcess)
	})
	t.Run("Should succeed once the holder releases", func(t *testing.T) {
		path := LockPath(t.TempDir(), "acme", "widgets")
		first := NewReleaseLock(path)
		require.NoError(t, first.Acquire(context.Background(), time.Second))
		require.NoError(t, first.Release())

		second := NewReleaseLock(path)
		require.NoError(t, second.Acquire(context.Background(), time.Second))
		require.NoError(t, second.Release())
	})
}
