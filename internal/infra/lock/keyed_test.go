//go:build unit

package lock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"rentbook/internal/infra/lock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex(t *testing.T) {
	ctx := context.Background()

	t.Run("acquire and release", func(t *testing.T) {
		km := lock.NewKeyedMutex()
		key := uuid.New()

		release, err := km.Acquire(ctx, key, time.Second)
		require.NoError(t, err)
		release()

		release, err = km.Acquire(ctx, key, time.Second)
		require.NoError(t, err)
		release()
	})

	t.Run("release is idempotent", func(t *testing.T) {
		km := lock.NewKeyedMutex()
		key := uuid.New()

		release, err := km.Acquire(ctx, key, time.Second)
		require.NoError(t, err)
		release()
		release() // second call must not unlock someone else's hold

		other, err := km.Acquire(ctx, key, time.Second)
		require.NoError(t, err)
		defer other()

		_, err = km.Acquire(ctx, key, 50*time.Millisecond)
		assert.ErrorIs(t, err, lock.ErrAcquireTimeout)
	})

	t.Run("second acquirer times out while held", func(t *testing.T) {
		km := lock.NewKeyedMutex()
		key := uuid.New()

		release, err := km.Acquire(ctx, key, time.Second)
		require.NoError(t, err)
		defer release()

		start := time.Now()
		_, err = km.Acquire(ctx, key, 50*time.Millisecond)
		assert.ErrorIs(t, err, lock.ErrAcquireTimeout)
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("context cancellation aborts the wait", func(t *testing.T) {
		km := lock.NewKeyedMutex()
		key := uuid.New()

		release, err := km.Acquire(ctx, key, time.Second)
		require.NoError(t, err)
		defer release()

		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()
		_, err = km.Acquire(cancelCtx, key, time.Second)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("different keys never contend", func(t *testing.T) {
		km := lock.NewKeyedMutex()

		releaseA, err := km.Acquire(ctx, uuid.New(), time.Second)
		require.NoError(t, err)
		defer releaseA()

		releaseB, err := km.Acquire(ctx, uuid.New(), 50*time.Millisecond)
		require.NoError(t, err)
		releaseB()
	})

	t.Run("mutual exclusion under contention", func(t *testing.T) {
		km := lock.NewKeyedMutex()
		key := uuid.New()

		const workers = 16
		var (
			wg      sync.WaitGroup
			active  int
			maxSeen int
			mu      sync.Mutex
		)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				release, err := km.Acquire(ctx, key, 5*time.Second)
				if err != nil {
					return
				}
				defer release()

				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, maxSeen, "at most one holder at a time")
	})
}
