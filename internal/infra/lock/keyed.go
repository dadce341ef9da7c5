package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrAcquireTimeout = errors.New("lock acquisition timed out")

type entry struct {
	ch      chan struct{}
	holders int // holder plus queued waiters; entry is dropped at zero
}

// KeyedMutex provides mutual exclusion per key. Acquisition is bounded:
// callers wait at most the given timeout, so a stuck holder cannot cascade
// into request-queue exhaustion. No fairness guarantee.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[uuid.UUID]*entry)}
}

// Acquire blocks until the key's lock is held, the timeout elapses, or ctx
// is done. On success the returned func releases the lock and must be
// called exactly once.
func (k *KeyedMutex) Acquire(ctx context.Context, key uuid.UUID, timeout time.Duration) (func(), error) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		k.entries[key] = e
	}
	e.holders++
	k.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case e.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.ch
				k.drop(key, e)
			})
		}, nil
	case <-timer.C:
		k.drop(key, e)
		return nil, ErrAcquireTimeout
	case <-ctx.Done():
		k.drop(key, e)
		return nil, ctx.Err()
	}
}

func (k *KeyedMutex) drop(key uuid.UUID, e *entry) {
	k.mu.Lock()
	e.holders--
	if e.holders == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()
}
