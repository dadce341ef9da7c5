package holdstore

import (
	"context"
	"sync"
	"time"

	"rentbook/internal/domain/booking"
	"rentbook/internal/infra"

	"github.com/google/uuid"
)

// MemoryHoldStore mirrors RedisHoldStore semantics for unit tests; entries
// expire by deadline rather than by TTL eviction.
type MemoryHoldStore struct {
	mu    sync.RWMutex
	holds map[uuid.UUID]memoryHold
}

type memoryHold struct {
	hold     booking.Hold
	deadline time.Time
}

func NewMemoryHoldStore() *MemoryHoldStore {
	return &MemoryHoldStore{holds: make(map[uuid.UUID]memoryHold)}
}

func (s *MemoryHoldStore) Put(_ context.Context, h *booking.Hold, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holds[h.ID] = memoryHold{hold: *h, deadline: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryHoldStore) Get(_ context.Context, holdID uuid.UUID) (*booking.Hold, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.holds[holdID]
	if !ok || time.Now().After(rec.deadline) {
		return nil, infra.WrapRepoErr("hold not found", nil, infra.KindNotFound)
	}
	h := rec.hold
	return &h, nil
}

func (s *MemoryHoldStore) ListByItem(_ context.Context, itemID uuid.UUID) ([]*booking.Hold, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*booking.Hold
	now := time.Now()
	for _, rec := range s.holds {
		if rec.hold.ItemID != itemID || now.After(rec.deadline) {
			continue
		}
		h := rec.hold
		out = append(out, &h)
	}
	return out, nil
}

func (s *MemoryHoldStore) Delete(_ context.Context, holdID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.holds, holdID)
	return nil
}
