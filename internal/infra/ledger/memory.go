package ledger

import (
	"context"
	"sync"

	"rentbook/internal/domain/booking"
	"rentbook/internal/infra"

	"github.com/google/uuid"
)

// MemoryLedger is the reference BookingLedger implementation: maps guarded
// by a single RWMutex, with the same conditional-insert semantics as the
// Postgres ledger. Used by unit tests and as an embedded fallback.
type MemoryLedger struct {
	mu     sync.RWMutex
	byItem map[uuid.UUID][]*booking.BookedInterval
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{byItem: make(map[uuid.UUID][]*booking.BookedInterval)}
}

func (l *MemoryLedger) FindIntervalsForItem(_ context.Context, itemID uuid.UUID) ([]*booking.BookedInterval, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*booking.BookedInterval, len(l.byItem[itemID]))
	copy(out, l.byItem[itemID])
	return out, nil
}

func (l *MemoryLedger) FindIntervalsByOrder(_ context.Context, orderID uuid.UUID) ([]*booking.BookedInterval, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []*booking.BookedInterval
	for _, ivs := range l.byItem {
		for _, iv := range ivs {
			if iv.OrderID() == orderID {
				out = append(out, iv)
			}
		}
	}
	return out, nil
}

func (l *MemoryLedger) InsertInterval(_ context.Context, iv *booking.BookedInterval) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, existing := range l.byItem[iv.ItemID()] {
		if existing.Overlaps(iv.Range()) {
			return infra.WrapRepoErr("interval overlaps committed booking", nil, infra.KindConflict)
		}
	}
	l.byItem[iv.ItemID()] = append(l.byItem[iv.ItemID()], iv)
	return nil
}

func (l *MemoryLedger) DeleteIntervalsByOrder(_ context.Context, orderID uuid.UUID) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var removed int64
	for itemID, ivs := range l.byItem {
		kept := ivs[:0]
		for _, iv := range ivs {
			if iv.OrderID() == orderID {
				removed++
				continue
			}
			kept = append(kept, iv)
		}
		if len(kept) == 0 {
			delete(l.byItem, itemID)
		} else {
			l.byItem[itemID] = kept
		}
	}
	return removed, nil
}
