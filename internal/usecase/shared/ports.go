package shared

import (
	"context"
	"time"

	"rentbook/internal/domain/booking"
	"rentbook/internal/domain/item"

	"github.com/google/uuid"
)

// BookingLedger is the persistence boundary for committed intervals. Each
// operation is atomic from the coordinator's perspective; InsertInterval is
// conditional and fails with a conflict kind when an overlapping committed
// interval already exists for the item.
type BookingLedger interface {
	FindIntervalsForItem(ctx context.Context, itemID uuid.UUID) ([]*booking.BookedInterval, error)
	FindIntervalsByOrder(ctx context.Context, orderID uuid.UUID) ([]*booking.BookedInterval, error)
	InsertInterval(ctx context.Context, iv *booking.BookedInterval) error
	DeleteIntervalsByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
}

type ItemRepository interface {
	Create(ctx context.Context, it *item.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*item.Item, error)
}

// HoldStore keeps provisional holds. Implementations expire entries on
// their own (TTL); readers still check ExpiresAt because TTL granularity
// may lag. The store does no overlap checking; the coordinator does, under
// the item lock.
type HoldStore interface {
	Put(ctx context.Context, h *booking.Hold, ttl time.Duration) error
	Get(ctx context.Context, holdID uuid.UUID) (*booking.Hold, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*booking.Hold, error)
	Delete(ctx context.Context, holdID uuid.UUID) error
}
