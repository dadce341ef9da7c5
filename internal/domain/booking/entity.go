package booking

import (
	"time"

	"rentbook/internal/domain/calendar"

	"github.com/google/uuid"
)

// BookedInterval is a committed, contiguous day range reserved against an
// item by an order. It is created atomically alongside order placement,
// removed when the owning order is cancelled, and never mutated otherwise.
type BookedInterval struct {
	id        uuid.UUID
	itemID    uuid.UUID
	orderID   uuid.UUID
	ownerID   *uuid.UUID
	dayRange  calendar.Range
	createdAt time.Time
}

func NewBookedInterval(itemID, orderID uuid.UUID, ownerID *uuid.UUID, r calendar.Range) *BookedInterval {
	return &BookedInterval{
		id:       uuid.New(),
		itemID:   itemID,
		orderID:  orderID,
		ownerID:  ownerID,
		dayRange: r,
	}
}

func ReconstructBookedInterval(
	id, itemID, orderID uuid.UUID,
	ownerID *uuid.UUID,
	r calendar.Range,
	createdAt time.Time,
) *BookedInterval {
	return &BookedInterval{
		id:        id,
		itemID:    itemID,
		orderID:   orderID,
		ownerID:   ownerID,
		dayRange:  r,
		createdAt: createdAt,
	}
}

func (b *BookedInterval) ID() uuid.UUID            { return b.id }
func (b *BookedInterval) ItemID() uuid.UUID        { return b.itemID }
func (b *BookedInterval) OrderID() uuid.UUID       { return b.orderID }
func (b *BookedInterval) OwnerID() *uuid.UUID      { return b.ownerID }
func (b *BookedInterval) Range() calendar.Range    { return b.dayRange }
func (b *BookedInterval) CreatedAt() time.Time     { return b.createdAt }
func (b *BookedInterval) Days() []calendar.Day     { return b.dayRange.Days() }
func (b *BookedInterval) Overlaps(r calendar.Range) bool {
	return b.dayRange.Overlaps(r)
}
