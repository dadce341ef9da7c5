package booking

import (
	"time"

	"rentbook/internal/domain/calendar"

	"github.com/google/uuid"
)

// Hold is a provisional, TTL-bounded claim on a day range, taken before
// payment capture and either confirmed into a BookedInterval or dropped.
type Hold struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	OwnerID   uuid.UUID
	StartDay  calendar.Day
	EndDay    calendar.Day
	ExpiresAt time.Time
}

func NewHold(itemID, ownerID uuid.UUID, r calendar.Range, expiresAt time.Time) *Hold {
	return &Hold{
		ID:        uuid.New(),
		ItemID:    itemID,
		OwnerID:   ownerID,
		StartDay:  r.Start(),
		EndDay:    r.End(),
		ExpiresAt: expiresAt,
	}
}

func (h *Hold) Range() calendar.Range {
	r, _ := calendar.NewRange(h.StartDay, h.EndDay)
	return r
}

func (h *Hold) Expired(now time.Time) bool {
	return now.After(h.ExpiresAt)
}
