//go:build unit

package builder

import (
	"time"

	"rentbook/internal/domain/booking"
	"rentbook/internal/domain/calendar"
	reqdto "rentbook/internal/handler/dto/request"

	"github.com/google/uuid"
)

type IntervalBuilder struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	OrderID   uuid.UUID
	OwnerID   *uuid.UUID
	Start     calendar.Day
	End       calendar.Day
	CreatedAt time.Time
}

func NewIntervalBuilder() *IntervalBuilder {
	start := calendar.NewDay(time.Now().AddDate(0, 0, 7))
	return &IntervalBuilder{
		ID:        uuid.New(),
		ItemID:    uuid.New(),
		OrderID:   uuid.New(),
		Start:     start,
		End:       start.AddDays(2),
		CreatedAt: time.Now(),
	}
}

func (b *IntervalBuilder) With(mutate func(*IntervalBuilder)) *IntervalBuilder {
	mutate(b)
	return b
}

func (b *IntervalBuilder) BuildDomain() *booking.BookedInterval {
	r, err := calendar.NewRange(b.Start, b.End)
	if err != nil {
		panic(err)
	}
	return booking.ReconstructBookedInterval(b.ID, b.ItemID, b.OrderID, b.OwnerID, r, b.CreatedAt)
}

func (b *IntervalBuilder) BuildHold(ownerID uuid.UUID, expiresAt time.Time) *booking.Hold {
	return &booking.Hold{
		ID:        uuid.New(),
		ItemID:    b.ItemID,
		OwnerID:   ownerID,
		StartDay:  b.Start,
		EndDay:    b.End,
		ExpiresAt: expiresAt,
	}
}

func (b *IntervalBuilder) BuildReserveRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		ItemID:    b.ItemID,
		OrderID:   b.OrderID,
		StartDate: b.Start.String(),
		EndDate:   b.End.String(),
	}
}
