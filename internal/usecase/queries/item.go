package queries

import (
	"context"
	"time"

	"rentbook/internal/domain/calendar"
	"rentbook/internal/infra"
	"rentbook/internal/pkg/errs"
	"rentbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type ItemView struct {
	ID          uuid.UUID
	Name        string
	Listed      bool
	AllowedDays []calendar.Day
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type IntervalView struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	OwnerID   *uuid.UUID
	StartDay  calendar.Day
	EndDay    calendar.Day
	CreatedAt time.Time
}

type ItemBookingsView struct {
	ItemID        uuid.UUID
	Listed        bool
	TotalBookings int
	Intervals     []IntervalView
}

type ItemQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
	Bookings(ctx context.Context, id uuid.UUID) (*ItemBookingsView, error)
}

type itemQueriesImpl struct {
	items  shared.ItemRepository
	ledger shared.BookingLedger
}

func NewItemQueries(items shared.ItemRepository, ledger shared.BookingLedger) ItemQueries {
	return &itemQueriesImpl{items: items, ledger: ledger}
}

func (q *itemQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ItemView, error) {
	it, err := q.items.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrItemNotFound)
		}
		return nil, errs.Mark(err, errs.ErrPersistenceFailed)
	}
	return &ItemView{
		ID:          it.ID(),
		Name:        it.Name(),
		Listed:      it.IsListed(),
		AllowedDays: it.AllowedDays().Days(),
		CreatedAt:   it.CreatedAt(),
		UpdatedAt:   it.UpdatedAt(),
	}, nil
}

func (q *itemQueriesImpl) Bookings(ctx context.Context, id uuid.UUID) (*ItemBookingsView, error) {
	it, err := q.items.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrItemNotFound)
		}
		return nil, errs.Mark(err, errs.ErrPersistenceFailed)
	}
	intervals, err := q.ledger.FindIntervalsForItem(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrPersistenceFailed)
	}

	views := make([]IntervalView, len(intervals))
	for i, iv := range intervals {
		views[i] = IntervalView{
			ID:        iv.ID(),
			OrderID:   iv.OrderID(),
			OwnerID:   iv.OwnerID(),
			StartDay:  iv.Range().Start(),
			EndDay:    iv.Range().End(),
			CreatedAt: iv.CreatedAt(),
		}
	}
	return &ItemBookingsView{
		ItemID:        it.ID(),
		Listed:        it.IsListed(),
		TotalBookings: len(views),
		Intervals:     views,
	}, nil
}
