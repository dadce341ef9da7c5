package queries

import (
	"context"
	"errors"

	"rentbook/internal/domain/booking"
	"rentbook/internal/domain/calendar"
	"rentbook/internal/domain/item"
	"rentbook/internal/infra"
	"rentbook/internal/pkg/errs"
	"rentbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// RangeCheckView is the answer to "is this window free?". Reason is set
// only when Available is false.
type RangeCheckView struct {
	ItemID    uuid.UUID
	Available bool
	Reason    string
}

// AvailabilityQueries is the read-only decision surface; it never mutates
// state and reflects committed intervals only, not in-flight holds.
type AvailabilityQueries interface {
	CheckRange(ctx context.Context, itemID uuid.UUID, start, end calendar.Day) (*RangeCheckView, error)
	AvailableDays(ctx context.Context, itemID uuid.UUID) ([]calendar.Day, error)
	BookedDays(ctx context.Context, itemID uuid.UUID) ([]calendar.Day, error)
}

type availabilityQueriesImpl struct {
	items  shared.ItemRepository
	ledger shared.BookingLedger
	engine *booking.Engine
}

func NewAvailabilityQueries(
	items shared.ItemRepository,
	ledger shared.BookingLedger,
	engine *booking.Engine,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		items:  items,
		ledger: ledger,
		engine: engine,
	}
}

func (q *availabilityQueriesImpl) CheckRange(ctx context.Context, itemID uuid.UUID, start, end calendar.Day) (*RangeCheckView, error) {
	it, intervals, err := q.loadItemState(ctx, itemID)
	if err != nil {
		return nil, err
	}

	decision, err := q.engine.IsRangeFree(it, intervals, start, end)
	if err != nil {
		return nil, markRangeError(err)
	}
	return &RangeCheckView{
		ItemID:    itemID,
		Available: decision.Free,
		Reason:    string(decision.Reason),
	}, nil
}

func (q *availabilityQueriesImpl) AvailableDays(ctx context.Context, itemID uuid.UUID) ([]calendar.Day, error) {
	it, intervals, err := q.loadItemState(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return q.engine.ActualAvailableDays(it, intervals), nil
}

func (q *availabilityQueriesImpl) BookedDays(ctx context.Context, itemID uuid.UUID) ([]calendar.Day, error) {
	_, intervals, err := q.loadItemState(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return q.engine.BookedDays(intervals), nil
}

func (q *availabilityQueriesImpl) loadItemState(ctx context.Context, itemID uuid.UUID) (*item.Item, []*booking.BookedInterval, error) {
	found, err := q.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.Mark(err, errs.ErrItemNotFound)
		}
		return nil, nil, errs.Mark(err, errs.ErrPersistenceFailed)
	}
	intervals, err := q.ledger.FindIntervalsForItem(ctx, itemID)
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrPersistenceFailed)
	}
	return found, intervals, nil
}

func markRangeError(err error) error {
	if errors.Is(err, booking.ErrPastDate) {
		return errs.Mark(err, errs.ErrPastDate)
	}
	return errs.Mark(err, errs.ErrInvalidRange)
}
