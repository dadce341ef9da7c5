//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"rentbook/internal/domain/booking"
	"rentbook/internal/domain/calendar"
	"rentbook/internal/domain/item"
	"rentbook/internal/infra/ledger"
	"rentbook/internal/infra/repository"
	"rentbook/internal/pkg/clock"
	"rentbook/internal/pkg/errs"
	"rentbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var frozenNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func day(s string) calendar.Day { return calendar.MustParseDay(s) }

type queryFixture struct {
	availability queries.AvailabilityQueries
	itemQueries  queries.ItemQueries
	items        *repository.MemoryItemRepository
	ledger       *ledger.MemoryLedger
}

func newQueryFixture(t *testing.T) *queryFixture {
	t.Helper()
	f := &queryFixture{
		items:  repository.NewMemoryItemRepository(),
		ledger: ledger.NewMemoryLedger(),
	}
	engine := booking.NewEngine(clock.NewMockClock(frozenNow), booking.PolicyOpen)
	f.availability = queries.NewAvailabilityQueries(f.items, f.ledger, engine)
	f.itemQueries = queries.NewItemQueries(f.items, f.ledger)
	return f
}

func (f *queryFixture) addItem(t *testing.T, allowed ...calendar.Day) *item.Item {
	t.Helper()
	it, err := item.NewItem("Projector", true, calendar.NewDaySet(allowed...))
	require.NoError(t, err)
	require.NoError(t, f.items.Create(context.Background(), it))
	return it
}

func (f *queryFixture) book(t *testing.T, itemID uuid.UUID, start, end string) *booking.BookedInterval {
	t.Helper()
	r, err := calendar.NewRange(day(start), day(end))
	require.NoError(t, err)
	iv := booking.NewBookedInterval(itemID, uuid.New(), nil, r)
	require.NoError(t, f.ledger.InsertInterval(context.Background(), iv))
	return iv
}

func TestCheckRange(t *testing.T) {
	ctx := context.Background()

	t.Run("free range", func(t *testing.T) {
		f := newQueryFixture(t)
		it := f.addItem(t)

		view, err := f.availability.CheckRange(ctx, it.ID(), day("2026-09-10"), day("2026-09-12"))
		require.NoError(t, err)
		assert.True(t, view.Available)
		assert.Empty(t, view.Reason)
	})

	t.Run("booked range reports the reason", func(t *testing.T) {
		f := newQueryFixture(t)
		it := f.addItem(t)
		f.book(t, it.ID(), "2026-09-11", "2026-09-13")

		view, err := f.availability.CheckRange(ctx, it.ID(), day("2026-09-10"), day("2026-09-12"))
		require.NoError(t, err)
		assert.False(t, view.Available)
		assert.Equal(t, string(booking.ReasonConflict), view.Reason)
	})

	t.Run("invalid windows are errors, not negatives", func(t *testing.T) {
		f := newQueryFixture(t)
		it := f.addItem(t)

		_, err := f.availability.CheckRange(ctx, it.ID(), day("2026-09-12"), day("2026-09-10"))
		assert.ErrorIs(t, err, errs.ErrInvalidRange)

		_, err = f.availability.CheckRange(ctx, it.ID(), day("2026-08-01"), day("2026-08-03"))
		assert.ErrorIs(t, err, errs.ErrPastDate)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newQueryFixture(t)
		_, err := f.availability.CheckRange(ctx, uuid.New(), day("2026-09-10"), day("2026-09-12"))
		assert.ErrorIs(t, err, errs.ErrItemNotFound)
	})
}

func TestAvailableAndBookedDays(t *testing.T) {
	ctx := context.Background()

	t.Run("available days shrink as bookings land", func(t *testing.T) {
		f := newQueryFixture(t)
		it := f.addItem(t, day("2026-09-10"), day("2026-09-11"), day("2026-09-12"))
		f.book(t, it.ID(), "2026-09-10", "2026-09-11")

		available, err := f.availability.AvailableDays(ctx, it.ID())
		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.Equal(t, "2026-09-12", available[0].String())

		booked, err := f.availability.BookedDays(ctx, it.ID())
		require.NoError(t, err)
		assert.Len(t, booked, 2)
	})

	t.Run("open-ended item yields no finite list", func(t *testing.T) {
		f := newQueryFixture(t)
		it := f.addItem(t)

		available, err := f.availability.AvailableDays(ctx, it.ID())
		require.NoError(t, err)
		assert.Empty(t, available)
	})
}

func TestItemQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("get by id", func(t *testing.T) {
		f := newQueryFixture(t)
		it := f.addItem(t, day("2026-09-10"))

		view, err := f.itemQueries.GetByID(ctx, it.ID())
		require.NoError(t, err)
		assert.Equal(t, it.ID(), view.ID)
		assert.Equal(t, "Projector", view.Name)
		assert.Len(t, view.AllowedDays, 1)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newQueryFixture(t)
		_, err := f.itemQueries.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, errs.ErrItemNotFound)
	})

	t.Run("bookings view counts intervals", func(t *testing.T) {
		f := newQueryFixture(t)
		it := f.addItem(t)
		f.book(t, it.ID(), "2026-09-10", "2026-09-11")
		f.book(t, it.ID(), "2026-09-15", "2026-09-16")

		view, err := f.itemQueries.Bookings(ctx, it.ID())
		require.NoError(t, err)
		assert.Equal(t, 2, view.TotalBookings)
		assert.Len(t, view.Intervals, 2)
	})
}
