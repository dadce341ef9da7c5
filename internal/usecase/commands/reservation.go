package commands

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"rentbook/internal/domain/booking"
	"rentbook/internal/domain/calendar"
	"rentbook/internal/domain/item"
	"rentbook/internal/infra"
	"rentbook/internal/infra/lock"
	"rentbook/internal/infra/metrics"
	"rentbook/internal/pkg/clock"
	"rentbook/internal/pkg/config"
	"rentbook/internal/pkg/errs"
	"rentbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReserveParams struct {
	ItemID  uuid.UUID
	Start   calendar.Day
	End     calendar.Day
	OrderID uuid.UUID
	OwnerID *uuid.UUID // absent for guest orders
}

type HoldParams struct {
	ItemID  uuid.UUID
	Start   calendar.Day
	End     calendar.Day
	OwnerID uuid.UUID
}

type ReservationCommands interface {
	Reserve(ctx context.Context, p ReserveParams) (*booking.BookedInterval, error)
	Release(ctx context.Context, orderID uuid.UUID) (int64, error)
	CreateHold(ctx context.Context, p HoldParams) (*booking.Hold, error)
	ConfirmHold(ctx context.Context, holdID, ownerID, orderID uuid.UUID) (*booking.BookedInterval, error)
	ReleaseHold(ctx context.Context, holdID, ownerID uuid.UUID) error
}

// reservationUseCaseImpl serializes every state change for one item behind
// a keyed lock, so the availability check and the ledger write cannot
// interleave with another writer for the same item. Different items never
// contend.
type reservationUseCaseImpl struct {
	items  shared.ItemRepository
	ledger shared.BookingLedger
	holds  shared.HoldStore
	locks  *lock.KeyedMutex
	engine *booking.Engine
	clock  clock.Clock
	cfg    config.BookingConfig
}

func NewReservationUseCase(
	items shared.ItemRepository,
	ledger shared.BookingLedger,
	holds shared.HoldStore,
	locks *lock.KeyedMutex,
	engine *booking.Engine,
	clk clock.Clock,
	cfg config.BookingConfig,
) ReservationCommands {
	return &reservationUseCaseImpl{
		items:  items,
		ledger: ledger,
		holds:  holds,
		locks:  locks,
		engine: engine,
		clock:  clk,
		cfg:    cfg,
	}
}

func (r *reservationUseCaseImpl) Reserve(ctx context.Context, p ReserveParams) (*booking.BookedInterval, error) {
	dayRange, err := r.engine.ValidateRange(p.Start, p.End)
	if err != nil {
		metrics.ReservationAttempts.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, markRangeError(err)
	}

	release, err := r.locks.Acquire(ctx, p.ItemID, r.cfg.LockTimeout)
	if err != nil {
		metrics.ReservationAttempts.WithLabelValues(metrics.ResultTimeout).Inc()
		return nil, errs.Mark(err, errs.ErrReservationTimeout)
	}
	defer release()

	iv, err := r.reserveLocked(ctx, p, dayRange)
	if err != nil {
		return nil, err
	}
	metrics.ReservationAttempts.WithLabelValues(metrics.ResultCommitted).Inc()
	return iv, nil
}

func (r *reservationUseCaseImpl) reserveLocked(ctx context.Context, p ReserveParams, dayRange calendar.Range) (*booking.BookedInterval, error) {
	it, intervals, err := r.loadItemState(ctx, p.ItemID)
	if err != nil {
		metrics.ReservationAttempts.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	if decision := r.engine.Evaluate(it, intervals, dayRange); !decision.Free {
		metrics.ReservationAttempts.WithLabelValues(metrics.ResultConflict).Inc()
		return nil, errs.Mark(errs.New(string(decision.Reason)), errs.ErrRangeUnavailable)
	}

	blocked, err := r.rangeHeldByOther(ctx, p.ItemID, dayRange, p.OwnerID)
	if err != nil {
		metrics.ReservationAttempts.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}
	if blocked {
		metrics.ReservationAttempts.WithLabelValues(metrics.ResultConflict).Inc()
		return nil, errs.Mark(errs.New("range held by another checkout"), errs.ErrRangeUnavailable)
	}

	iv := booking.NewBookedInterval(p.ItemID, p.OrderID, p.OwnerID, dayRange)
	if err := r.ledger.InsertInterval(ctx, iv); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			metrics.ReservationAttempts.WithLabelValues(metrics.ResultConflict).Inc()
			return nil, errs.Mark(err, errs.ErrRangeUnavailable)
		}
		metrics.ReservationAttempts.WithLabelValues(metrics.ResultError).Inc()
		return nil, errs.Mark(err, errs.ErrPersistenceFailed)
	}
	return iv, nil
}

// Release removes every interval owned by the order, across items. It is
// idempotent: releasing an unknown or already-released order removes
// nothing and reports zero. Item locks are taken in sorted order so two
// concurrent multi-item releases cannot deadlock.
func (r *reservationUseCaseImpl) Release(ctx context.Context, orderID uuid.UUID) (int64, error) {
	intervals, err := r.ledger.FindIntervalsByOrder(ctx, orderID)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrPersistenceFailed)
	}
	if len(intervals) == 0 {
		return 0, nil
	}

	for _, itemID := range distinctSortedItemIDs(intervals) {
		release, err := r.locks.Acquire(ctx, itemID, r.cfg.LockTimeout)
		if err != nil {
			return 0, errs.Mark(err, errs.ErrReservationTimeout)
		}
		defer release()
	}

	removed, err := r.ledger.DeleteIntervalsByOrder(ctx, orderID)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrPersistenceFailed)
	}
	metrics.IntervalsReleased.Add(float64(removed))
	return removed, nil
}

func (r *reservationUseCaseImpl) CreateHold(ctx context.Context, p HoldParams) (*booking.Hold, error) {
	dayRange, err := r.engine.ValidateRange(p.Start, p.End)
	if err != nil {
		return nil, markRangeError(err)
	}

	release, err := r.locks.Acquire(ctx, p.ItemID, r.cfg.LockTimeout)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrReservationTimeout)
	}
	defer release()

	it, intervals, err := r.loadItemState(ctx, p.ItemID)
	if err != nil {
		return nil, err
	}
	if decision := r.engine.Evaluate(it, intervals, dayRange); !decision.Free {
		return nil, errs.Mark(errs.New(string(decision.Reason)), errs.ErrRangeUnavailable)
	}

	live, err := r.liveHolds(ctx, p.ItemID)
	if err != nil {
		return nil, err
	}
	for _, h := range live {
		if h.Range().Overlaps(dayRange) {
			return nil, errs.Mark(errs.New("overlapping hold exists"), errs.ErrHoldConflict)
		}
	}

	hold := booking.NewHold(p.ItemID, p.OwnerID, dayRange, r.clock.Now().Add(r.cfg.HoldTTL))
	if err := r.holds.Put(ctx, hold, r.cfg.HoldTTL); err != nil {
		return nil, errs.Mark(err, errs.ErrPersistenceFailed)
	}
	metrics.HoldsCreated.Inc()
	return hold, nil
}

// ConfirmHold converts a live hold into a committed interval. The range is
// not re-validated against "today": the hold was validated at creation and
// confirmation may legitimately cross midnight.
func (r *reservationUseCaseImpl) ConfirmHold(ctx context.Context, holdID, ownerID, orderID uuid.UUID) (*booking.BookedInterval, error) {
	hold, err := r.getOwnedHold(ctx, holdID, ownerID)
	if err != nil {
		return nil, err
	}
	if hold.Expired(r.clock.Now()) {
		return nil, errs.Mark(errs.New("hold ttl elapsed"), errs.ErrHoldExpired)
	}

	release, err := r.locks.Acquire(ctx, hold.ItemID, r.cfg.LockTimeout)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrReservationTimeout)
	}
	defer release()

	owner := ownerID
	iv := booking.NewBookedInterval(hold.ItemID, orderID, &owner, hold.Range())
	if err := r.ledger.InsertInterval(ctx, iv); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, errs.ErrRangeUnavailable)
		}
		return nil, errs.Mark(err, errs.ErrPersistenceFailed)
	}

	if err := r.holds.Delete(ctx, holdID); err != nil {
		// The interval is committed; a dangling hold only blocks new holds
		// until its TTL runs out.
		slog.Warn("failed to delete confirmed hold", "hold_id", holdID, "error", err.Error())
	}
	return iv, nil
}

func (r *reservationUseCaseImpl) ReleaseHold(ctx context.Context, holdID, ownerID uuid.UUID) error {
	hold, err := r.holds.Get(ctx, holdID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil // idempotent, like order release
		}
		return errs.Mark(err, errs.ErrPersistenceFailed)
	}
	if hold.OwnerID != ownerID {
		return errs.Mark(errs.New("hold owned by another actor"), errs.ErrHoldNotFound)
	}
	if err := r.holds.Delete(ctx, holdID); err != nil {
		return errs.Mark(err, errs.ErrPersistenceFailed)
	}
	return nil
}

func (r *reservationUseCaseImpl) loadItemState(ctx context.Context, itemID uuid.UUID) (*item.Item, []*booking.BookedInterval, error) {
	it, err := r.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.Mark(err, errs.ErrItemNotFound)
		}
		return nil, nil, errs.Mark(err, errs.ErrPersistenceFailed)
	}
	intervals, err := r.ledger.FindIntervalsForItem(ctx, itemID)
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrPersistenceFailed)
	}
	return it, intervals, nil
}

func (r *reservationUseCaseImpl) rangeHeldByOther(ctx context.Context, itemID uuid.UUID, dayRange calendar.Range, ownerID *uuid.UUID) (bool, error) {
	live, err := r.liveHolds(ctx, itemID)
	if err != nil {
		return false, err
	}
	for _, h := range live {
		if ownerID != nil && h.OwnerID == *ownerID {
			continue
		}
		if h.Range().Overlaps(dayRange) {
			return true, nil
		}
	}
	return false, nil
}

func (r *reservationUseCaseImpl) liveHolds(ctx context.Context, itemID uuid.UUID) ([]*booking.Hold, error) {
	holds, err := r.holds.ListByItem(ctx, itemID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrPersistenceFailed)
	}
	now := r.clock.Now()
	live := holds[:0]
	for _, h := range holds {
		if !h.Expired(now) {
			live = append(live, h)
		}
	}
	return live, nil
}

func (r *reservationUseCaseImpl) getOwnedHold(ctx context.Context, holdID, ownerID uuid.UUID) (*booking.Hold, error) {
	hold, err := r.holds.Get(ctx, holdID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrHoldNotFound)
		}
		return nil, errs.Mark(err, errs.ErrPersistenceFailed)
	}
	if hold.OwnerID != ownerID {
		return nil, errs.Mark(errs.New("hold owned by another actor"), errs.ErrHoldNotFound)
	}
	return hold, nil
}

func markRangeError(err error) error {
	if errors.Is(err, booking.ErrPastDate) {
		return errs.Mark(err, errs.ErrPastDate)
	}
	return errs.Mark(err, errs.ErrInvalidRange)
}

func distinctSortedItemIDs(intervals []*booking.BookedInterval) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(intervals))
	ids := make([]uuid.UUID, 0, len(intervals))
	for _, iv := range intervals {
		if _, ok := seen[iv.ItemID()]; ok {
			continue
		}
		seen[iv.ItemID()] = struct{}{}
		ids = append(ids, iv.ItemID())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
