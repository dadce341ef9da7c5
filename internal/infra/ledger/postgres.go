package ledger

import (
	"context"
	"time"

	"rentbook/internal/domain/booking"
	"rentbook/internal/domain/calendar"
	"rentbook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const findIntervalsForItemSQL = `
SELECT id, item_id, order_id, owner_id, start_day, end_day, created_at
FROM booked_intervals
WHERE item_id = $1
ORDER BY start_day, id
`

const findIntervalsByOrderSQL = `
SELECT id, item_id, order_id, owner_id, start_day, end_day, created_at
FROM booked_intervals
WHERE order_id = $1
ORDER BY item_id, start_day
`

// The insert is conditional on no committed overlap for the same item, so
// the no-double-booking invariant holds even against writers that bypass
// the in-process item lock. The advisory xact lock serializes concurrent
// conditional inserts for one item inside Postgres itself.
const insertIntervalSQL = `
INSERT INTO booked_intervals (id, item_id, order_id, owner_id, start_day, end_day)
SELECT $1, $2, $3, $4, $5::date, $6::date
WHERE NOT EXISTS (
    SELECT 1 FROM booked_intervals
    WHERE item_id = $2 AND start_day <= $6::date AND $5::date <= end_day
)
`

const advisoryLockSQL = `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`

const deleteIntervalsByOrderSQL = `DELETE FROM booked_intervals WHERE order_id = $1`

type PostgresLedger struct {
	pool *pgxpool.Pool
}

func NewPostgresLedger(pool *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{pool: pool}
}

func (l *PostgresLedger) FindIntervalsForItem(ctx context.Context, itemID uuid.UUID) ([]*booking.BookedInterval, error) {
	rows, err := l.pool.Query(ctx, findIntervalsForItemSQL, itemID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query intervals for item", err)
	}
	return scanIntervals(rows)
}

func (l *PostgresLedger) FindIntervalsByOrder(ctx context.Context, orderID uuid.UUID) ([]*booking.BookedInterval, error) {
	rows, err := l.pool.Query(ctx, findIntervalsByOrderSQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query intervals for order", err)
	}
	return scanIntervals(rows)
}

func (l *PostgresLedger) InsertInterval(ctx context.Context, iv *booking.BookedInterval) error {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin insert transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, advisoryLockSQL, iv.ItemID()); err != nil {
		return infra.WrapRepoErr("failed to take item advisory lock", err)
	}

	tag, err := tx.Exec(ctx, insertIntervalSQL,
		iv.ID(), iv.ItemID(), iv.OrderID(), iv.OwnerID(),
		iv.Range().Start().Time(), iv.Range().End().Time(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert interval", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("interval overlaps committed booking", nil, infra.KindConflict)
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit interval insert", err)
	}
	return nil
}

func (l *PostgresLedger) DeleteIntervalsByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	tag, err := l.pool.Exec(ctx, deleteIntervalsByOrderSQL, orderID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete intervals for order", err)
	}
	return tag.RowsAffected(), nil
}

func scanIntervals(rows pgx.Rows) ([]*booking.BookedInterval, error) {
	defer rows.Close()
	var out []*booking.BookedInterval
	for rows.Next() {
		var (
			id, itemID, orderID uuid.UUID
			ownerID             *uuid.UUID
			startDay, endDay    time.Time
			createdAt           time.Time
		)
		if err := rows.Scan(&id, &itemID, &orderID, &ownerID, &startDay, &endDay, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan interval row", err)
		}
		r, err := calendar.NewRange(calendar.NewDay(startDay), calendar.NewDay(endDay))
		if err != nil {
			return nil, infra.WrapRepoErr("stored interval has invalid range", err)
		}
		out = append(out, booking.ReconstructBookedInterval(id, itemID, orderID, ownerID, r, createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read interval rows", err)
	}
	return out, nil
}
