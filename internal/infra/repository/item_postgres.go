package repository

import (
	"context"
	"errors"
	"time"

	"rentbook/internal/domain/calendar"
	"rentbook/internal/domain/item"
	"rentbook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const insertItemSQL = `
INSERT INTO items (id, name, listed, allowed_days)
VALUES ($1, $2, $3, $4)
`

const findItemByIDSQL = `
SELECT id, name, listed, allowed_days, created_at, updated_at
FROM items
WHERE id = $1
`

type PostgresItemRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresItemRepository(pool *pgxpool.Pool) *PostgresItemRepository {
	return &PostgresItemRepository{pool: pool}
}

func (r *PostgresItemRepository) Create(ctx context.Context, it *item.Item) error {
	days := it.AllowedDays().Days()
	allowed := make([]time.Time, len(days))
	for i, d := range days {
		allowed[i] = d.Time()
	}
	if _, err := r.pool.Exec(ctx, insertItemSQL, it.ID(), it.Name(), it.IsListed(), allowed); err != nil {
		return infra.WrapRepoErr("failed to insert item", err)
	}
	return nil
}

func (r *PostgresItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	var (
		itemID               uuid.UUID
		name                 string
		listed               bool
		allowed              []time.Time
		createdAt, updatedAt time.Time
	)
	err := r.pool.QueryRow(ctx, findItemByIDSQL, id).
		Scan(&itemID, &name, &listed, &allowed, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by id", err)
	}

	days := make([]calendar.Day, len(allowed))
	for i, t := range allowed {
		days[i] = calendar.NewDay(t)
	}
	return item.ReconstructItem(itemID, name, listed, calendar.NewDaySet(days...), createdAt, updatedAt), nil
}
